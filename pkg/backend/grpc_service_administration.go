package backend

import (
	"context"
	"sort"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/protocol"
	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/protobuf/types/known/emptypb"
)

type adminService struct {
	protocol.UnimplementedAdministrationServer
	backend *StandaloneBackend
}

func NewAdminService(backend *StandaloneBackend) *adminService {
	return &adminService{
		backend: backend,
	}
}

func (s *adminService) Status(_ context.Context, _ *empty.Empty) (*protocol.StatusResponse, error) {
	stats := s.backend.Statistics()

	return &protocol.StatusResponse{
		ApplicationId:      stats.ApplicationID,
		ApplicationName:    s.backend.cfg.AppName,
		RegisteredUnits:    stats.RegisteredUnits,
		ExpectedUnits:      int32(s.backend.cfg.ExpectedUnits()),
		MinRegisteredRatio: s.backend.cfg.MinRegisteredRatio,
		Sufficient:         s.backend.IsSufficient(),
		Ready:              s.backend.IsReady(),
		Executors:          int32(stats.Executors),
		StartedAtMs:        stats.StartedAt.UnixMilli(),
	}, nil
}

func (s *adminService) ListExecutors(_ context.Context, _ *empty.Empty) (*protocol.ListExecutorsResponse, error) {
	executors := s.backend.Pool().Executors()

	response := &protocol.ListExecutorsResponse{
		Executors: make([]*protocol.ExecutorEntry, 0, len(executors)),
	}

	for _, executor := range executors {
		keys := make([]string, 0, len(executor.Attributes))
		for key := range executor.Attributes {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		attributes := make([]*protocol.Attribute, 0, len(keys))
		for _, key := range keys {
			attributes = append(attributes, &protocol.Attribute{
				Key:   key,
				Value: executor.Attributes[key],
			})
		}

		response.Executors = append(response.Executors, &protocol.ExecutorEntry{
			Id:             executor.ID,
			HostPort:       executor.HostPort,
			Units:          int32(executor.Units),
			MemoryMb:       int32(executor.MemoryMB),
			RegisteredAtMs: executor.RegisteredAt.UnixMilli(),
			Attributes:     attributes,
		})
	}

	return response, nil
}

func (s *adminService) StopApplication(_ context.Context, req *protocol.StopApplicationRequest) (*empty.Empty, error) {
	log.Infof("end - application - reason: %s", req.GetReason())

	s.backend.container.StopApplication()
	return &emptypb.Empty{}, nil
}
