package backend

import (
	"errors"
	"io"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/protocol"
	"github.com/galecloud/gale/pkg/utils"
)

// Oldest executor protocol version still accepted. Executors that do not
// report a version are tolerated.
const minExecutorVersion = "1.0.0"

type executorService struct {
	protocol.UnimplementedDriverServer
	backend *StandaloneBackend
	stop    *utils.Broadcast[struct{}]
}

func NewExecutorService(backend *StandaloneBackend) *executorService {
	return &executorService{
		backend: backend,
		stop:    utils.NewBroadcast[struct{}](),
	}
}

// StopExecutors asks every attached executor to shut down.
func (s *executorService) StopExecutors() {
	s.stop.Send(struct{}{})
}

func (s *executorService) Attach(stream protocol.Driver_AttachServer) error {
	update, err := stream.Recv()
	if err != nil {
		return utils.GrpcError(err)
	}

	if !update.HasRegistration() {
		return errors.New("bad request")
	}

	registration := update.GetRegistration()
	id := registration.GetExecutorId()

	if appID := registration.GetApplicationId(); appID != "" && appID != s.backend.ApplicationID() {
		log.Warnf("nok - executor - id: %s, unknown application: %s", id, appID)

		if err := stream.Send(&protocol.DriverRequest{
			Action: protocol.DriverActionRejected,
			Reason: "unknown application: " + appID,
		}); err != nil {
			return utils.GrpcError(err)
		}
		return nil
	}

	attributes := map[string]string{}
	for _, attribute := range registration.GetAttributes() {
		attributes[attribute.GetKey()] = attribute.GetValue()
	}

	if version := attributes["version"]; version != "" && utils.VersionLessThan(version, minExecutorVersion) {
		log.Warnf("nok - executor - id: %s, unsupported version: %s", id, version)

		if err := stream.Send(&protocol.DriverRequest{
			Action: protocol.DriverActionRejected,
			Reason: "unsupported executor version: " + version,
		}); err != nil {
			return utils.GrpcError(err)
		}
		return nil
	}

	info := &ExecutorInfo{
		ID:         id,
		HostPort:   registration.GetHostPort(),
		Units:      int(registration.GetUnits()),
		MemoryMB:   int(registration.GetMemoryMb()),
		Attributes: attributes,
	}

	if err := s.backend.Pool().RegisterExecutor(info); err != nil {
		log.Warnf("nok - executor - id: %s, %v", id, err)

		if err := stream.Send(&protocol.DriverRequest{
			Action: protocol.DriverActionRejected,
			Reason: err.Error(),
		}); err != nil {
			return utils.GrpcError(err)
		}
		return nil
	}

	// Subscribe before acknowledging so that a shutdown broadcast
	// cannot slip past an executor that was just registered.
	consumer := s.stop.NewConsumer()
	defer consumer.Close()
	stopChan := consumer.Chan

	if err := stream.Send(&protocol.DriverRequest{
		Action:        protocol.DriverActionRegistered,
		ApplicationId: s.backend.ApplicationID(),
	}); err != nil {
		s.backend.Pool().RemoveExecutor(id, ConnectionLost{Message: "executor stream closed"})
		return utils.GrpcError(err)
	}

	updates := make(chan *protocol.ExecutorUpdate, 1)
	go func() {
		defer close(updates)

		for {
			update, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				log.Trace("Executor read error:", err)
				return
			}

			updates <- update
		}
	}()

	for {
		select {
		case <-stopChan:
			stopChan = nil

			request := &protocol.DriverRequest{
				Action: protocol.DriverActionStop,
				Reason: "application shutdown",
			}

			if err := stream.Send(request); err != nil {
				log.Trace("Executor write error:", err)
				s.backend.Pool().RemoveExecutor(id, ConnectionLost{Message: "executor stream closed"})
				return utils.GrpcError(err)
			}

		case update := <-updates:
			if update == nil {
				log.Trace("Executor stream closed")
				s.backend.Pool().RemoveExecutor(id, ConnectionLost{Message: "executor stream closed"})
				return nil
			}

			switch update.GetStatus() {
			case protocol.UpdateStatusHeartbeat:
				log.Trace("Executor heartbeat:", id)

			case protocol.UpdateStatusStopping:
				message := "executor stopped"

				if failure := update.GetError(); failure != nil {
					message = failure.GetMessage()
					log.Warnf("err - executor - id: %s, failure: %s", id, message)

					if failure.GetDetails() != "" {
						log.Debug("Failure details:", failure.GetDetails())
					}
				}

				log.Infof("end - executor - id: %s", id)
				s.backend.Pool().RemoveExecutor(id, ConnectionLost{Message: message})
				return nil

			default:
				log.Warn("Unrecognized update received from executor:", protocol.UpdateStatusName(update.GetStatus()))
			}
		}
	}
}
