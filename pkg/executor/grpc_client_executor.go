package executor

import (
	"github.com/galecloud/gale/pkg/protocol"
	"github.com/galecloud/gale/pkg/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func NewExecutorClient(config *Config) (protocol.DriverClient, error) {
	dialOptions := append(config.Grpc.ToDialOptions(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))

	grpcUri, err := utils.ParseGrpcUrl(config.DriverUri)
	if err != nil {
		return nil, err
	}

	conn, err := grpc.NewClient(grpcUri, dialOptions...)
	if err != nil {
		return nil, err
	}

	return protocol.NewDriverClient(conn), nil
}
