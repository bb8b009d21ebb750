package main

import (
	"context"
	"log"
	"time"

	"github.com/galecloud/gale/pkg/protocol"
	"github.com/galecloud/gale/pkg/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func NewDriverConn() *grpc.ClientConn {
	opts := grpc.WithTransportCredentials(insecure.NewCredentials())

	grpcHost, err := utils.ParseGrpcUrl(configData.DriverUri)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := grpc.NewClient(grpcHost, opts)
	if err != nil {
		log.Fatal(err)
	}

	return conn
}

func NewAdminClient() protocol.AdministrationClient {
	return protocol.NewAdministrationClient(NewDriverConn())
}

func DefaultDeadlineContext() (context.Context, func()) {
	return context.WithDeadline(context.Background(), time.Now().Add(time.Second*30))
}
