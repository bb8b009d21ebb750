package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/galecloud/gale/pkg/protocol"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var mockExecutorCmd = &cobra.Command{
	Use:   "executor",
	Short: "Register mock executors and heartbeat until stopped",
	Run: func(cmd *cobra.Command, args []string) {
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			panic(err)
		}

		units, err := cmd.Flags().GetInt("units")
		if err != nil {
			panic(err)
		}

		conn := NewDriverConn()
		defer conn.Close()

		client := protocol.NewDriverClient(conn)

		var wg sync.WaitGroup
		for i := 0; i < count; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				runMockExecutor(client, units)
			}()
		}
		wg.Wait()
	},
}

func runMockExecutor(client protocol.DriverClient, units int) {
	stream, err := client.Attach(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	id := fmt.Sprintf("mock-%.8s", uuid.NewString())

	register := &protocol.ExecutorUpdate{
		Status: protocol.UpdateStatusRegister,
		Registration: &protocol.ExecutorRegistration{
			ExecutorId: id,
			HostPort:   "localhost",
			Units:      int32(units),
			MemoryMb:   1024,
			Attributes: []*protocol.Attribute{
				{Key: "mock", Value: "true"},
			},
		},
	}

	if err := stream.Send(register); err != nil {
		log.Fatal(err)
	}

	request, err := stream.Recv()
	if err != nil {
		log.Fatal(err)
	}

	switch request.GetAction() {
	case protocol.DriverActionRegistered:
		log.Println("registered", id, "with", request.GetApplicationId())
	case protocol.DriverActionRejected:
		log.Println("rejected", id, "-", request.GetReason())
		return
	default:
		log.Fatal("unexpected driver action: ", request.GetAction())
	}

	requests := make(chan *protocol.DriverRequest, 1)
	go func() {
		defer close(requests)
		for {
			request, err := stream.Recv()
			if err != nil {
				return
			}
			requests <- request
		}
	}()

	heartbeat := time.NewTicker(5 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-heartbeat.C:
			if err := stream.Send(&protocol.ExecutorUpdate{Status: protocol.UpdateStatusHeartbeat}); err != nil {
				log.Println("lost connection to the driver:", err)
				return
			}

		case request, ok := <-requests:
			if !ok {
				log.Println("lost connection to the driver")
				return
			}

			if request.GetAction() == protocol.DriverActionStop {
				log.Println("stopping", id, "-", request.GetReason())
				stream.Send(&protocol.ExecutorUpdate{Status: protocol.UpdateStatusStopping})
				stream.CloseSend()
				return
			}
		}
	}
}

func init() {
	mockExecutorCmd.Flags().IntP("count", "n", 1, "Number of executors to register")
	mockExecutorCmd.Flags().IntP("units", "u", 1, "Units offered by each executor")
	mockCmd.AddCommand(mockExecutorCmd)
}
