package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show application status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := DefaultDeadlineContext()
		defer cancel()

		client := NewAdminClient()
		response, err := client.Status(ctx, &emptypb.Empty{})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Application: %s (%s)\n", response.ApplicationId, response.ApplicationName)
		fmt.Printf("Started:     %s\n", time.UnixMilli(response.StartedAtMs).Format(time.RFC3339))
		fmt.Printf("Executors:   %d\n", response.Executors)

		if response.ExpectedUnits > 0 {
			fmt.Printf("Units:       %d of %d (minimum ratio %.2f)\n",
				response.RegisteredUnits, response.ExpectedUnits, response.MinRegisteredRatio)
		} else {
			fmt.Printf("Units:       %d (no maximum)\n", response.RegisteredUnits)
		}

		fmt.Printf("Sufficient:  %v\n", response.Sufficient)
		fmt.Printf("Ready:       %v\n", response.Ready)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
