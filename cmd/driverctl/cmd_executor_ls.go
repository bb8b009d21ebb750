package main

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
)

var executorListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List executors",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := DefaultDeadlineContext()
		defer cancel()

		client := NewAdminClient()
		response, err := client.ListExecutors(ctx, &emptypb.Empty{})
		if err != nil {
			log.Fatal(err)
		}

		sort.Slice(response.Executors, func(i, j int) bool {
			return response.Executors[i].Id < response.Executors[j].Id
		})

		executorCount := len(response.Executors)
		executorPad := fmt.Sprint(len(fmt.Sprint(executorCount)))

		for index, executor := range response.Executors {
			fmt.Printf("%"+executorPad+"d: %s\n",
				index+1,
				executor.Id,
			)

			fmt.Printf("  Host:       %s\n", executor.HostPort)
			fmt.Printf("  Units:      %d\n", executor.Units)
			fmt.Printf("  Memory:     %d MiB\n", executor.MemoryMb)
			fmt.Printf("  Registered: %s\n", time.UnixMilli(executor.RegisteredAtMs).Format(time.RFC3339))

			if len(executor.Attributes) > 0 {
				fmt.Println("  Attributes")
				for _, attribute := range executor.Attributes {
					fmt.Printf("    %s: %s\n", attribute.Key, attribute.Value)
				}
			}
			fmt.Println()
		}
	},
}

func init() {
	executorCmd.AddCommand(executorListCmd)
}
