package main

import (
	"log"

	"github.com/galecloud/gale/pkg/protocol"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the application",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := DefaultDeadlineContext()
		defer cancel()

		reason, err := cmd.Flags().GetString("reason")
		if err != nil {
			panic(err)
		}

		client := NewAdminClient()

		if _, err := client.StopApplication(ctx, &protocol.StopApplicationRequest{Reason: reason}); err != nil {
			log.Fatal(err)
		}

		log.Println("stop requested")
	},
}

func init() {
	stopCmd.Flags().StringP("reason", "r", "stopped by operator", "Reason recorded for the shutdown")
	rootCmd.AddCommand(stopCmd)
}
