package main

import "github.com/spf13/cobra"

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Register mock executors with the driver",
}

func init() {
	rootCmd.AddCommand(mockCmd)
}
