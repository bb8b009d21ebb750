package main

import "github.com/spf13/cobra"

var executorCmd = &cobra.Command{
	Use:   "executor",
	Short: "Commands to inspect and manipulate executors",
}

func init() {
	rootCmd.AddCommand(executorCmd)
}
