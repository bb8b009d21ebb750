package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/galecloud/gale/pkg/executor"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "gale-executor",
	Short: "Gale application executor",
	Run: func(cmd *cobra.Command, args []string) {
		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			log.Fatal(err)
		}
		switch {
		case verbosity >= 2:
			log.SetLevel(log.TraceLevel)
		case verbosity >= 1:
			log.SetLevel(log.DebugLevel)
		}

		// Load executor configuration from file or environment.
		config, err := LoadConfig()
		if err != nil {
			log.Fatal(err)
		}

		config.SetDefaults()

		if err := config.Validate(); err != nil {
			log.Fatal(err)
		}

		config.Log()

		client, err := executor.NewExecutorClient(config)
		if err != nil {
			log.Fatal(err)
		}

		exec := executor.NewExecutor(config, client)
		os.Exit(exec.Run())
	},
}

func main() {
	rootCmd.Flags().StringP("driver-uri", "s", "tcp://localhost:9090", "Driver service URI")
	rootCmd.Flags().String("id", "", "Executor identifier assigned by the cluster")
	rootCmd.Flags().String("app-id", "", "Application identifier")
	rootCmd.Flags().Int("units", 1, "Number of units offered")
	rootCmd.Flags().Int("memory", 1024, "Memory offered, in MiB")
	rootCmd.Flags().StringP("work-dir", "w", ".", "Scratch directory root")
	rootCmd.Flags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("driver_uri", rootCmd.Flags().Lookup("driver-uri"))
	viper.BindPFlag("id", rootCmd.Flags().Lookup("id"))
	viper.BindPFlag("app_id", rootCmd.Flags().Lookup("app-id"))
	viper.BindPFlag("units", rootCmd.Flags().Lookup("units"))
	viper.BindPFlag("memory", rootCmd.Flags().Lookup("memory"))
	viper.BindPFlag("work_dir", rootCmd.Flags().Lookup("work-dir"))
	viper.SetEnvPrefix("gale")
	viper.AutomaticEnv()

	viper.SetConfigName("executor.yaml")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/gale/")
	viper.AddConfigPath("$HOME/.config/gale")
	viper.AddConfigPath(".")
	viper.ReadInConfig()

	utils.TerminateOnSignal()
	utils.OnSignalDumpStacks()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
