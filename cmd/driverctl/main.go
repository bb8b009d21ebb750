package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gale-driverctl",
	Short: "Driver control command",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetConfigName("driverctl.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/gale/")
		viper.AddConfigPath("$HOME/.config/gale")
		viper.AddConfigPath(".")
		viper.ReadInConfig()

		viper.SetEnvPrefix("gale")
		viper.AutomaticEnv()

		config, err := LoadConfig()
		if err != nil {
			log.Fatal(err)
		}
		configData = *config
	},
}

var configData = ControlConfig{}

func main() {
	rootCmd.PersistentFlags().StringP("driver-uri", "s", "tcp://localhost:9090", "Driver service URI")
	viper.BindPFlag("driver_uri", rootCmd.PersistentFlags().Lookup("driver-uri"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
