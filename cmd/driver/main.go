package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/cluster"
	"github.com/galecloud/gale/pkg/eventlog"
	"github.com/galecloud/gale/pkg/history"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/protocol"
	"github.com/galecloud/gale/pkg/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

var config *Config

var rootCmd = &cobra.Command{
	Use:   "gale-driver",
	Short: "Gale standalone cluster application driver",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("gale")
		viper.AutomaticEnv()

		viper.SetConfigName("driver.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/gale/")
		viper.AddConfigPath("$HOME/.config/gale")
		viper.AddConfigPath(".")

		viper.ReadInConfig()

		if err := utils.UnmarshalConfig(*viper.GetViper(), &config); err != nil {
			log.Fatal(err)
		}

		config.SetDefaults()

		if err := config.Validate(); err != nil {
			log.Fatal(err)
		}

		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			panic(err)
		}

		switch {
		case verbosity >= 2:
			log.SetLevel(log.TraceLevel)
		case verbosity >= 1:
			log.SetLevel(log.DebugLevel)
		}

		config.Log()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Cancelled on SIGINT and SIGTERM. The admin service cancels it
		// too when an operator stops the application.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Create filesystem storage for the event journal
		journalFs, err := config.EventLog.CreateFs()
		if err != nil {
			log.Fatal(err)
		}

		store := eventlog.NewStore(&config.EventLog, journalFs)

		journal, err := store.Create(eventlog.JournalName(config.Backend.AppName, time.Now()))
		if err != nil {
			log.Fatal(err)
		}
		defer journal.Close()

		// Create the backend attached to an in-process cluster master.
		b := backend.NewStandaloneBackend(&config.Backend, &driverScheduler{}, &driverContainer{stop: stop},
			func(app *cluster.ApplicationDescription, listener cluster.Listener) (cluster.Client, error) {
				return cluster.NewLocalMaster(&config.Cluster, app, listener), nil
			})

		b.AddObserver(journal)

		// Create history telemetry hook if configured
		if config.GetHistoryUri() != "" {
			hook := history.NewHistoryHook(config)
			defer hook.Close()

			b.AddObserver(hook)
		}

		b.OnShutdown(func(b *backend.StandaloneBackend) {
			stats := b.Statistics()
			log.Infof("end - application - id: %s, granted: %d, lost: %d",
				stats.ApplicationID, stats.GrantedExecutors, stats.LostExecutors)
		})

		service := backend.NewExecutorService(b)

		server := grpc.NewServer(config.GRPCOptions.ToServerOptions()...)
		protocol.RegisterDriverServer(server, service)
		protocol.RegisterAdministrationServer(server, backend.NewAdminService(b))

		// Start listening on all configured addresses. A failing listener
		// takes the whole driver down.
		group := new(errgroup.Group)

		for _, uri := range config.ListenGrpc {
			group.Go(func() error {
				return serveGrpc(server, uri)
			})
		}

		for _, uri := range config.ListenHttp {
			group.Go(func() error {
				return serveHttp(b, store, uri)
			})
		}

		go func() {
			if err := group.Wait(); err != nil {
				log.Fatal(err)
			}
		}()

		// Attach to the cluster. Blocks until the master has answered.
		if err := b.Start(); err != nil {
			log.Fatal(err)
		}

		if err := b.WaitUntilReady(ctx); err == nil {
			stats := b.Statistics()
			log.Infof("run - application - id: %s, executors: %d, units: %d",
				stats.ApplicationID, stats.Executors, stats.RegisteredUnits)
		}

		<-ctx.Done()

		log.Info("Shutting down")

		// Ask the executors to stop and give them a moment to drain
		// before the master reaps whatever is left.
		service.StopExecutors()
		stopServer(server, 10*time.Second)

		if err := b.Stop(); err != nil {
			log.Warn("Backend shutdown failed:", err)
		}
	},
}

// stopServer stops the gRPC server gracefully, falling back to a hard
// stop when attached streams do not drain in time.
func stopServer(server *grpc.Server, timeout time.Duration) {
	done := make(chan struct{})

	go func() {
		server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		server.Stop()
	}
}

func init() {
	rootCmd.Flags().StringSliceP("listen-http", "l", []string{"tcp://:8080"}, "Addresses to listen on for HTTP connections")
	rootCmd.Flags().StringSliceP("listen-grpc", "g", []string{"tcp://:9090"}, "Addresses to listen on for GRPC connections")
	rootCmd.Flags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("listen_grpc", rootCmd.Flags().Lookup("listen-grpc"))
	viper.BindPFlag("listen_http", rootCmd.Flags().Lookup("listen-http"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
