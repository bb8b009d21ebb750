package utils

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/galecloud/gale/pkg/log"
)

// TerminateOnSignal exits the process cleanly on SIGINT or SIGTERM.
func TerminateOnSignal() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-ch
		log.Info("Received signal:", sig)
		os.Exit(0)
	}()
}
