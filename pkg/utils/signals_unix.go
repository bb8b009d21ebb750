//go:build unix

package utils

import (
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
)

// OnSignalDumpStacks writes all goroutine stacks to stderr on SIGUSR1.
func OnSignalDumpStacks() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)

	go func() {
		for range ch {
			pprof.Lookup("goroutine").WriteTo(os.Stderr, 2)
		}
	}()
}
