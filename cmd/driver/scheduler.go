package main

import (
	"context"

	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/log"
)

// Receives the backend's scheduling decisions. The standalone driver has
// no task scheduler attached, losses are logged and fatal cluster errors
// surface in the application log.
type driverScheduler struct{}

func (s *driverScheduler) Error(reason string) {
	log.Error("Application error:", reason)
}

func (s *driverScheduler) ExecutorLost(id string, reason backend.LossReason) {
	log.Infof("int - executor - lost - id: %s, reason: %s", id, reason)
}

// Stops the process by cancelling the root context.
type driverContainer struct {
	stop context.CancelFunc
}

func (c *driverContainer) StopApplication() {
	c.stop()
}
