// Package cluster connects the driver to a resource manager.
package cluster

// Receiver of cluster lifecycle events.
// Callbacks are invoked from the client's own goroutines, potentially
// concurrently for different event types. Implementations must be
// safe for that.
type Listener interface {
	// The master accepted the application and assigned an identifier.
	Connected(appID string)

	// The connection to the master was lost. The client keeps trying
	// to reconnect and executors keep running in the meantime.
	Disconnected()

	// The application cannot continue, either because registration
	// failed or because the master declared it dead.
	Dead(reason string)

	// The master granted an executor.
	// fullID has the form <workerID>/<executorNumber>.
	ExecutorAdded(fullID, workerID, hostPort string, units, memoryMB int)

	// An executor is gone. exitCode is nil when the process outcome
	// is unknown.
	ExecutorRemoved(fullID, message string, exitCode *int)
}

// Connection between the driver and a cluster master.
type Client interface {
	// Register the application with the master.
	// Events are delivered to the listener from this point on.
	Start() error

	// Deregister the application and stop event delivery.
	Stop() error
}
