package backend

// Details about an executor granted by the cluster.
type ExecutorEvent struct {
	// Identifier in <workerID>/<executorNumber> form.
	FullID string

	// Worker hosting the executor.
	WorkerID string

	// Address of the hosting worker.
	HostPort string

	// Units provided by the executor.
	Units int

	// Memory granted to the executor, in MiB.
	MemoryMB int
}

// Receiver of application lifecycle events.
// Callbacks are invoked synchronously from the backend's event paths
// and must not block.
type Observer interface {
	// The master accepted the application.
	ApplicationRegistered(appID string)

	// The master declared the application dead.
	ApplicationDead(reason string)

	// The master granted an executor.
	ExecutorAdded(event *ExecutorEvent)

	// An executor was removed, with the classified reason.
	ExecutorRemoved(id string, reason LossReason)
}
