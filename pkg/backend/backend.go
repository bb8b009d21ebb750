package backend

import (
	"context"
	"time"
)

// Main backend interface.
// A backend attaches the driver to a cluster, tracks the executors the
// cluster grants and releases work once enough of them have registered.
type Backend interface {
	// Attach to the cluster and block until registration has finished.
	Start() error

	// Detach from the cluster and release all resources.
	// Safe to call multiple times.
	Stop() error

	// Identifier of the running application.
	// A locally generated fallback until the master has assigned one.
	ApplicationID() string

	// True once enough executor units have registered.
	IsSufficient() bool

	///////////////////////////////////////////////////////////////////////////

	// True once the backend is willing to release work, either because
	// enough units have registered or because the grace period expired.
	IsReady() bool

	// Block until the backend is ready or the context is cancelled.
	WaitUntilReady(ctx context.Context) error
}

// Downstream consumer of executor lifecycle decisions.
// The backend reports fatal cluster errors and executor losses here.
type Scheduler interface {
	// Report an application level error. The application cannot continue.
	Error(reason string)

	// Report that an executor has been lost, with the classified reason.
	ExecutorLost(executorID string, reason LossReason)
}

// The surrounding application process.
// Used to tear the application down when the cluster declares it dead.
type Container interface {
	// Stop the whole application.
	StopApplication()
}

// Backend statistics
type BackendStatistics struct {
	// Identifier of the running application
	ApplicationID string

	// Number of registered executors
	Executors int

	// Total number of registered executor units
	RegisteredUnits int64

	// Number of executors granted over the lifetime of the application
	GrantedExecutors int64

	// Number of executors lost over the lifetime of the application
	LostExecutors int64

	// Time the backend was started
	StartedAt time.Time
}
