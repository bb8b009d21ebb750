package backend

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/galecloud/gale/pkg/cluster"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/metrics"
	"github.com/galecloud/gale/pkg/utils"
)

// Creates the cluster client a backend attaches through.
type ClientFactory func(app *cluster.ApplicationDescription, listener cluster.Listener) (cluster.Client, error)

// Backend attached to a standalone cluster master.
// Registers the application, waits for the master's answer, tracks
// granted and lost executors and decides when enough units have
// registered for work to be released.
type StandaloneBackend struct {
	cfg       *Config
	pool      *Pool
	scheduler Scheduler
	container Container
	newClient ClientFactory

	// Trips once the master has answered, or the connection died.
	registration *utils.Latch

	// Raised before the client is torn down so that the disconnect
	// and death callbacks caused by the teardown itself are recognized
	// as expected. The order matters.
	stopping atomic.Bool

	mu     sync.Mutex
	appID  string
	client cluster.Client

	disconnects atomic.Int64

	observers []Observer
	onStop    func(*StandaloneBackend)
}

// Create a new standalone backend.
// The configuration must have been validated.
func NewStandaloneBackend(cfg *Config, scheduler Scheduler, container Container, newClient ClientFactory) *StandaloneBackend {
	b := &StandaloneBackend{
		cfg:          cfg,
		scheduler:    scheduler,
		container:    container,
		newClient:    newClient,
		registration: utils.NewLatch(),
	}
	b.pool = NewPool(scheduler, b.IsSufficient, cfg.MaxRegisteredWait)
	return b
}

// The executor pool backing this backend.
func (b *StandaloneBackend) Pool() *Pool {
	return b.pool
}

// Register an observer for lifecycle events.
func (b *StandaloneBackend) AddObserver(observer Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.observers = append(b.observers, observer)
}

// Register a callback invoked once the backend has detached from the
// cluster, with a reference to the backend.
func (b *StandaloneBackend) OnShutdown(fn func(*StandaloneBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onStop = fn
}

// Attach to the cluster and block until the master has answered.
// Returns an error only for immediate launch failures; a rejected
// registration surfaces through the Dead callback instead.
func (b *StandaloneBackend) Start() error {
	start := time.Now()

	app := b.describeApplication()
	if err := app.Validate(); err != nil {
		return err
	}

	client, err := b.newClient(app, b)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.client = client
	b.mu.Unlock()

	if err := client.Start(); err != nil {
		return err
	}

	log.Infof("new - backend - app: %s, waiting for registration", b.cfg.AppName)
	b.registration.Wait()
	metrics.RegistrationWait.Observe(time.Since(start).Seconds())

	return nil
}

// Detach from the cluster and release all resources.
// Safe to call multiple times, only the first call does anything.
func (b *StandaloneBackend) Stop() error {
	if !b.stopping.CompareAndSwap(false, true) {
		return nil
	}

	b.pool.Stop()

	b.mu.Lock()
	client := b.client
	onStop := b.onStop
	b.mu.Unlock()

	var err error
	if client != nil {
		err = client.Stop()
	}

	if onStop != nil {
		onStop(b)
	}

	log.Infof("del - backend - app: %s", b.cfg.AppName)
	return err
}

// Identifier the master assigned to the application.
// Falls back to a locally generated identifier when the master has not
// assigned one yet.
func (b *StandaloneBackend) ApplicationID() string {
	b.mu.Lock()
	appID := b.appID
	b.mu.Unlock()

	if appID != "" {
		return appID
	}

	log.Warn("Application ID is not initialized yet.")
	return b.pool.FallbackApplicationID()
}

// True once enough units have registered.
// With no configured maximum there is nothing to gate and the answer
// is always true.
func (b *StandaloneBackend) IsSufficient() bool {
	return float64(b.pool.RegisteredUnits()) >= float64(b.cfg.ExpectedUnits())*b.cfg.MinRegisteredRatio
}

// True once the backend is willing to release work.
func (b *StandaloneBackend) IsReady() bool {
	return b.pool.IsReady()
}

// Block until the backend is ready or the context is cancelled.
func (b *StandaloneBackend) WaitUntilReady(ctx context.Context) error {
	return b.pool.WaitUntilReady(ctx)
}

// Number of times the master connection was lost.
func (b *StandaloneBackend) Disconnects() int64 {
	return b.disconnects.Load()
}

// Backend statistics
func (b *StandaloneBackend) Statistics() *BackendStatistics {
	stats := b.pool.Statistics()
	stats.ApplicationID = b.ApplicationID()
	return stats
}

// Build the application description announced to the cluster.
func (b *StandaloneBackend) describeApplication() *cluster.ApplicationDescription {
	command := cluster.ExecutorCommand{
		Path: b.cfg.ExecutorPath,
		Args: []string{
			"--driver-uri", "{{DRIVER_URL}}",
			"--id", "{{EXECUTOR_ID}}",
			"--app-id", "{{APP_ID}}",
			"--units", "{{UNITS}}",
			"--memory", "{{MEMORY}}",
		},
	}

	// The driver address is ours to fill in, the per executor values
	// are expanded by the master.
	command.Args = command.Expand(map[string]string{"DRIVER_URL": b.cfg.DriverURL})

	return &cluster.ApplicationDescription{
		Name:                b.cfg.AppName,
		MaxUnits:            b.cfg.MaxUnits,
		UnitsPerExecutor:    b.cfg.UnitsPerExecutor,
		MemoryPerExecutorMB: b.cfg.MemoryPerExecutorMB,
		Command:             command,
	}
}

///////////////////////////////////////////////////////////////////////////
// Implementation of cluster.Listener
///////////////////////////////////////////////////////////////////////////

// The master accepted the application.
// The identifier is stored once and kept, reconnections deliver the
// same identifier again.
func (b *StandaloneBackend) Connected(appID string) {
	b.mu.Lock()
	if b.appID == "" {
		b.appID = appID
	}
	b.mu.Unlock()

	log.Infof("new - application - id: %s", appID)
	b.eachObserver(func(o Observer) { o.ApplicationRegistered(appID) })

	// Wakes the start up call. The identifier stored above is visible
	// to the awakened goroutine.
	b.registration.Trip()
}

// The connection to the master was lost.
// Executors keep running and the client reconnects on its own, this is
// a warning, not a failure.
func (b *StandaloneBackend) Disconnected() {
	b.registration.Trip()

	if b.stopping.Load() {
		return
	}

	b.disconnects.Add(1)
	metrics.MasterDisconnects.Inc()
	log.Warn("Disconnected from cluster master, waiting for reconnection...")
}

// The application cannot continue.
// Reported once per callback, suppressed entirely during shutdown.
func (b *StandaloneBackend) Dead(reason string) {
	b.registration.Trip()

	if b.stopping.Load() {
		log.Debugf("int - application - master died during shutdown: %s", reason)
		return
	}

	log.Errorf("err - application - cluster declared the application dead: %s", reason)
	b.eachObserver(func(o Observer) { o.ApplicationDead(reason) })

	b.scheduler.Error(reason)
	b.container.StopApplication()
}

// The master granted an executor. Informational only, the executor
// registers itself once its process is up. Duplicate delivery is
// tolerated.
func (b *StandaloneBackend) ExecutorAdded(fullID, workerID, hostPort string, units, memoryMB int) {
	log.Infof("exe - executor - granted - id: %s, worker: %s, units: %d, memory: %d MiB", fullID, workerID, units, memoryMB)

	metrics.ExecutorsGranted.Inc()
	b.eachObserver(func(o Observer) {
		o.ExecutorAdded(&ExecutorEvent{
			FullID:   fullID,
			WorkerID: workerID,
			HostPort: hostPort,
			Units:    units,
			MemoryMB: memoryMB,
		})
	})
}

// An executor is gone. The loss is classified and forwarded to the
// scheduler under the executor's stable identifier.
func (b *StandaloneBackend) ExecutorRemoved(fullID, message string, exitCode *int) {
	reason := ClassifyLoss(exitCode, message)

	// The stable identifier is the component after the worker prefix.
	// A malformed id is a contract violation by the master.
	id := strings.Split(fullID, "/")[1]

	log.Infof("del - executor - id: %s, message: %s", fullID, message)

	b.pool.RemoveExecutor(id, reason)
	b.eachObserver(func(o Observer) { o.ExecutorRemoved(id, reason) })
}

func (b *StandaloneBackend) eachObserver(fn func(Observer)) {
	b.mu.Lock()
	observers := append([]Observer{}, b.observers...)
	b.mu.Unlock()

	for _, observer := range observers {
		fn(observer)
	}
}
