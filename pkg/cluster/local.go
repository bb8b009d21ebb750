package cluster

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
)

// Local master configuration.
type LocalConfig struct {
	// Number of synthetic workers.
	Workers int `mapstructure:"workers"`

	// Units each worker offers.
	UnitsPerWorker int `mapstructure:"units_per_worker"`

	// Memory each worker offers, in MiB.
	MemoryPerWorkerMB int `mapstructure:"memory_per_worker_mb"`
}

func (c *LocalConfig) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = 2
	}
	if c.UnitsPerWorker == 0 {
		c.UnitsPerWorker = 4
	}
	if c.MemoryPerWorkerMB == 0 {
		c.MemoryPerWorkerMB = 4096
	}
}

// Checks if the local master configuration is valid.
func (c *LocalConfig) Validate() error {
	if c.Workers <= 0 {
		return errors.New("The worker count must be greater than zero")
	}

	if c.UnitsPerWorker <= 0 {
		return errors.New("The units per worker must be greater than zero")
	}

	if c.MemoryPerWorkerMB <= 0 {
		return errors.New("The worker memory must be greater than zero")
	}

	return nil
}

func (c *LocalConfig) LogValues() {
	log.Info("  Local cluster configuration:")
	log.Infof("    workers = %d", c.Workers)
	log.Infof("    units_per_worker = %d", c.UnitsPerWorker)
	log.Infof("    memory_per_worker_mb = %d", c.MemoryPerWorkerMB)
}

// Handle to a launched executor process.
type Process interface {
	// Block until the process has terminated.
	Wait() error

	// Exit code of the terminated process, nil when it was killed by
	// a signal or has not exited.
	ExitCode() *int

	// Kill the process.
	Kill() error
}

// Launches executor processes on behalf of the local master.
type Launcher interface {
	Launch(path string, args []string, env map[string]string, dir string) (Process, error)
}

// Launcher spawning real processes in their own process group.
type osLauncher struct{}

func (osLauncher) Launch(path string, args []string, env map[string]string, dir string) (Process, error) {
	cmd := utils.NewCommand(append([]string{path}, args...)...)
	cmd.SetEnv(env)
	if dir != "" {
		cmd.SetDir(dir)
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}

// In-process cluster master for development and tests.
// Grants executors out of a fixed set of synthetic workers and launches
// a real executor process for every grant. Lost executors are not
// relaunched.
type LocalMaster struct {
	mu sync.Mutex

	cfg      *LocalConfig
	app      *ApplicationDescription
	listener Listener
	launcher Launcher

	appID   string
	started bool
	stopped bool

	// App-wide executor numbering
	nextExecutor int

	grantedUnits int
	workers      []*localWorker
	executors    map[string]*localExecutor

	wg sync.WaitGroup
}

type localWorker struct {
	id           string
	freeUnits    int
	freeMemoryMB int
}

type localExecutor struct {
	fullID  string
	worker  *localWorker
	process Process
}

type grant struct {
	fullID string
	number int
	worker *localWorker
}

var appCounter atomic.Int64

func nextAppID() string {
	return fmt.Sprintf("app-%s-%04d", time.Now().Format("20060102150405"), appCounter.Add(1))
}

// Create a new local master serving the given application.
func NewLocalMaster(cfg *LocalConfig, app *ApplicationDescription, listener Listener) *LocalMaster {
	return &LocalMaster{
		cfg:       cfg,
		app:       app,
		listener:  listener,
		launcher:  osLauncher{},
		executors: map[string]*localExecutor{},
	}
}

// Replace the process launcher. Must be called before Start.
func (m *LocalMaster) SetLauncher(launcher Launcher) {
	m.launcher = launcher
}

// Register the application and start granting executors.
// The registration is acknowledged from the master's own goroutine,
// like a remote master would.
func (m *LocalMaster) Start() error {
	if err := m.app.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return errors.New("The master has already been started")
	}
	m.started = true
	m.appID = nextAppID()

	for i := 0; i < m.cfg.Workers; i++ {
		m.workers = append(m.workers, &localWorker{
			id:           fmt.Sprintf("worker-%d", i),
			freeUnits:    m.cfg.UnitsPerWorker,
			freeMemoryMB: m.cfg.MemoryPerWorkerMB,
		})
	}
	m.mu.Unlock()

	log.Infof("new - application - id: %s, name: %s, workers: %d", m.appID, m.app.Name, m.cfg.Workers)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.listener.Connected(m.appID)
		m.grantExecutors()
	}()

	return nil
}

// Identifier assigned to the application.
func (m *LocalMaster) ApplicationID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.appID
}

// Grant executors until the unit cap or the cluster capacity is reached.
func (m *LocalMaster) grantExecutors() {
	for {
		g := m.reserve()
		if g == nil {
			return
		}
		m.launch(g)
	}
}

// Reserve capacity for one executor.
// Picks the worker with the most free units to spread executors.
func (m *LocalMaster) reserve() *grant {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return nil
	}

	if m.app.MaxUnits != nil && m.grantedUnits+m.app.UnitsPerExecutor > *m.app.MaxUnits {
		return nil
	}

	var worker *localWorker
	for _, w := range m.workers {
		if w.freeUnits < m.app.UnitsPerExecutor || w.freeMemoryMB < m.app.MemoryPerExecutorMB {
			continue
		}
		if worker == nil || w.freeUnits > worker.freeUnits {
			worker = w
		}
	}
	if worker == nil {
		return nil
	}

	worker.freeUnits -= m.app.UnitsPerExecutor
	worker.freeMemoryMB -= m.app.MemoryPerExecutorMB
	m.grantedUnits += m.app.UnitsPerExecutor

	number := m.nextExecutor
	m.nextExecutor++

	return &grant{
		fullID: fmt.Sprintf("%s/%d", worker.id, number),
		number: number,
		worker: worker,
	}
}

// Return reserved capacity after a failed launch.
func (m *LocalMaster) release(g *grant) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g.worker.freeUnits += m.app.UnitsPerExecutor
	g.worker.freeMemoryMB += m.app.MemoryPerExecutorMB
	m.grantedUnits -= m.app.UnitsPerExecutor
}

// Launch an executor process for a reserved grant.
func (m *LocalMaster) launch(g *grant) {
	vars := map[string]string{
		"EXECUTOR_ID": strconv.Itoa(g.number),
		"APP_ID":      m.appID,
		"UNITS":       strconv.Itoa(m.app.UnitsPerExecutor),
		"MEMORY":      strconv.Itoa(m.app.MemoryPerExecutorMB),
	}

	args := m.app.Command.Expand(vars)
	process, err := m.launcher.Launch(m.app.Command.Path, args, m.app.Command.Environment, m.app.Command.Dir)
	if err != nil {
		log.Errorf("err - executor - launch failed: %v - id: %s", err, g.fullID)
		m.release(g)
		return
	}

	exec := &localExecutor{
		fullID:  g.fullID,
		worker:  g.worker,
		process: process,
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		process.Kill()
		return
	}
	m.executors[g.fullID] = exec
	m.mu.Unlock()

	log.Infof("exe - executor - id: %s, worker: %s, units: %d", g.fullID, g.worker.id, m.app.UnitsPerExecutor)
	m.listener.ExecutorAdded(g.fullID, g.worker.id, "localhost", m.app.UnitsPerExecutor, m.app.MemoryPerExecutorMB)

	m.wg.Add(1)
	go m.watch(exec)
}

// Wait for an executor process to terminate and report the removal.
func (m *LocalMaster) watch(exec *localExecutor) {
	defer m.wg.Done()

	err := exec.process.Wait()
	code := exec.process.ExitCode()

	m.mu.Lock()
	delete(m.executors, exec.fullID)
	exec.worker.freeUnits += m.app.UnitsPerExecutor
	exec.worker.freeMemoryMB += m.app.MemoryPerExecutorMB
	m.grantedUnits -= m.app.UnitsPerExecutor
	stopped := m.stopped
	m.mu.Unlock()

	if stopped {
		return
	}

	message := "executor process exited"
	if err != nil {
		message = err.Error()
	}

	m.listener.ExecutorRemoved(exec.fullID, message, code)
}

// Stop the master. Remaining executor processes are killed and no
// further callbacks are delivered.
func (m *LocalMaster) Stop() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true

	processes := make([]Process, 0, len(m.executors))
	for _, exec := range m.executors {
		processes = append(processes, exec.process)
	}
	m.mu.Unlock()

	log.Infof("del - application - id: %s", m.appID)

	for _, process := range processes {
		process.Kill()
	}

	// Drain the exit watchers.
	m.wg.Wait()
	return nil
}
