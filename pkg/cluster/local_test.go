package cluster

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	once     sync.Once
	done     chan struct{}
	exitCode *int
	waitErr  error
}

func (p *fakeProcess) Wait() error {
	<-p.done
	return p.waitErr
}

func (p *fakeProcess) ExitCode() *int {
	return p.exitCode
}

func (p *fakeProcess) Kill() error {
	// A kill is a signal death, no exit code.
	p.exit(nil, errors.New("signal: killed"))
	return nil
}

func (p *fakeProcess) exit(code *int, err error) {
	p.once.Do(func() {
		p.exitCode = code
		p.waitErr = err
		close(p.done)
	})
}

type fakeLaunch struct {
	path    string
	args    []string
	process *fakeProcess
}

type fakeLauncher struct {
	mu       sync.Mutex
	launches []*fakeLaunch
}

func (l *fakeLauncher) Launch(path string, args []string, env map[string]string, dir string) (Process, error) {
	process := &fakeProcess{done: make(chan struct{})}

	l.mu.Lock()
	l.launches = append(l.launches, &fakeLaunch{path: path, args: args, process: process})
	l.mu.Unlock()

	return process, nil
}

func (l *fakeLauncher) launch(i int) *fakeLaunch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launches[i]
}

type removal struct {
	fullID   string
	message  string
	exitCode *int
}

type listenerRecorder struct {
	mu        sync.Mutex
	connected []string
	dead      []string
	added     []string
	removed   []removal
}

func (r *listenerRecorder) Connected(appID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = append(r.connected, appID)
}

func (r *listenerRecorder) Disconnected() {}

func (r *listenerRecorder) Dead(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dead = append(r.dead, reason)
}

func (r *listenerRecorder) ExecutorAdded(fullID, workerID, hostPort string, units, memoryMB int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, fullID)
}

func (r *listenerRecorder) ExecutorRemoved(fullID, message string, exitCode *int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, removal{fullID: fullID, message: message, exitCode: exitCode})
}

func (r *listenerRecorder) connectedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.connected...)
}

func (r *listenerRecorder) addedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.added)
}

func (r *listenerRecorder) removals() []removal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]removal{}, r.removed...)
}

func newTestApp(maxUnits *int) *ApplicationDescription {
	return &ApplicationDescription{
		Name:                "test",
		MaxUnits:            maxUnits,
		UnitsPerExecutor:    2,
		MemoryPerExecutorMB: 512,
		Command: ExecutorCommand{
			Path: "gale-executor",
			Args: []string{"--id", "{{EXECUTOR_ID}}", "--app-id", "{{APP_ID}}"},
		},
	}
}

func TestLocalMasterGrantsExecutors(t *testing.T) {
	cfg := &LocalConfig{Workers: 2, UnitsPerWorker: 4, MemoryPerWorkerMB: 4096}
	recorder := &listenerRecorder{}
	launcher := &fakeLauncher{}

	master := NewLocalMaster(cfg, newTestApp(nil), recorder)
	master.SetLauncher(launcher)
	require.NoError(t, master.Start())
	defer master.Stop()

	// 2 workers of 4 units each, 2 units per executor
	require.Eventually(t, func() bool { return recorder.addedCount() == 4 }, 5*time.Second, 10*time.Millisecond)

	require.Len(t, recorder.connectedIDs(), 1)
	assert.Regexp(t, `^app-\d{14}-\d{4}$`, recorder.connectedIDs()[0])
	assert.Equal(t, recorder.connectedIDs()[0], master.ApplicationID())
}

func TestLocalMasterHonorsUnitCap(t *testing.T) {
	cfg := &LocalConfig{Workers: 2, UnitsPerWorker: 4, MemoryPerWorkerMB: 4096}
	recorder := &listenerRecorder{}
	launcher := &fakeLauncher{}

	max := 4
	master := NewLocalMaster(cfg, newTestApp(&max), recorder)
	master.SetLauncher(launcher)
	require.NoError(t, master.Start())
	defer master.Stop()

	require.Eventually(t, func() bool { return recorder.addedCount() == 2 }, 5*time.Second, 10*time.Millisecond)

	// The cap holds, no further grants arrive.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, recorder.addedCount())
}

func TestLocalMasterExpandsCommandArgs(t *testing.T) {
	cfg := &LocalConfig{Workers: 1, UnitsPerWorker: 2, MemoryPerWorkerMB: 4096}
	recorder := &listenerRecorder{}
	launcher := &fakeLauncher{}

	master := NewLocalMaster(cfg, newTestApp(nil), recorder)
	master.SetLauncher(launcher)
	require.NoError(t, master.Start())
	defer master.Stop()

	require.Eventually(t, func() bool { return recorder.addedCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	launch := launcher.launch(0)
	assert.Equal(t, "gale-executor", launch.path)
	assert.Equal(t, []string{"--id", "0", "--app-id", master.ApplicationID()}, launch.args)
}

func TestLocalMasterReportsProcessExit(t *testing.T) {
	cfg := &LocalConfig{Workers: 1, UnitsPerWorker: 2, MemoryPerWorkerMB: 4096}
	recorder := &listenerRecorder{}
	launcher := &fakeLauncher{}

	master := NewLocalMaster(cfg, newTestApp(nil), recorder)
	master.SetLauncher(launcher)
	require.NoError(t, master.Start())
	defer master.Stop()

	require.Eventually(t, func() bool { return recorder.addedCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	code := 137
	launcher.launch(0).process.exit(&code, errors.New("exit status 137"))

	require.Eventually(t, func() bool { return len(recorder.removals()) == 1 }, 5*time.Second, 10*time.Millisecond)

	removed := recorder.removals()[0]
	assert.Equal(t, "worker-0/0", removed.fullID)
	assert.Equal(t, "exit status 137", removed.message)
	require.NotNil(t, removed.exitCode)
	assert.Equal(t, 137, *removed.exitCode)
}

func TestLocalMasterReportsSignalDeath(t *testing.T) {
	cfg := &LocalConfig{Workers: 1, UnitsPerWorker: 2, MemoryPerWorkerMB: 4096}
	recorder := &listenerRecorder{}
	launcher := &fakeLauncher{}

	master := NewLocalMaster(cfg, newTestApp(nil), recorder)
	master.SetLauncher(launcher)
	require.NoError(t, master.Start())
	defer master.Stop()

	require.Eventually(t, func() bool { return recorder.addedCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	launcher.launch(0).process.exit(nil, errors.New("signal: killed"))

	require.Eventually(t, func() bool { return len(recorder.removals()) == 1 }, 5*time.Second, 10*time.Millisecond)

	removed := recorder.removals()[0]
	assert.Equal(t, "signal: killed", removed.message)
	assert.Nil(t, removed.exitCode)
}

func TestLocalMasterStopSuppressesCallbacks(t *testing.T) {
	cfg := &LocalConfig{Workers: 2, UnitsPerWorker: 4, MemoryPerWorkerMB: 4096}
	recorder := &listenerRecorder{}
	launcher := &fakeLauncher{}

	master := NewLocalMaster(cfg, newTestApp(nil), recorder)
	master.SetLauncher(launcher)
	require.NoError(t, master.Start())

	require.Eventually(t, func() bool { return recorder.addedCount() == 4 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, master.Stop())
	require.NoError(t, master.Stop())

	// The kills tear the processes down, but the teardown is not
	// reported as executor loss.
	assert.Empty(t, recorder.removals())
}

func TestExecutorCommandExpand(t *testing.T) {
	command := ExecutorCommand{
		Path: "gale-executor",
		Args: []string{"--driver-uri", "{{DRIVER_URL}}", "--units", "{{UNITS}}", "--verbose"},
	}

	args := command.Expand(map[string]string{
		"DRIVER_URL": "tcp://localhost:9090",
		"UNITS":      "4",
	})

	assert.Equal(t, []string{"--driver-uri", "tcp://localhost:9090", "--units", "4", "--verbose"}, args)
}

func TestApplicationDescriptionValidate(t *testing.T) {
	app := newTestApp(nil)
	assert.NoError(t, app.Validate())

	app.Name = ""
	assert.Error(t, app.Validate())

	app = newTestApp(nil)
	app.UnitsPerExecutor = 0
	assert.Error(t, app.Validate())

	app = newTestApp(nil)
	app.Command.Path = ""
	assert.Error(t, app.Validate())

	small := 1
	app = newTestApp(&small)
	assert.Error(t, app.Validate())
}
