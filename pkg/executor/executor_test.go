package executor

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/galecloud/gale/pkg/protocol"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type fakeDriver struct {
	protocol.UnimplementedDriverServer

	reject     bool
	rejectWith string
	closeOnAck bool
	stopAfter  int

	mu            sync.Mutex
	registrations []*protocol.ExecutorRegistration
	heartbeats    int
	stopping      int
	failures      []string
}

func (d *fakeDriver) Attach(stream protocol.Driver_AttachServer) error {
	update, err := stream.Recv()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.registrations = append(d.registrations, update.GetRegistration())
	d.mu.Unlock()

	if d.reject {
		return stream.Send(&protocol.DriverRequest{
			Action: protocol.DriverActionRejected,
			Reason: d.rejectWith,
		})
	}

	if err := stream.Send(&protocol.DriverRequest{
		Action:        protocol.DriverActionRegistered,
		ApplicationId: "app-1",
	}); err != nil {
		return err
	}

	if d.closeOnAck {
		return nil
	}

	for {
		update, err := stream.Recv()
		if err != nil {
			return err
		}

		switch update.GetStatus() {
		case protocol.UpdateStatusHeartbeat:
			d.mu.Lock()
			d.heartbeats++
			beats := d.heartbeats
			d.mu.Unlock()

			if d.stopAfter > 0 && beats >= d.stopAfter {
				if err := stream.Send(&protocol.DriverRequest{
					Action: protocol.DriverActionStop,
					Reason: "test shutdown",
				}); err != nil {
					return err
				}
			}

		case protocol.UpdateStatusStopping:
			d.mu.Lock()
			d.stopping++
			if failure := update.GetError(); failure != nil {
				d.failures = append(d.failures, failure.GetMessage())
			}
			d.mu.Unlock()
			return nil
		}
	}
}

func (d *fakeDriver) regs() []*protocol.ExecutorRegistration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*protocol.ExecutorRegistration{}, d.registrations...)
}

func (d *fakeDriver) beats() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.heartbeats
}

func (d *fakeDriver) stops() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopping
}

func (d *fakeDriver) failed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.failures...)
}

func newDriverClient(t *testing.T, driver *fakeDriver) protocol.DriverClient {
	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	protocol.RegisterDriverServer(server, driver)

	go func() {
		_ = server.Serve(listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
	})

	return protocol.NewDriverClient(conn)
}

func newTestConfig() *Config {
	return &Config{
		DriverUri:         "tcp://localhost:9999",
		ID:                "0",
		Units:             4,
		MemoryMB:          1024,
		HeartbeatInterval: 20 * time.Millisecond,
		DialTimeout:       200 * time.Millisecond,
		WorkDir:           "/work",
	}
}

func newTestExecutor(t *testing.T, driver *fakeDriver) *Executor {
	executor := NewExecutor(newTestConfig(), newDriverClient(t, driver))
	executor.fs = afero.NewMemMapFs()
	return executor
}

func TestExecutorRegistersAndStops(t *testing.T) {
	driver := &fakeDriver{stopAfter: 1}
	executor := newTestExecutor(t, driver)

	assert.Equal(t, ExitOK, executor.Run())

	registrations := driver.regs()
	require.Len(t, registrations, 1)

	registration := registrations[0]
	assert.Equal(t, "0", registration.GetExecutorId())
	assert.Equal(t, int32(4), registration.GetUnits())
	assert.Equal(t, int32(1024), registration.GetMemoryMb())
	assert.NotEmpty(t, registration.GetHostPort())

	attributes := map[string]string{}
	for _, attribute := range registration.GetAttributes() {
		attributes[attribute.GetKey()] = attribute.GetValue()
	}

	assert.Contains(t, attributes, "hostname")
	assert.Contains(t, attributes, "os")
	assert.Contains(t, attributes, "arch")
	assert.Contains(t, attributes, "cpus")
	assert.Equal(t, protocol.Version, attributes["version"])

	require.Eventually(t, func() bool {
		return driver.stops() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestExecutorAnnouncesApplication(t *testing.T) {
	driver := &fakeDriver{stopAfter: 1}
	executor := newTestExecutor(t, driver)
	executor.config.AppID = "app-1"

	assert.Equal(t, ExitOK, executor.Run())

	registrations := driver.regs()
	require.Len(t, registrations, 1)
	assert.Equal(t, "app-1", registrations[0].GetApplicationId())
}

func TestExecutorRejected(t *testing.T) {
	driver := &fakeDriver{reject: true, rejectWith: "duplicate executor id: 0"}
	executor := newTestExecutor(t, driver)

	assert.Equal(t, ExitRejected, executor.Run())
	assert.Equal(t, 0, driver.stops())
}

func TestExecutorLostDriver(t *testing.T) {
	driver := &fakeDriver{closeOnAck: true}
	executor := newTestExecutor(t, driver)

	assert.Equal(t, ExitDriverLost, executor.Run())
	assert.Len(t, driver.regs(), 1, "a lost session must not be retried")
}

func TestExecutorHeartbeats(t *testing.T) {
	driver := &fakeDriver{stopAfter: 3}
	executor := newTestExecutor(t, driver)

	assert.Equal(t, ExitOK, executor.Run())
	assert.GreaterOrEqual(t, driver.beats(), 3)
}

func TestExecutorRetriesUntilDeadline(t *testing.T) {
	config := newTestConfig()
	config.DriverUri = "tcp://localhost:1"
	config.DialTimeout = 50 * time.Millisecond

	client, err := NewExecutorClient(config)
	require.NoError(t, err)

	executor := NewExecutor(config, client)
	executor.fs = afero.NewMemMapFs()

	started := time.Now()
	assert.Equal(t, ExitDriverLost, executor.Run())
	assert.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond)
}

func TestExecutorWorkspaceLifecycle(t *testing.T) {
	driver := &fakeDriver{stopAfter: 1}
	executor := newTestExecutor(t, driver)

	assert.Equal(t, ExitOK, executor.Run())

	exists, err := afero.DirExists(executor.fs, "/work/executor-0")
	require.NoError(t, err)
	assert.False(t, exists, "the workspace must be removed on shutdown")
}

func TestExecutorAnnouncesWorkspaceFailure(t *testing.T) {
	driver := &fakeDriver{}
	executor := newTestExecutor(t, driver)
	executor.config.WorkDir = ""

	assert.Equal(t, ExitFailure, executor.Run())

	require.Eventually(t, func() bool {
		return len(driver.failed()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, driver.failed()[0], "no work directory configured")
}
