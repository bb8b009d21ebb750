package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/protocol"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/spf13/afero"
)

// Exit codes reported to the supervising cluster worker. The driver maps a
// non-zero code to a process failure when it classifies the loss.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitRejected   = 11
	ExitDriverLost = 12
)

// Executor is the long-running process launched by a cluster worker on
// behalf of an application. It attaches to the driver, registers itself,
// then heartbeats until the driver tells it to stop or the stream dies.
type Executor struct {
	config    *Config
	client    protocol.DriverClient
	fs        utils.Fs
	workspace utils.Fs
	path      string
}

func NewExecutor(config *Config, client protocol.DriverClient) *Executor {
	return &Executor{
		config: config,
		client: client,
		fs:     afero.NewOsFs(),
	}
}

// Run drives registration sessions until one of them reaches a terminal
// state. Transient failures, a driver that is not listening yet included,
// are retried until the dial timeout elapses.
func (e *Executor) Run() int {
	log.Info("Starting")

	deadline := time.Now().Add(e.config.DialTimeout)

	for {
		code, err := e.session()
		if err == nil {
			log.Info("Terminating")
			return code
		}

		if time.Now().After(deadline) {
			log.Error("Unable to reach the driver:", err)
			return ExitDriverLost
		}

		log.Debug("err - driver session -", err)
		time.Sleep(time.Second)
	}
}

// session runs a single attach/register/heartbeat exchange. A non-nil error
// means the session never got past registration and may be retried; once a
// terminal exit code is known the error is nil.
func (e *Executor) session() (int, error) {
	stream, err := e.client.Attach(context.Background())
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = stream.CloseSend()
	}()

	if err := stream.Send(e.registration()); err != nil {
		return 0, err
	}

	request, err := stream.Recv()
	if err != nil {
		return 0, err
	}

	switch request.GetAction() {
	case protocol.DriverActionRegistered:
		log.Infof("new - driver session - id: %s, app: %s", e.config.ID, request.GetApplicationId())

	case protocol.DriverActionRejected:
		log.Errorf("registration rejected by the driver: %s", request.GetReason())
		return ExitRejected, nil

	default:
		return 0, fmt.Errorf("unexpected driver action %s", protocol.DriverActionName(request.GetAction()))
	}

	if err := e.prepareWorkspace(); err != nil {
		log.Error("Unable to prepare the workspace:", err)
		e.sendStopping(stream, err)
		return ExitFailure, nil
	}

	defer e.cleanWorkspace()

	return e.serve(stream), nil
}

// serve pumps driver requests and heartbeats after a successful
// registration. It only returns once the session is over.
func (e *Executor) serve(stream protocol.Driver_AttachClient) int {
	requests := make(chan *protocol.DriverRequest, 1)

	go func() {
		defer close(requests)

		for {
			request, err := stream.Recv()
			if err != nil {
				return
			}

			requests <- request
		}
	}()

	heartbeat := time.NewTicker(e.config.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-heartbeat.C:
			update := &protocol.ExecutorUpdate{
				Status: protocol.UpdateStatusHeartbeat,
			}

			if err := stream.Send(update); err != nil {
				log.Warn("Lost connection to the driver:", err)
				return ExitDriverLost
			}

		case request, ok := <-requests:
			if !ok {
				log.Warn("Lost connection to the driver")
				return ExitDriverLost
			}

			switch request.GetAction() {
			case protocol.DriverActionStop:
				log.Infof("end - executor - id: %s, reason: %s", e.config.ID, request.GetReason())
				e.sendStopping(stream, nil)
				return ExitOK

			default:
				log.Warn("Ignoring unexpected driver action:", protocol.DriverActionName(request.GetAction()))
			}
		}
	}
}

// sendStopping announces the shutdown, with the failure that caused it
// when there is one.
func (e *Executor) sendStopping(stream protocol.Driver_AttachClient, cause error) {
	update := &protocol.ExecutorUpdate{
		Status: protocol.UpdateStatusStopping,
	}

	if cause != nil {
		update.Error = &protocol.ExecutorError{Message: cause.Error()}

		var detailed utils.DetailedError
		if errors.As(cause, &detailed) {
			update.Error.Details = detailed.Details()
		}
	}

	if err := stream.Send(update); err != nil {
		log.Debug("Unable to announce the shutdown:", err)
	}
}

// registration builds the first update of an attach stream.
func (e *Executor) registration() *protocol.ExecutorUpdate {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	attributes := identityAttributes(hostname)
	keys := make([]string, 0, len(attributes))

	for key := range attributes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	registration := &protocol.ExecutorRegistration{
		ExecutorId:    e.config.ID,
		ApplicationId: e.config.AppID,
		HostPort:      hostname,
		Units:         int32(e.config.Units),
		MemoryMb:      int32(e.config.MemoryMB),
	}

	for _, key := range keys {
		registration.Attributes = append(registration.Attributes, &protocol.Attribute{
			Key:   key,
			Value: attributes[key],
		})
	}

	return &protocol.ExecutorUpdate{
		Status:       protocol.UpdateStatusRegister,
		Registration: registration,
	}
}

// identityAttributes describes the host the executor landed on. The driver
// surfaces these verbatim through its status endpoints.
func identityAttributes(hostname string) map[string]string {
	attributes := map[string]string{
		"hostname": hostname,
		"os":       runtime.GOOS,
		"arch":     runtime.GOARCH,
		"cpus":     strconv.Itoa(runtime.NumCPU()),
		"version":  protocol.Version,
	}

	if id, err := machineid.ID(); err == nil {
		attributes["machine_id"] = id
	}

	return attributes
}

// prepareWorkspace creates the scratch directory for this executor and
// scopes all further file access to it.
func (e *Executor) prepareWorkspace() error {
	if e.config.WorkDir == "" {
		return errors.New("no work directory configured")
	}

	path := filepath.Join(e.config.WorkDir, "executor-"+e.config.ID)

	if err := e.fs.RemoveAll(path); err != nil {
		return err
	}

	if err := e.fs.MkdirAll(path, 0750); err != nil {
		return err
	}

	e.workspace = afero.NewBasePathFs(e.fs, path)
	e.path = path

	log.Debug("add - workspace -", path)
	return nil
}

func (e *Executor) cleanWorkspace() {
	if e.path == "" {
		return
	}

	if err := e.fs.RemoveAll(e.path); err != nil {
		log.Debug("unable to remove the workspace:", err)
	}

	log.Debug("del - workspace -", e.path)

	e.workspace = nil
	e.path = ""
}
