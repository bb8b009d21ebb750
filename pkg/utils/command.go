package utils

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/galecloud/gale/pkg/log"
)

// Command wraps an external process. The process is placed in its own
// process group so that it can be terminated together with any children
// it spawns. Stderr is captured for failure reports.
type Command struct {
	cmd    *exec.Cmd
	output bytes.Buffer
}

func NewCommand(args ...string) *Command {
	c := &Command{}
	c.cmd = exec.Command(args[0], args[1:]...)
	c.cmd.Stdout = os.Stdout
	c.cmd.Stderr = io.MultiWriter(os.Stderr, &c.output)
	c.cmd.SysProcAttr = procAttr()
	return c
}

func (c *Command) SetDir(dir string) {
	c.cmd.Dir = dir
}

// Add environment variables on top of the current environment.
func (c *Command) SetEnv(env map[string]string) {
	c.cmd.Env = os.Environ()
	for key, value := range env {
		c.cmd.Env = append(c.cmd.Env, key+"="+value)
	}
}

func (c *Command) Args() []string {
	return c.cmd.Args
}

func (c *Command) Start() error {
	log.Debug("Running", strings.Join(c.cmd.Args, " "))
	return c.cmd.Start()
}

// Wait for the process to terminate. On failure the returned error
// carries the captured stderr output as details.
func (c *Command) Wait() error {
	err := c.cmd.Wait()
	if err != nil {
		return NewDetailedError(err, c.output.String())
	}
	return nil
}

// Exit code of the terminated process, or nil when unknown
// (still running, or killed by a signal rather than exiting).
func (c *Command) ExitCode() *int {
	state := c.cmd.ProcessState
	if state == nil || !state.Exited() {
		return nil
	}
	code := state.ExitCode()
	return &code
}

func (c *Command) Pid() int {
	return c.cmd.Process.Pid
}

func (c *Command) Process() *os.Process {
	return c.cmd.Process
}

func (c *Command) Interrupt() error {
	return c.cmd.Process.Signal(os.Interrupt)
}

// The captured stderr output.
func (c *Command) Output() string {
	return c.output.String()
}
