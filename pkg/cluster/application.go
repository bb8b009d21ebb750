package cluster

import (
	"errors"
	"strings"
)

// Command used to launch an executor process.
// Placeholders of the form {{NAME}} in the arguments are expanded per
// executor by the cluster master: {{EXECUTOR_ID}}, {{APP_ID}},
// {{DRIVER_URL}}, {{UNITS}} and {{MEMORY}}.
type ExecutorCommand struct {
	// Program to launch.
	Path string

	// Program arguments.
	Args []string

	// Extra environment variables.
	Environment map[string]string

	// Working directory, empty for the inherited one.
	Dir string
}

// Expand substitutes placeholders in the command arguments.
func (c *ExecutorCommand) Expand(vars map[string]string) []string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		for name, value := range vars {
			arg = strings.ReplaceAll(arg, "{{"+name+"}}", value)
		}
		args[i] = arg
	}
	return args
}

// Everything a master needs to run an application.
type ApplicationDescription struct {
	// Name of the application.
	Name string

	// Maximum number of units to acquire, nil for no cap.
	MaxUnits *int

	// Units provided by each executor.
	UnitsPerExecutor int

	// Memory granted to each executor, in MiB.
	MemoryPerExecutorMB int

	// Command used to launch executors.
	Command ExecutorCommand
}

// Checks if the application description is valid.
func (d *ApplicationDescription) Validate() error {
	if d.Name == "" {
		return errors.New("An application name is required")
	}

	if d.UnitsPerExecutor <= 0 {
		return errors.New("The units per executor must be greater than zero")
	}

	if d.MemoryPerExecutorMB <= 0 {
		return errors.New("The executor memory must be greater than zero")
	}

	if d.MaxUnits != nil && *d.MaxUnits < d.UnitsPerExecutor {
		return errors.New("The maximum units must be at least the units per executor")
	}

	if d.Command.Path == "" {
		return errors.New("An executor command is required")
	}

	return nil
}
