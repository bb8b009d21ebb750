package backend

import (
	"errors"
	"time"

	"github.com/galecloud/gale/pkg/log"
)

type Config struct {
	// Name of the application announced to the cluster.
	AppName string `mapstructure:"app_name"`

	// Maximum number of executor units to acquire.
	// When nil the application takes whatever the cluster grants and
	// the sufficiency predicate is trivially true.
	MaxUnits *int `mapstructure:"max_units"`

	// Number of units provided by each executor.
	UnitsPerExecutor int `mapstructure:"units_per_executor"`

	// Memory granted to each executor, in MiB.
	MemoryPerExecutorMB int `mapstructure:"memory_per_executor_mb"`

	// Fraction of the maximum units that must have registered before
	// work is released. Must be in [0, 1].
	MinRegisteredRatio float64 `mapstructure:"min_registered_ratio"`

	// How long to wait for registrations before releasing work anyway.
	MaxRegisteredWait time.Duration `mapstructure:"max_registered_wait"`

	// Executor binary launched on each grant.
	ExecutorPath string `mapstructure:"executor_path"`

	// Address executors use to reach this driver.
	DriverURL string `mapstructure:"driver_url"`
}

// Number of units the sufficiency predicate measures against.
// Zero when no maximum is configured.
func (c *Config) ExpectedUnits() int {
	if c.MaxUnits == nil {
		return 0
	}
	return *c.MaxUnits
}

func (c *Config) SetDefaults() {
	if c.AppName == "" {
		c.AppName = "gale"
	}
	if c.UnitsPerExecutor == 0 {
		c.UnitsPerExecutor = 1
	}
	if c.MemoryPerExecutorMB == 0 {
		c.MemoryPerExecutorMB = 1024
	}
	if c.MinRegisteredRatio == 0 {
		c.MinRegisteredRatio = 0.8
	}
	if c.MaxRegisteredWait == 0 {
		c.MaxRegisteredWait = 30 * time.Second
	}
	if c.ExecutorPath == "" {
		c.ExecutorPath = "gale-executor"
	}
	if c.DriverURL == "" {
		c.DriverURL = "tcp://localhost:9090"
	}
}

// Checks if the backend configuration is valid.
func (c *Config) Validate() error {
	if c.AppName == "" {
		return errors.New("An application name is required")
	}

	// The ratio is enforced here at startup, never by the predicate.
	if c.MinRegisteredRatio < 0 || c.MinRegisteredRatio > 1 {
		return errors.New("The minimum registered ratio must be between 0 and 1")
	}

	if c.UnitsPerExecutor <= 0 {
		return errors.New("The units per executor must be greater than zero")
	}

	if c.MemoryPerExecutorMB <= 0 {
		return errors.New("The executor memory must be greater than zero")
	}

	if c.MaxUnits != nil && *c.MaxUnits < c.UnitsPerExecutor {
		return errors.New("The maximum units must be at least the units per executor")
	}

	if c.MaxRegisteredWait < 0 {
		return errors.New("The maximum registration wait must not be negative")
	}

	if c.ExecutorPath == "" {
		return errors.New("An executor binary path is required")
	}

	if c.DriverURL == "" {
		return errors.New("A driver URL is required")
	}

	return nil
}

func (c *Config) LogValues() {
	log.Info("Backend configuration:")
	log.Infof("  app_name = %s", c.AppName)
	if c.MaxUnits != nil {
		log.Infof("  max_units = %d", *c.MaxUnits)
	} else {
		log.Info("  max_units = unlimited")
	}
	log.Infof("  units_per_executor = %d", c.UnitsPerExecutor)
	log.Infof("  memory_per_executor_mb = %d", c.MemoryPerExecutorMB)
	log.Infof("  min_registered_ratio = %.2f", c.MinRegisteredRatio)
	log.Infof("  max_registered_wait = %s", c.MaxRegisteredWait)
	log.Infof("  executor_path = %s", c.ExecutorPath)
	log.Infof("  driver_url = %s", c.DriverURL)
}
