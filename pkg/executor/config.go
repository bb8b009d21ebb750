package executor

import (
	"errors"
	"net/url"
	"time"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
)

type Config struct {
	Grpc utils.GRPCOptions `mapstructure:"grpc"`

	// gRPC URI of the driver service.
	DriverUri string `mapstructure:"driver_uri"`

	// Stable executor identifier assigned by the cluster master.
	ID string `mapstructure:"id"`

	// Application to register with. May be empty, in which case the
	// driver accepts the executor into its current application.
	AppID string `mapstructure:"app_id"`

	// Number of scheduling units offered by this executor.
	Units int `mapstructure:"units"`

	// Memory offered by this executor, in megabytes.
	MemoryMB int `mapstructure:"memory"`

	// Interval between heartbeats to the driver.
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`

	// How long to keep retrying the initial attach.
	DialTimeout time.Duration `mapstructure:"dial_timeout"`

	// Directory in which the scratch workspace is created.
	WorkDir string `mapstructure:"work_dir"`
}

func (c *Config) SetDefaults() {
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = 10 * time.Second
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 30 * time.Second
	}
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
}

// Checks if the executor configuration is valid.
func (c *Config) Validate() error {
	// Validate the driver URI.
	if c.DriverUri == "" {
		return errors.New("A driver URI is required")
	}

	// Validate the driver URI is a valid URL.
	if _, err := url.Parse(c.DriverUri); err != nil {
		return errors.New("The driver URI is not a valid URI")
	}

	// Validate the executor identity.
	if c.ID == "" {
		return errors.New("An executor identifier is required")
	}

	// Validate the offered capacity.
	if c.Units <= 0 {
		return errors.New("The unit count must be greater than zero")
	}
	if c.MemoryMB <= 0 {
		return errors.New("The memory size must be greater than zero")
	}

	if c.HeartbeatInterval <= 0 {
		return errors.New("The heartbeat interval must be greater than zero")
	}

	return nil
}

func (c *Config) Log() {
	log.Info("Executor configuration:")
	log.Infof("  driver_uri = %s", c.DriverUri)
	log.Infof("  id = %s", c.ID)
	log.Infof("  app_id = %s", c.AppID)
	log.Infof("  units = %d", c.Units)
	log.Infof("  memory = %d", c.MemoryMB)
	log.Infof("  heartbeat_interval = %s", c.HeartbeatInterval)
	log.Infof("  work_dir = %s", c.WorkDir)
	c.Grpc.LogValues()
}
