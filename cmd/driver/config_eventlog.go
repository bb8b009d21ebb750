package main

import (
	"fmt"

	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/spf13/afero"
)

type EventLogConfig struct {
	// Maximum total size of the journal directory.
	// When the size is exceeded, the oldest journals are removed.
	MaxSize_ string `mapstructure:"size"`
	// Storage type: "memory" or "disk"
	StorageType string `mapstructure:"storage"`
	// Path to store journal files (for disk storage)
	Path string `mapstructure:"path"`
}

func (c *EventLogConfig) MaxSize() int64 {
	size, _ := utils.ParseSize(c.MaxSize_)
	return size
}

func (c *EventLogConfig) CreateFs() (utils.Fs, error) {
	switch c.StorageType {
	case "disk":
		if c.Path == "" {
			return nil, fmt.Errorf("no path configured for journal disk storage")
		}

		os := afero.NewOsFs()
		if err := os.MkdirAll(c.Path, 0777); err != nil {
			return nil, err
		}

		fs := afero.NewBasePathFs(os, c.Path)

		log.Info("Journals stored in", c.Path)
		return fs, nil

	case "", "memory":
		log.Info("Journals stored in memory")
		return afero.NewMemMapFs(), nil

	default:
		return nil, fmt.Errorf("invalid journal storage type configured: %s", c.StorageType)
	}
}

func (c *EventLogConfig) SetDefaults() {
	if c.StorageType == "" {
		c.StorageType = "memory"
	}
	if c.MaxSize_ == "" {
		c.MaxSize_ = "1GiB"
	}
}

func (c *EventLogConfig) LogValues() {
	log.Infof("  Journal configuration:")
	log.Infof("    storage = %s", c.StorageType)
	log.Infof("    size = %d", c.MaxSize())
	if c.StorageType == "disk" {
		log.Infof("    path = %s", c.Path)
	}
}
