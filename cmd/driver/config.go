package main

import (
	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/cluster"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
)

type Config struct {
	utils.GRPCOptions `mapstructure:"grpc"`

	// Addresses to listen on for gRPC.
	ListenGrpc []string `mapstructure:"listen_grpc"`
	// Addresses to listen on for HTTP.
	ListenHttp []string `mapstructure:"listen_http"`
	// Backend configuration.
	Backend backend.Config `mapstructure:"backend"`
	// Local cluster master configuration.
	Cluster cluster.LocalConfig `mapstructure:"cluster"`
	// Event journal configuration.
	EventLog EventLogConfig `mapstructure:"eventlog"`
	// History server configuration.
	History *HistoryConfig `mapstructure:"history"`
}

func (c *Config) GetHistoryUri() string {
	if c.History != nil {
		return c.History.GetHistoryUri()
	}
	return ""
}

func (c *Config) SetDefaults() {
	c.Backend.SetDefaults()
	c.Cluster.SetDefaults()
	c.EventLog.SetDefaults()
}

func (c *Config) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return err
	}

	return c.Cluster.Validate()
}

func (c *Config) Log() {
	log.Info("Driver configuration:")
	log.Infof("  gRPC listen addresses: %v", config.ListenGrpc)
	log.Infof("  HTTP listen addresses: %v", config.ListenHttp)
	if uri := c.GetHistoryUri(); uri != "" {
		log.Infof("  History server: %s", uri)
	}
	config.Backend.LogValues()
	config.Cluster.LogValues()
	config.EventLog.LogValues()
	config.GRPCOptions.LogValues()
}
