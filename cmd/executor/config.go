package main

import (
	"github.com/galecloud/gale/pkg/executor"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/spf13/viper"
)

func LoadConfig() (*executor.Config, error) {
	config := &executor.Config{}

	err := utils.UnmarshalConfig(*viper.GetViper(), config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
