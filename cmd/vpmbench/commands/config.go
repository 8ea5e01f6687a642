// config.go: file and environment configuration for the vpmbench command
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds the file-level defaults; every field can be overridden by a
// command-line flag.
type Config struct {
	Data      string   `mapstructure:"data"`
	Extractor string   `mapstructure:"extractor"`
	Plugins   string   `mapstructure:"plugins"`
	Select    []string `mapstructure:"select"`
	Workers   int      `mapstructure:"workers"`
	Merge     string   `mapstructure:"merge"`
	Missing   string   `mapstructure:"missing"`
	Verbose   bool     `mapstructure:"verbose"`
}

// LoadConfig reads the configuration file at path, or .vpmbench.yaml in
// the working directory when path is empty. A missing default file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".vpmbench")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VPMBENCH")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
