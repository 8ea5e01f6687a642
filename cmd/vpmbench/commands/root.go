// root.go: vpmbench root command wiring
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IDEA-PRIO/VPMBench"
)

var appConfig Config

// NewRootCommand builds the vpmbench command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "vpmbench",
		Short:         "Benchmark variant pathogenicity prediction plugins",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			appConfig = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default .vpmbench.yaml)")

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newWatchCommand())
	return cmd
}

// buildLogger creates the command's logger backend: a development zap
// logger in verbose mode, production otherwise.
func buildLogger(verbose bool) (vpmbench.Logger, func(), error) {
	var (
		backend *zap.Logger
		err     error
	)
	if verbose {
		backend, err = zap.NewDevelopment()
	} else {
		backend, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, err
	}
	flush := func() { _ = backend.Sync() }
	return vpmbench.NewZapAdapter(backend), flush, nil
}

func resolveString(flag, config string) string {
	if flag != "" {
		return flag
	}
	return config
}

func resolveInt(flag, config, fallback int) int {
	if flag > 0 {
		return flag
	}
	if config > 0 {
		return config
	}
	return fallback
}
