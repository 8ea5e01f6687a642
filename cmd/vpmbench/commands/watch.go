// watch.go: vpmbench watch command
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IDEA-PRIO/VPMBench"
)

func newWatchCommand() *cobra.Command {
	var (
		pluginPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a plugin directory and hot-reload changed manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			pluginsResolved := resolveString(pluginPath, appConfig.Plugins)
			if pluginsResolved == "" {
				return errors.New("plugin path is required")
			}
			logger, flush, err := buildLogger(verbose || appConfig.Verbose)
			if err != nil {
				return err
			}
			defer flush()

			registry := vpmbench.NewRegistry(nil, logger)
			if err := registry.LoadDirectory(pluginsResolved); err != nil {
				return err
			}
			if err := registry.Watch(vpmbench.DefaultWatchOptions()); err != nil {
				return err
			}
			defer func() { _ = registry.Stop() }()

			logger.Info("Watching plugin manifests",
				"path", pluginsResolved,
				"plugins", registry.Len())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&pluginPath, "plugins", "", "directory searched for plugin manifests")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return cmd
}
