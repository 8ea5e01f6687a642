// list.go: vpmbench list command
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package commands

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/IDEA-PRIO/VPMBench"
)

func newListCommand() *cobra.Command {
	var pluginPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available components and discovered plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			writeList("Extractors", []string{"csv", "clinvar-vcf"})
			writeList("Merge policies", []string{"outer", "inner"})
			writeList("Missing score policies", []string{"deletion", "impute-benign", "impute-pathogenic"})
			writeList("Metrics", metricNames())
			writeList("Summaries", summaryNames())

			path := resolveString(pluginPath, appConfig.Plugins)
			if path == "" {
				return nil
			}
			registry := vpmbench.NewRegistry(nil, nil)
			if err := registry.LoadDirectory(path); err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Plugin", "Version", "Genome", "Classes"})
			table.SetAutoFormatHeaders(false)
			for _, plugin := range registry.Plugins() {
				table.Append([]string{
					plugin.Name(),
					plugin.Version(),
					string(plugin.Genome()),
					strconv.Itoa(plugin.Cutoff().NumClasses()),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&pluginPath, "plugins", "", "directory searched for plugin manifests")
	return cmd
}

func metricNames() []string {
	names := []string{}
	for _, metric := range vpmbench.DefaultMetrics() {
		names = append(names, metric.Name())
	}
	return names
}

func summaryNames() []string {
	names := []string{}
	for _, summary := range vpmbench.DefaultSummaries() {
		names = append(names, summary.Name())
	}
	return names
}

func writeList(title string, items []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{title})
	table.SetAutoFormatHeaders(false)
	for _, item := range items {
		table.Append([]string{item})
	}
	table.Render()
}
