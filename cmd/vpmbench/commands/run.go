// run.go: vpmbench run command
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IDEA-PRIO/VPMBench"
)

func newRunCommand() *cobra.Command {
	var (
		dataPath      string
		extractorName string
		pluginPath    string
		selectNames   []string
		workers       int
		mergePolicy   string
		missingPolicy string
		withSummaries bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an evaluation pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataResolved := resolveString(dataPath, appConfig.Data)
			if dataResolved == "" {
				return errors.New("data path is required")
			}
			pluginsResolved := resolveString(pluginPath, appConfig.Plugins)
			if pluginsResolved == "" {
				return errors.New("plugin path is required")
			}
			extractor, err := buildExtractor(resolveString(extractorName, appConfig.Extractor))
			if err != nil {
				return err
			}
			names := selectNames
			if len(names) == 0 {
				names = appConfig.Select
			}
			selection := vpmbench.SelectAll
			if len(names) > 0 {
				selection = vpmbench.SelectByName(names...)
			}

			logger, flush, err := buildLogger(verbose || appConfig.Verbose)
			if err != nil {
				return err
			}
			defer flush()

			report, err := vpmbench.RunPipeline(cmd.Context(), vpmbench.PipelineOptions{
				DataPath:      dataResolved,
				Extractor:     extractor,
				PluginPath:    pluginsResolved,
				Selection:     selection,
				Workers:       resolveInt(workers, appConfig.Workers, 0),
				MergePolicy:   vpmbench.MergePolicy(resolveString(mergePolicy, appConfig.Merge)),
				MissingPolicy: vpmbench.MissingScorePolicy(resolveString(missingPolicy, appConfig.Missing)),
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			report.WriteMetrics(os.Stdout)
			if withSummaries {
				report.WriteSummaries(os.Stdout)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "annotated variant file to evaluate against")
	cmd.Flags().StringVar(&extractorName, "extractor", "", "data file format: csv or clinvar-vcf (default csv)")
	cmd.Flags().StringVar(&pluginPath, "plugins", "", "directory searched for plugin manifests")
	cmd.Flags().StringSliceVar(&selectNames, "select", nil, "plugin names to run (default all)")
	cmd.Flags().IntVar(&workers, "workers", 0, "invocation worker count (default CPU count minus one)")
	cmd.Flags().StringVar(&mergePolicy, "merge", "", "merge policy: outer or inner (default outer)")
	cmd.Flags().StringVar(&missingPolicy, "missing", "", "missing score policy: deletion, impute-benign or impute-pathogenic (default deletion)")
	cmd.Flags().BoolVar(&withSummaries, "summaries", false, "also print performance summaries")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func buildExtractor(name string) (vpmbench.Extractor, error) {
	switch strings.ToLower(name) {
	case "", "csv":
		return vpmbench.CSVExtractor{}, nil
	case "clinvar-vcf", "vcf":
		return vpmbench.ClinVarVCFExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}
