// pipeline.go: end-to-end evaluation pipeline
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"context"
	"time"

	"github.com/agilira/go-timecache"
)

// PipelineOptions configures a pipeline run. DataPath and PluginPath are
// mandatory; everything else has a sensible default.
type PipelineOptions struct {
	// DataPath is the annotated variant file to evaluate against.
	DataPath string

	// Extractor parses DataPath. Defaults to the CSV extractor.
	Extractor Extractor

	// PluginPath is the directory tree searched for plugin manifests.
	PluginPath string

	// Selection filters the discovered plugins. Defaults to all.
	Selection func(*Plugin) bool

	// Workers bounds the invocation pool. Zero means one worker fewer
	// than the CPU count, minimum one.
	Workers int

	// MergePolicy joins score tables onto the variant table. Defaults
	// to the outer join.
	MergePolicy MergePolicy

	// MissingPolicy handles rows with missing scores before metrics.
	// Defaults to deletion.
	MissingPolicy MissingScorePolicy

	// Metrics and Summaries to compute. Both default to the standard
	// sets.
	Metrics   []PerformanceMetric
	Summaries []PerformanceSummary

	Logger Logger
}

// RunPipeline executes the full evaluation: extract the data, discover and
// select plugins, invoke them concurrently, merge the surviving score
// tables, apply the missing-score policy and compute every requested
// metric and summary.
//
// A plugin failure is isolated to that plugin and reported in the result;
// the run only fails when no plugin survives.
func RunPipeline(ctx context.Context, options PipelineOptions) (*PerformanceReport, error) {
	logger := options.Logger
	if logger == nil {
		logger = LoggerFromContext(ctx)
	}
	extractor := options.Extractor
	if extractor == nil {
		extractor = CSVExtractor{}
	}
	selection := options.Selection
	if selection == nil {
		selection = SelectAll
	}
	metrics := options.Metrics
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	summaries := options.Summaries
	if summaries == nil {
		summaries = DefaultSummaries()
	}

	started := timecache.CachedTime()

	logger.Info("Extracting evaluation data", "path", options.DataPath)
	data, err := extractor.Extract(options.DataPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Extracted evaluation data", "variants", data.Len())

	registry := NewRegistry(nil, logger)
	if err := registry.LoadDirectory(options.PluginPath); err != nil {
		return nil, err
	}
	plugins := registry.Select(selection)
	if len(plugins) == 0 {
		return nil, NewNoPluginsSelectedError(options.PluginPath)
	}
	logger.Info("Selected plugins", "count", len(plugins))

	coordinator := &Coordinator{Workers: options.Workers, Logger: logger}
	results := coordinator.InvokeAll(ctx, plugins, data.VariantTable())

	failed := 0
	for _, result := range results {
		if !result.Succeeded() {
			failed++
			logger.Error("Plugin failed", "plugin", result.Plugin.Name(), "error", result.Err)
		}
	}
	if failed == len(results) {
		return nil, NewNoPluginsSurvivedError(failed)
	}

	annotated, err := MergeResults(data.VariantTable(), results, options.MergePolicy)
	if err != nil {
		return nil, err
	}
	set, err := BuildScoredSet(annotated, data, options.MissingPolicy)
	if err != nil {
		return nil, err
	}
	logger.Info("Evaluating", "variants", set.Len(), "plugins", len(set.Scores))

	report := NewPerformanceReport(data, results)
	for _, score := range set.Scores {
		entry := report.entryFor(score.Plugin)
		for _, metric := range metrics {
			value, err := metric.Calculate(score, set.Classes)
			if err != nil {
				logger.Warn("Metric not computed", "metric", metric.Name(), "plugin", score.Plugin.Name(), "error", err)
				continue
			}
			entry.Metrics[metric.Name()] = value
		}
		for _, summary := range summaries {
			result := summary.Calculate(score, set.Classes)
			if result.Warning != "" {
				logger.Warn("Summary warning", "summary", summary.Name(), "plugin", score.Plugin.Name(), "warning", result.Warning)
			}
			entry.Summaries[summary.Name()] = result
		}
	}
	report.Duration = time.Since(started)
	logger.Info("Pipeline finished", "duration", report.Duration)
	return report, nil
}
