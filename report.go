// report.go: aggregated evaluation results and text rendering
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// ReportEntry collects every computed value for one plugin.
type ReportEntry struct {
	Plugin    *Plugin
	Metrics   map[string]float64
	Summaries map[string]SummaryResult
}

// PerformanceReport is the final output of a pipeline run: one entry per
// surviving plugin plus the failures that were isolated along the way.
type PerformanceReport struct {
	Variants int
	Duration time.Duration

	entries  []*ReportEntry
	failures []InvocationResult
}

// NewPerformanceReport prepares an empty report over the given data and
// invocation results. Failed invocations are recorded as failures.
func NewPerformanceReport(data *EvaluationData, results []InvocationResult) *PerformanceReport {
	report := &PerformanceReport{Variants: data.Len()}
	for _, result := range results {
		if !result.Succeeded() {
			report.failures = append(report.failures, result)
		}
	}
	return report
}

func (r *PerformanceReport) entryFor(plugin *Plugin) *ReportEntry {
	for _, entry := range r.entries {
		if entry.Plugin == plugin {
			return entry
		}
	}
	entry := &ReportEntry{
		Plugin:    plugin,
		Metrics:   make(map[string]float64),
		Summaries: make(map[string]SummaryResult),
	}
	r.entries = append(r.entries, entry)
	return entry
}

// Entries returns the per-plugin report entries in evaluation order.
func (r *PerformanceReport) Entries() []*ReportEntry {
	entries := make([]*ReportEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Entry looks up the report entry for a plugin name.
func (r *PerformanceReport) Entry(name string) (*ReportEntry, bool) {
	for _, entry := range r.entries {
		if entry.Plugin.Name() == name {
			return entry, true
		}
	}
	return nil, false
}

// Failures returns the invocation results of plugins that did not survive.
func (r *PerformanceReport) Failures() []InvocationResult {
	failures := make([]InvocationResult, len(r.failures))
	copy(failures, r.failures)
	return failures
}

// WriteMetrics renders the metric values as a plugin-by-metric text table.
func (r *PerformanceReport) WriteMetrics(w io.Writer) {
	names := r.metricNames()
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"Plugin"}, names...))
	table.SetAutoFormatHeaders(false)
	for _, entry := range r.entries {
		row := []string{entry.Plugin.Name()}
		for _, name := range names {
			value, ok := entry.Metrics[name]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, strconv.FormatFloat(value, 'f', 4, 64))
		}
		table.Append(row)
	}
	table.Render()

	for _, failure := range r.failures {
		fmt.Fprintf(w, "failed: %s: %v\n", failure.Plugin.Name(), failure.Err)
	}
}

// WriteSummaries renders each plugin's summary values as key/value tables.
func (r *PerformanceReport) WriteSummaries(w io.Writer) {
	for _, entry := range r.entries {
		names := make([]string, 0, len(entry.Summaries))
		for name := range entry.Summaries {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "%s\n", entry.Plugin.Name())
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Summary", "Key", "Value"})
		table.SetAutoFormatHeaders(false)
		table.SetAutoMergeCells(true)
		for _, name := range names {
			result := entry.Summaries[name]
			keys := make([]string, 0, len(result.Values))
			for key := range result.Values {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				table.Append([]string{name, key, fmt.Sprint(result.Values[key])})
			}
			if result.Warning != "" {
				table.Append([]string{name, "warning", result.Warning})
			}
		}
		table.Render()
	}
}

func (r *PerformanceReport) metricNames() []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, entry := range r.entries {
		for name := range entry.Metrics {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
