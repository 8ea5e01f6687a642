// Package vpmbench provides an evaluation harness for external
// variant-pathogenicity-prediction methods ("plugins"). It loads declarative
// plugin manifests, executes each method against a shared set of genomic
// variant records, merges the independently produced score tables, and
// reduces them to classification statistics against a ground truth.
//
// Key features:
//   - Declarative YAML plugin manifests with closed-vocabulary validation
//   - Two execution backends behind one contract: local scripts run as
//     isolated subprocesses, containerized methods run via the Docker engine
//   - Compatibility checking before any plugin touches the data
//   - Bounded worker-pool invocation with per-plugin failure isolation
//   - Deterministic result merging keyed by variant identity
//   - Confusion-matrix-derived metrics and threshold-sweep curve summaries
//
// Basic usage:
//
//	report, err := vpmbench.RunPipeline(ctx, vpmbench.PipelineOptions{
//		DataPath:   "clinvar.vcf",
//		Extractor:  vpmbench.ClinVarVCFExtractor{},
//		PluginPath: "/home/user/VPMBench-Plugins",
//		Metrics:    []vpmbench.PerformanceMetric{vpmbench.Sensitivity{}, vpmbench.Specificity{}},
//		Summaries:  []vpmbench.PerformanceSummary{vpmbench.ConfusionMatrixSummary{}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.WriteMetrics(os.Stdout)
//
// Failure isolation:
// One plugin's compatibility violation, execution failure, or output-schema
// violation is captured and attributed to that plugin without terminating
// sibling invocations. The run as a whole fails only when zero plugins
// produce usable output.
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT
package vpmbench
