// summaries.go: structured performance summaries beyond scalar metrics
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import "sort"

// SummaryResult carries a summary's structured output plus an optional
// warning for plugins the summary only partially applies to.
type SummaryResult struct {
	Values  map[string]any
	Warning string
}

// PerformanceSummary computes a structured result from one plugin's scores
// and the aligned ground-truth classes. Summaries never fail the report;
// inapplicable inputs yield an empty result with a warning instead.
type PerformanceSummary interface {
	// Name returns the summary's stable identifier.
	Name() string

	// Calculate evaluates the summary over aligned scores and classes.
	Calculate(score Score, classes []int) SummaryResult
}

// DefaultSummaries returns the standard summary set.
func DefaultSummaries() []PerformanceSummary {
	return []PerformanceSummary{
		ConfusionMatrixSummary{},
		ROCCurveSummary{},
		PrecisionRecallSummary{},
	}
}

// ConfusionMatrixSummary tabulates predicted against true classes with
// labels sorted descending. For two classes the cells are additionally
// exposed under the names tn, fp, fn and tp.
type ConfusionMatrixSummary struct{}

func (ConfusionMatrixSummary) Name() string { return "confusion-matrix" }

func (ConfusionMatrixSummary) Calculate(score Score, classes []int) SummaryResult {
	predicted := score.Interpret()
	labels := classLabels(predicted, classes)
	matrix := confusionMatrix(predicted, classes, labels)

	values := map[string]any{
		"labels": labels,
		"matrix": matrix,
	}
	warning := ""
	if len(labels) == 2 {
		values["tp"] = matrix[0][0]
		values["fn"] = matrix[0][1]
		values["fp"] = matrix[1][0]
		values["tn"] = matrix[1][1]
	} else {
		warning = "named cells are only defined for two classes"
	}
	return SummaryResult{Values: values, Warning: warning}
}

// ROCCurveSummary sweeps every distinct score as a decision threshold and
// records the resulting false-positive and true-positive rates, from the
// most permissive threshold to the strictest.
type ROCCurveSummary struct{}

func (ROCCurveSummary) Name() string { return "roc-curve" }

func (ROCCurveSummary) Calculate(score Score, classes []int) SummaryResult {
	if reason := multiClassReason(score, classes); reason != "" {
		return SummaryResult{
			Values:  map[string]any{},
			Warning: "roc curves are only defined for two classes: " + reason,
		}
	}
	fpr := []float64{}
	tpr := []float64{}
	for _, cells := range thresholdSweep(score.Values, classes) {
		fpr = append(fpr, ratio(cells.fp, cells.fp+cells.tn))
		tpr = append(tpr, ratio(cells.tp, cells.tp+cells.fn))
	}
	return SummaryResult{Values: map[string]any{"fpr": fpr, "tpr": tpr}}
}

// PrecisionRecallSummary sweeps every distinct score as a decision
// threshold and records the resulting precision and recall pairs.
type PrecisionRecallSummary struct{}

func (PrecisionRecallSummary) Name() string { return "precision-recall-curve" }

func (PrecisionRecallSummary) Calculate(score Score, classes []int) SummaryResult {
	if reason := multiClassReason(score, classes); reason != "" {
		return SummaryResult{
			Values:  map[string]any{},
			Warning: "precision-recall curves are only defined for two classes: " + reason,
		}
	}
	precision := []float64{}
	recall := []float64{}
	for _, cells := range thresholdSweep(score.Values, classes) {
		precision = append(precision, ratio(cells.tp, cells.tp+cells.fp))
		recall = append(recall, ratio(cells.tp, cells.tp+cells.fn))
	}
	return SummaryResult{Values: map[string]any{"precision": precision, "recall": recall}}
}

type binaryCellCounts struct {
	tp, fn, fp, tn int
}

// multiClassReason reports why a binary threshold sweep does not apply, or
// "" when both the plugin and the ground truth are binary.
func multiClassReason(score Score, classes []int) string {
	if score.Plugin != nil && score.Plugin.IsMultiClass() {
		return "plugin '" + score.Plugin.Name() + "' is multi-class"
	}
	if distinctClassCount(classes) > 2 {
		return "ground truth has more than two classes"
	}
	return ""
}

// thresholdSweep evaluates the binary confusion cells at every distinct
// score value taken as an inclusive positive threshold, in ascending
// threshold order.
func thresholdSweep(values []float64, classes []int) []binaryCellCounts {
	distinct := make(map[float64]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	thresholds := make([]float64, 0, len(distinct))
	for v := range distinct {
		thresholds = append(thresholds, v)
	}
	sort.Float64s(thresholds)

	sweep := make([]binaryCellCounts, 0, len(thresholds))
	for _, threshold := range thresholds {
		var cells binaryCellCounts
		for i, v := range values {
			positive := v >= threshold
			truth := classes[i] == 1
			switch {
			case positive && truth:
				cells.tp++
			case positive && !truth:
				cells.fp++
			case !positive && truth:
				cells.fn++
			default:
				cells.tn++
			}
		}
		sweep = append(sweep, cells)
	}
	return sweep
}
