// metrics.go: performance metrics over interpreted plugin scores
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"math"
	"sort"
)

// PerformanceMetric computes a single scalar from one plugin's scores and
// the aligned ground-truth classes. Implementations must not mutate their
// inputs.
type PerformanceMetric interface {
	// Name returns the metric's stable identifier.
	Name() string

	// Calculate evaluates the metric. Both slices have the same length
	// and index i refers to the same variant in each.
	Calculate(score Score, classes []int) (float64, error)
}

// DefaultMetrics returns the standard binary-classification metric set.
func DefaultMetrics() []PerformanceMetric {
	return []PerformanceMetric{
		Sensitivity{},
		Specificity{},
		Accuracy{},
		Precision{},
		NegativePredictiveValue{},
		Concordance{},
		MatthewsCorrelation{},
		AreaUnderROC{},
	}
}

// confusionMatrix counts predicted-versus-true class pairs with class
// labels sorted in descending order on both axes, so for two classes the
// cells read tp, fn / fp, tn.
func confusionMatrix(predicted, truth []int, labels []int) [][]int {
	index := make(map[int]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	matrix := make([][]int, len(labels))
	for i := range matrix {
		matrix[i] = make([]int, len(labels))
	}
	for i := range truth {
		t, tok := index[truth[i]]
		p, pok := index[predicted[i]]
		if tok && pok {
			matrix[t][p]++
		}
	}
	return matrix
}

// classLabels collects the distinct labels seen across truth and
// predictions, sorted in descending order.
func classLabels(predicted, truth []int) []int {
	seen := make(map[int]struct{})
	for _, c := range truth {
		seen[c] = struct{}{}
	}
	for _, c := range predicted {
		seen[c] = struct{}{}
	}
	labels := make([]int, 0, len(seen))
	for c := range seen {
		labels = append(labels, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(labels)))
	return labels
}

// distinctClassCount returns the number of distinct ground-truth classes.
func distinctClassCount(classes []int) int {
	seen := make(map[int]struct{}, 4)
	for _, c := range classes {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// binaryCells interprets the plugin's scores and reduces them against the
// truth to the four binary confusion cells. The reduction exists only when
// both sides are binary: a multi-class plugin or a ground truth with more
// than two classes yields a MetricUndefined error, never a matrix with
// silently dropped rows.
func binaryCells(metric string, score Score, classes []int) (tp, fn, fp, tn int, err error) {
	if score.Plugin != nil && score.Plugin.IsMultiClass() {
		return 0, 0, 0, 0, NewMetricUndefinedError(metric, "plugin '"+score.Plugin.Name()+"' is multi-class")
	}
	if distinctClassCount(classes) > 2 {
		return 0, 0, 0, 0, NewMetricUndefinedError(metric, "ground truth has more than two classes")
	}
	predicted := score.Interpret()
	matrix := confusionMatrix(predicted, classes, []int{1, 0})
	return matrix[0][0], matrix[0][1], matrix[1][0], matrix[1][1], nil
}

// ratio guards the zero-denominator case, reported as NaN rather than an
// error so one degenerate metric does not abort a whole report.
func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// Sensitivity is the true-positive rate, tp / (tp + fn).
type Sensitivity struct{}

func (Sensitivity) Name() string { return "sensitivity" }

func (Sensitivity) Calculate(score Score, classes []int) (float64, error) {
	tp, fn, _, _, err := binaryCells("sensitivity", score, classes)
	if err != nil {
		return 0, err
	}
	return ratio(tp, tp+fn), nil
}

// Specificity is the true-negative rate, tn / (tn + fp).
type Specificity struct{}

func (Specificity) Name() string { return "specificity" }

func (Specificity) Calculate(score Score, classes []int) (float64, error) {
	_, _, fp, tn, err := binaryCells("specificity", score, classes)
	if err != nil {
		return 0, err
	}
	return ratio(tn, tn+fp), nil
}

// Accuracy is the fraction of variants whose interpreted class matches the
// truth. Unlike the other named binary metrics it is defined for any class
// count.
type Accuracy struct{}

func (Accuracy) Name() string { return "accuracy" }

func (Accuracy) Calculate(score Score, classes []int) (float64, error) {
	return agreement(score, classes), nil
}

// Precision is the positive predictive value, tp / (tp + fp).
type Precision struct{}

func (Precision) Name() string { return "precision" }

func (Precision) Calculate(score Score, classes []int) (float64, error) {
	tp, _, fp, _, err := binaryCells("precision", score, classes)
	if err != nil {
		return 0, err
	}
	return ratio(tp, tp+fp), nil
}

// NegativePredictiveValue is tn / (tn + fn).
type NegativePredictiveValue struct{}

func (NegativePredictiveValue) Name() string { return "npv" }

func (NegativePredictiveValue) Calculate(score Score, classes []int) (float64, error) {
	_, fn, _, tn, err := binaryCells("npv", score, classes)
	if err != nil {
		return 0, err
	}
	return ratio(tn, tn+fn), nil
}

// Concordance is the agreement rate between interpreted classes and the
// truth over the evaluated row set. Because the missing-score policy
// equalizes row sets across plugins before metrics run, concordance is the
// accuracy over the commonly scored variants.
type Concordance struct{}

func (Concordance) Name() string { return "concordance" }

func (Concordance) Calculate(score Score, classes []int) (float64, error) {
	return agreement(score, classes), nil
}

func agreement(score Score, classes []int) float64 {
	if len(classes) == 0 {
		return math.NaN()
	}
	predicted := score.Interpret()
	hits := 0
	for i := range classes {
		if predicted[i] == classes[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(classes))
}

// MatthewsCorrelation is the Matthews correlation coefficient over the
// binary confusion cells, in [-1, 1].
type MatthewsCorrelation struct{}

func (MatthewsCorrelation) Name() string { return "mcc" }

func (MatthewsCorrelation) Calculate(score Score, classes []int) (float64, error) {
	tp, fn, fp, tn, err := binaryCells("mcc", score, classes)
	if err != nil {
		return 0, err
	}
	den := math.Sqrt(float64(tp+fp) * float64(tp+fn) * float64(tn+fp) * float64(tn+fn))
	if den == 0 {
		return math.NaN(), nil
	}
	return (float64(tp)*float64(tn) - float64(fp)*float64(fn)) / den, nil
}

// AreaUnderROC is the area under the receiver operating characteristic
// curve, computed over the raw scores as the normalized Mann-Whitney U
// statistic. Ties between a positive and a negative contribute half.
type AreaUnderROC struct{}

func (AreaUnderROC) Name() string { return "auroc" }

func (AreaUnderROC) Calculate(score Score, classes []int) (float64, error) {
	if score.Plugin != nil && score.Plugin.IsMultiClass() {
		return 0, NewMetricUndefinedError("auroc", "plugin '"+score.Plugin.Name()+"' is multi-class")
	}
	if distinctClassCount(classes) > 2 {
		return 0, NewMetricUndefinedError("auroc", "ground truth has more than two classes")
	}
	positives := 0
	negatives := 0
	for _, c := range classes {
		if c == 1 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return math.NaN(), nil
	}
	var wins float64
	for i, vi := range score.Values {
		if classes[i] != 1 {
			continue
		}
		for j, vj := range score.Values {
			if classes[j] == 1 {
				continue
			}
			switch {
			case vi > vj:
				wins++
			case vi == vj:
				wins += 0.5
			}
		}
	}
	return wins / (float64(positives) * float64(negatives)), nil
}
