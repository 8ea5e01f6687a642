// summaries_test.go: performance summary tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusionMatrixSummary(t *testing.T) {
	t.Run("binary_cells_are_named", func(t *testing.T) {
		score, truth := mixedScore()
		result := ConfusionMatrixSummary{}.Calculate(score, truth)
		assert.Empty(t, result.Warning)
		assert.Equal(t, 1, result.Values["tp"])
		assert.Equal(t, 1, result.Values["fn"])
		assert.Equal(t, 1, result.Values["fp"])
		assert.Equal(t, 1, result.Values["tn"])
		assert.Equal(t, []int{1, 0}, result.Values["labels"])
	})

	t.Run("multi_class_matrix_has_no_named_cells", func(t *testing.T) {
		cutoff, err := NewCutoff(0.2, 0.5, 0.8)
		require.NoError(t, err)
		plugin := newTestPlugin(testPluginOptions{cutoff: cutoff})
		score := Score{Plugin: plugin, Values: []float64{0.1, 0.6, 0.9}}
		result := ConfusionMatrixSummary{}.Calculate(score, []int{0, 1, 3})
		assert.NotEmpty(t, result.Warning)
		assert.NotContains(t, result.Values, "tp")
		assert.Equal(t, []int{3, 2, 1, 0}, result.Values["labels"])
	})
}

func TestROCCurveSummary(t *testing.T) {
	score, truth := mixedScore()
	result := ROCCurveSummary{}.Calculate(score, truth)
	require.Empty(t, result.Warning)

	fpr := result.Values["fpr"].([]float64)
	tpr := result.Values["tpr"].([]float64)
	require.Len(t, fpr, 4)
	require.Len(t, tpr, 4)

	// The lowest threshold marks everything positive.
	assert.Equal(t, 1.0, fpr[0])
	assert.Equal(t, 1.0, tpr[0])
	// False positive rate never rises as the threshold tightens.
	for i := 1; i < len(fpr); i++ {
		assert.LessOrEqual(t, fpr[i], fpr[i-1])
	}
}

func TestPrecisionRecallSummary(t *testing.T) {
	score, truth := mixedScore()
	result := PrecisionRecallSummary{}.Calculate(score, truth)
	require.Empty(t, result.Warning)

	precision := result.Values["precision"].([]float64)
	recall := result.Values["recall"].([]float64)
	require.Len(t, precision, 4)

	// The lowest threshold recalls every positive.
	assert.Equal(t, 1.0, recall[0])
	assert.Equal(t, 0.5, precision[0])
}

func TestCurveSummariesWarnForMultiClassTruth(t *testing.T) {
	plugin := newTestPlugin(testPluginOptions{})
	score := Score{Plugin: plugin, Values: []float64{0.1, 0.9, 0.6}}

	for _, summary := range []PerformanceSummary{ROCCurveSummary{}, PrecisionRecallSummary{}} {
		result := summary.Calculate(score, []int{0, 1, 2})
		assert.NotEmpty(t, result.Warning, summary.Name())
		assert.Empty(t, result.Values)
	}
}

func TestCurveSummariesWarnForMultiClassPlugins(t *testing.T) {
	cutoff, err := NewCutoff(0.2, 0.5, 0.8)
	require.NoError(t, err)
	plugin := newTestPlugin(testPluginOptions{cutoff: cutoff})
	score := Score{Plugin: plugin, Values: []float64{0.1, 0.6, 0.9}}

	for _, summary := range []PerformanceSummary{ROCCurveSummary{}, PrecisionRecallSummary{}} {
		result := summary.Calculate(score, []int{0, 1, 3})
		assert.NotEmpty(t, result.Warning, summary.Name())
		assert.Empty(t, result.Values)
	}
}
