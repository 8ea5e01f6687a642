// merge_test.go: result merging and missing-score policy tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successResult(plugin *Plugin, scores ScoreTable) InvocationResult {
	return InvocationResult{Plugin: plugin, Scores: scores}
}

func TestMergeResults(t *testing.T) {
	data := fourVariantData()
	table := data.VariantTable()
	full := newTestPlugin(testPluginOptions{name: "Full"})
	partial := newTestPlugin(testPluginOptions{name: "Partial", flexible: true})

	fullScores := ScoreTable{{0, 0.1}, {1, 0.6}, {2, 0.4}, {3, 0.9}}
	partialScores := ScoreTable{{0, 0.2}, {1, 0.7}}

	t.Run("outer_join_preserves_every_row", func(t *testing.T) {
		annotated, err := MergeResults(table, []InvocationResult{
			successResult(full, fullScores),
			successResult(partial, partialScores),
		}, MergeOuter)
		require.NoError(t, err)
		assert.Equal(t, 4, annotated.Len())

		_, ok := annotated.ScoreFor(partial, 3)
		assert.False(t, ok)
		value, ok := annotated.ScoreFor(full, 3)
		require.True(t, ok)
		assert.Equal(t, 0.9, value)
	})

	t.Run("inner_join_keeps_only_commonly_scored_rows", func(t *testing.T) {
		annotated, err := MergeResults(table, []InvocationResult{
			successResult(full, fullScores),
			successResult(partial, partialScores),
		}, MergeInner)
		require.NoError(t, err)
		assert.Equal(t, 2, annotated.Len())
		assert.Equal(t, []int64{0, 1}, annotated.Rows().UIDs())
	})

	t.Run("failed_results_are_ignored", func(t *testing.T) {
		failed := InvocationResult{Plugin: partial, Err: assert.AnError}
		annotated, err := MergeResults(table, []InvocationResult{
			successResult(full, fullScores),
			failed,
		}, MergeOuter)
		require.NoError(t, err)
		assert.Len(t, annotated.Plugins(), 1)
	})

	t.Run("duplicate_score_column_is_rejected", func(t *testing.T) {
		twin := newTestPlugin(testPluginOptions{name: "Full"})
		_, err := MergeResults(table, []InvocationResult{
			successResult(full, fullScores),
			successResult(twin, fullScores),
		}, MergeOuter)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Full_SCORE")
	})
}

func TestBuildScoredSet(t *testing.T) {
	data := fourVariantData()
	table := data.VariantTable()
	full := newTestPlugin(testPluginOptions{name: "Full"})
	partial := newTestPlugin(testPluginOptions{name: "Partial", flexible: true})

	results := []InvocationResult{
		successResult(full, ScoreTable{{0, 0.1}, {1, 0.6}, {2, 0.4}, {3, 0.9}}),
		successResult(partial, ScoreTable{{0, 0.2}, {1, 0.7}}),
	}
	annotated, err := MergeResults(table, results, MergeOuter)
	require.NoError(t, err)

	t.Run("deletion_drops_incomplete_rows_for_every_plugin", func(t *testing.T) {
		set, err := BuildScoredSet(annotated, data, MissingDeletion)
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())
		assert.Equal(t, []int64{0, 1}, set.UIDs)
		assert.Equal(t, []int{0, 1}, set.Classes)
		for _, score := range set.Scores {
			assert.Len(t, score.Values, 2)
		}
	})

	t.Run("impute_benign_interprets_to_class_zero", func(t *testing.T) {
		set, err := BuildScoredSet(annotated, data, MissingImputeBenign)
		require.NoError(t, err)
		assert.Equal(t, 4, set.Len())

		partialScore := set.Scores[1]
		require.Equal(t, "Partial", partialScore.Plugin.Name())
		classes := partialScore.Interpret()
		assert.Equal(t, 0, classes[2])
		assert.Equal(t, 0, classes[3])
	})

	t.Run("impute_pathogenic_interprets_to_the_top_class", func(t *testing.T) {
		set, err := BuildScoredSet(annotated, data, MissingImputePathogenic)
		require.NoError(t, err)

		partialScore := set.Scores[1]
		classes := partialScore.Interpret()
		assert.Equal(t, 1, classes[2])
		assert.Equal(t, 1, classes[3])
	})

	t.Run("policies_leave_all_plugins_on_one_row_set", func(t *testing.T) {
		for _, policy := range []MissingScorePolicy{MissingDeletion, MissingImputeBenign, MissingImputePathogenic} {
			set, err := BuildScoredSet(annotated, data, policy)
			require.NoError(t, err)
			for _, score := range set.Scores {
				assert.Len(t, score.Values, set.Len())
			}
		}
	})
}
