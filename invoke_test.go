// invoke_test.go: invocation coordinator and output validation tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScoreTable(t *testing.T) {
	plugin := newTestPlugin(testPluginOptions{})
	table := fourVariantData().VariantTable()

	t.Run("complete_output_passes", func(t *testing.T) {
		scores := ScoreTable{{0, 0.1}, {1, 0.6}, {2, 0.4}, {3, 0.9}}
		require.NoError(t, ValidateScoreTable(plugin, table, scores))
	})

	t.Run("unknown_uid_is_rejected", func(t *testing.T) {
		scores := ScoreTable{{0, 0.1}, {1, 0.6}, {2, 0.4}, {3, 0.9}, {42, 0.5}}
		require.Error(t, ValidateScoreTable(plugin, table, scores))
	})

	t.Run("duplicate_uid_is_rejected", func(t *testing.T) {
		scores := ScoreTable{{0, 0.1}, {0, 0.2}, {1, 0.6}, {2, 0.4}, {3, 0.9}}
		require.Error(t, ValidateScoreTable(plugin, table, scores))
	})

	t.Run("non_numeric_score_is_rejected", func(t *testing.T) {
		scores := ScoreTable{{0, math.NaN()}, {1, 0.6}, {2, 0.4}, {3, 0.9}}
		require.Error(t, ValidateScoreTable(plugin, table, scores))

		scores = ScoreTable{{0, math.Inf(1)}, {1, 0.6}, {2, 0.4}, {3, 0.9}}
		require.Error(t, ValidateScoreTable(plugin, table, scores))
	})

	t.Run("missing_uid_is_rejected_for_strict_plugins", func(t *testing.T) {
		scores := ScoreTable{{0, 0.1}, {1, 0.6}}
		require.Error(t, ValidateScoreTable(plugin, table, scores))
	})

	t.Run("missing_uid_is_allowed_for_flexible_plugins", func(t *testing.T) {
		flexible := newTestPlugin(testPluginOptions{flexible: true})
		scores := ScoreTable{{0, 0.1}, {1, 0.6}}
		require.NoError(t, ValidateScoreTable(flexible, table, scores))
	})
}

func TestEntryPointFailureNamesThePlugin(t *testing.T) {
	// Entry points only know their script path or image, so the plugin
	// attribution must come from the plugin itself.
	plugin := newTestPlugin(testPluginOptions{
		name: "Fathmm",
		entryPoint: stubEntryPoint{fn: func(context.Context, VariantTable) (ScoreTable, error) {
			return nil, NewScriptExecutionError("/plugins/fathmm/score.py", assert.AnError)
		}},
	})
	_, err := plugin.Run(context.Background(), fourVariantData().VariantTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fathmm")
}

func TestInvokeAll(t *testing.T) {
	table := fourVariantData().VariantTable()
	goodScores := map[int64]float64{0: 0.1, 1: 0.6, 2: 0.4, 3: 0.9}

	t.Run("results_keep_input_order", func(t *testing.T) {
		plugins := []*Plugin{
			newTestPlugin(testPluginOptions{name: "B", entryPoint: scoreByUID(goodScores)}),
			newTestPlugin(testPluginOptions{name: "A", entryPoint: scoreByUID(goodScores)}),
			newTestPlugin(testPluginOptions{name: "C", entryPoint: scoreByUID(goodScores)}),
		}
		coordinator := &Coordinator{Workers: 2}
		results := coordinator.InvokeAll(context.Background(), plugins, table)
		require.Len(t, results, 3)
		assert.Equal(t, "B", results[0].Plugin.Name())
		assert.Equal(t, "A", results[1].Plugin.Name())
		assert.Equal(t, "C", results[2].Plugin.Name())
	})

	t.Run("one_failure_does_not_affect_the_rest", func(t *testing.T) {
		failing := newTestPlugin(testPluginOptions{
			name: "Broken",
			entryPoint: stubEntryPoint{fn: func(context.Context, VariantTable) (ScoreTable, error) {
				return nil, NewScriptExecutionError("broken.py", assert.AnError)
			}},
		})
		plugins := []*Plugin{
			newTestPlugin(testPluginOptions{name: "Good", entryPoint: scoreByUID(goodScores)}),
			failing,
		}
		results := (&Coordinator{}).InvokeAll(context.Background(), plugins, table)
		require.Len(t, results, 2)
		assert.True(t, results[0].Succeeded())
		assert.False(t, results[1].Succeeded())
		assert.Len(t, results[0].Scores, 4)
	})

	t.Run("panicking_plugin_is_contained", func(t *testing.T) {
		logger := NewTestLogger()
		panicking := newTestPlugin(testPluginOptions{
			name: "Panic",
			entryPoint: stubEntryPoint{fn: func(context.Context, VariantTable) (ScoreTable, error) {
				panic("scoring model exploded")
			}},
		})
		plugins := []*Plugin{
			panicking,
			newTestPlugin(testPluginOptions{name: "Good", entryPoint: scoreByUID(goodScores)}),
		}
		results := (&Coordinator{Logger: logger}).InvokeAll(context.Background(), plugins, table)
		require.Len(t, results, 2)
		require.False(t, results[0].Succeeded())
		assert.Contains(t, results[0].Err.Error(), "Panic")
		assert.True(t, results[1].Succeeded())
	})

	t.Run("single_worker_serializes_execution", func(t *testing.T) {
		order := []string{}
		record := func(name string) stubEntryPoint {
			return stubEntryPoint{fn: func(_ context.Context, tbl VariantTable) (ScoreTable, error) {
				order = append(order, name)
				return scoreByUID(goodScores).fn(context.Background(), tbl)
			}}
		}
		plugins := []*Plugin{
			newTestPlugin(testPluginOptions{name: "First", entryPoint: record("First")}),
			newTestPlugin(testPluginOptions{name: "Second", entryPoint: record("Second")}),
			newTestPlugin(testPluginOptions{name: "Third", entryPoint: record("Third")}),
		}
		(&Coordinator{Workers: 1}).InvokeAll(context.Background(), plugins, table)
		assert.Equal(t, []string{"First", "Second", "Third"}, order)
	})

	t.Run("tasks_see_independent_table_copies", func(t *testing.T) {
		mutating := newTestPlugin(testPluginOptions{
			name: "Mutator",
			entryPoint: stubEntryPoint{fn: func(_ context.Context, tbl VariantTable) (ScoreTable, error) {
				for i := range tbl {
					tbl[i].Chromosome = "22"
				}
				return scoreByUID(goodScores).fn(context.Background(), tbl)
			}},
		})
		(&Coordinator{}).InvokeAll(context.Background(), []*Plugin{mutating}, table)
		assert.Equal(t, "1", table[0].Chromosome)
	})
}
