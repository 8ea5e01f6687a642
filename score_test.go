// score_test.go: cutoff validation and interpretation tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCutoff(t *testing.T) {
	t.Run("single_threshold", func(t *testing.T) {
		cutoff, err := NewCutoff(0.5)
		require.NoError(t, err)
		assert.False(t, cutoff.IsMultiClass())
		assert.Equal(t, 2, cutoff.NumClasses())
	})

	t.Run("multi_class_list", func(t *testing.T) {
		cutoff, err := NewCutoff(0.2, 0.5, 0.8)
		require.NoError(t, err)
		assert.True(t, cutoff.IsMultiClass())
		assert.Equal(t, 4, cutoff.NumClasses())
	})

	t.Run("two_thresholds_are_rejected", func(t *testing.T) {
		_, err := NewCutoff(0.2, 0.8)
		require.Error(t, err)
	})

	t.Run("empty_is_rejected", func(t *testing.T) {
		_, err := NewCutoff()
		require.Error(t, err)
	})

	t.Run("non_increasing_is_rejected", func(t *testing.T) {
		_, err := NewCutoff(0.2, 0.2, 0.8)
		require.Error(t, err)
		_, err = NewCutoff(0.8, 0.5, 0.2)
		require.Error(t, err)
	})
}

func TestCutoffInterpret(t *testing.T) {
	t.Run("binary", func(t *testing.T) {
		cutoff := Cutoff{0.5}
		assert.Equal(t, 0, cutoff.Interpret(0.1))
		assert.Equal(t, 0, cutoff.Interpret(0.5))
		assert.Equal(t, 1, cutoff.Interpret(0.6))
	})

	t.Run("equality_resolves_to_lower_class", func(t *testing.T) {
		cutoff := Cutoff{0.2, 0.5, 0.8}
		assert.Equal(t, 0, cutoff.Interpret(0.2))
		assert.Equal(t, 1, cutoff.Interpret(0.5))
		assert.Equal(t, 2, cutoff.Interpret(0.8))
		assert.Equal(t, 3, cutoff.Interpret(0.81))
	})

	t.Run("monotone_in_the_value", func(t *testing.T) {
		cutoff := Cutoff{0.2, 0.5, 0.8}
		previous := -1
		for _, value := range []float64{0.0, 0.2, 0.3, 0.5, 0.7, 0.8, 0.9, 1.0} {
			class := cutoff.Interpret(value)
			assert.GreaterOrEqual(t, class, previous)
			previous = class
		}
	})
}

func TestScoreInterpret(t *testing.T) {
	plugin := newTestPlugin(testPluginOptions{cutoff: Cutoff{0.5}})
	score := Score{Plugin: plugin, Values: []float64{0.1, 0.6, 0.4, 0.9}}
	assert.Equal(t, []int{0, 1, 0, 1}, score.Interpret())

	// Interpretation is pure: a second call yields the same classes.
	assert.Equal(t, score.Interpret(), score.Interpret())
}
