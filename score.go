// score.go: cutoff-based interpretation of continuous plugin scores
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

// Cutoff converts continuous scores into discrete pathogenicity classes.
//
// A single threshold yields the binary interpretation; an ordered list of
// at least three thresholds yields ordinal bucket indices for multi-class
// ground truth.
type Cutoff []float64

// DefaultCutoff is the threshold assumed when a manifest declares none.
const DefaultCutoff = 0.5

// NewCutoff validates threshold values into a Cutoff. A single value is
// always valid; lists must be strictly increasing and contain at least
// three thresholds.
func NewCutoff(thresholds ...float64) (Cutoff, error) {
	switch {
	case len(thresholds) == 0:
		return nil, NewInvalidCutoffError("at least one threshold is required")
	case len(thresholds) == 2:
		return nil, NewInvalidCutoffError("multi-class lists need at least three thresholds")
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, NewInvalidCutoffError("thresholds must be strictly increasing")
		}
	}
	cutoff := make(Cutoff, len(thresholds))
	copy(cutoff, thresholds)
	return cutoff, nil
}

// IsMultiClass reports whether the cutoff buckets scores into more than two
// classes.
func (c Cutoff) IsMultiClass() bool {
	return len(c) > 1
}

// NumClasses returns the number of classes the cutoff can produce.
func (c Cutoff) NumClasses() int {
	return len(c) + 1
}

// Interpret converts a score into its ordinal class: the number of
// thresholds strictly below the value. For a single cutoff c this is the
// binary rule value > c -> 1, value <= c -> 0; equality always resolves to
// the lower class.
func (c Cutoff) Interpret(value float64) int {
	class := 0
	for _, threshold := range c {
		if value > threshold {
			class++
		}
	}
	return class
}

// Score pairs a plugin with the numeric series it produced, aligned to a
// shared row set. It is derived data and read-only.
type Score struct {
	Plugin *Plugin
	Values []float64
}

// Interpret applies the plugin's cutoff to every value in the series.
func (s Score) Interpret() []int {
	return s.InterpretWith(s.Plugin.Cutoff())
}

// InterpretWith applies an explicit cutoff to every value in the series.
func (s Score) InterpretWith(cutoff Cutoff) []int {
	classes := make([]int, len(s.Values))
	for i, value := range s.Values {
		classes[i] = cutoff.Interpret(value)
	}
	return classes
}
