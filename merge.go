// merge.go: merging per-plugin score tables into one annotated table
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import "math"

// MergePolicy controls how variants missing a score for some plugin are
// treated when score tables are joined onto the base variant table.
type MergePolicy string

const (
	// MergeOuter keeps every base variant, leaving a null where a plugin
	// produced no score.
	MergeOuter MergePolicy = "outer"

	// MergeInner keeps only variants scored by every plugin.
	MergeInner MergePolicy = "inner"
)

// MissingScorePolicy decides, uniformly across all plugins, what happens to
// rows with missing scores before metric computation. After the policy is
// applied every plugin is scored against an identical row set.
type MissingScorePolicy string

const (
	// MissingDeletion drops every row missing any plugin's score.
	MissingDeletion MissingScorePolicy = "deletion"

	// MissingImputeBenign fills missing scores with a value that
	// interprets to class 0 under the plugin's cutoff.
	MissingImputeBenign MissingScorePolicy = "impute-benign"

	// MissingImputePathogenic fills missing scores with a value that
	// interprets to the plugin's highest class.
	MissingImputePathogenic MissingScorePolicy = "impute-pathogenic"
)

// AnnotatedData is the merged wide table: one row per variant, one score
// column per plugin, named deterministically from plugin identity. It is
// built once per pipeline run and never mutated in place.
type AnnotatedData struct {
	rows    VariantTable
	plugins []*Plugin
	columns map[string]map[int64]float64
}

// MergeResults joins the successful invocation results onto the base
// variant table by identifier. Results may arrive in any completion order;
// column order follows the order of the results slice. Two plugins mapping
// to the same score column fail the merge.
func MergeResults(base VariantTable, results []InvocationResult, policy MergePolicy) (*AnnotatedData, error) {
	plugins := make([]*Plugin, 0, len(results))
	columns := make(map[string]map[int64]float64, len(results))
	for _, result := range results {
		if !result.Succeeded() {
			continue
		}
		column := result.Plugin.ScoreColumnName()
		if _, exists := columns[column]; exists {
			return nil, NewMergeConflictError(column)
		}
		plugins = append(plugins, result.Plugin)
		columns[column] = result.Scores.Lookup()
	}

	rows := base.Clone()
	if policy == MergeInner {
		kept := make(VariantTable, 0, len(rows))
		for _, row := range rows {
			present := true
			for _, scores := range columns {
				if _, ok := scores[row.UID]; !ok {
					present = false
					break
				}
			}
			if present {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	return &AnnotatedData{rows: rows, plugins: plugins, columns: columns}, nil
}

// Rows returns a copy of the merged table's variant rows.
func (a *AnnotatedData) Rows() VariantTable {
	return a.rows.Clone()
}

// Plugins returns the plugins contributing score columns, in column order.
func (a *AnnotatedData) Plugins() []*Plugin {
	plugins := make([]*Plugin, len(a.plugins))
	copy(plugins, a.plugins)
	return plugins
}

// Len returns the number of merged rows.
func (a *AnnotatedData) Len() int {
	return len(a.rows)
}

// ScoreFor looks up one plugin's score for one variant; ok is false where
// the merge left a null.
func (a *AnnotatedData) ScoreFor(plugin *Plugin, uid int64) (float64, bool) {
	column, exists := a.columns[plugin.ScoreColumnName()]
	if !exists {
		return 0, false
	}
	value, ok := column[uid]
	return value, ok
}

// ScoredSet is the aligned view metrics consume: one shared row set, the
// interpreted ground-truth class per row, and one complete score series per
// plugin over exactly those rows.
type ScoredSet struct {
	UIDs    []int64
	Classes []int
	Scores  []Score
}

// BuildScoredSet applies the missing-score policy to the annotated data
// against the evaluation data's ground truth. The deletion policy drops
// rows missing any plugin's score; the imputation policies fill missing
// scores with sentinel values interpreting to the lowest or highest class
// under each plugin's own cutoff. Either way, every plugin ends up scored
// against an identical row set.
func BuildScoredSet(annotated *AnnotatedData, data *EvaluationData, policy MissingScorePolicy) (*ScoredSet, error) {
	classByUID, err := data.ClassByUID()
	if err != nil {
		return nil, err
	}

	rows := annotated.rows
	if policy == MissingDeletion || policy == "" {
		kept := make(VariantTable, 0, len(rows))
		for _, row := range rows {
			complete := true
			for _, plugin := range annotated.plugins {
				if _, ok := annotated.ScoreFor(plugin, row.UID); !ok {
					complete = false
					break
				}
			}
			if complete {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	set := &ScoredSet{
		UIDs:    make([]int64, len(rows)),
		Classes: make([]int, len(rows)),
		Scores:  make([]Score, len(annotated.plugins)),
	}
	for i, row := range rows {
		set.UIDs[i] = row.UID
		set.Classes[i] = classByUID[row.UID]
	}
	for p, plugin := range annotated.plugins {
		values := make([]float64, len(rows))
		for i, row := range rows {
			value, ok := annotated.ScoreFor(plugin, row.UID)
			if !ok {
				value = imputedScore(plugin.Cutoff(), policy)
			}
			values[i] = value
		}
		set.Scores[p] = Score{Plugin: plugin, Values: values}
	}
	return set, nil
}

// Len returns the number of evaluated rows.
func (s *ScoredSet) Len() int {
	return len(s.UIDs)
}

// imputedScore picks a sentinel score for a missing value: the lowest
// cutoff itself interprets to class 0 (equality resolves downward), and the
// next representable value above the highest cutoff interprets to the top
// class.
func imputedScore(cutoff Cutoff, policy MissingScorePolicy) float64 {
	if policy == MissingImputePathogenic {
		return math.Nextafter(cutoff[len(cutoff)-1], math.Inf(1))
	}
	return cutoff[0]
}
