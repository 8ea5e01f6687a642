// compat.go: plugin/data compatibility checking
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import "sort"

// CheckCompatibility verifies that the plugin can process every row of the
// variant table. It fails, never filters: the data's reference genomes must
// all equal the plugin's declared genome, the variation types present must
// be a subset of the supported types, and the chromosomes present must be a
// subset of the supported chromosomes. Each failure enumerates exactly the
// unsupported values found.
func (p *Plugin) CheckCompatibility(table VariantTable) error {
	badGenomes := make(map[string]struct{})
	badTypes := make(map[string]struct{})
	badChromosomes := make(map[string]struct{})
	for _, row := range table {
		if row.Genome != p.genome {
			badGenomes[string(row.Genome)] = struct{}{}
		}
		if _, ok := p.supportedVariations[row.Type]; !ok {
			badTypes[string(row.Type)] = struct{}{}
		}
		if _, ok := p.supportedChromosomes[row.Chromosome]; !ok {
			badChromosomes[row.Chromosome] = struct{}{}
		}
	}
	if len(badGenomes) > 0 {
		return NewIncompatibleGenomeError(p.name, sortedKeys(badGenomes))
	}
	if len(badTypes) > 0 {
		return NewIncompatibleVariationError(p.name, sortedKeys(badTypes))
	}
	if len(badChromosomes) > 0 {
		return NewIncompatibleChromosomeError(p.name, sortedKeys(badChromosomes))
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
