// testsupport_test.go: shared fixtures for the evaluation tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import "context"

// stubEntryPoint runs an in-process scoring function, standing in for a
// script or container backend.
type stubEntryPoint struct {
	fn func(ctx context.Context, table VariantTable) (ScoreTable, error)
}

func (s stubEntryPoint) Run(ctx context.Context, table VariantTable) (ScoreTable, error) {
	return s.fn(ctx, table)
}

func (s stubEntryPoint) Mode() EntryPointMode { return ModeLocalScript }

// scoreByUID builds a stub entry point that assigns fixed scores by UID,
// omitting variants absent from the map.
func scoreByUID(scores map[int64]float64) stubEntryPoint {
	return stubEntryPoint{fn: func(_ context.Context, table VariantTable) (ScoreTable, error) {
		out := ScoreTable{}
		for _, row := range table {
			if score, ok := scores[row.UID]; ok {
				out = append(out, ScoreEntry{UID: row.UID, Score: score})
			}
		}
		return out, nil
	}}
}

type testPluginOptions struct {
	name       string
	variations []VariationType
	genome     ReferenceGenome
	cutoff     Cutoff
	flexible   bool
	entryPoint EntryPoint
}

// newTestPlugin builds a fully wired plugin without going through a
// manifest file. Defaults: snp support, hg38, all chromosomes, cutoff 0.5.
func newTestPlugin(options testPluginOptions) *Plugin {
	if options.name == "" {
		options.name = "Stub"
	}
	if options.variations == nil {
		options.variations = []VariationType{VariationSNP}
	}
	if options.genome == "" {
		options.genome = GenomeHG38
	}
	if options.cutoff == nil {
		options.cutoff = Cutoff{DefaultCutoff}
	}
	variations := make(map[VariationType]struct{}, len(options.variations))
	for _, variation := range options.variations {
		variations[variation] = struct{}{}
	}
	chromosomes := make(map[string]struct{})
	for _, chromosome := range DefaultChromosomes() {
		chromosomes[chromosome] = struct{}{}
	}
	return &Plugin{
		name:                 options.name,
		version:              "1.0",
		supportedVariations:  variations,
		supportedChromosomes: chromosomes,
		genome:               options.genome,
		cutoff:               options.cutoff,
		flexible:             options.flexible,
		entryPoint:           options.entryPoint,
	}
}

// fourVariantData builds the canonical benign/pathogenic evaluation set:
// UIDs 0..3 with classes benign, pathogenic, benign, pathogenic.
func fourVariantData() *EvaluationData {
	records := []VariantRecord{
		{Chromosome: "1", Position: 100, Ref: "A", Alt: "G", Type: VariationSNP, Genome: GenomeHG38, Class: "benign"},
		{Chromosome: "1", Position: 200, Ref: "C", Alt: "T", Type: VariationSNP, Genome: GenomeHG38, Class: "pathogenic"},
		{Chromosome: "2", Position: 300, Ref: "G", Alt: "A", Type: VariationSNP, Genome: GenomeHG38, Class: "benign"},
		{Chromosome: "X", Position: 400, Ref: "T", Alt: "C", Type: VariationSNP, Genome: GenomeHG38, Class: "pathogenic"},
	}
	data, err := FromRecords(records, nil)
	if err != nil {
		panic(err)
	}
	return data
}
