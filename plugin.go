// plugin.go: the Plugin model tying a manifest to an entry point
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"context"
)

// Plugin represents a declared external variant-scoring method together
// with its execution and compatibility metadata. Plugins are immutable
// after construction; identity is by name.
type Plugin struct {
	name                 string
	version              string
	supportedVariations  map[VariationType]struct{}
	supportedChromosomes map[string]struct{}
	genome               ReferenceGenome
	databases            []string
	cutoff               Cutoff
	flexible             bool
	entryPoint           EntryPoint
	manifestPath         string
}

// Name returns the plugin's identity key.
func (p *Plugin) Name() string { return p.name }

// Version returns the free-form plugin version string.
func (p *Plugin) Version() string { return p.version }

// Genome returns the reference genome the method was built for.
func (p *Plugin) Genome() ReferenceGenome { return p.genome }

// Cutoff returns the pathogenicity threshold(s) declared in the manifest.
func (p *Plugin) Cutoff() Cutoff { return p.cutoff }

// Flexible reports whether the plugin may omit scores for some variants
// without failing output validation.
func (p *Plugin) Flexible() bool { return p.flexible }

// Databases returns the informational list of accompanying databases.
func (p *Plugin) Databases() []string {
	databases := make([]string, len(p.databases))
	copy(databases, p.databases)
	return databases
}

// EntryPoint returns the execution backend behind the plugin.
func (p *Plugin) EntryPoint() EntryPoint { return p.entryPoint }

// ManifestPath returns the path of the manifest the plugin was built from.
func (p *Plugin) ManifestPath() string { return p.manifestPath }

// SupportedVariations returns the declared variation-type set.
func (p *Plugin) SupportedVariations() []VariationType {
	variations := make([]VariationType, 0, len(p.supportedVariations))
	for variation := range p.supportedVariations {
		variations = append(variations, variation)
	}
	return variations
}

// SupportedChromosomes returns the declared chromosome set.
func (p *Plugin) SupportedChromosomes() []string {
	chromosomes := make([]string, 0, len(p.supportedChromosomes))
	for chromosome := range p.supportedChromosomes {
		chromosomes = append(chromosomes, chromosome)
	}
	return chromosomes
}

// ScoreColumnName returns the merged-table column the plugin's scores are
// published under: "<name>_SCORE".
func (p *Plugin) ScoreColumnName() string {
	return p.name + "_SCORE"
}

// IsMultiClass reports whether the plugin buckets scores into more than two
// classes.
func (p *Plugin) IsMultiClass() bool {
	return p.cutoff.IsMultiClass()
}

// Run executes the plugin against the variant table.
//
// The compatibility of the data with the plugin is checked first, then the
// entry point runs, and finally the returned score table is validated
// against the output contract before it is handed back.
func (p *Plugin) Run(ctx context.Context, table VariantTable) (ScoreTable, error) {
	if err := p.CheckCompatibility(table); err != nil {
		return nil, err
	}
	logger := LoggerFromContext(ctx)
	logger.Debug("Invoke method", "plugin", p.name)
	scores, err := p.entryPoint.Run(ctx, table)
	if err != nil {
		// Entry points only know their script path or image; the plugin
		// attribution is attached here.
		return nil, NewPluginExecutionError(p.name, err)
	}
	logger.Debug("Finish method", "plugin", p.name)
	if err := ValidateScoreTable(p, table, scores); err != nil {
		return nil, err
	}
	return scores, nil
}
