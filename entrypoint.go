// entrypoint.go: the single execution contract behind every plugin
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import "context"

// EntryPoint is the execution contract every backend satisfies: run the
// method's scoring logic against a variant table and hand back a score
// table with exactly an identifier and a numeric score per scored variant.
//
// The set of backends is a closed tagged pair: LocalScriptEntryPoint and
// ContainerEntryPoint. New modes are new variants behind this contract,
// not new branches scattered across the builder.
type EntryPoint interface {
	// Run executes the scoring logic. Any runtime failure of the foreign
	// logic surfaces as an attributed execution error.
	Run(ctx context.Context, table VariantTable) (ScoreTable, error)

	// Mode returns the manifest mode token the entry point was built from.
	Mode() EntryPointMode
}
