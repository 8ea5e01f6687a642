// data.go: evaluation data set, variant tables and score tables
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"regexp"
	"strconv"
)

// VariantRecord is a single genomic position/allele-change record under
// evaluation, including the expected classification.
type VariantRecord struct {
	// UID is the unique variant identifier, assigned once at data set
	// creation and never reused.
	UID        int64
	Chromosome string
	Position   int64
	Ref        string
	Alt        string
	Type       VariationType
	Genome     ReferenceGenome
	// Class is the ground-truth label, resolved through the data set's
	// class map when interpreted.
	Class string
}

// VariantRow is the plugin-facing view of a variant: everything from the
// record except the ground truth.
type VariantRow struct {
	UID        int64
	Chromosome string
	Position   int64
	Ref        string
	Alt        string
	Type       VariationType
	Genome     ReferenceGenome
}

// VariantTable is the fixed tabular contract handed to every plugin.
type VariantTable []VariantRow

// Clone returns an independent copy of the table so concurrent tasks never
// share mutable state.
func (t VariantTable) Clone() VariantTable {
	cloned := make(VariantTable, len(t))
	copy(cloned, t)
	return cloned
}

// UIDs returns the identifiers of all rows in table order.
func (t VariantTable) UIDs() []int64 {
	uids := make([]int64, len(t))
	for i, row := range t {
		uids[i] = row.UID
	}
	return uids
}

// ScoreEntry pairs a variant identifier with the score a plugin assigned.
type ScoreEntry struct {
	UID   int64
	Score float64
}

// ScoreTable is the output contract of every plugin: one numeric score per
// scored variant identifier.
type ScoreTable []ScoreEntry

// Lookup builds a UID index over the score table.
func (t ScoreTable) Lookup() map[int64]float64 {
	index := make(map[int64]float64, len(t))
	for _, entry := range t {
		index[entry.UID] = entry.Score
	}
	return index
}

var (
	refPattern = regexp.MustCompile(`^[ACGT]+$`)
	altPattern = regexp.MustCompile(`^[ACGTN]+$`)
)

// EvaluationData is the ordered collection of variant records plus the
// class map used to interpret ground-truth labels.
type EvaluationData struct {
	records  []VariantRecord
	classMap ClassMap
}

// FromRecords creates an EvaluationData from records, assigning each record
// a sequential UID, and validates the result against the data constraints.
// The default benign/pathogenic class map is used when classMap is nil.
func FromRecords(records []VariantRecord, classMap ClassMap) (*EvaluationData, error) {
	if classMap == nil {
		classMap = DefaultClassMap()
	}
	owned := make([]VariantRecord, len(records))
	copy(owned, records)
	for i := range owned {
		owned[i].UID = int64(i)
	}
	data := &EvaluationData{records: owned, classMap: classMap}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks every record against the closed vocabularies and the
// structural constraints: chromosome in the standard set, position >= 1,
// REF matching ^[ACGT]+$, ALT matching ^[ACGTN]+$, resolvable class label.
func (d *EvaluationData) Validate() error {
	chroms := make(map[string]struct{})
	for _, chrom := range DefaultChromosomes() {
		chroms[chrom] = struct{}{}
	}
	for _, record := range d.records {
		if _, ok := chroms[record.Chromosome]; !ok {
			return NewInvalidRecordError(record.UID, "chromosome '"+record.Chromosome+"' is not in the standard set")
		}
		if record.Position < 1 {
			return NewInvalidRecordError(record.UID, "position "+strconv.FormatInt(record.Position, 10)+" is below 1")
		}
		if !refPattern.MatchString(record.Ref) {
			return NewInvalidRecordError(record.UID, "reference allele '"+record.Ref+"' is not a valid base sequence")
		}
		if !altPattern.MatchString(record.Alt) {
			return NewInvalidRecordError(record.UID, "alternative allele '"+record.Alt+"' is not a valid base sequence")
		}
		if _, err := ResolveVariationType(string(record.Type)); err != nil {
			return err
		}
		if _, err := ResolveReferenceGenome(string(record.Genome)); err != nil {
			return err
		}
		if _, err := d.classMap.Resolve(record.Class); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of variant records.
func (d *EvaluationData) Len() int {
	return len(d.records)
}

// Records returns a copy of the underlying records.
func (d *EvaluationData) Records() []VariantRecord {
	records := make([]VariantRecord, len(d.records))
	copy(records, d.records)
	return records
}

// ClassMap returns the class map used to interpret ground-truth labels.
func (d *EvaluationData) ClassMap() ClassMap {
	return d.classMap
}

// VariantTable derives the plugin-facing variant table: identifier and
// positional/type columns only, no ground truth.
func (d *EvaluationData) VariantTable() VariantTable {
	table := make(VariantTable, len(d.records))
	for i, record := range d.records {
		table[i] = VariantRow{
			UID:        record.UID,
			Chromosome: record.Chromosome,
			Position:   record.Position,
			Ref:        record.Ref,
			Alt:        record.Alt,
			Type:       record.Type,
			Genome:     record.Genome,
		}
	}
	return table
}

// InterpretedClasses resolves every record's ground-truth label through the
// class map, in record order.
func (d *EvaluationData) InterpretedClasses() ([]int, error) {
	classes := make([]int, len(d.records))
	for i, record := range d.records {
		class, err := d.classMap.Resolve(record.Class)
		if err != nil {
			return nil, err
		}
		classes[i] = class
	}
	return classes, nil
}

// ClassByUID resolves the ground-truth class for every UID in the data set.
func (d *EvaluationData) ClassByUID() (map[int64]int, error) {
	classes := make(map[int64]int, len(d.records))
	for _, record := range d.records {
		class, err := d.classMap.Resolve(record.Class)
		if err != nil {
			return nil, err
		}
		classes[record.UID] = class
	}
	return classes, nil
}
