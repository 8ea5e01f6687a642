// data_test.go: evaluation data construction and validation tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecordsAssignsSequentialUIDs(t *testing.T) {
	data := fourVariantData()
	require.Equal(t, 4, data.Len())

	uids := data.VariantTable().UIDs()
	assert.Equal(t, []int64{0, 1, 2, 3}, uids)

	// Input UID values are overwritten, never trusted.
	records := []VariantRecord{
		{UID: 99, Chromosome: "1", Position: 1, Ref: "A", Alt: "C", Type: VariationSNP, Genome: GenomeHG38, Class: "benign"},
	}
	rebuilt, err := FromRecords(records, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rebuilt.Records()[0].UID)
}

func TestFromRecordsValidation(t *testing.T) {
	valid := VariantRecord{Chromosome: "1", Position: 10, Ref: "A", Alt: "G", Type: VariationSNP, Genome: GenomeHG38, Class: "benign"}

	cases := []struct {
		name   string
		mutate func(*VariantRecord)
	}{
		{"bad_chromosome", func(r *VariantRecord) { r.Chromosome = "chr99" }},
		{"zero_position", func(r *VariantRecord) { r.Position = 0 }},
		{"bad_ref", func(r *VariantRecord) { r.Ref = "AXG" }},
		{"empty_alt", func(r *VariantRecord) { r.Alt = "" }},
		{"n_in_ref", func(r *VariantRecord) { r.Ref = "N" }},
		{"bad_type", func(r *VariantRecord) { r.Type = "inversion" }},
		{"bad_genome", func(r *VariantRecord) { r.Genome = "mm10" }},
		{"bad_class", func(r *VariantRecord) { r.Class = "uncertain" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := valid
			tc.mutate(&record)
			_, err := FromRecords([]VariantRecord{record}, nil)
			require.Error(t, err)
		})
	}

	t.Run("n_in_alt_is_allowed", func(t *testing.T) {
		record := valid
		record.Alt = "N"
		_, err := FromRecords([]VariantRecord{record}, nil)
		require.NoError(t, err)
	})
}

func TestVariantTableExcludesGroundTruth(t *testing.T) {
	data := fourVariantData()
	table := data.VariantTable()
	require.Len(t, table, 4)
	assert.Equal(t, "1", table[0].Chromosome)
	assert.Equal(t, int64(100), table[0].Position)
}

func TestInterpretedClasses(t *testing.T) {
	data := fourVariantData()
	classes, err := data.InterpretedClasses()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, classes)

	byUID, err := data.ClassByUID()
	require.NoError(t, err)
	assert.Equal(t, 1, byUID[3])
}

func TestVariantTableCloneIsIndependent(t *testing.T) {
	data := fourVariantData()
	table := data.VariantTable()
	cloned := table.Clone()
	cloned[0].Chromosome = "22"
	assert.Equal(t, "1", table[0].Chromosome)
}
