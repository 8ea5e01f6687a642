// enums.go: closed vocabularies for variation types, genomes and classes
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"sort"
	"strconv"
	"strings"
)

// VariationType classifies the allele change of a variant.
type VariationType string

const (
	VariationSNP       VariationType = "snp"
	VariationIndel     VariationType = "indel"
	VariationCoding    VariationType = "coding"
	VariationNonCoding VariationType = "non-coding"
)

// ResolveVariationType resolves a token into a VariationType.
//
// Tokens are matched case-insensitively; "snv" and
// "single_nucleotide_variant" (the ClinVar CLNVC label) alias to snp.
func ResolveVariationType(token string) (VariationType, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "snp", "snv", "single_nucleotide_variant":
		return VariationSNP, nil
	case "indel":
		return VariationIndel, nil
	case "coding":
		return VariationCoding, nil
	case "non-coding":
		return VariationNonCoding, nil
	default:
		return "", NewUnknownVariationTypeError(token)
	}
}

// ReferenceGenome identifies a human reference genome build.
type ReferenceGenome string

const (
	GenomeHG16 ReferenceGenome = "hg16"
	GenomeHG17 ReferenceGenome = "hg17"
	GenomeHG18 ReferenceGenome = "hg18"
	GenomeHG19 ReferenceGenome = "hg19"
	GenomeHG38 ReferenceGenome = "hg38"
)

// ResolveReferenceGenome resolves a token into a ReferenceGenome.
//
// External database labels alias to the canonical build identifiers:
// anything containing "grch38" resolves to hg38 and anything containing
// "grch37" resolves to hg19.
func ResolveReferenceGenome(token string) (ReferenceGenome, error) {
	name := strings.ToLower(strings.TrimSpace(token))
	switch {
	case strings.Contains(name, "grch38"):
		return GenomeHG38, nil
	case strings.Contains(name, "grch37"):
		return GenomeHG19, nil
	}
	switch ReferenceGenome(name) {
	case GenomeHG16, GenomeHG17, GenomeHG18, GenomeHG19, GenomeHG38:
		return ReferenceGenome(name), nil
	default:
		return "", NewUnknownGenomeError(token)
	}
}

// DefaultChromosomes returns the standard human chromosome vocabulary:
// autosomes 1-22 plus X, Y and MT.
func DefaultChromosomes() []string {
	chroms := make([]string, 0, 25)
	for i := 1; i <= 22; i++ {
		chroms = append(chroms, strconv.Itoa(i))
	}
	return append(chroms, "X", "Y", "MT")
}

// ClassMap maps ground-truth class labels to ordinal class indices.
//
// The default binary map assigns benign to 0 and pathogenic to 1;
// multi-class evaluations supply their own map (for example
// {"benign": 0, "likely pathogenic": 1, "pathogenic": 2}).
type ClassMap map[string]int

// DefaultClassMap returns the binary benign/pathogenic class map.
func DefaultClassMap() ClassMap {
	return ClassMap{"benign": 0, "pathogenic": 1}
}

// Resolve maps a raw class label to its ordinal class index.
//
// Labels are matched case-insensitively after normalization through
// ResolveClassLabel, so ClinVar clinical-significance spellings such as
// "Likely_benign" or the legacy numeric codes resolve as well.
func (m ClassMap) Resolve(label string) (int, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if class, ok := m[normalized]; ok {
		return class, nil
	}
	canonical, err := ResolveClassLabel(normalized)
	if err != nil {
		return 0, err
	}
	if class, ok := m[canonical]; ok {
		return class, nil
	}
	return 0, NewUnknownClassLabelError(label)
}

// Labels returns the distinct class indices in descending order, the fixed
// ordering used to make confusion-matrix cell identity unambiguous.
func (m ClassMap) Labels() []int {
	seen := make(map[int]struct{}, len(m))
	labels := make([]int, 0, len(m))
	for _, class := range m {
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		labels = append(labels, class)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(labels)))
	return labels
}

// NumClasses returns the number of distinct class indices in the map.
func (m ClassMap) NumClasses() int {
	seen := make(map[int]struct{}, len(m))
	for _, class := range m {
		seen[class] = struct{}{}
	}
	return len(seen)
}

// ResolveClassLabel normalizes a raw pathogenicity label to a canonical one.
//
// Any label containing "benign" or the ClinVar code "2" resolves to benign;
// any label containing "pathogenic" or the code "5" resolves to pathogenic.
// "likely pathogenic" is checked before the plain substring so it survives
// as its own label in multi-class maps.
func ResolveClassLabel(label string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(name, "likely pathogenic") || strings.Contains(name, "likely_pathogenic"):
		return "likely pathogenic", nil
	case strings.Contains(name, "benign") || strings.Contains(name, "2"):
		return "benign", nil
	case strings.Contains(name, "pathogenic") || strings.Contains(name, "5"):
		return "pathogenic", nil
	default:
		return "", NewUnknownClassLabelError(label)
	}
}
