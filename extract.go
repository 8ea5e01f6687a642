// extract.go: building evaluation data from annotated variant files
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Extractor turns a format-specific variant file into validated
// evaluation data.
type Extractor interface {
	// Extract parses the file at path and returns the resulting data set.
	Extract(path string) (*EvaluationData, error)
}

// CSVExtractor reads annotated variants from a comma-separated file with a
// CHROM, POS, REF, ALT, CLASS, TYPE and RG header. Column order is free;
// chromosome values may carry a "chr" prefix.
type CSVExtractor struct {
	// ClassMap overrides the default benign/pathogenic label mapping.
	ClassMap ClassMap
}

// Extract implements Extractor.
func (e CSVExtractor) Extract(path string) (*EvaluationData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, NewExtractionError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, NewExtractionError(path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"CHROM", "POS", "REF", "ALT", "CLASS", "TYPE", "RG"} {
		if _, ok := index[required]; !ok {
			return nil, NewExtractionError(path, fmt.Errorf("missing column %q", required))
		}
	}

	records := []VariantRecord{}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewExtractionError(path, err)
		}
		record, err := e.buildRecord(fields, index)
		if err != nil {
			return nil, NewExtractionError(path, err)
		}
		records = append(records, record)
	}
	data, err := FromRecords(records, e.ClassMap)
	if err != nil {
		return nil, NewExtractionError(path, err)
	}
	return data, nil
}

func (e CSVExtractor) buildRecord(fields []string, index map[string]int) (VariantRecord, error) {
	position, err := strconv.ParseInt(strings.TrimSpace(fields[index["POS"]]), 10, 64)
	if err != nil {
		return VariantRecord{}, fmt.Errorf("invalid position %q: %w", fields[index["POS"]], err)
	}
	variation, err := ResolveVariationType(fields[index["TYPE"]])
	if err != nil {
		return VariantRecord{}, err
	}
	genome, err := ResolveReferenceGenome(fields[index["RG"]])
	if err != nil {
		return VariantRecord{}, err
	}
	return VariantRecord{
		Chromosome: normalizeChromosome(fields[index["CHROM"]]),
		Position:   position,
		Ref:        strings.ToUpper(strings.TrimSpace(fields[index["REF"]])),
		Alt:        strings.ToUpper(strings.TrimSpace(fields[index["ALT"]])),
		Type:       variation,
		Genome:     genome,
		Class:      strings.TrimSpace(fields[index["CLASS"]]),
	}, nil
}

// ClinVarVCFExtractor reads annotated variants from a ClinVar VCF release.
// The ground-truth label comes from the CLNSIG info key, the variation type
// from CLNVC and the reference genome from the ##reference meta line.
// Records whose significance is neither benign nor pathogenic are skipped.
type ClinVarVCFExtractor struct{}

// Extract implements Extractor.
func (e ClinVarVCFExtractor) Extract(path string) (*EvaluationData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, NewExtractionError(path, err)
	}
	defer file.Close()

	genome := GenomeHG38
	records := []VariantRecord{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "##reference=") {
			resolved, err := ResolveReferenceGenome(strings.TrimPrefix(line, "##reference="))
			if err != nil {
				return nil, NewExtractionError(path, err)
			}
			genome = resolved
			continue
		}
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		record, ok, err := e.buildRecord(line, genome)
		if err != nil {
			return nil, NewExtractionError(path, err)
		}
		if ok {
			records = append(records, record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, NewExtractionError(path, err)
	}
	data, err := FromRecords(records, nil)
	if err != nil {
		return nil, NewExtractionError(path, err)
	}
	return data, nil
}

func (e ClinVarVCFExtractor) buildRecord(line string, genome ReferenceGenome) (VariantRecord, bool, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return VariantRecord{}, false, fmt.Errorf("malformed record line %q", line)
	}
	info := parseInfoField(fields[7])

	class, ok := clinvarClass(info["CLNSIG"])
	if !ok {
		return VariantRecord{}, false, nil
	}

	ref := strings.ToUpper(fields[3])
	alt := strings.ToUpper(fields[4])
	if !refPattern.MatchString(ref) || !altPattern.MatchString(alt) {
		return VariantRecord{}, false, nil
	}

	position, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return VariantRecord{}, false, fmt.Errorf("invalid position %q: %w", fields[1], err)
	}

	variation := VariationIndel
	if token, ok := info["CLNVC"]; ok {
		if resolved, err := ResolveVariationType(token); err == nil {
			variation = resolved
		}
	} else if len(ref) == 1 && len(alt) == 1 {
		variation = VariationSNP
	}

	return VariantRecord{
		Chromosome: normalizeChromosome(fields[0]),
		Position:   position,
		Ref:        ref,
		Alt:        alt,
		Type:       variation,
		Genome:     genome,
		Class:      class,
	}, true, nil
}

// clinvarClass maps a CLNSIG value to a plain benign/pathogenic label.
// Uncertain, conflicting and drug-response significances carry no usable
// ground truth and are dropped.
func clinvarClass(significance string) (string, bool) {
	switch strings.ToLower(significance) {
	case "benign", "likely_benign", "benign/likely_benign":
		return "benign", true
	case "pathogenic", "likely_pathogenic", "pathogenic/likely_pathogenic":
		return "pathogenic", true
	default:
		return "", false
	}
}

func parseInfoField(info string) map[string]string {
	pairs := make(map[string]string)
	for _, entry := range strings.Split(info, ";") {
		key, value, found := strings.Cut(entry, "=")
		if found {
			pairs[key] = value
		}
	}
	return pairs
}

func normalizeChromosome(chrom string) string {
	chrom = strings.TrimSpace(chrom)
	chrom = strings.TrimPrefix(chrom, "chr")
	if strings.EqualFold(chrom, "m") || strings.EqualFold(chrom, "mt") {
		return "MT"
	}
	return strings.ToUpper(chrom)
}
