// codec.go: registry of exchange-file codecs for container entry points
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Codec encodes a variant table into a plugin's declared input format and
// decodes the plugin's output file back into a score table.
//
// Codecs form a small open registry: new formats are added by registering
// new entries, never by touching entry-point logic.
type Codec interface {
	// Name returns the format name the codec is registered under.
	Name() string

	// EncodeInput writes the variant table in the codec's format.
	EncodeInput(table VariantTable, w io.Writer) error

	// DecodeOutput reads a score table in the codec's format. The input
	// variant table is available for codecs that have to recover variant
	// identity from positional columns.
	DecodeOutput(table VariantTable, r io.Reader) (ScoreTable, error)

	// DecodesOutput reports whether the codec can decode a plugin's
	// output file. Input-only formats return false and their DecodeOutput
	// always fails.
	DecodesOutput() bool
}

// CodecRegistry maps format names to codecs. Registries are instance-based
// and populated at construction; there is no ambient global registry.
type CodecRegistry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewCodecRegistry creates a registry pre-populated with the built-in CSV
// and VCF codecs.
func NewCodecRegistry() *CodecRegistry {
	registry := &CodecRegistry{codecs: make(map[string]Codec)}
	// Built-ins cannot collide in a fresh registry.
	_ = registry.Register(CSVCodec{})
	_ = registry.Register(VCFCodec{})
	return registry
}

// Register adds a codec under its format name. Registering a duplicate
// format name fails.
func (r *CodecRegistry) Register(codec Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := strings.ToUpper(codec.Name())
	if _, exists := r.codecs[name]; exists {
		return NewCodecDuplicateError(codec.Name())
	}
	r.codecs[name] = codec
	return nil
}

// Get looks up a codec by format name, case-insensitively.
func (r *CodecRegistry) Get(format string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codec, ok := r.codecs[strings.ToUpper(format)]
	if !ok {
		return nil, NewCodecNotFoundError(format)
	}
	return codec, nil
}

// Formats returns the registered format names.
func (r *CodecRegistry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		formats = append(formats, name)
	}
	return formats
}

// CSVCodec exchanges variant data as comma-separated values.
//
// Input files carry the columns CHROM,POS,REF,ALT. Output files must carry
// a SCORE column; variant identity is recovered either from an explicit UID
// column or by joining on the positional columns.
type CSVCodec struct{}

// Name implements Codec.
func (CSVCodec) Name() string { return "CSV" }

// DecodesOutput implements Codec.
func (CSVCodec) DecodesOutput() bool { return true }

// EncodeInput implements Codec.
func (CSVCodec) EncodeInput(table VariantTable, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"CHROM", "POS", "REF", "ALT"}); err != nil {
		return NewExchangeEncodingError("CSV", err)
	}
	for _, row := range table {
		record := []string{row.Chromosome, strconv.FormatInt(row.Position, 10), row.Ref, row.Alt}
		if err := writer.Write(record); err != nil {
			return NewExchangeEncodingError("CSV", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return NewExchangeEncodingError("CSV", err)
	}
	return nil
}

// DecodeOutput implements Codec.
func (CSVCodec) DecodeOutput(table VariantTable, r io.Reader) (ScoreTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, NewExchangeDecodingError("CSV", err)
	}
	if len(rows) == 0 {
		return ScoreTable{}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	scoreCol, ok := columns["SCORE"]
	if !ok {
		return nil, NewExchangeDecodingError("CSV", fmt.Errorf("output file has no SCORE column"))
	}

	// UID column wins; otherwise recover identity from positional columns.
	if uidCol, ok := columns["UID"]; ok {
		scores := make(ScoreTable, 0, len(rows)-1)
		for _, row := range rows[1:] {
			uid, err := strconv.ParseInt(row[uidCol], 10, 64)
			if err != nil {
				return nil, NewExchangeDecodingError("CSV", err)
			}
			score, err := strconv.ParseFloat(row[scoreCol], 64)
			if err != nil {
				return nil, NewExchangeDecodingError("CSV", err)
			}
			scores = append(scores, ScoreEntry{UID: uid, Score: score})
		}
		return scores, nil
	}

	for _, name := range []string{"CHROM", "POS", "REF", "ALT"} {
		if _, ok := columns[name]; !ok {
			return nil, NewExchangeDecodingError("CSV", fmt.Errorf("output file has neither UID nor %s column", name))
		}
	}
	index := make(map[string]int64, len(table))
	for _, row := range table {
		index[variantKey(row.Chromosome, strconv.FormatInt(row.Position, 10), row.Ref, row.Alt)] = row.UID
	}
	scores := make(ScoreTable, 0, len(rows)-1)
	for _, row := range rows[1:] {
		key := variantKey(row[columns["CHROM"]], row[columns["POS"]], row[columns["REF"]], row[columns["ALT"]])
		uid, ok := index[key]
		if !ok {
			// Keep decoding strict: an unknown variant in the output is
			// an identity violation, not a row to drop silently.
			return nil, NewExchangeDecodingError("CSV", fmt.Errorf("output row %s does not match any input variant", key))
		}
		score, err := strconv.ParseFloat(row[columns["SCORE"]], 64)
		if err != nil {
			return nil, NewExchangeDecodingError("CSV", err)
		}
		scores = append(scores, ScoreEntry{UID: uid, Score: score})
	}
	return scores, nil
}

func variantKey(chrom, pos, ref, alt string) string {
	return strings.TrimSpace(chrom) + ":" + strings.TrimSpace(pos) + ":" + strings.TrimSpace(ref) + ">" + strings.TrimSpace(alt)
}

// VCFCodec writes variant tables as minimal VCF 4.1 input files.
//
// VCF is an input-only exchange format; plugins report their scores through
// a tabular output format such as CSV.
type VCFCodec struct{}

// Name implements Codec.
func (VCFCodec) Name() string { return "VCF" }

// DecodesOutput implements Codec.
func (VCFCodec) DecodesOutput() bool { return false }

// EncodeInput implements Codec.
func (VCFCodec) EncodeInput(table VariantTable, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("##fileformat=VCFv4.1\n")
	sb.WriteString("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n")
	for _, row := range table {
		sb.WriteString(row.Chromosome)
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatInt(row.Position, 10))
		sb.WriteString("\t.\t")
		sb.WriteString(row.Ref)
		sb.WriteByte('\t')
		sb.WriteString(row.Alt)
		sb.WriteString("\t40\t.\t.\n")
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return NewExchangeEncodingError("VCF", err)
	}
	return nil
}

// DecodeOutput implements Codec. VCF output decoding is not supported.
func (VCFCodec) DecodeOutput(table VariantTable, r io.Reader) (ScoreTable, error) {
	return nil, NewCodecUnsupportedError("VCF", "output decoding")
}
