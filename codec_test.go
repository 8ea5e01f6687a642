// codec_test.go: exchange codec tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRegistry(t *testing.T) {
	registry := NewCodecRegistry()

	t.Run("built_in_codecs_are_registered", func(t *testing.T) {
		for _, format := range []string{"CSV", "csv", "VCF", "vcf"} {
			codec, err := registry.Get(format)
			require.NoError(t, err)
			assert.NotNil(t, codec)
		}
	})

	t.Run("unknown_format_is_rejected", func(t *testing.T) {
		_, err := registry.Get("parquet")
		require.Error(t, err)
	})

	t.Run("duplicate_registration_is_rejected", func(t *testing.T) {
		err := registry.Register(CSVCodec{})
		require.Error(t, err)
	})
}

func TestCSVCodec(t *testing.T) {
	table := fourVariantData().VariantTable()

	t.Run("encode_writes_positional_columns", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, CSVCodec{}.EncodeInput(table, &buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "CHROM,POS,REF,ALT", lines[0])
		assert.Equal(t, "1,100,A,G", lines[1])
	})

	t.Run("decode_with_uid_column", func(t *testing.T) {
		output := "UID,SCORE\n0,0.1\n1,0.6\n2,0.4\n3,0.9\n"
		scores, err := CSVCodec{}.DecodeOutput(table, strings.NewReader(output))
		require.NoError(t, err)
		require.Len(t, scores, 4)
		assert.Equal(t, 0.6, scores.Lookup()[1])
	})

	t.Run("decode_recovers_identity_from_positional_columns", func(t *testing.T) {
		output := "CHROM,POS,REF,ALT,SCORE\n1,100,A,G,0.1\nX,400,T,C,0.9\n"
		scores, err := CSVCodec{}.DecodeOutput(table, strings.NewReader(output))
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, 0.1, scores.Lookup()[0])
		assert.Equal(t, 0.9, scores.Lookup()[3])
	})

	t.Run("decode_rejects_rows_matching_no_input_variant", func(t *testing.T) {
		output := "CHROM,POS,REF,ALT,SCORE\n9,999,A,G,0.5\n"
		_, err := CSVCodec{}.DecodeOutput(table, strings.NewReader(output))
		require.Error(t, err)
	})

	t.Run("decode_requires_a_score_column", func(t *testing.T) {
		output := "UID,VALUE\n0,0.1\n"
		_, err := CSVCodec{}.DecodeOutput(table, strings.NewReader(output))
		require.Error(t, err)
	})
}

func TestVCFCodec(t *testing.T) {
	table := fourVariantData().VariantTable()

	t.Run("encode_writes_vcf_header_and_records", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, VCFCodec{}.EncodeInput(table, &buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "##fileformat=VCFv4.1", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "#CHROM"))
		assert.Equal(t, "1\t100\t.\tA\tG\t40\t.\t.", lines[2])
	})

	t.Run("output_decoding_is_unsupported", func(t *testing.T) {
		_, err := VCFCodec{}.DecodeOutput(table, strings.NewReader(""))
		require.Error(t, err)
	})
}
