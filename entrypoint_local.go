// entrypoint_local.go: local script execution over an isolated subprocess
//
// The foreign scoring logic runs in a child interpreter process rather than
// in the harness process itself: the variant table goes to the child as a
// single line of JSON on stdin and the score table comes back as a single
// line of JSON on stdout. Process-level isolation keeps untrusted plugin
// code out of the harness address space.
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultInterpreter launches local-script entry points when the manifest
// does not declare one.
const DefaultInterpreter = "python3"

// scriptRequest is the JSON document written to the child's stdin.
type scriptRequest struct {
	Variants []scriptVariant `json:"variants"`
}

// scriptVariant mirrors one variant-table row on the wire.
type scriptVariant struct {
	UID    int64  `json:"uid"`
	Chrom  string `json:"chrom"`
	Pos    int64  `json:"pos"`
	Ref    string `json:"ref"`
	Alt    string `json:"alt"`
	Type   string `json:"type"`
	Genome string `json:"genome"`
}

// scriptResponse is the JSON document read from the child's stdout.
type scriptResponse struct {
	Scores []scriptScore `json:"scores"`
	Error  *string       `json:"error,omitempty"`
}

type scriptScore struct {
	UID   int64   `json:"uid"`
	Score float64 `json:"score"`
}

// LocalScriptEntryPoint runs a plugin's scoring script as a subprocess of
// the declared interpreter.
type LocalScriptEntryPoint struct {
	scriptPath  string
	interpreter string
	logger      Logger
}

// Mode implements EntryPoint.
func (e *LocalScriptEntryPoint) Mode() EntryPointMode { return ModeLocalScript }

// ScriptPath returns the resolved path of the scoring script.
func (e *LocalScriptEntryPoint) ScriptPath() string { return e.scriptPath }

// Run implements EntryPoint.
func (e *LocalScriptEntryPoint) Run(ctx context.Context, table VariantTable) (ScoreTable, error) {
	request := scriptRequest{Variants: make([]scriptVariant, len(table))}
	for i, row := range table {
		request.Variants[i] = scriptVariant{
			UID:    row.UID,
			Chrom:  row.Chromosome,
			Pos:    row.Position,
			Ref:    row.Ref,
			Alt:    row.Alt,
			Type:   string(row.Type),
			Genome: string(row.Genome),
		}
	}
	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, NewScriptExecutionError(e.scriptPath, err)
	}

	cmd := exec.CommandContext(ctx, e.interpreter, e.scriptPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdin = bytes.NewReader(append(requestData, '\n'))
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, NewScriptExecutionError(e.scriptPath, err)
	}

	e.logger.Debug("Starting local script subprocess",
		"interpreter", e.interpreter,
		"script", e.scriptPath,
		"variants", len(table))

	if err := cmd.Start(); err != nil {
		return nil, NewScriptExecutionError(e.scriptPath, err)
	}

	// Read exactly one response line; the rest of stdout is drained so a
	// chatty script cannot block on a full pipe.
	responseData, readErr := readResponseLine(stdout)
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()
	if waitErr != nil {
		return nil, NewScriptExecutionError(e.scriptPath,
			fmt.Errorf("%w; stderr: %s", waitErr, strings.TrimSpace(stderr.String())))
	}
	if readErr != nil {
		return nil, NewScriptExecutionError(e.scriptPath, readErr)
	}

	var response scriptResponse
	if err := json.Unmarshal(responseData, &response); err != nil {
		return nil, NewScriptExecutionError(e.scriptPath, err)
	}
	if response.Error != nil {
		return nil, NewScriptReportedError(e.scriptPath, *response.Error)
	}

	scores := make(ScoreTable, len(response.Scores))
	for i, entry := range response.Scores {
		scores[i] = ScoreEntry{UID: entry.UID, Score: entry.Score}
	}
	return scores, nil
}

func readResponseLine(stdout io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}
	data := make([]byte, len(scanner.Bytes()))
	copy(data, scanner.Bytes())
	return data, nil
}
