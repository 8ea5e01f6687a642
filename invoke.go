// invoke.go: parallel invocation coordinator and output validation
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// InvocationResult captures the outcome of one plugin invocation: either a
// validated score table or the attributed failure, plus wall-clock timing.
type InvocationResult struct {
	Plugin   *Plugin
	Scores   ScoreTable
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the invocation produced usable output.
func (r InvocationResult) Succeeded() bool {
	return r.Err == nil
}

// Coordinator runs N plugins concurrently on a bounded worker pool.
//
// Tasks share no mutable state: each receives its own copy of the variant
// table and returns an independent result. A task's error, panic or schema
// violation is captured and attributed to that plugin without aborting
// sibling tasks. InvokeAll blocks until every dispatched task completes;
// completion order among concurrent tasks is unspecified.
type Coordinator struct {
	// Workers bounds the pool. Zero or negative selects the default of
	// available parallelism minus one (at least one); exactly one worker
	// serializes execution deterministically.
	Workers int
	Logger  Logger
}

// DefaultWorkerCount returns the default pool bound: available parallelism
// minus one, at least one.
func DefaultWorkerCount() int {
	if n := runtime.NumCPU() - 1; n > 1 {
		return n
	}
	return 1
}

// InvokeAll runs every plugin against its own copy of the variant table
// and returns one result per plugin, in the order the plugins were given.
// Compatibility checking, execution and output validation all happen
// inside the task boundary, so any of their failures is attributed to the
// plugin that caused it.
func (c *Coordinator) InvokeAll(ctx context.Context, plugins []*Plugin, table VariantTable) []InvocationResult {
	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkerCount()
	}
	logger := c.Logger
	if logger == nil {
		logger = DefaultLogger()
	}

	logger.Info("Invoke methods", "plugins", len(plugins), "workers", workers)

	jobs := make(chan int)
	results := make([]InvocationResult, len(plugins))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			results[i] = c.invokeOne(ctx, plugins[i], table, logger)
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for i := range plugins {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// invokeOne runs a single plugin task, converting panics in foreign or
// harness code into attributed execution errors.
func (c *Coordinator) invokeOne(ctx context.Context, plugin *Plugin, table VariantTable, logger Logger) (result InvocationResult) {
	started := timecache.CachedTime()
	result.Plugin = plugin
	defer func() {
		if recovered := recover(); recovered != nil {
			buf := make([]byte, 64<<10)
			n := runtime.Stack(buf, false)
			logger.Error("Panic recovered in plugin invocation",
				"plugin", plugin.Name(),
				"panic", recovered,
				"stack", string(buf[:n]))
			result.Scores = nil
			result.Err = NewExecutionPanicError(plugin.Name(), recovered)
		}
		result.Duration = time.Since(started)
	}()

	// Each task works on its own view of the input.
	scores, err := plugin.Run(ctx, table.Clone())
	if err != nil {
		logger.Warn("Plugin invocation failed", "plugin", plugin.Name(), "error", err)
		result.Err = err
		return result
	}
	result.Scores = scores
	return result
}

// ValidateScoreTable checks a plugin's output against the output contract:
// no identifier outside the input set, no identifier scored twice, every
// input identifier present unless the plugin is flexible, and every score
// a finite number.
func ValidateScoreTable(plugin *Plugin, input VariantTable, scores ScoreTable) error {
	known := make(map[int64]struct{}, len(input))
	for _, row := range input {
		known[row.UID] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(scores))
	var unknown []int64
	for _, entry := range scores {
		if _, ok := known[entry.UID]; !ok {
			unknown = append(unknown, entry.UID)
			continue
		}
		if _, dup := seen[entry.UID]; dup {
			return NewOutputDuplicateUIDError(plugin.Name(), entry.UID)
		}
		seen[entry.UID] = struct{}{}
		if math.IsNaN(entry.Score) || math.IsInf(entry.Score, 0) {
			return NewOutputNotNumericError(plugin.Name(), entry.UID)
		}
	}
	if len(unknown) > 0 {
		return NewOutputUnknownUIDError(plugin.Name(), unknown)
	}

	if !plugin.Flexible() {
		var missing []int64
		for _, row := range input {
			if _, ok := seen[row.UID]; !ok {
				missing = append(missing, row.UID)
			}
		}
		if len(missing) > 0 {
			return NewOutputMissingUIDError(plugin.Name(), missing)
		}
	}
	return nil
}
