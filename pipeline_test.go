// pipeline_test.go: end-to-end pipeline tests
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineData = `CHROM,POS,REF,ALT,CLASS,TYPE,RG
1,100,A,G,benign,snp,hg38
1,5000,C,T,pathogenic,snp,hg38
2,12345,G,A,benign,snp,hg38
X,999,T,C,pathogenic,snp,hg38
`

// parityScript scores odd positions pathogenic and even ones benign.
// Against pipelineData that yields exactly one of each confusion cell.
const parityScript = `import json, sys
request = json.loads(sys.stdin.readline())
scores = [{"uid": v["uid"], "score": 0.9 if v["pos"] % 2 else 0.1} for v in request["variants"]]
print(json.dumps({"scores": scores}))
`

const crashingScript = `import sys
sys.exit(1)
`

func writePipelineFixture(t *testing.T, scripts map[string]string) (string, string) {
	t.Helper()
	root := t.TempDir()
	dataPath := filepath.Join(root, "variants.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(pipelineData), 0o644))

	pluginRoot := filepath.Join(root, "plugins")
	for name, script := range scripts {
		dir := filepath.Join(pluginRoot, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "score.py"), []byte(script), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(scriptManifest(name)), 0o644))
	}
	return dataPath, pluginRoot
}

func TestRunPipeline(t *testing.T) {
	t.Run("end_to_end_with_a_script_plugin", func(t *testing.T) {
		requirePython(t)
		dataPath, pluginRoot := writePipelineFixture(t, map[string]string{"parity": parityScript})

		report, err := RunPipeline(context.Background(), PipelineOptions{
			DataPath:   dataPath,
			PluginPath: pluginRoot,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, report.Variants)
		assert.Empty(t, report.Failures())

		entry, ok := report.Entry("parity")
		require.True(t, ok)
		assert.InDelta(t, 0.5, entry.Metrics["accuracy"], 1e-9)
		assert.Contains(t, entry.Summaries, "confusion-matrix")

		var buf bytes.Buffer
		report.WriteMetrics(&buf)
		assert.Contains(t, buf.String(), "parity")
	})

	t.Run("failing_plugin_is_isolated", func(t *testing.T) {
		requirePython(t)
		dataPath, pluginRoot := writePipelineFixture(t, map[string]string{
			"parity":  parityScript,
			"crasher": crashingScript,
		})

		report, err := RunPipeline(context.Background(), PipelineOptions{
			DataPath:   dataPath,
			PluginPath: pluginRoot,
		})
		require.NoError(t, err)
		require.Len(t, report.Failures(), 1)
		assert.Equal(t, "crasher", report.Failures()[0].Plugin.Name())

		_, ok := report.Entry("parity")
		assert.True(t, ok)
		_, ok = report.Entry("crasher")
		assert.False(t, ok)
	})

	t.Run("all_plugins_failing_fails_the_run", func(t *testing.T) {
		requirePython(t)
		dataPath, pluginRoot := writePipelineFixture(t, map[string]string{"crasher": crashingScript})

		_, err := RunPipeline(context.Background(), PipelineOptions{
			DataPath:   dataPath,
			PluginPath: pluginRoot,
		})
		require.Error(t, err)
	})

	t.Run("empty_selection_fails_the_run", func(t *testing.T) {
		dataPath, pluginRoot := writePipelineFixture(t, map[string]string{})
		require.NoError(t, os.MkdirAll(pluginRoot, 0o755))

		_, err := RunPipeline(context.Background(), PipelineOptions{
			DataPath:   dataPath,
			PluginPath: pluginRoot,
		})
		require.Error(t, err)
	})

	t.Run("extraction_failure_fails_the_run", func(t *testing.T) {
		_, pluginRoot := writePipelineFixture(t, map[string]string{})
		require.NoError(t, os.MkdirAll(pluginRoot, 0o755))

		_, err := RunPipeline(context.Background(), PipelineOptions{
			DataPath:   filepath.Join(t.TempDir(), "missing.csv"),
			PluginPath: pluginRoot,
		})
		require.Error(t, err)
	})
}
