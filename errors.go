// errors.go: structured error definitions for the vpmbench harness
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"strings"

	"github.com/agilira/go-errors"
)

// Error codes for the vpmbench harness
const (
	// Manifest errors (1000-1099): malformed or incomplete plugin
	// declarations, raised before any data touches the plugin.
	ErrCodeManifestKeyMissing   = "MANIFEST_1001"
	ErrCodeManifestParse        = "MANIFEST_1002"
	ErrCodeManifestEntryPoint   = "MANIFEST_1003"
	ErrCodeManifestUnknownMode  = "MANIFEST_1004"
	ErrCodeManifestCutoff       = "MANIFEST_1005"
	ErrCodeManifestVocabulary   = "MANIFEST_1006"
	ErrCodeManifestMissingFile  = "MANIFEST_1007"
	ErrCodeManifestMissingCodec = "MANIFEST_1008"

	// Compatibility errors (1100-1199): declared plugin capabilities do
	// not cover the presented data, raised before invocation.
	ErrCodeIncompatibleGenome     = "COMPAT_1101"
	ErrCodeIncompatibleVariation  = "COMPAT_1102"
	ErrCodeIncompatibleChromosome = "COMPAT_1103"

	// Execution errors (1200-1299): entry points failing at runtime,
	// attributed per plugin and isolated from siblings.
	ErrCodeScriptExecution    = "EXEC_1201"
	ErrCodeContainerExecution = "EXEC_1202"
	ErrCodeExecutionPanic     = "EXEC_1203"
	ErrCodeExchangeEncoding   = "EXEC_1204"
	ErrCodeExchangeDecoding   = "EXEC_1205"
	ErrCodePluginExecution    = "EXEC_1206"

	// Output schema errors (1300-1399)
	ErrCodeOutputMissingUID   = "SCHEMA_1301"
	ErrCodeOutputUnknownUID   = "SCHEMA_1302"
	ErrCodeOutputDuplicateUID = "SCHEMA_1303"
	ErrCodeOutputNotNumeric   = "SCHEMA_1304"

	// Pipeline errors (1400-1499)
	ErrCodeNoPluginsSelected = "PIPELINE_1401"
	ErrCodeNoPluginsSurvived = "PIPELINE_1402"
	ErrCodeDuplicatePlugin   = "PIPELINE_1403"
	ErrCodePluginDiscovery   = "PIPELINE_1404"

	// Data and vocabulary errors (1500-1599)
	ErrCodeUnknownVariationType = "DATA_1501"
	ErrCodeUnknownGenome        = "DATA_1502"
	ErrCodeUnknownClassLabel    = "DATA_1503"
	ErrCodeInvalidRecord        = "DATA_1504"
	ErrCodeExtraction           = "DATA_1505"

	// Codec registry errors (1600-1699)
	ErrCodeCodecNotFound    = "CODEC_1601"
	ErrCodeCodecDuplicate   = "CODEC_1602"
	ErrCodeCodecUnsupported = "CODEC_1603"

	// Metric and merge errors (1700-1799)
	ErrCodeMetricUndefined = "METRIC_1701"
	ErrCodeMergeConflict   = "METRIC_1702"
	ErrCodeInvalidCutoff   = "METRIC_1703"
)

// Manifest error constructors

func NewManifestKeyMissingError(key, manifestPath string) *errors.Error {
	return errors.New(ErrCodeManifestKeyMissing, "Can't build plugin: '"+key+"' is not specified in manifest").
		WithUserMessage("A mandatory manifest key is missing").
		WithContext("key", key).
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestParseError(manifestPath string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestParse, "Can't parse plugin manifest").
		WithUserMessage("The manifest file is not valid YAML").
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestEntryPointError(key, manifestPath string) *errors.Error {
	return errors.New(ErrCodeManifestEntryPoint, "Can't build plugin: '"+key+"' is not specified for entry-point").
		WithUserMessage("The entry-point declaration is incomplete").
		WithContext("key", key).
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestUnknownModeError(mode, manifestPath string) *errors.Error {
	return errors.New(ErrCodeManifestUnknownMode, "Can't build plugin: entry-point mode '"+mode+"' is not supported").
		WithUserMessage("Entry-point mode has to be either 'python' or 'docker'").
		WithContext("mode", mode).
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestCutoffError(manifestPath string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestCutoff, "Can't build plugin: invalid cutoff declaration").
		WithUserMessage("Cutoff has to be a scalar or a strictly increasing list of at least three thresholds").
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestVocabularyError(manifestPath string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestVocabulary, "Can't build plugin: unresolvable vocabulary token").
		WithUserMessage("A manifest token does not resolve against the closed vocabularies").
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestMissingCodecError(format, manifestPath string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestMissingCodec, "Can't build plugin: no codec for exchange format '"+format+"'").
		WithUserMessage("The entry-point declares an exchange format with no registered codec").
		WithContext("format", format).
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

func NewManifestMissingFileError(path, manifestPath string) *errors.Error {
	return errors.New(ErrCodeManifestMissingFile, "Can't build plugin: referenced file does not exist").
		WithUserMessage("A file referenced by the manifest does not exist").
		WithContext("file_path", path).
		WithContext("manifest_path", manifestPath).
		WithSeverity("error")
}

// Compatibility error constructors. Each enumerates exactly the unsupported
// values found in the data so the caller never has to guess.

func NewIncompatibleGenomeError(plugin string, found []string) *errors.Error {
	return errors.New(ErrCodeIncompatibleGenome, "Plugin '"+plugin+"' is not compatible with data: unsupported reference genomes ["+strings.Join(found, ", ")+"]").
		WithUserMessage("The data contains reference genomes the method does not support").
		WithContext("plugin_name", plugin).
		WithContext("unsupported_genomes", strings.Join(found, ",")).
		WithSeverity("error")
}

func NewIncompatibleVariationError(plugin string, found []string) *errors.Error {
	return errors.New(ErrCodeIncompatibleVariation, "Plugin '"+plugin+"' is not compatible with data: unsupported variation types ["+strings.Join(found, ", ")+"]").
		WithUserMessage("The data contains variation types the method does not support").
		WithContext("plugin_name", plugin).
		WithContext("unsupported_types", strings.Join(found, ",")).
		WithSeverity("error")
}

func NewIncompatibleChromosomeError(plugin string, found []string) *errors.Error {
	return errors.New(ErrCodeIncompatibleChromosome, "Plugin '"+plugin+"' is not compatible with data: unsupported chromosomes ["+strings.Join(found, ", ")+"]").
		WithUserMessage("The data contains chromosomes the method does not support").
		WithContext("plugin_name", plugin).
		WithContext("unsupported_chromosomes", strings.Join(found, ",")).
		WithSeverity("error")
}

// Execution error constructors

func NewScriptExecutionError(script string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeScriptExecution, "Local script entry point failed").
		WithUserMessage("The plugin script failed to produce a score table").
		WithContext("script_path", script).
		WithSeverity("error")
}

func NewScriptReportedError(script, message string) *errors.Error {
	return errors.New(ErrCodeScriptExecution, "Plugin script reported an error: "+message).
		WithUserMessage("The plugin script ran but refused to score the data").
		WithContext("script_path", script).
		WithSeverity("error")
}

func NewContainerExecutionError(image string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeContainerExecution, "Container entry point failed").
		WithUserMessage("The plugin container failed to produce a score table").
		WithContext("image", image).
		WithSeverity("error")
}

func NewPluginExecutionError(plugin string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodePluginExecution, "Plugin '"+plugin+"' failed: "+cause.Error()).
		WithUserMessage("The plugin's entry point failed to produce a score table").
		WithContext("plugin_name", plugin).
		WithSeverity("error")
}

func NewExecutionPanicError(plugin string, recovered any) *errors.Error {
	return errors.New(ErrCodeExecutionPanic, "Plugin '"+plugin+"' invocation panicked").
		WithUserMessage("The plugin invocation panicked and was recovered").
		WithContext("plugin_name", plugin).
		WithContext("panic", recovered).
		WithSeverity("error")
}

func NewExchangeEncodingError(format string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeExchangeEncoding, "Failed to encode variant table to exchange file").
		WithUserMessage("The variant table could not be written in the declared input format").
		WithContext("format", format).
		WithSeverity("error")
}

func NewExchangeDecodingError(format string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeExchangeDecoding, "Failed to decode score table from exchange file").
		WithUserMessage("The plugin output could not be read in the declared output format").
		WithContext("format", format).
		WithSeverity("error")
}

// Output schema error constructors

func NewOutputMissingUIDError(plugin string, missing []int64) *errors.Error {
	return errors.New(ErrCodeOutputMissingUID, "Plugin output is missing scores for input variants").
		WithUserMessage("Every input variant identifier must appear in the score table").
		WithContext("plugin_name", plugin).
		WithContext("missing_uids", missing).
		WithSeverity("error")
}

func NewOutputUnknownUIDError(plugin string, unknown []int64) *errors.Error {
	return errors.New(ErrCodeOutputUnknownUID, "Plugin output contains variants not present in the input").
		WithUserMessage("A plugin may not introduce new variant identifiers").
		WithContext("plugin_name", plugin).
		WithContext("unknown_uids", unknown).
		WithSeverity("error")
}

func NewOutputDuplicateUIDError(plugin string, uid int64) *errors.Error {
	return errors.New(ErrCodeOutputDuplicateUID, "Plugin output scores the same variant more than once").
		WithUserMessage("Each variant identifier may appear at most once in the score table").
		WithContext("plugin_name", plugin).
		WithContext("uid", uid).
		WithSeverity("error")
}

func NewOutputNotNumericError(plugin string, uid int64) *errors.Error {
	return errors.New(ErrCodeOutputNotNumeric, "Plugin output contains a non-numeric score").
		WithUserMessage("Every score value must be a finite number").
		WithContext("plugin_name", plugin).
		WithContext("uid", uid).
		WithSeverity("error")
}

// Pipeline error constructors

func NewNoPluginsSelectedError(pluginPath string) *errors.Error {
	return errors.New(ErrCodeNoPluginsSelected, "Can't find plugins in "+pluginPath).
		WithUserMessage("No plugins were selected for the pipeline run").
		WithContext("plugin_path", pluginPath).
		WithSeverity("error")
}

func NewNoPluginsSurvivedError(failed int) *errors.Error {
	return errors.New(ErrCodeNoPluginsSurvived, "No plugin produced usable output").
		WithUserMessage("Every invoked plugin failed; no report is possible").
		WithContext("failed_plugins", failed).
		WithSeverity("error")
}

func NewPluginDiscoveryError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodePluginDiscovery, "Can't scan plugin directory '"+path+"'").
		WithUserMessage("Maybe the plugin directory does not exist or is unreadable").
		WithContext("plugin_path", path).
		WithSeverity("error")
}

func NewDuplicatePluginError(name string) *errors.Error {
	return errors.New(ErrCodeDuplicatePlugin, "Two plugins share the name '"+name+"'").
		WithUserMessage("Plugin identity is by name; equal names collide on merge").
		WithContext("plugin_name", name).
		WithSeverity("error")
}

// Data and vocabulary error constructors

func NewUnknownVariationTypeError(token string) *errors.Error {
	return errors.New(ErrCodeUnknownVariationType, "Can't resolve variation type for name '"+token+"'").
		WithUserMessage("The variation type token is not part of the closed vocabulary").
		WithContext("token", token).
		WithSeverity("error")
}

func NewUnknownGenomeError(token string) *errors.Error {
	return errors.New(ErrCodeUnknownGenome, "Can't resolve reference genome for name '"+token+"'").
		WithUserMessage("The reference genome token is not part of the closed vocabulary").
		WithContext("token", token).
		WithSeverity("error")
}

func NewUnknownClassLabelError(token string) *errors.Error {
	return errors.New(ErrCodeUnknownClassLabel, "Can't resolve pathogenicity class for name '"+token+"'").
		WithUserMessage("The class label does not resolve through the class map").
		WithContext("token", token).
		WithSeverity("error")
}

func NewInvalidRecordError(uid int64, message string) *errors.Error {
	return errors.New(ErrCodeInvalidRecord, "Invalid variant record: "+message).
		WithUserMessage("A variant record violates the data constraints").
		WithContext("uid", uid).
		WithSeverity("error")
}

func NewExtractionError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeExtraction, "Can't parse data at '"+path+"'").
		WithUserMessage("Maybe the data does not exist, or is not compatible with the extractor").
		WithContext("data_path", path).
		WithSeverity("error")
}

// Codec registry error constructors

func NewCodecNotFoundError(format string) *errors.Error {
	return errors.New(ErrCodeCodecNotFound, "No codec registered for format '"+format+"'").
		WithUserMessage("The declared exchange format is unknown to the codec registry").
		WithContext("format", format).
		WithSeverity("error")
}

func NewCodecDuplicateError(format string) *errors.Error {
	return errors.New(ErrCodeCodecDuplicate, "Codec for format '"+format+"' is already registered").
		WithUserMessage("Codec format names must be unique").
		WithContext("format", format).
		WithSeverity("error")
}

func NewCodecUnsupportedError(format, direction string) *errors.Error {
	return errors.New(ErrCodeCodecUnsupported, "Codec '"+format+"' does not support "+direction).
		WithUserMessage("The codec cannot be used in the requested direction").
		WithContext("format", format).
		WithContext("direction", direction).
		WithSeverity("error")
}

// Metric and merge error constructors

func NewMetricUndefinedError(metric, reason string) *errors.Error {
	return errors.New(ErrCodeMetricUndefined, metric+" is undefined: "+reason).
		WithUserMessage("The metric cannot be computed for this score and ground truth").
		WithContext("metric", metric).
		WithSeverity("error")
}

func NewMergeConflictError(column string) *errors.Error {
	return errors.New(ErrCodeMergeConflict, "Merge would produce duplicate score column '"+column+"'").
		WithUserMessage("Two plugins map to the same score column").
		WithContext("column", column).
		WithSeverity("error")
}

func NewInvalidCutoffError(message string) *errors.Error {
	return errors.New(ErrCodeInvalidCutoff, "Invalid cutoff: "+message).
		WithUserMessage("Cutoff lists must be strictly increasing and contain at least three thresholds").
		WithSeverity("error")
}
