// manifest.go: declarative plugin manifests and the plugin builder
//
// Copyright (c) 2025 IDEA-PRIO
// SPDX-License-Identifier: MIT

package vpmbench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntryPointMode names the execution backend a manifest declares.
type EntryPointMode string

const (
	// ModeLocalScript runs the plugin's scoring logic as a local
	// interpreter subprocess.
	ModeLocalScript EntryPointMode = "python"

	// ModeContainer runs the plugin's scoring logic in an isolated
	// container.
	ModeContainer EntryPointMode = "docker"
)

// Manifest mirrors the recognized keys of a plugin manifest document.
type Manifest struct {
	Name                   string              `yaml:"name"`
	Version                string              `yaml:"version"`
	SupportedVariations    TokenList           `yaml:"supported-variations"`
	ReferenceGenome        string              `yaml:"reference-genome"`
	SupportedChromosomes   []string            `yaml:"supported-chromosomes"`
	UnsupportedChromosomes []string            `yaml:"unsupported-chromosomes"`
	Databases              TokenList           `yaml:"databases"`
	Cutoff                 *CutoffValue        `yaml:"cutoff"`
	Flexible               bool                `yaml:"flexible"`
	EntryPoint             *ManifestEntryPoint `yaml:"entry-point"`
}

// ManifestEntryPoint holds the entry-point section of a manifest. Which
// keys are required depends on the declared mode.
type ManifestEntryPoint struct {
	Mode        string            `yaml:"mode"`
	File        string            `yaml:"file"`
	Interpreter string            `yaml:"interpreter"`
	Image       string            `yaml:"image"`
	Run         string            `yaml:"run"`
	Input       *ExchangeSpec     `yaml:"input"`
	Output      *ExchangeSpec     `yaml:"output"`
	Bindings    map[string]string `yaml:"bindings"`
}

// ExchangeSpec names the format and in-container path of an exchange file.
type ExchangeSpec struct {
	Format   string `yaml:"format"`
	FilePath string `yaml:"file-path"`
}

// TokenList accepts either a YAML sequence or a comma-separated scalar.
type TokenList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *TokenList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		parts := strings.Split(raw, ",")
		tokens := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				tokens = append(tokens, trimmed)
			}
		}
		*l = tokens
		return nil
	case yaml.SequenceNode:
		var tokens []string
		if err := value.Decode(&tokens); err != nil {
			return err
		}
		*l = tokens
		return nil
	default:
		return fmt.Errorf("expected a list or comma-separated string, got %v", value.Kind)
	}
}

// CutoffValue accepts either a scalar threshold or a list of thresholds.
type CutoffValue []float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CutoffValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw float64
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*c = CutoffValue{raw}
		return nil
	case yaml.SequenceNode:
		var raw []float64
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*c = CutoffValue(raw)
		return nil
	default:
		return fmt.Errorf("expected a number or list of numbers, got %v", value.Kind)
	}
}

// PluginBuilder builds validated Plugins from manifest documents.
type PluginBuilder struct {
	codecs *CodecRegistry
	logger Logger
}

// NewPluginBuilder creates a builder. A nil codec registry gets the
// built-in codecs; a nil logger stays silent.
func NewPluginBuilder(codecs *CodecRegistry, logger Logger) *PluginBuilder {
	if codecs == nil {
		codecs = NewCodecRegistry()
	}
	if logger == nil {
		logger = DefaultLogger()
	}
	return &PluginBuilder{codecs: codecs, logger: logger}
}

// LoadPlugin reads and builds the plugin declared at manifestPath using a
// builder with default codecs.
func LoadPlugin(manifestPath string) (*Plugin, error) {
	return NewPluginBuilder(nil, nil).Load(manifestPath)
}

// Load reads the manifest file at manifestPath and builds its plugin.
func (b *PluginBuilder) Load(manifestPath string) (*Plugin, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, NewManifestParseError(manifestPath, err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, NewManifestParseError(manifestPath, err)
	}
	return b.Build(&manifest, manifestPath)
}

// Build validates a parsed manifest and constructs the immutable Plugin.
// Every declaration problem fails here, at load time, never at invocation
// time.
func (b *PluginBuilder) Build(manifest *Manifest, manifestPath string) (*Plugin, error) {
	if err := validateMandatoryKeys(manifest, manifestPath); err != nil {
		return nil, err
	}

	variations := make(map[VariationType]struct{}, len(manifest.SupportedVariations))
	for _, token := range manifest.SupportedVariations {
		variation, err := ResolveVariationType(token)
		if err != nil {
			return nil, NewManifestVocabularyError(manifestPath, err)
		}
		variations[variation] = struct{}{}
	}

	genome, err := ResolveReferenceGenome(manifest.ReferenceGenome)
	if err != nil {
		return nil, NewManifestVocabularyError(manifestPath, err)
	}

	chromosomes := manifest.SupportedChromosomes
	if len(chromosomes) == 0 {
		chromosomes = DefaultChromosomes()
	}
	supported := make(map[string]struct{}, len(chromosomes))
	for _, chromosome := range chromosomes {
		supported[chromosome] = struct{}{}
	}
	for _, chromosome := range manifest.UnsupportedChromosomes {
		delete(supported, chromosome)
	}

	cutoff := Cutoff{DefaultCutoff}
	if manifest.Cutoff != nil {
		cutoff, err = NewCutoff(*manifest.Cutoff...)
		if err != nil {
			return nil, NewManifestCutoffError(manifestPath, err)
		}
	}

	entryPoint, err := b.buildEntryPoint(manifest, manifestPath)
	if err != nil {
		return nil, err
	}

	return &Plugin{
		name:                 manifest.Name,
		version:              manifest.Version,
		supportedVariations:  variations,
		supportedChromosomes: supported,
		genome:               genome,
		databases:            manifest.Databases,
		cutoff:               cutoff,
		flexible:             manifest.Flexible,
		entryPoint:           entryPoint,
		manifestPath:         manifestPath,
	}, nil
}

func validateMandatoryKeys(manifest *Manifest, manifestPath string) error {
	if manifest.Name == "" {
		return NewManifestKeyMissingError("name", manifestPath)
	}
	if len(manifest.SupportedVariations) == 0 {
		return NewManifestKeyMissingError("supported-variations", manifestPath)
	}
	if manifest.ReferenceGenome == "" {
		return NewManifestKeyMissingError("reference-genome", manifestPath)
	}
	if manifest.EntryPoint == nil {
		return NewManifestKeyMissingError("entry-point", manifestPath)
	}
	if manifest.EntryPoint.Mode == "" {
		return NewManifestEntryPointError("mode", manifestPath)
	}
	return nil
}

func (b *PluginBuilder) buildEntryPoint(manifest *Manifest, manifestPath string) (EntryPoint, error) {
	declaration := manifest.EntryPoint
	switch EntryPointMode(strings.ToLower(declaration.Mode)) {
	case ModeLocalScript:
		return b.buildLocalScriptEntryPoint(declaration, manifestPath)
	case ModeContainer:
		return b.buildContainerEntryPoint(declaration, manifestPath)
	default:
		return nil, NewManifestUnknownModeError(declaration.Mode, manifestPath)
	}
}

func (b *PluginBuilder) buildLocalScriptEntryPoint(declaration *ManifestEntryPoint, manifestPath string) (EntryPoint, error) {
	if declaration.File == "" {
		return nil, NewManifestEntryPointError("file", manifestPath)
	}
	scriptPath := filepath.Join(filepath.Dir(manifestPath), declaration.File)
	if _, err := os.Stat(scriptPath); err != nil {
		return nil, NewManifestMissingFileError(scriptPath, manifestPath)
	}
	interpreter := declaration.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return &LocalScriptEntryPoint{
		scriptPath:  scriptPath,
		interpreter: interpreter,
		logger:      b.logger,
	}, nil
}

func (b *PluginBuilder) buildContainerEntryPoint(declaration *ManifestEntryPoint, manifestPath string) (EntryPoint, error) {
	if declaration.Image == "" {
		return nil, NewManifestEntryPointError("image", manifestPath)
	}
	if declaration.Run == "" {
		return nil, NewManifestEntryPointError("run", manifestPath)
	}
	for name, spec := range map[string]*ExchangeSpec{"input": declaration.Input, "output": declaration.Output} {
		if spec == nil {
			return nil, NewManifestEntryPointError(name, manifestPath)
		}
		if spec.Format == "" {
			return nil, NewManifestEntryPointError(name+"/format", manifestPath)
		}
		if spec.FilePath == "" {
			return nil, NewManifestEntryPointError(name+"/file-path", manifestPath)
		}
		// Unknown exchange formats and input-only output formats fail at
		// load time, not at invocation.
		codec, err := b.codecs.Get(spec.Format)
		if err != nil {
			return nil, NewManifestMissingCodecError(spec.Format, manifestPath, err)
		}
		if name == "output" && !codec.DecodesOutput() {
			return nil, NewManifestMissingCodecError(spec.Format, manifestPath,
				NewCodecUnsupportedError(spec.Format, "output decoding"))
		}
	}

	bindings := make(map[string]string, len(declaration.Bindings))
	for localPath, remotePath := range declaration.Bindings {
		resolved := filepath.Join(filepath.Dir(manifestPath), localPath)
		if _, err := os.Stat(resolved); err != nil {
			return nil, NewManifestMissingFileError(resolved, manifestPath)
		}
		bindings[resolved] = remotePath
	}

	return &ContainerEntryPoint{
		image:      declaration.Image,
		runCommand: declaration.Run,
		input:      *declaration.Input,
		output:     *declaration.Output,
		bindings:   bindings,
		codecs:     b.codecs,
		logger:     b.logger,
	}, nil
}
