// Package config loads primitives.config.yaml: the single record naming
// every path the rest of the toolchain resolves against (specs, stable and
// experimental primitive trees, providers) plus validation and default
// settings. A Config is loaded once per command invocation and threaded
// explicitly through the call graph — there is no package-level singleton,
// per spec.md §9 "Ambient configuration".
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// Filename is the config file's conventional name at a repository root.
const Filename = "primitives.config.yaml"

// ErrValidation wraps a Config that Parse rejects, distinguishing
// semantic problems (missing root, unrecognized keys) from YAML syntax or
// filesystem errors the way internal/agenticerr's other sentinels do for
// their own packages.
var ErrValidation = errors.New("config validation failed")

// ValidationConfig holds the validation settings of the config file. Load
// fills in MaxSummaryLen's default; neither the validator nor the `new`
// scaffolding helper reads these fields.
type ValidationConfig struct {
	RequiredFields  []string `yaml:"required_fields,omitempty"`
	EnforceCategory bool     `yaml:"enforce_category,omitempty"`
	MaxSummaryLen   int      `yaml:"max_summary_length,omitempty"`
}

// DefaultsConfig names the fallback kind/event/strategy of the config file.
// The scaffolding helper reads only PromptKind, as the prompt kind to use
// when a caller does not specify one; the other fields are not read.
type DefaultsConfig struct {
	PromptKind        string `yaml:"prompt_kind,omitempty"`
	ToolKind          string `yaml:"tool_kind,omitempty"`
	HookEvent         string `yaml:"hook_event,omitempty"`
	ExecutionStrategy string `yaml:"execution_strategy,omitempty"`
}

// PathsConfig names every path the toolchain resolves against, relative to
// the repository root unless absolute.
type PathsConfig struct {
	Specs        string `yaml:"specs,omitempty"`
	Primitives   string `yaml:"primitives,omitempty"`
	Experimental string `yaml:"experimental,omitempty"`
	Providers    string `yaml:"providers,omitempty"`
}

// Config is the fully resolved primitives.config.yaml document.
type Config struct {
	Root       string           `yaml:"-"`
	Version    string           `yaml:"version"`
	Paths      PathsConfig      `yaml:"paths"`
	Validation ValidationConfig `yaml:"validation,omitempty"`
	Defaults   DefaultsConfig   `yaml:"defaults,omitempty"`
}

// Default returns the baseline config applied when no primitives.config.yaml
// exists yet (e.g. for `config init`), grounded in
// original_source/cli/src/config.rs's own default path/pattern constants.
func Default(root string) *Config {
	return &Config{
		Root:    root,
		Version: "1.0",
		Paths: PathsConfig{
			Specs:        filepath.Join("specs", "v1"),
			Primitives:   filepath.Join("primitives", "v1"),
			Experimental: filepath.Join("primitives", "experimental"),
			Providers:    "providers",
		},
		Validation: ValidationConfig{
			EnforceCategory: true,
			MaxSummaryLen:   500,
		},
		Defaults: DefaultsConfig{
			PromptKind:        "skill",
			ToolKind:          "tool",
			HookEvent:         "PreToolUse",
			ExecutionStrategy: "pipeline",
		},
	}
}

// applyDefaults fills any path left blank in a loaded document with the
// same fallback Default would have used, so a primitives.config.yaml that
// only overrides one path still resolves the rest.
func (c *Config) applyDefaults(root string) {
	d := Default(root)
	c.Root = root
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Paths.Specs == "" {
		c.Paths.Specs = d.Paths.Specs
	}
	if c.Paths.Primitives == "" {
		c.Paths.Primitives = d.Paths.Primitives
	}
	if c.Paths.Experimental == "" {
		c.Paths.Experimental = d.Paths.Experimental
	}
	if c.Paths.Providers == "" {
		c.Paths.Providers = d.Paths.Providers
	}
	if c.Validation.MaxSummaryLen == 0 {
		c.Validation.MaxSummaryLen = d.Validation.MaxSummaryLen
	}
	if c.Defaults.PromptKind == "" {
		c.Defaults = d.Defaults
	}
}

// Load reads primitives.config.yaml from root, applying defaults for any
// path left unset. A missing file is not an error: Load returns Default(root).
func Load(root string) (*Config, error) {
	path := filepath.Join(root, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(root), nil
		}
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return Parse(data, root, path)
}

// Parse decodes a primitives.config.yaml document, rejecting unrecognized
// top-level keys (a typo'd key should fail loudly rather than silently
// resolve to a default), then fills unset fields with Default(root)'s
// values.
func Parse(data []byte, root, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrValidation, source, err)
	}
	cfg.applyDefaults(root)
	if cfg.Root == "" {
		return nil, fmt.Errorf("%w: %s", ErrValidation, messages.ConfigRootRequiredFmt)
	}
	return &cfg, nil
}

// decodeStrict re-decodes data with unknown-field rejection to catch keys
// Config's struct tags silently ignore on the lenient pass.
func decodeStrict(data []byte) error {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(&cfg)
}

// Save serializes cfg back to primitives.config.yaml under cfg.Root.
func (c *Config) Save() error {
	path := filepath.Join(c.Root, Filename)
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf(messages.ConfigInvalidConfigFmt, path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SpecsDir, PrimitivesDir, ExperimentalDir, and ProvidersDir resolve c's
// configured paths to absolute directories under c.Root.
func (c *Config) SpecsDir() string        { return filepath.Join(c.Root, c.Paths.Specs) }
func (c *Config) PrimitivesDir() string   { return filepath.Join(c.Root, c.Paths.Primitives) }
func (c *Config) ExperimentalDir() string { return filepath.Join(c.Root, c.Paths.Experimental) }
func (c *Config) ProvidersDir() string    { return filepath.Join(c.Root, c.Paths.Providers) }

// FindRoot walks upward from dir looking for primitives.config.yaml, the
// way original_source/cli/src/config.rs::load_from_current_dir searches
// for a repository root. Returns ("", false) if none is found by the
// filesystem root.
func FindRoot(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		if _, err := os.Stat(filepath.Join(dir, Filename)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
