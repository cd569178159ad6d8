// Package provider loads the Provider Registry: the well-known directory
// layout of model providers (LLM API vendors) and agent providers (host
// runtimes), exposing lookups used by validation (resolving provider/model
// references and, when a target agent is set, checking which hook events
// it understands). The transform package does not read this registry.
package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// Capabilities describes what a model supports beyond plain completion.
type Capabilities struct {
	Vision          *bool `yaml:"vision,omitempty"`
	FunctionCalling *bool `yaml:"function_calling,omitempty"`
	Streaming       *bool `yaml:"streaming,omitempty"`
	JSONMode        *bool `yaml:"json_mode,omitempty"`
}

// PricingInfo is a model's per-token cost.
type PricingInfo struct {
	Input     float64 `yaml:"input"`
	Output    float64 `yaml:"output"`
	Currency  string  `yaml:"currency"`
	PerTokens int     `yaml:"per_tokens"`
	Updated   string  `yaml:"updated,omitempty"`
}

// APIInfo is the wire identifier and endpoint a model is invoked with.
type APIInfo struct {
	ModelID  string `yaml:"model_id"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// ModelConfig is one model's descriptor, loaded from its own YAML file.
type ModelConfig struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	Family          string        `yaml:"family"`
	Provider        string        `yaml:"provider"`
	ContextWindow   int           `yaml:"context_window"`
	MaxOutputTokens *int          `yaml:"max_output_tokens,omitempty"`
	Capabilities    *Capabilities `yaml:"capabilities,omitempty"`
	Pricing         PricingInfo   `yaml:"pricing"`
	API             APIInfo       `yaml:"api"`
	ReleaseDate     string        `yaml:"release_date,omitempty"`
	Status          string        `yaml:"status,omitempty"`
}

// ModelProvider groups the models offered by one vendor.
type ModelProvider struct {
	ID          string
	Name        string
	Models      map[string]ModelConfig
	Description string `yaml:"description,omitempty"`
}

// EventConfig is agent-specific per-event behavior (whether a matcher is
// required, whether the event supports a decision-control response).
type EventConfig struct {
	RequiresMatcher bool     `yaml:"requires_matcher"`
	DecisionControl bool     `yaml:"decision_control"`
	Description     string   `yaml:"description,omitempty"`
	Matchers        []string `yaml:"matchers,omitempty"`
}

// AgentProvider describes one host runtime: which hook events it delivers
// and in what wire format.
type AgentProvider struct {
	ID              string
	Name            string
	Vendor          string                 `yaml:"type,omitempty"`
	Description     string                 `yaml:"description,omitempty"`
	SupportedEvents []string               `yaml:"supported_events"`
	EventConfig     map[string]EventConfig `yaml:"event_config,omitempty"`
	HooksFormat     string
}

// SupportsEvent reports whether the agent declares support for event.
func (a *AgentProvider) SupportsEvent(event string) bool {
	for _, e := range a.SupportedEvents {
		if e == event {
			return true
		}
	}
	return false
}

// hooksSupported mirrors the hooks-supported.yaml document shape.
type hooksSupported struct {
	Agent           string                 `yaml:"agent"`
	Version         string                 `yaml:"version"`
	SupportedEvents []string               `yaml:"supported_events"`
	EventConfig     map[string]EventConfig `yaml:"event_config,omitempty"`
}

// hooksFormatDoc mirrors hooks-format.yaml's single field of interest.
type hooksFormatDoc struct {
	Format string `yaml:"format"`
}

// agentConfigDoc mirrors config.yaml's fields relevant to AgentProvider.
type agentConfigDoc struct {
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// modelConfigDoc mirrors a model provider's config.yaml.
type modelConfigDoc struct {
	Description string `yaml:"description,omitempty"`
}

// Registry is the immutable, fully loaded set of model and agent providers.
type Registry struct {
	Models map[string]ModelProvider
	Agents map[string]AgentProvider
}

// GetModel resolves a model by provider id and model id.
func (r *Registry) GetModel(providerID, modelID string) (*ModelConfig, error) {
	mp, ok := r.Models[providerID]
	if !ok {
		return nil, agenticerr.New(agenticerr.KindNotFound, providerID, fmt.Sprintf(messages.ProviderModelNotFoundFmt, providerID, modelID))
	}
	m, ok := mp.Models[modelID]
	if !ok {
		return nil, agenticerr.New(agenticerr.KindNotFound, providerID, fmt.Sprintf(messages.ProviderModelNotFoundFmt, providerID, modelID))
	}
	return &m, nil
}

// GetAgent resolves an agent provider by id.
func (r *Registry) GetAgent(id string) (*AgentProvider, error) {
	a, ok := r.Agents[id]
	if !ok {
		return nil, agenticerr.New(agenticerr.KindNotFound, id, fmt.Sprintf(messages.ProviderAgentNotFoundFmt, id))
	}
	return &a, nil
}

// AgentSupportsEvent reports whether agentID supports event, returning
// false (not an error) if agentID is unknown — callers that need to
// distinguish "unknown agent" from "known agent, unsupported event" should
// call GetAgent directly.
func (r *Registry) AgentSupportsEvent(agentID, event string) bool {
	a, ok := r.Agents[agentID]
	if !ok {
		return false
	}
	return a.SupportsEvent(event)
}

// ParseModelRef splits a "provider/model-id" reference into its two halves,
// validating the format the spec requires: exactly one slash, both halves
// non-empty.
func ParseModelRef(ref string) (providerID, modelID string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 {
		return "", "", agenticerr.New(agenticerr.KindValidation, ref, fmt.Sprintf(messages.ProviderModelRefInvalidFmt, ref))
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", agenticerr.New(agenticerr.KindValidation, ref, fmt.Sprintf(messages.ProviderModelRefEmptyPartsFmt, ref))
	}
	return parts[0], parts[1], nil
}

// Load reads the provider registry rooted at providersDir (expected to
// contain "models/" and "agents/" subdirectories). A malformed provider
// subdirectory is skipped rather than aborting the load; skip reasons are
// returned as warnings alongside the registry.
func Load(providersDir string) (*Registry, []string, error) {
	reg := &Registry{Models: map[string]ModelProvider{}, Agents: map[string]AgentProvider{}}
	var warnings []string

	modelsDir := filepath.Join(providersDir, "models")
	if entries, err := os.ReadDir(modelsDir); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			dir := filepath.Join(modelsDir, e.Name())
			mp, err := loadModelProvider(dir, e.Name())
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(messages.ProviderSkippedWarningFmt, dir, err))
				continue
			}
			reg.Models[mp.ID] = *mp
		}
	}

	agentsDir := filepath.Join(providersDir, "agents")
	if entries, err := os.ReadDir(agentsDir); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			dir := filepath.Join(agentsDir, e.Name())
			ap, err := loadAgentProvider(dir, e.Name())
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(messages.ProviderSkippedWarningFmt, dir, err))
				continue
			}
			reg.Agents[ap.ID] = *ap
		}
	}

	return reg, warnings, nil
}

func loadModelProvider(dir, name string) (*ModelProvider, error) {
	configPath := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindNotFound, configPath, fmt.Sprintf(messages.ProviderConfigMissingFmt, name), err)
	}
	var cfg modelConfigDoc
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, configPath, "parse model provider config", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindIOFailure, dir, "read model provider directory", err)
	}

	models := map[string]ModelConfig{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".yaml")
		if stem == "config" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, agenticerr.Wrap(agenticerr.KindIOFailure, path, "read model file", err)
		}
		var m ModelConfig
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, path, "parse model file", err)
		}
		if m.ID != stem {
			return nil, agenticerr.New(agenticerr.KindInvalidFormat, path, fmt.Sprintf("model id %q does not match filename %q", m.ID, stem))
		}
		models[m.ID] = m
	}

	return &ModelProvider{ID: name, Name: name, Models: models, Description: cfg.Description}, nil
}

func loadAgentProvider(dir, name string) (*AgentProvider, error) {
	configPath := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindNotFound, configPath, fmt.Sprintf(messages.ProviderConfigMissingFmt, name), err)
	}
	var cfg agentConfigDoc
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, configPath, "parse agent provider config", err)
	}

	hooksPath := filepath.Join(dir, "hooks-supported.yaml")
	hooksData, err := os.ReadFile(hooksPath)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindNotFound, hooksPath, fmt.Sprintf(messages.ProviderHooksSupportedReadFmt, name), err)
	}
	var hooks hooksSupported
	if err := yaml.Unmarshal(hooksData, &hooks); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, hooksPath, "parse hooks-supported.yaml", err)
	}

	format := "unknown"
	if fmtData, err := os.ReadFile(filepath.Join(dir, "hooks-format.yaml")); err == nil {
		var fd hooksFormatDoc
		if err := yaml.Unmarshal(fmtData, &fd); err == nil && fd.Format != "" {
			format = fd.Format
		}
	}

	return &AgentProvider{
		ID:              hooks.Agent,
		Name:            name,
		Vendor:          cfg.Type,
		Description:     cfg.Description,
		SupportedEvents: hooks.SupportedEvents,
		EventConfig:     hooks.EventConfig,
		HooksFormat:     format,
	}, nil
}
