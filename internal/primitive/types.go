// Package primitive implements the in-memory representation of prompts,
// tools, and hooks: discovery, loading, and read-only access to their
// version chains. Mutating a primitive's version chain is Versioning's
// job (internal/versioning), not this package's.
package primitive

// Kind identifies which of the six primitive kinds a metadata document
// describes. Kind selects both the validation schema and the projection
// logic a transformer applies.
type Kind string

const (
	KindAgent      Kind = "agent"
	KindCommand    Kind = "command"
	KindSkill      Kind = "skill"
	KindMetaPrompt Kind = "meta-prompt"
	KindTool       Kind = "tool"
	KindHook       Kind = "hook"
)

// IsPromptStyle reports whether k is projected as prose content (as
// opposed to a tool or hook, which are projected from structured config).
func (k Kind) IsPromptStyle() bool {
	switch k {
	case KindAgent, KindCommand, KindSkill, KindMetaPrompt:
		return true
	default:
		return false
	}
}

// SpecVersion is the coarse compatibility label selecting schema and
// validator strictness.
type SpecVersion string

const (
	SpecV1           SpecVersion = "v1"
	SpecV2           SpecVersion = "v2"
	SpecExperimental SpecVersion = "experimental"
)

// Status is a Version Entry's lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
)

// VersionEntry records one revision of a primitive's content.
type VersionEntry struct {
	Version    int    `yaml:"version"`
	File       string `yaml:"file"`
	Status     Status `yaml:"status"`
	Hash       string `yaml:"hash,omitempty"`
	Created    string `yaml:"created,omitempty"`
	Notes      string `yaml:"notes,omitempty"`
	Deprecated string `yaml:"deprecated,omitempty"`
}

// Defaults bundles the model/temperature/token defaults a prompt-style
// primitive suggests to its host.
type Defaults struct {
	PreferredModels []string `yaml:"preferred_models,omitempty"`
	Temperature     *float64 `yaml:"temperature,omitempty"`
	MaxTokens       *int     `yaml:"max_tokens,omitempty"`
}

// ContextUsage describes how a host should inject the primitive into
// conversation context.
type ContextUsage struct {
	AsSystem  bool `yaml:"as_system,omitempty"`
	AsUser    bool `yaml:"as_user,omitempty"`
	AsOverlay bool `yaml:"as_overlay,omitempty"`
}

// InputParam is one entry in a prompt-style primitive's input parameter
// schema.
type InputParam struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Default     any    `yaml:"default,omitempty"`
}

// InputsSpec separates a primitive's required and optional input
// parameters.
type InputsSpec struct {
	Required []InputParam `yaml:"required,omitempty"`
	Optional []InputParam `yaml:"optional,omitempty"`
}

// PromptMeta is the metadata document for agent/command/skill/meta-prompt
// primitives.
type PromptMeta struct {
	ID             string         `yaml:"id"`
	Kind           Kind           `yaml:"kind"`
	Category       string         `yaml:"category"`
	SpecVersion    SpecVersion    `yaml:"spec_version,omitempty"`
	Domain         string         `yaml:"domain,omitempty"`
	Summary        string         `yaml:"summary"`
	Description    string         `yaml:"description,omitempty"`
	Tags           []string       `yaml:"tags,omitempty"`
	Defaults       Defaults       `yaml:"defaults,omitempty"`
	ContextUsage   *ContextUsage  `yaml:"context_usage,omitempty"`
	Tools          []string       `yaml:"tools,omitempty"`
	Inputs         *InputsSpec    `yaml:"inputs,omitempty"`
	Versions       []VersionEntry `yaml:"versions,omitempty"`
	DefaultVersion *int           `yaml:"default_version,omitempty"`
}

// ToolArg is one argument in a tool's call signature.
type ToolArg struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Enum        []any  `yaml:"enum,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
}

// ToolReturns documents a tool's return value.
type ToolReturns struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// ToolSafety bundles a tool's declared execution constraints.
type ToolSafety struct {
	MaxRuntimeSec        *int   `yaml:"max_runtime_sec,omitempty"`
	WorkingDir           string `yaml:"working_dir,omitempty"`
	AllowWrite           bool   `yaml:"allow_write,omitempty"`
	AllowNetwork         bool   `yaml:"allow_network,omitempty"`
	DangerLevel          string `yaml:"danger_level,omitempty"`
	RequiresConfirmation bool   `yaml:"requires_confirmation,omitempty"`
}

// ToolExample is one usage example attached to a tool's metadata.
type ToolExample struct {
	Description    string `yaml:"description"`
	Args           any    `yaml:"args,omitempty"`
	ExpectedResult string `yaml:"expected_result,omitempty"`
}

// ToolMeta is the metadata document for tool primitives.
type ToolMeta struct {
	ID             string         `yaml:"id"`
	Kind           Kind           `yaml:"kind"`
	Category       string         `yaml:"category"`
	SpecVersion    SpecVersion    `yaml:"spec_version,omitempty"`
	Summary        string         `yaml:"summary,omitempty"`
	Description    string         `yaml:"description"`
	Args           []ToolArg      `yaml:"args,omitempty"`
	Returns        *ToolReturns   `yaml:"returns,omitempty"`
	Safety         ToolSafety     `yaml:"safety,omitempty"`
	Examples       []ToolExample  `yaml:"examples,omitempty"`
	Versions       []VersionEntry `yaml:"versions,omitempty"`
	DefaultVersion *int           `yaml:"default_version,omitempty"`
}

// ExecutionConfig controls how a hook's middleware pipeline runs.
type ExecutionConfig struct {
	Strategy    string `yaml:"strategy"`
	TimeoutSec  *int   `yaml:"timeout_sec,omitempty"`
	FailOnError *bool  `yaml:"fail_on_error,omitempty"`
}

// MiddlewareConfig is one middleware unit in a hook's pipeline.
type MiddlewareConfig struct {
	ID       string `yaml:"id"`
	Path     string `yaml:"path"`
	Type     string `yaml:"type"`
	Enabled  bool   `yaml:"enabled"`
	Priority *int   `yaml:"priority,omitempty"`
	Config   any    `yaml:"config,omitempty"`
}

// MetricsConfig controls whether and how a hook emits metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend,omitempty"`
	Tags    any    `yaml:"tags,omitempty"`
}

// LoggingConfig controls whether and how a hook logs.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level,omitempty"`
	Output  string `yaml:"output,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

// HookMeta is the metadata document for hook primitives. Event may be
// declared as a single legacy "event" field or a list "events" field;
// rawHookMeta.toHookMeta folds both into Events.
type HookMeta struct {
	ID              string             `yaml:"id"`
	Kind            Kind               `yaml:"kind"`
	Category        string             `yaml:"category"`
	SpecVersion     SpecVersion        `yaml:"spec_version,omitempty"`
	Summary         string             `yaml:"summary"`
	Events          []string           `yaml:"-"`
	Execution       ExecutionConfig    `yaml:"execution"`
	Middleware      []MiddlewareConfig `yaml:"middleware,omitempty"`
	DefaultDecision string             `yaml:"default_decision,omitempty"`
	Metrics         *MetricsConfig     `yaml:"metrics,omitempty"`
	Logging         *LoggingConfig     `yaml:"logging,omitempty"`
	Versions        []VersionEntry     `yaml:"versions,omitempty"`
	DefaultVersion  *int               `yaml:"default_version,omitempty"`
}

// Primitive is a fully loaded primitive: its on-disk path, kind, the
// kind-specific metadata, and (for prompt-style kinds) the resolved
// content text.
type Primitive struct {
	Path        string
	MetaPath    string
	Kind        Kind
	Prompt      *PromptMeta
	Tool        *ToolMeta
	Hook        *HookMeta
	ContentFile string
	Content     string
}

// SetVersions replaces the primitive's version chain regardless of kind.
func (p *Primitive) SetVersions(versions []VersionEntry) {
	switch p.Kind {
	case KindTool:
		p.Tool.Versions = versions
	case KindHook:
		p.Hook.Versions = versions
	default:
		p.Prompt.Versions = versions
	}
}

// SetDefaultVersion replaces the primitive's default_version pointer
// regardless of kind.
func (p *Primitive) SetDefaultVersion(version *int) {
	switch p.Kind {
	case KindTool:
		p.Tool.DefaultVersion = version
	case KindHook:
		p.Hook.DefaultVersion = version
	default:
		p.Prompt.DefaultVersion = version
	}
}

// ID returns the primitive's id regardless of kind.
func (p *Primitive) ID() string {
	switch p.Kind {
	case KindTool:
		return p.Tool.ID
	case KindHook:
		return p.Hook.ID
	default:
		return p.Prompt.ID
	}
}

// Category returns the primitive's category regardless of kind.
func (p *Primitive) Category() string {
	switch p.Kind {
	case KindTool:
		return p.Tool.Category
	case KindHook:
		return p.Hook.Category
	default:
		return p.Prompt.Category
	}
}

// SpecVersion returns the primitive's spec version regardless of kind.
func (p *Primitive) SpecVersion() SpecVersion {
	switch p.Kind {
	case KindTool:
		return p.Tool.SpecVersion
	case KindHook:
		return p.Hook.SpecVersion
	default:
		return p.Prompt.SpecVersion
	}
}

// Versions returns the primitive's version chain regardless of kind. Tool
// metadata rarely opts into versioning but the field exists for parity.
func (p *Primitive) Versions() []VersionEntry {
	switch p.Kind {
	case KindTool:
		return p.Tool.Versions
	case KindHook:
		return p.Hook.Versions
	default:
		return p.Prompt.Versions
	}
}

// DefaultVersion returns the primitive's default_version pointer
// regardless of kind.
func (p *Primitive) DefaultVersion() *int {
	switch p.Kind {
	case KindTool:
		return p.Tool.DefaultVersion
	case KindHook:
		return p.Hook.DefaultVersion
	default:
		return p.Prompt.DefaultVersion
	}
}

// Tools returns the dependency list of tool ids this primitive declares,
// regardless of kind (only prompt-style metadata carries one; tools and
// hooks return nil).
func (p *Primitive) Tools() []string {
	if p.Kind == KindTool {
		return nil
	}
	if p.Prompt != nil {
		return p.Prompt.Tools
	}
	return nil
}
