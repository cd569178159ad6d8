package primitive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// metaCandidates lists the metadata filenames probed for a primitive
// directory named dirName, in preference order: the directory-named files
// ({id}.yaml, {id}.meta.yaml, then the per-kind names) first, then the
// legacy unqualified meta.yaml.
func metaCandidates(dirName string) []string {
	return []string{
		dirName + ".yaml",
		dirName + ".meta.yaml",
		dirName + ".tool.yaml",
		dirName + ".hook.yaml",
		dirName + ".skill.yaml",
		"meta.yaml",
	}
}

// probeMeta is the minimal document read to discover a primitive's kind
// before committing to a kind-specific unmarshal target.
type probeMeta struct {
	ID          string      `yaml:"id"`
	Kind        Kind        `yaml:"kind"`
	Category    string      `yaml:"category"`
	SpecVersion SpecVersion `yaml:"spec_version"`
}

// findMetaFile locates the metadata file for dir, returning its path and
// contents.
func findMetaFile(dir string) (string, []byte, error) {
	dirName := filepath.Base(dir)
	candidates := metaCandidates(dirName)
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
	}
	return "", nil, agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.PrimitiveNoMetaFileFmt, dir, candidates))
}

// rawHookMeta mirrors HookMeta but exposes both the singular legacy
// "event" field and the plural "events" field so Load can fold either
// into HookMeta.Events.
type rawHookMeta struct {
	ID              string             `yaml:"id"`
	Kind            Kind               `yaml:"kind"`
	Category        string             `yaml:"category"`
	SpecVersion     SpecVersion        `yaml:"spec_version,omitempty"`
	Summary         string             `yaml:"summary"`
	Event           string             `yaml:"event,omitempty"`
	Events          []string           `yaml:"events,omitempty"`
	Execution       ExecutionConfig    `yaml:"execution"`
	Middleware      []MiddlewareConfig `yaml:"middleware,omitempty"`
	DefaultDecision string             `yaml:"default_decision,omitempty"`
	Metrics         *MetricsConfig     `yaml:"metrics,omitempty"`
	Logging         *LoggingConfig     `yaml:"logging,omitempty"`
	Versions        []VersionEntry     `yaml:"versions,omitempty"`
	DefaultVersion  *int               `yaml:"default_version,omitempty"`
}

func (r rawHookMeta) toHookMeta() *HookMeta {
	events := r.Events
	if len(events) == 0 && r.Event != "" {
		events = []string{r.Event}
	}
	return &HookMeta{
		ID:              r.ID,
		Kind:            r.Kind,
		Category:        r.Category,
		SpecVersion:     r.SpecVersion,
		Summary:         r.Summary,
		Events:          events,
		Execution:       r.Execution,
		Middleware:      r.Middleware,
		DefaultDecision: r.DefaultDecision,
		Metrics:         r.Metrics,
		Logging:         r.Logging,
		Versions:        r.Versions,
		DefaultVersion:  r.DefaultVersion,
	}
}

// Load reads the primitive rooted at dir: it locates and parses the
// metadata file, then (for prompt-style kinds) resolves and reads the
// default-version content file.
func Load(dir string) (*Primitive, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.PrimitiveDirNotFoundFmt, dir))
	}

	metaPath, data, err := findMetaFile(dir)
	if err != nil {
		return nil, err
	}

	var probe probeMeta
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, metaPath, "parse metadata", err)
	}

	p := &Primitive{Path: dir, MetaPath: metaPath, Kind: probe.Kind}

	switch probe.Kind {
	case KindTool:
		var meta ToolMeta
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, metaPath, "parse tool metadata", err)
		}
		p.Tool = &meta
		return p, nil

	case KindHook:
		var raw rawHookMeta
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, metaPath, "parse hook metadata", err)
		}
		p.Hook = raw.toHookMeta()
		return p, nil

	case KindAgent, KindCommand, KindSkill, KindMetaPrompt:
		var meta PromptMeta
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, metaPath, "parse prompt metadata", err)
		}
		p.Prompt = &meta

		contentFile, err := resolveContentFile(dir, &meta)
		if err != nil {
			return nil, err
		}
		p.ContentFile = contentFile

		contentPath := filepath.Join(dir, contentFile)
		content, err := os.ReadFile(contentPath)
		if err != nil {
			return nil, agenticerr.New(agenticerr.KindNotFound, contentPath, fmt.Sprintf(messages.PrimitiveContentFileMissingFmt, contentPath))
		}
		p.Content = string(content)
		return p, nil

	default:
		return nil, agenticerr.New(agenticerr.KindInvalidFormat, metaPath, fmt.Sprintf(messages.PrimitiveUnknownKindFmt, probe.Kind))
	}
}

// resolveContentFile determines which content file backs meta's
// default_version, or falls back to FindContentFile for unversioned
// primitives.
func resolveContentFile(dir string, meta *PromptMeta) (string, error) {
	if meta.DefaultVersion != nil {
		for _, v := range meta.Versions {
			if v.Version == *meta.DefaultVersion {
				return v.File, nil
			}
		}
		return "", agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.PrimitiveVersionNotFoundFmt, *meta.DefaultVersion, dir))
	}
	return FindContentFile(dir, meta.ID)
}

// FindContentFile locates the unversioned (or sole) content file for a
// primitive, trying the skill/prompt/historical naming conventions in
// order.
func FindContentFile(dir, id string) (string, error) {
	candidates := []string{
		id + ".skill.md",
		id + ".prompt.md",
		id + ".md",
	}
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name, nil
		}
	}
	return "", agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.PrimitiveContentFileMissingFmt, filepath.Join(dir, id+".md")))
}

// FindVersionContentFile locates the content file for a specific version
// when a chain entry does not name one, trying the skill/prompt/historical
// versioned naming conventions in order.
func FindVersionContentFile(dir, id string, version int) (string, error) {
	candidates := []string{
		fmt.Sprintf("%s.skill.v%d.md", id, version),
		fmt.Sprintf("%s.prompt.v%d.md", id, version),
		fmt.Sprintf("%s.v%d.md", id, version),
	}
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name, nil
		}
	}
	return "", agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.PrimitiveVersionNotFoundFmt, version, dir))
}

// DiscoverAll walks root and returns, in lexicographic path order, the
// directory of every primitive found (any directory containing a
// recognized metadata file).
func DiscoverAll(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		dirName := filepath.Base(path)
		for _, name := range metaCandidates(dirName) {
			if _, statErr := os.Stat(filepath.Join(path, name)); statErr == nil {
				found = append(found, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
