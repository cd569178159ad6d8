// Package validate implements the three-layer validation pipeline: Layer 1
// Structural (directory shape, naming), Layer 2 Schema (JSON Schema per
// kind; spec_version does not select a different schema), and Layer 3 Semantic (cross-reference and version
// chain integrity). Each layer can run independently; a Report aggregates
// pass/fail per layer plus the accumulated error messages.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/hashutil"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/provider"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/schema"
)

// Layers selects which of the three layers to run. Each flag enables one
// layer, Structural included; Validate skips Schema and Semantic for an
// experimental primitive and records a note in Report.Notes.
type Layers struct {
	Structural bool
	Schema     bool
	Semantic   bool
}

// AllLayers runs every layer.
func AllLayers() Layers { return Layers{Structural: true, Schema: true, Semantic: true} }

// ParseLayers accepts the CLI's --layers flag value ("all", "structural",
// "schema", "semantic").
func ParseLayers(s string) (Layers, error) {
	switch strings.ToLower(s) {
	case "all":
		return AllLayers(), nil
	case "structural":
		return Layers{Structural: true}, nil
	case "schema":
		return Layers{Schema: true}, nil
	case "semantic":
		return Layers{Semantic: true}, nil
	default:
		return Layers{}, fmt.Errorf("unknown validation layer: %s", s)
	}
}

// Report aggregates the outcome of validating one primitive. Notes carry
// informational messages (layers skipped for an experimental primitive)
// that do not make the report invalid.
type Report struct {
	Path             string
	SpecVersion      primitive.SpecVersion
	StructuralPassed bool
	SchemaPassed     bool
	SemanticPassed   bool
	StructuralRan    bool
	SchemaRan        bool
	SemanticRan      bool
	Errors           []string
	Notes            []string
}

// IsValid reports whether every layer that ran passed.
func (r *Report) IsValid() bool { return len(r.Errors) == 0 }

func (r *Report) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) addNote(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Options bundles the cross-reference resolvers Layer 3 needs.
type Options struct {
	Layers      Layers
	ToolsRoot   string
	Providers   *provider.Registry
	TargetAgent string // when set, Layer 3 also checks hook events against this agent
	Schemas     *schema.Registry
}

// Validate runs the requested layers against the primitive directory at
// dir. Disabled layers are neither passed nor failed. Layers after
// Structural are skipped (without failing) when the primitive's
// spec_version is experimental, or when Structural itself fails (there is
// no reliable document to check further).
func Validate(dir string, opts Options) *Report {
	report := &Report{Path: dir}

	if opts.Layers.Structural {
		report.StructuralRan = true
		structuralErrs := Structural(dir)
		if len(structuralErrs) == 0 {
			report.StructuralPassed = true
		} else {
			report.Errors = append(report.Errors, structuralErrs...)
			return report
		}
	}

	if !opts.Layers.Schema && !opts.Layers.Semantic {
		return report
	}

	p, err := primitive.Load(dir)
	if err != nil {
		report.addError("%s: %v", dir, err)
		return report
	}
	report.SpecVersion = p.SpecVersion()

	if p.SpecVersion() == primitive.SpecExperimental {
		report.addNote(messages.ValidateExperimentalSkippedFmt, dir)
		return report
	}

	if opts.Layers.Schema && opts.Schemas != nil {
		report.SchemaRan = true
		issues, err := validateSchema(p, opts.Schemas)
		if err != nil {
			report.addError("%s: %v", dir, err)
		} else if len(issues) == 0 {
			report.SchemaPassed = true
		} else {
			for _, iss := range issues {
				report.addError(messages.ValidateSchemaViolationFmt, dir, iss.Pointer, iss.Message)
			}
		}
	}

	if opts.Layers.Semantic {
		report.SemanticRan = true
		semErrs := Semantic(p, opts)
		if len(semErrs) == 0 {
			report.SemanticPassed = true
		} else {
			report.Errors = append(report.Errors, semErrs...)
		}
	}

	return report
}

// Structural runs Layer 1 against dir, returning every violation found. An
// empty slice means dir passes.
func Structural(dir string) []string {
	var errs []string

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return []string{fmt.Sprintf(messages.ValidateDirMissingFmt, dir)}
	}

	dirName := filepath.Base(dir)
	metaPath, raw, kind, id := findMeta(dir, dirName)
	if metaPath == "" {
		return []string{fmt.Sprintf(messages.ValidateNoMetaFileFmt, dir)}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil || doc == nil {
		return []string{fmt.Sprintf(messages.ValidateMetaNotMappingFmt, metaPath)}
	}

	if id == "" {
		errs = append(errs, fmt.Sprintf(messages.ValidateIDMissingFmt, metaPath))
	} else {
		if !primitive.IsKebabCase(id) {
			errs = append(errs, fmt.Sprintf(messages.ValidateIDNotKebabFmt, metaPath, id))
		}
		if dirName != id {
			errs = append(errs, fmt.Sprintf(messages.ValidateDirNameMismatchFmt, metaPath, dirName, id))
		}
	}

	if !pathShapeOK(dir) {
		errs = append(errs, fmt.Sprintf(messages.ValidatePathShapeFmt, dir))
	}

	errs = append(errs, checkRequiredFiles(dir, dirName, kind)...)

	return errs
}

// findMeta locates and reads dir's metadata file, returning its path,
// contents, declared kind, and declared id (best-effort; zero values if
// the document can't be probed).
func findMeta(dir, dirName string) (path string, data []byte, kind, id string) {
	candidates := []string{
		dirName + ".yaml",
		dirName + ".meta.yaml",
		dirName + ".tool.yaml",
		dirName + ".hook.yaml",
		dirName + ".skill.yaml",
		"meta.yaml",
	}
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		raw, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var probe struct {
			ID   string `yaml:"id"`
			Kind string `yaml:"kind"`
		}
		yaml.Unmarshal(raw, &probe)
		return p, raw, probe.Kind, probe.ID
	}
	return "", nil, "", ""
}

// pathShapeOK checks the enclosing path conforms to <type>/<category>/<id>
// (or the prompts/<subkind>/<category>/<id> shape) only when the path
// carries a spec-version segment ("v1", "v2", "experimental"); otherwise
// the check is not applicable and passes vacuously, matching spec.md §4.5's
// scoping of rule 5 to paths that carry that segment.
func pathShapeOK(dir string) bool {
	segments := strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/")
	versionIdx := -1
	for i, s := range segments {
		if s == "v1" || s == "v2" || s == "experimental" {
			versionIdx = i
		}
	}
	if versionIdx == -1 {
		return true
	}
	rest := segments[versionIdx+1:]
	switch {
	case len(rest) == 3:
		return true // <type>/<category>/<id>
	case len(rest) == 4 && rest[0] == "prompts":
		switch rest[1] {
		case "agents", "commands", "skills", "meta-prompts":
			return true
		}
		return false
	default:
		return false
	}
}

func checkRequiredFiles(dir, dirName, kind string) []string {
	var errs []string
	switch kind {
	case "agent", "command", "skill", "meta-prompt":
		entries, err := os.ReadDir(dir)
		if err != nil {
			return errs
		}
		found := false
		for _, e := range entries {
			name := e.Name()
			if !strings.HasSuffix(name, ".md") {
				continue
			}
			if strings.HasPrefix(name, dirName+".prompt.v") || strings.HasPrefix(name, dirName+".v") ||
				name == dirName+".prompt.md" || name == dirName+".md" || name == dirName+".skill.md" {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf(messages.ValidateMissingContentFileFmt, dir, kind))
		}
	case "tool":
		if !fileExists(filepath.Join(dir, dirName+".tool.yaml")) && !fileExists(filepath.Join(dir, "tool.meta.yaml")) {
			errs = append(errs, fmt.Sprintf(messages.ValidateMissingToolMetaFmt, dir))
		}
	case "hook":
		if !fileExists(filepath.Join(dir, dirName+".hook.yaml")) && !fileExists(filepath.Join(dir, "hook.meta.yaml")) {
			errs = append(errs, fmt.Sprintf(messages.ValidateMissingHookMetaFmt, dir))
		}
	}
	return errs
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// validateSchema runs Layer 2 against an already-loaded primitive, parsing
// its metadata file into a generic document for the schema registry.
func validateSchema(p *primitive.Primitive, schemas *schema.Registry) ([]schema.Issue, error) {
	raw, err := os.ReadFile(p.MetaPath)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return schemas.Validate(p.Kind, p.SpecVersion(), doc)
}

// Semantic runs Layer 3 against an already-loaded primitive.
func Semantic(p *primitive.Primitive, opts Options) []string {
	var errs []string

	if !p.Kind.IsPromptStyle() && p.Kind != primitive.KindHook {
		return errs // tools have no cross-references to check
	}

	for _, toolID := range p.Tools() {
		if opts.ToolsRoot == "" {
			continue
		}
		if !resolveToolRef(opts.ToolsRoot, toolID) {
			errs = append(errs, fmt.Sprintf(messages.ValidateToolRefNotFoundFmt, toolID))
		}
	}

	if p.Prompt != nil {
		for _, modelRef := range p.Prompt.Defaults.PreferredModels {
			errs = append(errs, validateModelRef(modelRef, opts.Providers)...)
		}
	}

	errs = append(errs, validateVersionChain(p)...)

	if p.Kind == primitive.KindHook && opts.TargetAgent != "" && opts.Providers != nil {
		for _, event := range p.Hook.Events {
			if !opts.Providers.AgentSupportsEvent(opts.TargetAgent, event) {
				errs = append(errs, fmt.Sprintf(messages.ValidateHookEventUnsupportedFmt, p.Path, event, opts.TargetAgent))
			}
		}
	}

	return errs
}

// resolveToolRef walks toolsRoot for a directory named toolID that
// contains a tool metadata file.
func resolveToolRef(toolsRoot, toolID string) bool {
	found := false
	filepath.WalkDir(toolsRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil || found {
			return nil
		}
		if d.IsDir() && d.Name() == toolID {
			if fileExists(filepath.Join(path, toolID+".tool.yaml")) || fileExists(filepath.Join(path, "tool.meta.yaml")) {
				found = true
			}
		}
		return nil
	})
	return found
}

func validateModelRef(ref string, providers *provider.Registry) []string {
	providerID, modelID, err := provider.ParseModelRef(ref)
	if err != nil {
		return []string{fmt.Sprintf(messages.ValidateModelRefInvalidFmt, ref)}
	}
	if providers == nil {
		return nil
	}
	if _, err := providers.GetModel(providerID, modelID); err != nil {
		return []string{fmt.Sprintf(messages.ValidateModelRefNotFoundFmt, ref)}
	}
	return nil
}

func validateVersionChain(p *primitive.Primitive) []string {
	var errs []string
	versions := p.Versions()
	if len(versions) == 0 {
		return errs
	}

	seen := map[int]bool{}
	hasActive := false
	for _, v := range versions {
		if seen[v.Version] {
			errs = append(errs, fmt.Sprintf(messages.ValidateDuplicateVersionFmt, p.Path, v.Version))
		}
		seen[v.Version] = true

		switch v.Status {
		case primitive.StatusDraft, primitive.StatusActive, primitive.StatusDeprecated:
		default:
			errs = append(errs, fmt.Sprintf(messages.ValidateVersionStatusInvalidFmt, p.Path, v.Version, v.Status))
		}
		if v.Status == primitive.StatusActive {
			hasActive = true
		}

		filePath := filepath.Join(p.Path, v.File)
		if !fileExists(filePath) {
			errs = append(errs, fmt.Sprintf(messages.ValidateVersionFileMissingFmt, p.Path, v.Version, v.File))
			continue
		}
		if v.Hash != "" {
			content, err := os.ReadFile(filePath)
			if err == nil && !hashutil.Equal(v.Hash, content) {
				errs = append(errs, fmt.Sprintf(messages.ValidateVersionHashMismatchFmt, p.Path, v.Version, v.Hash, hashutil.Fingerprint(content)))
			}
		}
	}
	if !hasActive {
		errs = append(errs, fmt.Sprintf(messages.ValidateNoActiveVersionFmt, p.Path))
	}

	if def := p.DefaultVersion(); def != nil {
		entry, _ := findVersionEntry(versions, *def)
		if entry == nil {
			errs = append(errs, fmt.Sprintf(messages.ValidateDefaultVersionMissingFmt, p.Path, *def))
		} else if entry.Status == primitive.StatusDeprecated {
			errs = append(errs, fmt.Sprintf(messages.ValidateDefaultVersionDeprecatedFmt, p.Path, *def))
		}
	}

	return errs
}

func findVersionEntry(versions []primitive.VersionEntry, version int) (*primitive.VersionEntry, int) {
	for i := range versions {
		if versions[i].Version == version {
			return &versions[i], i
		}
	}
	return nil, -1
}
