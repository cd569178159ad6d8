// Package migrate rewrites a primitive's metadata between spec versions
// (v1, v2, experimental) and, when the transition crosses a top-level
// directory boundary, relocates the primitive's directory to match.
// Mirrors the plan/apply split spec.md §4.8 requires: Plan never touches
// disk, Apply rewrites the document in memory, and Run writes it back and
// performs the directory move.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// transition identifies a supported (from, to) spec-version pair.
type transition struct{ from, to string }

var supported = map[transition]bool{
	{"v1", "v2"}:           true,
	{"v2", "v1"}:           true,
	{"v1", "experimental"}: true,
	{"experimental", "v1"}: true,
	{"v2", "experimental"}: true,
	{"experimental", "v2"}: true,
}

// Change is one human-readable description of a planned or applied
// modification ("Rename field: ...", "Move to: ...").
type Change = string

// Plan computes the list of changes migrating doc from fromSpec to toSpec
// would make, without mutating doc. The result is empty only when from and
// to are identical; otherwise it always lists the spec_version change.
func Plan(doc map[string]any, fromSpec, toSpec string) ([]Change, error) {
	if fromSpec == toSpec {
		return nil, nil
	}
	if !supported[transition{fromSpec, toSpec}] {
		return nil, agenticerr.New(agenticerr.KindValidation, "", fmt.Sprintf(messages.MigrateUnsupportedTransitionFmt, fromSpec, toSpec))
	}

	var changes []Change
	changes = append(changes, fmt.Sprintf(messages.MigrateRenameFieldFmt, "spec_version: "+fromSpec, toSpec))

	switch {
	case fromSpec == "v1" && toSpec == "v2":
		if hasPreferredModels(doc) {
			changes = append(changes, fmt.Sprintf(messages.MigrateRenameFieldFmt, "defaults.preferred_models", "defaults.model_preferences"))
		}
		if _, ok := doc["compatibility"]; !ok {
			changes = append(changes, fmt.Sprintf(messages.MigrateAddFieldFmt, "compatibility", map[string]any{"min_version": "v2"}))
		}
	case fromSpec == "v2" && toSpec == "v1":
		if hasModelPreferences(doc) {
			changes = append(changes, fmt.Sprintf(messages.MigrateRenameFieldFmt, "defaults.model_preferences", "defaults.preferred_models"))
		}
	case toSpec == "experimental":
		changes = append(changes, fmt.Sprintf(messages.MigrateMoveToFmt, "primitives/experimental/"))
	case fromSpec == "experimental":
		changes = append(changes, fmt.Sprintf(messages.MigrateMoveToFmt, "primitives/"+toSpec+"/"))
	}

	return changes, nil
}

func hasPreferredModels(doc map[string]any) bool {
	defaults, ok := doc["defaults"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = defaults["preferred_models"]
	return ok
}

func hasModelPreferences(doc map[string]any) bool {
	defaults, ok := doc["defaults"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = defaults["model_preferences"]
	return ok
}

// Apply mutates doc in place to reflect fromSpec -> toSpec, performing the
// field renames/adds Plan described. autoFix controls whether missing
// required-but-absent fields (the v1->v2 "compatibility" block) are
// synthesized; without it, Plan still reports the gap but Apply leaves it
// for the caller to fill in by hand.
func Apply(doc map[string]any, fromSpec, toSpec string, autoFix bool) error {
	if fromSpec == toSpec {
		return nil
	}
	if !supported[transition{fromSpec, toSpec}] {
		return agenticerr.New(agenticerr.KindValidation, "", fmt.Sprintf(messages.MigrateUnsupportedTransitionFmt, fromSpec, toSpec))
	}

	doc["spec_version"] = toSpec

	switch {
	case fromSpec == "v1" && toSpec == "v2":
		if defaults, ok := doc["defaults"].(map[string]any); ok {
			if v, ok := defaults["preferred_models"]; ok {
				defaults["model_preferences"] = v
				delete(defaults, "preferred_models")
			}
		}
		if _, ok := doc["compatibility"]; !ok && autoFix {
			doc["compatibility"] = map[string]any{"min_version": "v2"}
		}
	case fromSpec == "v2" && toSpec == "v1":
		if defaults, ok := doc["defaults"].(map[string]any); ok {
			if v, ok := defaults["model_preferences"]; ok {
				defaults["preferred_models"] = v
				delete(defaults, "model_preferences")
			}
		}
	}

	return nil
}

// Result reports the outcome of migrating one primitive.
type Result struct {
	PrimitiveDir string
	FromSpec     string
	ToSpec       string
	Changes      []Change
	MovedTo      string
}

// Run plans and, unless dryRun, applies a migration for the primitive at
// dir: it reads the metadata file, computes the plan, optionally rewrites
// the document and relocates the directory when the transition crosses a
// primitives/<spec>/ boundary.
func Run(dir, toSpec string, dryRun, autoFix bool) (*Result, error) {
	metaPath, doc, err := readMetaDoc(dir)
	if err != nil {
		return nil, err
	}

	fromSpec, _ := doc["spec_version"].(string)
	if fromSpec == "" {
		fromSpec = "v1"
	}

	changes, err := Plan(doc, fromSpec, toSpec)
	if err != nil {
		return nil, err
	}

	result := &Result{PrimitiveDir: dir, FromSpec: fromSpec, ToSpec: toSpec, Changes: changes}
	if dryRun || len(changes) == 0 {
		return result, nil
	}

	if err := Apply(doc, fromSpec, toSpec, autoFix); err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, metaPath, "serialize migrated metadata", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindIOFailure, metaPath, "write migrated metadata", err)
	}

	if movedTo, moved, err := relocate(dir, fromSpec, toSpec); err != nil {
		return nil, err
	} else if moved {
		result.MovedTo = movedTo
	}

	return result, nil
}

// readMetaDoc loads dir's metadata file as a generic document, trying the
// per-kind naming convention before the legacy unqualified name.
func readMetaDoc(dir string) (string, map[string]any, error) {
	dirName := filepath.Base(dir)
	candidates := []string{
		dirName + ".yaml", dirName + ".meta.yaml", dirName + ".tool.yaml",
		dirName + ".hook.yaml", dirName + ".skill.yaml", "meta.yaml",
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, path, "parse metadata", err)
		}
		return path, doc, nil
	}
	return "", nil, agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.PrimitiveNoMetaFileFmt, dir, candidates))
}

// relocate moves dir under a sibling primitives/<toSpec>/ tree when dir's
// path names fromSpec as its spec-version path segment, mirroring
// original_source/cli/src/commands/migrate.rs::move_to_experimental
// generalized to every supported transition (not just ->experimental).
func relocate(dir, fromSpec, toSpec string) (string, bool, error) {
	slashPath := filepath.ToSlash(filepath.Clean(dir))
	marker := "/primitives/" + fromSpec + "/"
	idx := strings.Index(slashPath, marker)
	if idx < 0 {
		return "", false, nil
	}

	before := slashPath[:idx]
	after := slashPath[idx+len(marker):]
	target := filepath.Join(filepath.FromSlash(before), "primitives", toSpec, filepath.FromSlash(after))

	if _, err := os.Stat(target); err == nil {
		return "", false, agenticerr.New(agenticerr.KindIOFailure, target, fmt.Sprintf(messages.MigrateDestinationExistsFmt, target))
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", false, agenticerr.Wrap(agenticerr.KindIOFailure, target, "create migration destination", err)
	}
	if err := os.Rename(dir, target); err != nil {
		return "", false, agenticerr.Wrap(agenticerr.KindIOFailure, target, "move primitive to new spec directory", err)
	}
	return target, true, nil
}
