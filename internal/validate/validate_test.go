package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/hashutil"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/provider"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/schema"
)

func loadPrimitive(t *testing.T, dir string) *primitive.Primitive {
	t.Helper()
	p, err := primitive.Load(dir)
	if err != nil {
		t.Fatalf("load primitive: %v", err)
	}
	return p
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func setupAgentDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
spec_version: v1
summary: Reviews pull requests.
tools:
  - search-code
`)
	writeFile(t, filepath.Join(dir, "reviewer.prompt.md"), "You are a reviewer.")
	return dir
}

func TestStructuralPassesValidAgent(t *testing.T) {
	dir := setupAgentDir(t)
	errs := Structural(dir)
	if len(errs) != 0 {
		t.Fatalf("expected no structural errors, got %v", errs)
	}
}

func TestStructuralFailsMissingDir(t *testing.T) {
	errs := Structural(filepath.Join(t.TempDir(), "nope"))
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
}

func TestStructuralFailsMissingMetaFile(t *testing.T) {
	dir := t.TempDir()
	errs := Structural(dir)
	if len(errs) == 0 {
		t.Fatalf("expected missing-meta error")
	}
}

func TestStructuralFailsDirNameMismatch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "wrong-name")
	writeFile(t, filepath.Join(dir, "wrong-name.yaml"), `
id: reviewer
kind: agent
category: reviewing
summary: Reviews pull requests.
`)
	writeFile(t, filepath.Join(dir, "wrong-name.prompt.v1.md"), "content")

	errs := Structural(dir)
	found := false
	for _, e := range errs {
		if filepathContains(e, "does not equal id") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dir-name-mismatch error, got %v", errs)
	}
}

func filepathContains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestStructuralFailsMissingContentFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
summary: Reviews pull requests.
`)

	errs := Structural(dir)
	if len(errs) == 0 {
		t.Fatalf("expected missing-content-file error")
	}
}

func TestValidateSchemaLayerPasses(t *testing.T) {
	dir := setupAgentDir(t)
	report := Validate(dir, Options{Layers: Layers{Schema: true}, Schemas: schema.NewRegistry()})
	if report.StructuralRan {
		t.Fatalf("expected structural layer left disabled")
	}
	if !report.SchemaPassed {
		t.Fatalf("expected schema pass, errs=%v", report.Errors)
	}
}

func TestValidateSchemaLayerCatchesMissingRequired(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
`)
	writeFile(t, filepath.Join(dir, "reviewer.prompt.md"), "content")

	report := Validate(dir, Options{Layers: Layers{Schema: true}, Schemas: schema.NewRegistry()})
	if report.SchemaPassed {
		t.Fatalf("expected schema failure for missing summary")
	}
}

func TestValidateSkipsLayersForExperimental(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
spec_version: experimental
summary: Reviews pull requests.
`)
	writeFile(t, filepath.Join(dir, "reviewer.prompt.md"), "content")

	report := Validate(dir, Options{Layers: AllLayers(), Schemas: schema.NewRegistry()})
	if !report.StructuralPassed {
		t.Fatalf("expected structural pass")
	}
	if report.SchemaRan || report.SemanticRan {
		t.Fatalf("expected schema/semantic layers skipped for experimental primitive")
	}
	if !report.IsValid() {
		t.Fatalf("experimental skip must not fail the report: %v", report.Errors)
	}
	if len(report.Notes) == 0 {
		t.Fatalf("expected a note explaining the skip")
	}
}

func TestSemanticResolvesToolReference(t *testing.T) {
	root := t.TempDir()
	toolsRoot := filepath.Join(root, "primitives", "v1", "tools")
	writeFile(t, filepath.Join(toolsRoot, "dev", "search-code", "search-code.tool.yaml"), `
id: search-code
kind: tool
category: dev
description: Searches code.
`)

	dir := setupAgentDirIn(t, root)
	_ = dir

	p := loadPrimitive(t, dir)
	errs := Semantic(p, Options{ToolsRoot: toolsRoot})
	if len(errs) != 0 {
		t.Fatalf("expected no semantic errors, got %v", errs)
	}
}

func TestSemanticFailsUnresolvedToolReference(t *testing.T) {
	root := t.TempDir()
	toolsRoot := filepath.Join(root, "primitives", "v1", "tools")
	os.MkdirAll(toolsRoot, 0o755)

	dir := setupAgentDirIn(t, root)
	p := loadPrimitive(t, dir)
	errs := Semantic(p, Options{ToolsRoot: toolsRoot})
	if len(errs) == 0 {
		t.Fatalf("expected tool-reference error")
	}
}

func TestSemanticDetectsVersionHashMismatch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.prompt.v1.md"), "original content")
	badHash := hashutil.Fingerprint([]byte("tampered"))
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
summary: Reviews pull requests.
default_version: 1
versions:
  - version: 1
    file: reviewer.prompt.v1.md
    status: active
    hash: `+badHash+"\n")

	p := loadPrimitive(t, dir)
	errs := validateVersionChain(p)
	if len(errs) == 0 {
		t.Fatalf("expected hash mismatch error")
	}
}

func TestSemanticFailsInvalidModelRef(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
summary: Reviews pull requests.
defaults:
  preferred_models:
    - not-a-valid-ref
`)
	writeFile(t, filepath.Join(dir, "reviewer.prompt.md"), "content")

	p := loadPrimitive(t, dir)
	errs := Semantic(p, Options{Providers: &provider.Registry{}})
	if len(errs) == 0 {
		t.Fatalf("expected invalid model ref error")
	}
}

func setupAgentDirIn(t *testing.T, root string) string {
	t.Helper()
	dir := filepath.Join(root, "prompts", "agents", "reviewing", "reviewer")
	writeFile(t, filepath.Join(dir, "reviewer.yaml"), `
id: reviewer
kind: agent
category: reviewing
summary: Reviews pull requests.
tools:
  - search-code
`)
	writeFile(t, filepath.Join(dir, "reviewer.prompt.md"), "content")
	return dir
}
