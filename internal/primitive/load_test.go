package primitive

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPromptPrimitiveUnversioned(t *testing.T) {
	dir := t.TempDir()
	primDir := filepath.Join(dir, "review")
	writeFile(t, filepath.Join(primDir, "review.yaml"), `
id: review
kind: command
category: qa
domain: testing
summary: review code
`)
	writeFile(t, filepath.Join(primDir, "review.prompt.md"), "Review the diff.")

	p, err := Load(primDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Kind != KindCommand {
		t.Fatalf("expected command kind, got %s", p.Kind)
	}
	if p.Content != "Review the diff." {
		t.Fatalf("unexpected content: %q", p.Content)
	}
}

func TestLoadPromptPrimitiveVersioned(t *testing.T) {
	dir := t.TempDir()
	primDir := filepath.Join(dir, "t")
	writeFile(t, filepath.Join(primDir, "t.yaml"), `
id: t
kind: agent
category: testing
domain: test
summary: test agent
versions:
  - version: 1
    file: t.prompt.v1.md
    status: active
    hash: "blake3:deadbeef"
    created: "2026-01-01"
default_version: 1
`)
	writeFile(t, filepath.Join(primDir, "t.prompt.v1.md"), "A")

	p, err := Load(primDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ContentFile != "t.prompt.v1.md" {
		t.Fatalf("unexpected content file: %q", p.ContentFile)
	}
	if p.Content != "A" {
		t.Fatalf("unexpected content: %q", p.Content)
	}
}

func TestLoadMissingMetaFile(t *testing.T) {
	dir := t.TempDir()
	primDir := filepath.Join(dir, "nope")
	if err := os.MkdirAll(primDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(primDir); err == nil {
		t.Fatal("expected error for missing metadata file")
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load("/nonexistent/primitive/dir"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadHookFoldsSingularEvent(t *testing.T) {
	dir := t.TempDir()
	primDir := filepath.Join(dir, "bash-validator")
	writeFile(t, filepath.Join(primDir, "bash-validator.hook.yaml"), `
id: bash-validator
kind: hook
category: safety
event: PreToolUse
summary: validates bash commands
execution:
  strategy: pipeline
`)
	p, err := Load(primDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Hook.Events) != 1 || p.Hook.Events[0] != "PreToolUse" {
		t.Fatalf("expected Events=[PreToolUse], got %v", p.Hook.Events)
	}
}

func TestLoadHookUniversalWhenNoEvents(t *testing.T) {
	dir := t.TempDir()
	primDir := filepath.Join(dir, "universal-logger")
	writeFile(t, filepath.Join(primDir, "universal-logger.hook.yaml"), `
id: universal-logger
kind: hook
category: observability
summary: logs everything
execution:
  strategy: parallel
`)
	p, err := Load(primDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Hook.Events) != 0 {
		t.Fatalf("expected no declared events, got %v", p.Hook.Events)
	}
}

func TestLoadToolPrimitive(t *testing.T) {
	dir := t.TempDir()
	primDir := filepath.Join(dir, "run-tests")
	writeFile(t, filepath.Join(primDir, "run-tests.tool.yaml"), `
id: run-tests
kind: tool
category: testing
description: runs the test suite
args:
  - name: path
    type: string
    description: path to test
    required: true
`)
	p, err := Load(primDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Tool.ID != "run-tests" || len(p.Tool.Args) != 1 {
		t.Fatalf("unexpected tool meta: %+v", p.Tool)
	}
}

func TestDiscoverAllFindsPrimitivesInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b-cmd", "b-cmd.yaml"), "id: b-cmd\nkind: command\ncategory: qa\nsummary: s\n")
	writeFile(t, filepath.Join(root, "b-cmd", "b-cmd.prompt.md"), "x")
	writeFile(t, filepath.Join(root, "a-cmd", "a-cmd.yaml"), "id: a-cmd\nkind: command\ncategory: qa\nsummary: s\n")
	writeFile(t, filepath.Join(root, "a-cmd", "a-cmd.prompt.md"), "x")

	dirs, err := DiscoverAll(root)
	if err != nil {
		t.Fatalf("DiscoverAll: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 primitives, got %d: %v", len(dirs), dirs)
	}
	if filepath.Base(dirs[0]) != "a-cmd" || filepath.Base(dirs[1]) != "b-cmd" {
		t.Fatalf("expected lexicographic order, got %v", dirs)
	}
}
