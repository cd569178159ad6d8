package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeMeta(t *testing.T, dir string, doc map[string]any) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, filepath.Base(dir)+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlanNoopWhenSameSpec(t *testing.T) {
	doc := map[string]any{"spec_version": "v1"}
	changes, err := Plan(doc, "v1", "v1")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if changes != nil {
		t.Fatalf("expected nil changes, got %+v", changes)
	}
}

func TestPlanRejectsUnsupportedTransition(t *testing.T) {
	_, err := Plan(map[string]any{}, "v1", "v3")
	if err == nil {
		t.Fatal("expected error for unsupported transition")
	}
}

func TestPlanV1ToV2AddsCompatibilityAndRenamesDefaults(t *testing.T) {
	doc := map[string]any{
		"spec_version": "v1",
		"defaults":     map[string]any{"preferred_models": []string{"claude-sonnet"}},
	}
	changes, err := Plan(doc, "v1", "v2")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes (spec_version, rename, add compatibility), got %+v", changes)
	}
}

func TestApplyV1ToV2RenamesFieldAndAddsCompatibilityWithAutoFix(t *testing.T) {
	doc := map[string]any{
		"spec_version": "v1",
		"defaults":     map[string]any{"preferred_models": []string{"claude-sonnet"}},
	}
	if err := Apply(doc, "v1", "v2", true); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if doc["spec_version"] != "v2" {
		t.Fatalf("expected spec_version v2, got %v", doc["spec_version"])
	}
	defaults := doc["defaults"].(map[string]any)
	if _, ok := defaults["preferred_models"]; ok {
		t.Fatal("expected preferred_models removed")
	}
	if _, ok := defaults["model_preferences"]; !ok {
		t.Fatal("expected model_preferences present")
	}
	if _, ok := doc["compatibility"]; !ok {
		t.Fatal("expected compatibility synthesized by auto_fix")
	}
}

func TestApplyV1ToV2WithoutAutoFixLeavesCompatibilityAbsent(t *testing.T) {
	doc := map[string]any{"spec_version": "v1"}
	if err := Apply(doc, "v1", "v2", false); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := doc["compatibility"]; ok {
		t.Fatal("expected compatibility left unset without auto_fix")
	}
}

func TestRunDryRunLeavesFilesUntouched(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "primitives", "v1", "reviewer")
	path := writeMeta(t, dir, map[string]any{"spec_version": "v1", "id": "reviewer"})

	result, err := Run(dir, "v2", true, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Changes) == 0 {
		t.Fatal("expected planned changes")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["spec_version"] != "v1" {
		t.Fatalf("dry run must not mutate file, got spec_version=%v", doc["spec_version"])
	}
}

func TestRunToExperimentalRelocatesDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "primitives", "v1", "reviewer")
	writeMeta(t, dir, map[string]any{"spec_version": "v1", "id": "reviewer"})

	result, err := Run(dir, "experimental", false, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantMoved := filepath.Join(root, "primitives", "experimental", "reviewer")
	if result.MovedTo != wantMoved {
		t.Fatalf("expected MovedTo %s, got %s", wantMoved, result.MovedTo)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected old directory removed, stat err=%v", err)
	}
	if _, err := os.Stat(wantMoved); err != nil {
		t.Fatalf("expected relocated directory to exist: %v", err)
	}
}

func TestRunRejectsExistingDestination(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "primitives", "v1", "reviewer")
	writeMeta(t, dir, map[string]any{"spec_version": "v1", "id": "reviewer"})
	writeMeta(t, filepath.Join(root, "primitives", "experimental", "reviewer"), map[string]any{"spec_version": "experimental", "id": "reviewer"})

	if _, err := Run(dir, "experimental", false, true); err == nil {
		t.Fatal("expected error when destination already exists")
	}
}
