package install

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/manifest"
)

func buildDirFor(t *testing.T, provider string) string {
	t.Helper()
	dir := t.TempDir()
	for _, sentinel := range sentinelFiles[provider] {
		if err := os.MkdirAll(filepath.Join(dir, sentinel), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func writeManaged(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunFirstInstallWritesFilesAndManifest(t *testing.T) {
	cwd := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}

	buildDir := buildDirFor(t, "claude")
	writeManaged(t, buildDir, "commands/qa-review.md", "review prompt v1")

	m := manifest.New("claude", time.Unix(0, 0))
	m.Upsert(manifest.Primitive{ID: "qa-review", Kind: "command", Version: 1, Hash: "hash1", Files: []string{"commands/qa-review.md"}}, time.Unix(0, 0))
	if err := m.Save(buildDir); err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{BuildDir: buildDir, Provider: "claude", Now: time.Unix(1, 0)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !result.Diff.HasChanges() {
		t.Fatal("expected changes on first install")
	}
	if len(result.Diff.Added) != 1 {
		t.Fatalf("expected 1 added primitive, got %+v", result.Diff.Added)
	}
	installed := filepath.Join(result.InstallDir, "commands", "qa-review.md")
	data, err := os.ReadFile(installed)
	if err != nil {
		t.Fatalf("expected installed file: %v", err)
	}
	if string(data) != "review prompt v1" {
		t.Fatalf("unexpected installed content: %q", data)
	}
}

func TestRunUpdatesChangedPrimitiveAndBacksUp(t *testing.T) {
	provider := "claude"
	cwd := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}

	installDir := filepath.Join(cwd, "."+provider)
	writeManaged(t, installDir, "commands/qa-review.md", "old content")
	existing := manifest.New(provider, time.Unix(0, 0))
	existing.Upsert(manifest.Primitive{ID: "qa-review", Kind: "command", Version: 1, Hash: "old-hash", Files: []string{"commands/qa-review.md"}}, time.Unix(0, 0))
	if err := existing.Save(installDir); err != nil {
		t.Fatal(err)
	}

	buildDir := buildDirFor(t, provider)
	writeManaged(t, buildDir, "commands/qa-review.md", "new content")
	fresh := manifest.New(provider, time.Unix(1, 0))
	fresh.Upsert(manifest.Primitive{ID: "qa-review", Kind: "command", Version: 2, Hash: "new-hash", Files: []string{"commands/qa-review.md"}}, time.Unix(1, 0))
	if err := fresh.Save(buildDir); err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{BuildDir: buildDir, Provider: provider, Backup: true, ShowDiff: true, Now: time.Unix(2, 0)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Diff.Updated) != 1 {
		t.Fatalf("expected 1 updated primitive, got %+v", result.Diff.Updated)
	}
	if result.BackupDir == "" {
		t.Fatal("expected backup directory to be set")
	}
	if len(result.DiffPreviews) != 1 {
		t.Fatalf("expected 1 diff preview, got %d", len(result.DiffPreviews))
	}
	data, err := os.ReadFile(filepath.Join(installDir, "commands", "qa-review.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new content" {
		t.Fatalf("expected installed file updated, got %q", data)
	}
}

func TestRunDryRunMakesNoChanges(t *testing.T) {
	provider := "claude"
	cwd := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}

	buildDir := buildDirFor(t, provider)
	writeManaged(t, buildDir, "commands/qa-review.md", "content")
	m := manifest.New(provider, time.Unix(0, 0))
	m.Upsert(manifest.Primitive{ID: "qa-review", Kind: "command", Version: 1, Hash: "hash1", Files: []string{"commands/qa-review.md"}}, time.Unix(0, 0))
	if err := m.Save(buildDir); err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{BuildDir: buildDir, Provider: provider, DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.DryRun {
		t.Fatal("expected DryRun true")
	}
	if _, err := os.Stat(filepath.Join(cwd, "."+provider, "commands", "qa-review.md")); !os.IsNotExist(err) {
		t.Fatalf("expected no file written during dry run, stat err=%v", err)
	}
}

func TestRunMissingBuildDirErrors(t *testing.T) {
	if _, err := Run(Options{BuildDir: filepath.Join(t.TempDir(), "missing"), Provider: "claude"}); err == nil {
		t.Fatal("expected error for missing build directory")
	}
}

func TestRunMissingSentinelErrors(t *testing.T) {
	dir := t.TempDir()
	writeManaged(t, dir, "README.md", "not a real build")
	if _, err := Run(Options{BuildDir: dir, Provider: "claude"}); err == nil {
		t.Fatal("expected error for missing sentinel file")
	}
}
