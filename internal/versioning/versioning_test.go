package versioning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/hashutil"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

func setupUnversioned(t *testing.T) *primitive.Primitive {
	t.Helper()
	dir := t.TempDir()
	primDir := filepath.Join(dir, "reviewer")
	if err := os.MkdirAll(primDir, 0o755); err != nil {
		t.Fatal(err)
	}
	meta := "id: reviewer\nkind: agent\ncategory: qa\nsummary: reviews code\n"
	if err := os.WriteFile(filepath.Join(primDir, "reviewer.yaml"), []byte(meta), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(primDir, "reviewer.prompt.md"), []byte("Review this."), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := primitive.Load(primDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestBumpFromUnversioned(t *testing.T) {
	p := setupUnversioned(t)
	v, err := Bump(p, "first draft", true)
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if v != 1 {
		t.Fatalf("expected version 1, got %d", v)
	}
	versions := p.Versions()
	if len(versions) != 1 || versions[0].Status != primitive.StatusDraft {
		t.Fatalf("unexpected versions: %+v", versions)
	}
	if p.DefaultVersion() == nil || *p.DefaultVersion() != 1 {
		t.Fatalf("expected default_version=1, got %v", p.DefaultVersion())
	}
	newPath := filepath.Join(p.Path, "reviewer.prompt.v1.md")
	if _, err := os.Stat(newPath); err != nil {
		t.Fatalf("expected new version file: %v", err)
	}

	reloaded, err := primitive.Load(p.Path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Versions()) != 1 {
		t.Fatalf("expected persisted version entry, got %+v", reloaded.Versions())
	}
}

func TestBumpChainsFromHighest(t *testing.T) {
	p := setupUnversioned(t)
	if _, err := Bump(p, "v1", true); err != nil {
		t.Fatalf("Bump v1: %v", err)
	}
	v2, err := Bump(p, "v2", false)
	if err != nil {
		t.Fatalf("Bump v2: %v", err)
	}
	if v2 != 2 {
		t.Fatalf("expected version 2, got %d", v2)
	}
	if *p.DefaultVersion() != 1 {
		t.Fatalf("default should remain 1 without --set-default, got %d", *p.DefaultVersion())
	}
}

func TestPromoteRejectsDeprecated(t *testing.T) {
	p := setupUnversioned(t)
	Bump(p, "v1", true)
	if err := Deprecate(p, 1, "superseded"); err != nil {
		t.Fatalf("Deprecate: %v", err)
	}
	if err := Promote(p, 1, false); err == nil {
		t.Fatal("expected error promoting a deprecated version")
	}
}

func TestDeprecateClearsDefaultWhenNoActiveRemain(t *testing.T) {
	p := setupUnversioned(t)
	Bump(p, "v1", true)
	if err := Deprecate(p, 1, "bad"); err != nil {
		t.Fatalf("Deprecate: %v", err)
	}
	if p.DefaultVersion() != nil {
		t.Fatalf("expected default_version cleared, got %v", *p.DefaultVersion())
	}
}

func TestDeprecateRecomputesLatestActive(t *testing.T) {
	p := setupUnversioned(t)
	Bump(p, "v1", true)
	Promote(p, 1, true)
	Bump(p, "v2", true)
	Promote(p, 2, true)
	if err := Deprecate(p, 2, "replaced"); err != nil {
		t.Fatalf("Deprecate: %v", err)
	}
	if p.DefaultVersion() == nil || *p.DefaultVersion() != 1 {
		t.Fatalf("expected default to fall back to v1, got %v", p.DefaultVersion())
	}
}

func TestCheckDetectsMismatch(t *testing.T) {
	p := setupUnversioned(t)
	Bump(p, "v1", true)

	path := filepath.Join(p.Path, "reviewer.prompt.v1.md")
	if err := os.WriteFile(path, []byte("tampered content"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := Check(p)
	if len(results) != 1 || results[0].OK {
		t.Fatalf("expected mismatch reported, got %+v", results)
	}
}

func TestCheckPassesUntampered(t *testing.T) {
	p := setupUnversioned(t)
	Bump(p, "v1", true)

	results := Check(p)
	if len(results) != 1 || !results[0].OK {
		t.Fatalf("expected valid hash, got %+v", results)
	}
	if !hashutil.Equal(results[0].Expected, []byte("Review this.")) {
		t.Fatalf("expected hash to match original content")
	}
}
