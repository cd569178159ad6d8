package manifest

import (
	"path/filepath"
	"testing"
	"time"
)

func testPrimitive(id string, version int, hash string) Primitive {
	return Primitive{ID: id, Kind: "command", Version: version, Hash: hash, Files: []string{"commands/" + id + ".md"}}
}

func TestNewManifest(t *testing.T) {
	m := New("claude", time.Unix(0, 0))
	if m.Version != "1.0" || m.Provider != "claude" || len(m.Primitives) != 0 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	m := New("claude", time.Unix(0, 0))
	m.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))

	if err := m.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected loaded manifest")
	}
	if loaded.Provider != "claude" || len(loaded.Primitives) != 1 {
		t.Fatalf("unexpected loaded manifest: %+v", loaded)
	}
}

func TestLoadMissingReturnsNilNil(t *testing.T) {
	loaded, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil manifest for missing file")
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	m := New("claude", time.Unix(0, 0))
	m.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	m.Upsert(testPrimitive("qa-review", 2, "hash456"), time.Unix(2, 0))

	if len(m.Primitives) != 1 {
		t.Fatalf("expected single entry, got %d", len(m.Primitives))
	}
	if m.Primitives[0].Version != 2 || m.Primitives[0].Hash != "hash456" {
		t.Fatalf("expected upsert to replace entry, got %+v", m.Primitives[0])
	}
}

func TestManagedFilesAndIsManaged(t *testing.T) {
	m := New("claude", time.Unix(0, 0))
	m.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	m.Upsert(testPrimitive("qa-pre-commit", 1, "hash456"), time.Unix(1, 0))

	files := m.ManagedFiles()
	if len(files) != 2 {
		t.Fatalf("expected 2 managed files, got %d", len(files))
	}
	if !m.IsManaged(filepath.Join("commands", "qa-review.md")) {
		t.Fatalf("expected qa-review.md to be managed")
	}
	if m.IsManaged("commands/doc-sync.md") {
		t.Fatalf("expected unrelated local file to be unmanaged")
	}
}

func TestDiffNoTarget(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	source.Upsert(testPrimitive("qa-pre-commit", 1, "hash456"), time.Unix(1, 0))

	diff := Compare(source, nil)
	if len(diff.Added) != 2 || len(diff.Updated) != 0 || len(diff.Removed) != 0 || len(diff.Unchanged) != 0 {
		t.Fatalf("unexpected diff: %+v", diff)
	}
}

func TestDiffNoChanges(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	target := *source

	diff := Compare(source, &target)
	if diff.HasChanges() {
		t.Fatalf("expected no changes, got %+v", diff)
	}
	if len(diff.Unchanged) != 1 {
		t.Fatalf("expected 1 unchanged entry, got %d", len(diff.Unchanged))
	}
}

func TestDiffUpdatedPrimitive(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-review", 2, "newhash"), time.Unix(1, 0))
	target := New("claude", time.Unix(0, 0))
	target.Upsert(testPrimitive("qa-review", 1, "oldhash"), time.Unix(1, 0))

	diff := Compare(source, target)
	if len(diff.Updated) != 1 {
		t.Fatalf("expected 1 updated entry, got %d", len(diff.Updated))
	}
	if diff.Updated[0].Old.Version != 1 || diff.Updated[0].New.Version != 2 {
		t.Fatalf("unexpected update pair: %+v", diff.Updated[0])
	}
}

func TestDiffRemovedPrimitive(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	target := New("claude", time.Unix(0, 0))
	target.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	target.Upsert(testPrimitive("qa-old-command", 1, "hash456"), time.Unix(1, 0))

	diff := Compare(source, target)
	if len(diff.Removed) != 1 || diff.Removed[0].ID != "qa-old-command" {
		t.Fatalf("unexpected removed set: %+v", diff.Removed)
	}
	if !diff.HasChanges() {
		t.Fatalf("expected changes to be detected")
	}
}

func TestDiffComplexScenario(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-review", 2, "newhash"), time.Unix(1, 0))
	source.Upsert(testPrimitive("qa-new-cmd", 1, "hash789"), time.Unix(1, 0))

	target := New("claude", time.Unix(0, 0))
	target.Upsert(testPrimitive("qa-review", 1, "oldhash"), time.Unix(1, 0))
	target.Upsert(testPrimitive("qa-old-cmd", 1, "hash456"), time.Unix(1, 0))

	diff := Compare(source, target)
	if len(diff.Added) != 1 || diff.Added[0].ID != "qa-new-cmd" {
		t.Fatalf("unexpected added set: %+v", diff.Added)
	}
	if len(diff.Updated) != 1 || diff.Updated[0].New.ID != "qa-review" {
		t.Fatalf("unexpected updated set: %+v", diff.Updated)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ID != "qa-old-cmd" {
		t.Fatalf("unexpected removed set: %+v", diff.Removed)
	}
}

func TestDiffFilesToInstallAndRemove(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-new-cmd", 1, "hash123"), time.Unix(1, 0))
	source.Upsert(testPrimitive("qa-updated", 2, "newhash"), time.Unix(1, 0))

	target := New("claude", time.Unix(0, 0))
	target.Upsert(testPrimitive("qa-updated", 1, "oldhash"), time.Unix(1, 0))
	target.Upsert(testPrimitive("qa-old-cmd", 1, "hash456"), time.Unix(1, 0))

	diff := Compare(source, target)
	install := diff.FilesToInstall()
	if len(install) != 2 {
		t.Fatalf("expected 2 files to install, got %v", install)
	}
	remove := diff.FilesToRemove()
	if len(remove) != 1 || remove[0] != "commands/qa-old-cmd.md" {
		t.Fatalf("expected old-cmd file to be removed, got %v", remove)
	}
}

func TestLocalFilesNotTouched(t *testing.T) {
	source := New("claude", time.Unix(0, 0))
	source.Upsert(testPrimitive("qa-review", 1, "hash123"), time.Unix(1, 0))
	target := *source

	diff := Compare(source, &target)
	if diff.HasChanges() {
		t.Fatalf("expected no changes")
	}
	if source.IsManaged("commands/doc-sync.md") || source.IsManaged("commands/prime.md") {
		t.Fatalf("expected local files to remain unmanaged")
	}
	install := diff.FilesToInstall()
	for _, local := range []string{"commands/doc-sync.md", "commands/prime.md"} {
		for _, f := range install {
			if f == local {
				t.Fatalf("local file %s leaked into files to install", local)
			}
		}
	}
}
