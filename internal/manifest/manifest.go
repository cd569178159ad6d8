// Package manifest tracks which files a build/install of primitives onto
// a target host manages, so a later sync only touches those files and
// leaves locally created ones alone.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// Filename is the manifest's on-disk name within an install or build root.
const Filename = ".agentic-manifest.yaml"

// Primitive is one tracked entry: the primitive's id, kind, resolved
// version, content hash, and the relative output files it produced.
type Primitive struct {
	ID      string   `yaml:"id"`
	Kind    string   `yaml:"kind"`
	Version int      `yaml:"version"`
	Hash    string   `yaml:"hash"`
	Files   []string `yaml:"files"`
}

// Manifest tracks every primitive installed for one provider target.
type Manifest struct {
	Version    string      `yaml:"version"`
	UpdatedAt  time.Time   `yaml:"updated_at"`
	Source     string      `yaml:"source,omitempty"`
	Provider   string      `yaml:"provider"`
	Primitives []Primitive `yaml:"primitives"`
}

// New constructs an empty manifest for provider.
func New(provider string, now time.Time) *Manifest {
	return &Manifest{Version: "1.0", UpdatedAt: now, Provider: provider}
}

// Load reads the manifest from dir, returning (nil, nil) if none exists.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ManifestReadFailedFmt, path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf(messages.ManifestParseFailedFmt, path, err)
	}
	return &m, nil
}

// Save writes m to dir.
func (m *Manifest) Save(dir string) error {
	path := filepath.Join(dir, Filename)
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf(messages.ManifestWriteFailedFmt, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ManifestWriteFailedFmt, path, err)
	}
	return nil
}

// Upsert adds p, or replaces the existing entry with the same ID, and
// bumps UpdatedAt to now.
func (m *Manifest) Upsert(p Primitive, now time.Time) {
	for i := range m.Primitives {
		if m.Primitives[i].ID == p.ID {
			m.Primitives[i] = p
			m.UpdatedAt = now
			return
		}
	}
	m.Primitives = append(m.Primitives, p)
	m.UpdatedAt = now
}

// ManagedFiles returns every file path tracked across all primitives.
func (m *Manifest) ManagedFiles() []string {
	var files []string
	for _, p := range m.Primitives {
		files = append(files, p.Files...)
	}
	return files
}

// IsManaged reports whether path is tracked by any primitive in m.
func (m *Manifest) IsManaged(path string) bool {
	for _, p := range m.Primitives {
		for _, f := range p.Files {
			if f == path {
				return true
			}
		}
	}
	return false
}

// Get returns the tracked primitive with the given id, if any.
func (m *Manifest) Get(id string) (Primitive, bool) {
	for _, p := range m.Primitives {
		if p.ID == id {
			return p, true
		}
	}
	return Primitive{}, false
}

// Diff is the three-way reconciliation between a freshly built manifest
// (source) and the manifest already present at the install location
// (target, nil if none exists).
type Diff struct {
	Added     []Primitive
	Updated   []UpdatedPrimitive
	Removed   []Primitive
	Unchanged []Primitive
}

// UpdatedPrimitive pairs a primitive's previously installed entry with its
// freshly built replacement.
type UpdatedPrimitive struct {
	Old Primitive
	New Primitive
}

// Compare computes the reconciliation between source (the newly built
// manifest) and target (the manifest already on disk at the install
// location, nil if this is a first install).
func Compare(source *Manifest, target *Manifest) Diff {
	var diff Diff

	targetByID := map[string]Primitive{}
	if target != nil {
		for _, p := range target.Primitives {
			targetByID[p.ID] = p
		}
	}

	for _, src := range source.Primitives {
		tgt, ok := targetByID[src.ID]
		switch {
		case !ok:
			diff.Added = append(diff.Added, src)
		case src.Hash != tgt.Hash || src.Version != tgt.Version:
			diff.Updated = append(diff.Updated, UpdatedPrimitive{Old: tgt, New: src})
		default:
			diff.Unchanged = append(diff.Unchanged, src)
		}
	}

	if target != nil {
		sourceIDs := map[string]bool{}
		for _, p := range source.Primitives {
			sourceIDs[p.ID] = true
		}
		for _, tgt := range target.Primitives {
			if !sourceIDs[tgt.ID] {
				diff.Removed = append(diff.Removed, tgt)
			}
		}
	}

	return diff
}

// HasChanges reports whether the diff carries any additions, updates, or
// removals.
func (d Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Updated) > 0 || len(d.Removed) > 0
}

// FilesToInstall lists the output files of every added or updated
// primitive.
func (d Diff) FilesToInstall() []string {
	var files []string
	for _, p := range d.Added {
		files = append(files, p.Files...)
	}
	for _, u := range d.Updated {
		files = append(files, u.New.Files...)
	}
	return files
}

// FilesToRemove lists the output files of every removed primitive.
func (d Diff) FilesToRemove() []string {
	var files []string
	for _, p := range d.Removed {
		files = append(files, p.Files...)
	}
	return files
}
