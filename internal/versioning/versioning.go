// Package versioning implements the content-addressed version chain
// mutators described for primitive metadata: Bump, Promote, Deprecate, and
// Check. Mutation always follows the same ordering: any new content file
// is written to disk before the metadata entry referencing it is saved, and
// the metadata save itself is atomic (internal/primitive.Save).
package versioning

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/hashutil"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

// highestVersion returns the largest version number in versions, or 0 if
// versions is empty.
func highestVersion(versions []primitive.VersionEntry) int {
	highest := 0
	for _, v := range versions {
		if v.Version > highest {
			highest = v.Version
		}
	}
	return highest
}

func findVersion(versions []primitive.VersionEntry, version int) (*primitive.VersionEntry, int) {
	for i := range versions {
		if versions[i].Version == version {
			return &versions[i], i
		}
	}
	return nil, -1
}

// Bump creates a new draft version by copying the current highest version's
// content file (or the primitive's unversioned content file, if the chain
// is empty), computing its content hash, and appending a new draft Version
// Entry. It returns the new version number.
func Bump(p *primitive.Primitive, notes string, setDefault bool) (int, error) {
	versions := p.Versions()
	highest := highestVersion(versions)
	newVersion := highest + 1

	var sourceFile string
	if highest > 0 {
		entry, _ := findVersion(versions, highest)
		sourceFile = entry.File
	} else if p.ContentFile != "" {
		sourceFile = p.ContentFile
	} else {
		return 0, agenticerr.New(agenticerr.KindValidation, p.Path, fmt.Sprintf(messages.VersionNoContentFileFmt, p.ID()))
	}

	sourcePath := filepath.Join(p.Path, sourceFile)
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return 0, agenticerr.Wrap(agenticerr.KindNotFound, sourcePath, "read source version file", err)
	}

	newFile := fmt.Sprintf("%s.prompt.v%d.md", p.ID(), newVersion)
	newPath := filepath.Join(p.Path, newFile)
	if err := os.WriteFile(newPath, content, 0o644); err != nil {
		return 0, agenticerr.Wrap(agenticerr.KindIOFailure, newPath, "write new version file", err)
	}

	entry := primitive.VersionEntry{
		Version: newVersion,
		File:    newFile,
		Status:  primitive.StatusDraft,
		Hash:    hashutil.Fingerprint(content),
		Created: time.Now().UTC().Format("2006-01-02"),
		Notes:   notes,
	}
	versions = append(versions, entry)
	p.SetVersions(versions)

	if setDefault {
		v := newVersion
		p.SetDefaultVersion(&v)
	}

	if err := primitive.Save(p); err != nil {
		return 0, err
	}
	return newVersion, nil
}

// Promote transitions version to status=active. It rejects promoting a
// deprecated version (create a new version instead).
func Promote(p *primitive.Primitive, version int, setDefault bool) error {
	versions := p.Versions()
	entry, idx := findVersion(versions, version)
	if entry == nil {
		return agenticerr.New(agenticerr.KindNotFound, p.Path, fmt.Sprintf(messages.VersionEntryNotFoundFmt, version, p.ID()))
	}
	if entry.Status == primitive.StatusDeprecated {
		return agenticerr.New(agenticerr.KindValidation, p.Path, fmt.Sprintf(messages.VersionCannotPromoteDeprecFmt, version, p.ID()))
	}

	versions[idx].Status = primitive.StatusActive
	p.SetVersions(versions)

	if setDefault {
		v := version
		p.SetDefaultVersion(&v)
	}
	return primitive.Save(p)
}

// Deprecate transitions version to status=deprecated, recording reason. If
// version was the default, the default is recomputed as the highest
// remaining active version, or cleared if none remain.
func Deprecate(p *primitive.Primitive, version int, reason string) error {
	versions := p.Versions()
	entry, idx := findVersion(versions, version)
	if entry == nil {
		return agenticerr.New(agenticerr.KindNotFound, p.Path, fmt.Sprintf(messages.VersionEntryNotFoundFmt, version, p.ID()))
	}

	versions[idx].Status = primitive.StatusDeprecated
	if reason != "" {
		versions[idx].Deprecated = reason
	}
	p.SetVersions(versions)

	if def := p.DefaultVersion(); def != nil && *def == version {
		p.SetDefaultVersion(latestActive(versions))
	}
	return primitive.Save(p)
}

// latestActive returns a pointer to the highest version number among active
// entries, or nil if none are active.
func latestActive(versions []primitive.VersionEntry) *int {
	best := -1
	for _, v := range versions {
		if v.Status == primitive.StatusActive && v.Version > best {
			best = v.Version
		}
	}
	if best == -1 {
		return nil
	}
	return &best
}

// CheckEntry reports the outcome of validating one version entry's stored
// hash against its file's actual content hash.
type CheckEntry struct {
	Version  int
	File     string
	OK       bool
	Expected string
	Actual   string
	Err      error
}

// Check recomputes the content hash of every version entry's file and
// compares it to the stored hash. A missing file or hash mismatch is
// reported as a failing entry rather than aborting the scan.
func Check(p *primitive.Primitive) []CheckEntry {
	versions := p.Versions()
	results := make([]CheckEntry, 0, len(versions))
	for _, v := range versions {
		path := filepath.Join(p.Path, v.File)
		content, err := os.ReadFile(path)
		if err != nil {
			results = append(results, CheckEntry{Version: v.Version, File: v.File, OK: false, Err: agenticerr.Wrap(agenticerr.KindNotFound, path, "read version file", err)})
			continue
		}
		actual := hashutil.Fingerprint(content)
		ok := v.Hash == "" || hashutil.Equal(v.Hash, content)
		entry := CheckEntry{Version: v.Version, File: v.File, OK: ok, Expected: v.Hash, Actual: actual}
		if !ok {
			entry.Err = agenticerr.New(agenticerr.KindHashMismatch, path, fmt.Sprintf(messages.VersionHashMismatchFmt, p.ID(), v.Version, v.Hash, actual))
		}
		results = append(results, entry)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Version < results[j].Version })
	return results
}
