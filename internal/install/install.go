// Package install implements the manifest-directed installer: resolving
// the install location, diffing a freshly built artifact tree against
// whatever is already installed, and syncing only the files the manifest
// says it owns.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/manifest"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// Options controls one Run of the installer.
type Options struct {
	BuildDir     string
	Provider     string
	Global       bool
	Backup       bool
	DryRun       bool
	ShowDiff     bool
	DiffMaxLines int
	Now          time.Time
}

// Result reports what an install did.
type Result struct {
	InstallDir   string
	BackupDir    string
	Diff         manifest.Diff
	DiffPreviews []DiffPreview
	FilesWritten []string
	FilesRemoved []string
	LegacyMode   bool
	DryRun       bool
}

// sentinelFiles lists, per provider, the minimum set of files a build
// directory must contain to be considered a valid build for that target.
var sentinelFiles = map[string][]string{
	"claude": {"custom_prompts", "commands"},
	"openai": {"prompts"},
}

// ResolveInstallDir computes the install location: a project-local
// .{provider} directory under cwd, or the platform user-config directory
// when global is set.
func ResolveInstallDir(provider string, global bool) (string, error) {
	if !global {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, "."+provider), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.InstallHomeDirFailedFmt, err)
	}
	return filepath.Join(home, ".config", provider+"-primitives"), nil
}

// Run executes the install described by opts.
func Run(opts Options) (*Result, error) {
	if err := validateBuildDir(opts.BuildDir, opts.Provider); err != nil {
		return nil, err
	}

	installDir, err := ResolveInstallDir(opts.Provider, opts.Global)
	if err != nil {
		return nil, err
	}

	sourceManifest, err := manifest.Load(opts.BuildDir)
	if err != nil {
		return nil, err
	}
	targetManifest, err := manifest.Load(installDir)
	if err != nil {
		return nil, err
	}

	result := &Result{InstallDir: installDir, DryRun: opts.DryRun}

	if sourceManifest == nil {
		result.LegacyMode = true
		if opts.DryRun {
			return result, nil
		}
		return result, legacyInstall(opts, installDir, result)
	}

	diff := manifest.Compare(sourceManifest, targetManifest)
	result.Diff = diff

	if opts.ShowDiff && len(diff.Updated) > 0 {
		previews, err := BuildDiffPreviews(opts.BuildDir, installDir, diff, opts.DiffMaxLines)
		if err != nil {
			return nil, err
		}
		result.DiffPreviews = previews
	}

	if opts.DryRun {
		return result, nil
	}

	if opts.Backup && len(diff.Updated) > 0 {
		backupDir, err := backupUpdated(opts, installDir, diff)
		if err != nil {
			return nil, err
		}
		result.BackupDir = backupDir
	}

	for _, rel := range diff.FilesToInstall() {
		if err := copyManagedFile(opts.BuildDir, installDir, rel); err != nil {
			return nil, err
		}
		result.FilesWritten = append(result.FilesWritten, rel)
	}

	for _, rel := range diff.FilesToRemove() {
		path := filepath.Join(installDir, stripProviderPrefix(rel))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf(messages.InstallRemoveFailedFmt, path, err)
		}
		result.FilesRemoved = append(result.FilesRemoved, rel)
	}

	if err := sourceManifest.Save(installDir); err != nil {
		return nil, err
	}

	return result, nil
}

func validateBuildDir(dir, provider string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf(messages.InstallBuildDirMissingFmt, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return fmt.Errorf(messages.InstallBuildDirMissingFmt, dir)
	}
	for _, sentinel := range sentinelFiles[provider] {
		if _, err := os.Stat(filepath.Join(dir, sentinel)); err != nil {
			return fmt.Errorf(messages.InstallSentinelMissingFmt, dir, sentinel, provider)
		}
	}
	return nil
}

// copyManagedFile copies rel from build to the install directory, stripping
// a leading path component that begins with "." if present (so ".claude/hooks/x.py"
// in the build maps to "hooks/x.py" under the install directory).
func copyManagedFile(buildDir, installDir, rel string) error {
	src := filepath.Join(buildDir, rel)
	destRel := stripProviderPrefix(rel)
	dest := filepath.Join(installDir, destRel)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf(messages.InstallCopyFailedFmt, src, dest, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf(messages.InstallCopyFailedFmt, src, dest, err)
	}
	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(src); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(dest, data, perm); err != nil {
		return fmt.Errorf(messages.InstallCopyFailedFmt, src, dest, err)
	}
	return nil
}

func stripProviderPrefix(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 1 && strings.HasPrefix(parts[0], ".") {
		return filepath.Join(parts[1:]...)
	}
	return rel
}

// backupUpdated copies the pre-install contents of every updated
// primitive's currently-installed files into a timestamped backup
// directory alongside installDir.
func backupUpdated(opts Options, installDir string, diff manifest.Diff) (string, error) {
	stamp := opts.Now
	if stamp.IsZero() {
		stamp = time.Unix(0, 0)
	}
	backupDir := installDir + ".backup-" + stamp.UTC().Format("20060102T150405Z")

	for _, u := range diff.Updated {
		for _, rel := range u.Old.Files {
			src := filepath.Join(installDir, stripProviderPrefix(rel))
			data, err := os.ReadFile(src)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return "", fmt.Errorf(messages.InstallBackupFailedFmt, src, err)
			}
			dest := filepath.Join(backupDir, stripProviderPrefix(rel))
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return "", fmt.Errorf(messages.InstallBackupFailedFmt, src, err)
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return "", fmt.Errorf(messages.InstallBackupFailedFmt, src, err)
			}
		}
	}
	return backupDir, nil
}

// legacyInstall handles the no-source-manifest fallback: copy everything
// from build to install, after optionally backing up the whole existing
// install directory.
func legacyInstall(opts Options, installDir string, result *Result) error {
	if opts.Backup {
		if info, err := os.Stat(installDir); err == nil && info.IsDir() {
			stamp := opts.Now
			if stamp.IsZero() {
				stamp = time.Unix(0, 0)
			}
			backupDir := installDir + ".backup-" + stamp.UTC().Format("20060102T150405Z")
			if err := copyTree(installDir, backupDir); err != nil {
				return fmt.Errorf(messages.InstallLegacyBackupFailedFmt, installDir, err)
			}
			result.BackupDir = backupDir
		}
	}

	written, err := copyTreeTracked(opts.BuildDir, installDir)
	if err != nil {
		return err
	}
	result.FilesWritten = written
	return nil
}

func copyTree(src, dest string) error {
	_, err := copyTreeTracked(src, dest)
	return err
}

func copyTreeTracked(src, dest string) ([]string, error) {
	var written []string
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		perm := os.FileMode(0o644)
		if info, statErr := d.Info(); statErr == nil {
			perm = info.Mode().Perm()
		}
		if err := os.WriteFile(target, data, perm); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf(messages.InstallCopyFailedFmt, src, dest, err)
	}
	return written, nil
}
