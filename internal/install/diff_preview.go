package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/manifest"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// DefaultDiffMaxLines caps how many unified-diff lines a single preview
// shows before truncating, matching the teacher's install previews.
const DefaultDiffMaxLines = 40

// DiffPreview is one file's before/after comparison, shown to the operator
// before an install overwrites it (spec.md §4.7 step 4).
type DiffPreview struct {
	ID          string
	Path        string
	UnifiedDiff string
	Truncated   bool
}

// BuildDiffPreviews renders a DiffPreview for every file that diff marks
// updated, comparing the version currently on disk under installDir
// against the freshly built version under buildDir.
func BuildDiffPreviews(buildDir, installDir string, diff manifest.Diff, maxLines int) ([]DiffPreview, error) {
	previews := make([]DiffPreview, 0, len(diff.Updated))
	for _, u := range diff.Updated {
		for _, rel := range u.New.Files {
			preview, err := buildSingleDiffPreview(buildDir, installDir, u.New.ID, rel, maxLines)
			if err != nil {
				return nil, err
			}
			previews = append(previews, preview)
		}
	}
	return previews, nil
}

func buildSingleDiffPreview(buildDir, installDir, id, rel string, maxLines int) (DiffPreview, error) {
	if strings.TrimSpace(rel) == "" {
		return DiffPreview{}, fmt.Errorf(messages.InstallDiffPreviewPathRequired)
	}

	destRel := stripProviderPrefix(rel)
	oldPath := filepath.Join(installDir, destRel)
	newPath := filepath.Join(buildDir, rel)

	oldContent, err := readOptional(oldPath)
	if err != nil {
		return DiffPreview{}, fmt.Errorf(messages.InstallCopyFailedFmt, oldPath, newPath, err)
	}
	newContent, err := readOptional(newPath)
	if err != nil {
		return DiffPreview{}, fmt.Errorf(messages.InstallCopyFailedFmt, oldPath, newPath, err)
	}

	rendered, truncated := renderTruncatedUnifiedDiff(destRel+" (installed)", destRel+" (build)", oldContent, newContent, maxLines)
	return DiffPreview{ID: id, Path: destRel, UnifiedDiff: rendered, Truncated: truncated}, nil
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func renderTruncatedUnifiedDiff(fromName, toName, fromContent, toContent string, maxLines int) (string, bool) {
	limit := maxLines
	if limit <= 0 {
		limit = DefaultDiffMaxLines
	}

	rendered := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(rendered)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}

	truncated := append(lines[:limit], fmt.Sprintf("... (truncated to %d lines)", limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
