package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/config"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

// resolveConfig loads the ambient config for the repository containing
// dir, walking upward to find primitives.config.yaml the way
// config.FindRoot does, defaulting to dir itself when none is found.
func resolveConfig(dir string) (*config.Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	root, ok := config.FindRoot(abs)
	if !ok {
		root = abs
	}
	return config.Load(root)
}

// onlyFilter compiles the comma-separated glob patterns from --only into a
// matcher over "category/id" strings, per spec.md §6's "--only filter
// grammar".
type onlyFilter struct {
	globs []glob.Glob
}

func newOnlyFilter(raw string) (*onlyFilter, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var globs []glob.Glob
	for _, pattern := range strings.Split(raw, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf(messages.CLIInvalidGlobFmt, pattern, err)
		}
		globs = append(globs, g)
	}
	return &onlyFilter{globs: globs}, nil
}

// Match reports whether p satisfies the filter. A nil filter (no --only
// flag given) matches everything.
func (f *onlyFilter) Match(p *primitive.Primitive) bool {
	if f == nil || len(f.globs) == 0 {
		return true
	}
	key := p.Category() + "/" + p.ID()
	for _, g := range f.globs {
		if g.Match(key) {
			return true
		}
	}
	return false
}

// loadPrimitiveOrDir loads the primitive directly at path. It errors with
// CLINoPrimitiveAtFmt if path is not a directory, and returns Load's error
// unchanged if the directory does not hold a loadable primitive.
func loadPrimitiveOrDir(path string) (*primitive.Primitive, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf(messages.CLINoPrimitiveAtFmt, path)
	}
	p, err := primitive.Load(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// loadAll discovers and loads every primitive under root. A directory
// DiscoverAll recognized but Load rejects (bad YAML, missing content file)
// fails the whole call; batch paths that need per-primitive isolation
// (build) do their own discovery loop instead.
func loadAll(root string) ([]*primitive.Primitive, error) {
	dirs, err := primitive.DiscoverAll(root)
	if err != nil {
		return nil, err
	}
	prims := make([]*primitive.Primitive, 0, len(dirs))
	for _, dir := range dirs {
		p, err := primitive.Load(dir)
		if err != nil {
			return nil, err
		}
		prims = append(prims, p)
	}
	return prims, nil
}
