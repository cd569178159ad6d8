package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

var promptKindPlural = map[string]string{
	"agent":       "agents",
	"command":     "commands",
	"skill":       "skills",
	"meta-prompt": "meta-prompts",
}

func newNewCmd() *cobra.Command {
	var kind, specVersion string
	var experimental bool

	cmd := &cobra.Command{
		Use:   "new <type> <category> <id>",
		Short: "scaffold a new primitive directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, category, id := args[0], args[1], args[2]
			if !primitive.IsKebabCase(id) {
				return fmt.Errorf(messages.PrimitiveIDNotKebabFmt, id)
			}

			cfg, err := resolveConfig(".")
			if err != nil {
				return err
			}

			effectiveSpec := specVersion
			if effectiveSpec == "" {
				effectiveSpec = "v1"
			}
			if experimental {
				effectiveSpec = "experimental"
			}

			dir, k, err := scaffoldDir(cfg.Root, typ, category, id, effectiveSpec, kind, cfg.Defaults.PromptKind)
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); err == nil {
				return fmt.Errorf(messages.CLIAlreadyExistsFmt, dir)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			metaPath, err := writeScaffoldMeta(dir, id, k, category, effectiveSpec)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.CLIScaffoldWroteFmt, metaPath)

			if k.IsPromptStyle() {
				contentPath := filepath.Join(dir, id+".prompt.md")
				if err := os.WriteFile(contentPath, []byte("# "+id+"\n\nTODO: write the prompt content.\n"), 0o644); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.CLIScaffoldWroteFmt, contentPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "prompt subkind (agent|command|skill|meta-prompt), defaults to config's prompt_kind")
	cmd.Flags().StringVar(&specVersion, "spec-version", "", "spec version for the new primitive (default v1)")
	cmd.Flags().BoolVar(&experimental, "experimental", false, "scaffold under primitives/experimental instead of a versioned spec tree")
	return cmd
}

// scaffoldDir computes the directory a new primitive of the given coarse
// type belongs in, following the <type>/<category>/<id> (tool, hook) or
// prompts/<subkind>/<category>/<id> (prompt) path shapes validate.go's
// Structural layer checks.
func scaffoldDir(root, typ, category, id, specVersion, kindFlag, defaultPromptKind string) (string, primitive.Kind, error) {
	var base string
	if specVersion == "experimental" {
		base = filepath.Join(root, "primitives", "experimental")
	} else {
		base = filepath.Join(root, "primitives", specVersion)
	}

	switch typ {
	case "tool":
		return filepath.Join(base, "tool", category, id), primitive.KindTool, nil
	case "hook":
		return filepath.Join(base, "hook", category, id), primitive.KindHook, nil
	case "prompt":
		k := kindFlag
		if k == "" {
			k = defaultPromptKind
		}
		plural, ok := promptKindPlural[k]
		if !ok {
			return "", "", fmt.Errorf(messages.CLIUnknownKindFmt, k)
		}
		return filepath.Join(base, "prompts", plural, category, id), primitive.Kind(k), nil
	default:
		return "", "", fmt.Errorf(messages.CLIUnknownKindFmt, typ)
	}
}

func writeScaffoldMeta(dir, id string, kind primitive.Kind, category, specVersion string) (string, error) {
	now := time.Now().UTC().Format("2006-01-02")
	var doc any

	switch kind {
	case primitive.KindTool:
		doc = primitive.ToolMeta{
			ID: id, Kind: kind, Category: category, SpecVersion: primitive.SpecVersion(specVersion),
			Description: "TODO: describe this tool.",
		}
	case primitive.KindHook:
		strategy := "pipeline"
		doc = struct {
			ID          string                   `yaml:"id"`
			Kind        primitive.Kind           `yaml:"kind"`
			Category    string                   `yaml:"category"`
			SpecVersion primitive.SpecVersion     `yaml:"spec_version"`
			Summary     string                   `yaml:"summary"`
			Events      []string                 `yaml:"events"`
			Execution   primitive.ExecutionConfig `yaml:"execution"`
		}{
			ID: id, Kind: kind, Category: category, SpecVersion: primitive.SpecVersion(specVersion),
			Summary: "TODO: describe this hook.", Events: []string{"PreToolUse"},
			Execution: primitive.ExecutionConfig{Strategy: strategy},
		}
	default:
		v1 := 1
		doc = primitive.PromptMeta{
			ID: id, Kind: kind, Category: category, SpecVersion: primitive.SpecVersion(specVersion),
			Summary: "TODO: describe this " + string(kind) + ".",
			Versions: []primitive.VersionEntry{
				{Version: 1, File: id + ".prompt.md", Status: primitive.StatusDraft, Created: now},
			},
			DefaultVersion: &v1,
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	metaPath := filepath.Join(dir, id+".yaml")
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return "", err
	}
	return metaPath, nil
}
