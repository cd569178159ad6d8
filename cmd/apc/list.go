package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

// listRow is one line of list output, shared across the table/json/yaml
// formats.
type listRow struct {
	ID          string   `json:"id" yaml:"id"`
	Kind        string   `json:"kind" yaml:"kind"`
	Category    string   `json:"category" yaml:"category"`
	SpecVersion string   `json:"spec_version" yaml:"spec_version"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Path        string   `json:"path" yaml:"path"`
}

func newListCmd() *cobra.Command {
	var typeFilter, kindFilter, categoryFilter, tagFilter, format string
	var allVersions bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "list primitives under a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := resolveConfig(path)
			if err != nil {
				return err
			}
			root := path
			if path == "." {
				root = cfg.PrimitivesDir()
			}

			prims, err := loadAll(root)
			if err != nil {
				return err
			}

			rows := make([]listRow, 0, len(prims))
			for _, p := range prims {
				if kindFilter != "" && string(p.Kind) != kindFilter {
					continue
				}
				if typeFilter != "" && !matchesType(p.Kind, typeFilter) {
					continue
				}
				if categoryFilter != "" && p.Category() != categoryFilter {
					continue
				}
				if tagFilter != "" && !hasTag(p, tagFilter) {
					continue
				}
				rows = append(rows, listRow{
					ID: p.ID(), Kind: string(p.Kind), Category: p.Category(),
					SpecVersion: string(p.SpecVersion()), Tags: promptTags(p), Path: p.Path,
				})
				_ = allVersions // version enumeration is handled by `version list`; `list` prints no version information
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

			return renderList(cmd, rows, format)
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "filter by coarse type (prompt|tool|hook)")
	cmd.Flags().StringVar(&kindFilter, "kind", "", "filter by exact kind")
	cmd.Flags().StringVar(&categoryFilter, "category", "", "filter by category")
	cmd.Flags().StringVar(&tagFilter, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table|json|yaml")
	cmd.Flags().BoolVar(&allVersions, "all-versions", false, "has no effect: list prints one row per primitive and no version information")
	return cmd
}

func matchesType(kind primitive.Kind, typ string) bool {
	switch typ {
	case "tool":
		return kind == primitive.KindTool
	case "hook":
		return kind == primitive.KindHook
	case "prompt":
		return kind.IsPromptStyle()
	default:
		return false
	}
}

func hasTag(p *primitive.Primitive, tag string) bool {
	if p.Prompt == nil {
		return false
	}
	for _, t := range p.Prompt.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func promptTags(p *primitive.Primitive) []string {
	if p.Prompt == nil {
		return nil
	}
	return p.Prompt.Tags
}

func renderList(cmd *cobra.Command, rows []listRow, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "table", "":
		fmt.Fprintf(out, "%-30s %-12s %-16s %-8s %s\n", "ID", "KIND", "CATEGORY", "SPEC", "PATH")
		for _, r := range rows {
			fmt.Fprintf(out, "%-30s %-12s %-16s %-8s %s\n", r.ID, r.Kind, r.Category, r.SpecVersion, r.Path)
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf(messages.CLIUnknownFormatFmt, format)
	}
}
