package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

func newInspectCmd() *cobra.Command {
	var version int
	var fullContent bool
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <primitive>",
		Short: "print a primitive's resolved metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrimitiveOrDir(args[0])
			if err != nil {
				return err
			}

			doc, err := inspectDoc(p, version, fullContent)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty", "":
				return printPretty(out, p, doc)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			case "yaml":
				data, err := yaml.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf(messages.CLIUnknownFormatFmt, format)
			}
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "inspect a specific version instead of the default")
	cmd.Flags().BoolVar(&fullContent, "full-content", false, "include the resolved content file's text")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format: pretty|json|yaml")
	return cmd
}

// inspectDoc assembles the metadata document to render. When --version is
// given it adds the requested version's entry under "inspected_version",
// and with --full-content the "content" key holds that version's text
// instead of the default content.
func inspectDoc(p *primitive.Primitive, version int, fullContent bool) (map[string]any, error) {
	doc := map[string]any{
		"id":           p.ID(),
		"kind":         p.Kind,
		"category":     p.Category(),
		"spec_version": p.SpecVersion(),
		"path":         p.Path,
	}
	versions := p.Versions()
	if len(versions) > 0 {
		doc["versions"] = versions
		doc["default_version"] = p.DefaultVersion()
	}
	if tools := p.Tools(); len(tools) > 0 {
		doc["tools"] = tools
	}

	switch p.Kind {
	case primitive.KindTool:
		doc["tool"] = p.Tool
	case primitive.KindHook:
		doc["hook"] = p.Hook
	default:
		doc["prompt"] = p.Prompt
	}

	if version != 0 {
		entry, found := versionEntry(versions, version)
		if !found {
			return nil, fmt.Errorf(messages.CLINoPrimitiveAtFmt, fmt.Sprintf("%s@v%d", p.Path, version))
		}
		doc["inspected_version"] = entry
		if fullContent {
			content, err := readVersionContent(p, entry)
			if err != nil {
				return nil, err
			}
			doc["content"] = content
		}
	} else if fullContent {
		doc["content"] = p.Content
	}
	return doc, nil
}

// readVersionContent reads the content file behind a specific version
// entry, falling back to the historical versioned filename conventions
// when the entry does not name a file.
func readVersionContent(p *primitive.Primitive, entry primitive.VersionEntry) (string, error) {
	name := entry.File
	if name == "" {
		resolved, err := primitive.FindVersionContentFile(p.Path, p.ID(), entry.Version)
		if err != nil {
			return "", err
		}
		name = resolved
	}
	data, err := os.ReadFile(filepath.Join(p.Path, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func versionEntry(versions []primitive.VersionEntry, version int) (primitive.VersionEntry, bool) {
	for _, v := range versions {
		if v.Version == version {
			return v, true
		}
	}
	return primitive.VersionEntry{}, false
}

func printPretty(out io.Writer, p *primitive.Primitive, doc map[string]any) error {
	fmt.Fprintf(out, "%s (%s)\n", p.ID(), p.Kind)
	fmt.Fprintf(out, "  category:     %s\n", p.Category())
	fmt.Fprintf(out, "  spec_version: %s\n", p.SpecVersion())
	fmt.Fprintf(out, "  path:         %s\n", p.Path)
	if dv := p.DefaultVersion(); dv != nil {
		fmt.Fprintf(out, "  default:      v%d\n", *dv)
	}
	for _, v := range p.Versions() {
		fmt.Fprintf(out, "  - v%d [%s] %s\n", v.Version, v.Status, v.File)
	}
	if content, ok := doc["content"]; ok {
		fmt.Fprintf(out, "\n%s\n", content)
	}
	return nil
}
