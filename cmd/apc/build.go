package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/hashutil"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/manifest"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/transform"
)

func newBuildCmd() *cobra.Command {
	var provider, output, primitivePath, typeFilter, kindFilter, only string
	var clean, verbose bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "project primitives onto a provider's native format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider == "" {
				return fmt.Errorf("--provider is required")
			}

			cfg, err := resolveConfig(".")
			if err != nil {
				return err
			}

			registry := transform.NewRegistry()
			t, err := registry.Get(provider)
			if err != nil {
				return err
			}

			outputDir := output
			if outputDir == "" {
				outputDir = filepath.Join(cfg.Root, "build", provider)
			}
			if clean {
				if err := os.RemoveAll(outputDir); err != nil {
					return fmt.Errorf(messages.CLIBuildCleanFailedFmt, outputDir, err)
				}
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}

			var prims []*primitive.Primitive
			var loadFailures []transform.Result
			if primitivePath != "" {
				p, err := loadPrimitiveOrDir(primitivePath)
				if err != nil {
					return err
				}
				prims = []*primitive.Primitive{p}
			} else {
				dirs, err := primitive.DiscoverAll(cfg.PrimitivesDir())
				if err != nil {
					return err
				}
				for _, dir := range dirs {
					p, err := primitive.Load(dir)
					if err != nil {
						loadFailures = append(loadFailures, transform.Result{
							PrimitiveID: filepath.Base(dir),
							Success:     false,
							Error:       err.Error(),
						})
						continue
					}
					prims = append(prims, p)
				}
			}

			filter, err := newOnlyFilter(only)
			if err != nil {
				return err
			}
			prims = filterPrimitives(prims, typeFilter, kindFilter, filter)

			batch := transform.TransformBatch(t, prims, outputDir)

			now := time.Now().UTC()
			m := manifest.New(provider, now)
			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range loadFailures {
				failed++
				fmt.Fprintf(out, "%s: FAILED (%s)\n", r.PrimitiveID, r.Error)
			}
			for i, r := range batch {
				if !r.Success {
					failed++
					fmt.Fprintf(out, "%s: FAILED (%s)\n", r.PrimitiveID, r.Error)
					continue
				}
				if verbose {
					fmt.Fprintf(out, "%s: %d file(s)\n", r.PrimitiveID, len(r.OutputFiles))
					if r.Error != "" {
						fmt.Fprintf(out, "%s: %s\n", r.PrimitiveID, r.Error)
					}
				}
				if i >= len(prims) {
					continue // batch-level artifact results have no primitive behind them
				}
				version := 1
				if dv := prims[i].DefaultVersion(); dv != nil {
					version = *dv
				}
				m.Upsert(manifest.Primitive{
					ID:      r.PrimitiveID,
					Kind:    r.PrimitiveKind,
					Version: version,
					Hash:    hashutil.Fingerprint([]byte(prims[i].Content)),
					Files:   r.OutputFiles,
				}, now)
			}

			if err := m.Save(outputDir); err != nil {
				return err
			}
			if err := t.ValidateOutput(outputDir); err != nil {
				return err
			}

			total := len(prims) + len(loadFailures)
			fmt.Fprintf(out, messages.CLIBuildSummaryFmt, total, provider, outputDir, failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d primitive(s) failed to build", failed, total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "transform target (claude|openai)")
	cmd.Flags().StringVar(&output, "output", "", "output directory (default build/<provider> under the repository root)")
	cmd.Flags().StringVar(&primitivePath, "primitive", "", "build only the primitive at this path")
	cmd.Flags().StringVar(&typeFilter, "type", "", "filter by coarse type (prompt|tool|hook)")
	cmd.Flags().StringVar(&kindFilter, "kind", "", "filter by exact kind")
	cmd.Flags().StringVar(&only, "only", "", "comma-separated glob patterns over category/id")
	cmd.Flags().BoolVar(&clean, "clean", false, "remove the output directory before building")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print per-primitive output file counts")
	return cmd
}

func filterPrimitives(prims []*primitive.Primitive, typeFilter, kindFilter string, only *onlyFilter) []*primitive.Primitive {
	out := make([]*primitive.Primitive, 0, len(prims))
	for _, p := range prims {
		if kindFilter != "" && string(p.Kind) != kindFilter {
			continue
		}
		if typeFilter != "" && !matchesType(p.Kind, typeFilter) {
			continue
		}
		if !only.Match(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
