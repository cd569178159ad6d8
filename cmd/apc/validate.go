package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/provider"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/schema"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/validate"
)

func newValidateCmd() *cobra.Command {
	var all, verbose bool
	var specVersionFilter, layersFlag string

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "run the layered validator against one or all primitives under a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := resolveConfig(path)
			if err != nil {
				return err
			}

			registry, _, err := provider.Load(cfg.ProvidersDir())
			if err != nil {
				return err
			}
			layers, err := validate.ParseLayers(layersFlag)
			if err != nil {
				return err
			}
			schemas := schema.NewRegistry()

			opts := validate.Options{
				Layers:    layers,
				ToolsRoot: cfg.PrimitivesDir(),
				Providers: registry,
				Schemas:   schemas,
			}

			var dirs []string
			if all {
				dirs, err = primitive.DiscoverAll(path)
				if err != nil {
					return err
				}
			} else {
				dirs = []string{path}
			}

			out := cmd.OutOrStdout()
			failed := 0
			checked := 0
			for _, dir := range dirs {
				if specVersionFilter != "" {
					p, err := primitive.Load(dir)
					if err != nil || string(p.SpecVersion()) != specVersionFilter {
						continue
					}
				}
				checked++
				report := validate.Validate(dir, opts)
				if report.IsValid() {
					fmt.Fprintf(out, color.GreenString(messages.CLIValidationPassedFmt), dir)
				} else {
					failed++
					fmt.Fprintf(out, color.RedString(messages.CLIValidationFailedFmt), dir)
					for _, e := range report.Errors {
						fmt.Fprintf(out, "  - %s\n", e)
					}
				}
				for _, note := range report.Notes {
					fmt.Fprintf(out, "  %s\n", color.YellowString(note))
				}
				if verbose {
					fmt.Fprintf(out, "  structural=%v schema=%v semantic=%v\n", report.StructuralPassed, report.SchemaPassed, report.SemanticPassed)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d primitive(s) failed validation", failed, checked)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "validate every primitive found under path")
	cmd.Flags().StringVar(&specVersionFilter, "primitives-version", "", "only validate primitives with this spec_version (v1|v2|experimental)")
	cmd.Flags().StringVar(&layersFlag, "layers", "all", "which validation layers to run (all|structural|schema|semantic)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print per-layer pass/fail detail")
	return cmd
}
