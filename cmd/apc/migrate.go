package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/migrate"
)

func newMigrateCmd() *cobra.Command {
	var toSpec string
	var dryRun, autoFix bool

	cmd := &cobra.Command{
		Use:   "migrate <path>",
		Short: "rewrite a primitive's metadata to a different spec version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toSpec == "" {
				return fmt.Errorf("--to-spec is required")
			}
			result, err := migrate.Run(args[0], toSpec, dryRun, autoFix)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, messages.CLIMigratePlanHeaderFmt, result.PrimitiveDir, result.FromSpec, result.ToSpec)
			for _, c := range result.Changes {
				fmt.Fprintf(out, "  - %s\n", c)
			}
			if result.MovedTo != "" {
				fmt.Fprintf(out, "  moved to %s\n", result.MovedTo)
			}
			if dryRun {
				fmt.Fprintln(out, "(dry run: no changes written)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&toSpec, "to-spec", "", "target spec version (v1|v2|experimental)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the migration plan without writing changes")
	cmd.Flags().BoolVar(&autoFix, "auto-fix", false, "synthesize fields the target spec requires but the source lacks")
	return cmd
}
