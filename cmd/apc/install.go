package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/install"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

func newInstallCmd() *cobra.Command {
	var provider, buildDir string
	var global, backup, dryRun, verbose, showDiff bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "sync a built provider output into its install location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider == "" {
				return fmt.Errorf("--provider is required")
			}
			opts := install.Options{
				BuildDir:     buildDir,
				Provider:     provider,
				Global:       global,
				Backup:       backup,
				DryRun:       dryRun,
				ShowDiff:     showDiff || verbose,
				DiffMaxLines: install.DefaultDiffMaxLines,
				Now:          time.Now(),
			}
			result, err := install.Run(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.LegacyMode {
				fmt.Fprintf(out, "install %s: legacy mode, %d file(s) written\n", result.InstallDir, len(result.FilesWritten))
				return nil
			}

			fmt.Fprintf(out, messages.CLIInstallSummaryFmt, result.InstallDir,
				len(result.Diff.Added), len(result.Diff.Updated), len(result.Diff.Removed), len(result.Diff.Unchanged))
			if result.BackupDir != "" {
				fmt.Fprintf(out, "backed up previous install to %s\n", result.BackupDir)
			}
			if verbose {
				for _, preview := range result.DiffPreviews {
					fmt.Fprintf(out, "--- %s (%s)\n%s\n", preview.ID, preview.Path, preview.UnifiedDiff)
				}
			}
			if dryRun {
				fmt.Fprintln(out, "(dry run: no changes written)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "install target (claude|openai)")
	cmd.Flags().StringVar(&buildDir, "build-dir", "", "build output directory to install from")
	cmd.Flags().BoolVar(&global, "global", false, "install to the user-wide config location instead of the project-local one")
	cmd.Flags().BoolVar(&backup, "backup", false, "back up files about to be overwritten")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the reconciliation without writing changes")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print per-file diff previews for updated primitives")
	cmd.Flags().BoolVar(&showDiff, "show-diff", false, "compute diff previews for updated primitives without the rest of --verbose")
	_ = cmd.MarkFlagRequired("build-dir")
	return cmd
}
