package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apc",
		Short:         "Agentic Primitives Compiler: validate, transform, and install agentic primitives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newNewCmd(),
		newValidateCmd(),
		newListCmd(),
		newInspectCmd(),
		newVersionCmd(),
		newMigrateCmd(),
		newBuildCmd(),
		newInstallCmd(),
		newTestHookCmd(),
		newConfigCmd(),
	)

	return cmd
}
