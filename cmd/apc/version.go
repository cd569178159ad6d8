package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/versioning"
)

// newVersionCmd builds the `version {list|bump|promote|deprecate|check}`
// command group wrapping internal/versioning's chain mutators.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "inspect and mutate a primitive's version chain",
	}
	cmd.AddCommand(
		newVersionListCmd(),
		newVersionBumpCmd(),
		newVersionPromoteCmd(),
		newVersionDeprecateCmd(),
		newVersionCheckCmd(),
	)
	return cmd
}

func newVersionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <primitive>",
		Short: "list a primitive's version chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrimitiveOrDir(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dv := p.DefaultVersion()
			for _, v := range p.Versions() {
				marker := " "
				if dv != nil && *dv == v.Version {
					marker = "*"
				}
				fmt.Fprintf(out, "%s v%d [%s] %s\n", marker, v.Version, v.Status, v.File)
			}
			return nil
		},
	}
}

func newVersionBumpCmd() *cobra.Command {
	var notes string
	var setDefault bool
	cmd := &cobra.Command{
		Use:   "bump <primitive>",
		Short: "create a new draft version from the current highest version's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrimitiveOrDir(args[0])
			if err != nil {
				return err
			}
			newVersion, err := versioning.Bump(p, notes, setDefault)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created v%d\n", newVersion)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "notes recorded on the new version entry")
	cmd.Flags().BoolVar(&setDefault, "set-default", false, "make the new version the primitive's default")
	return cmd
}

func newVersionPromoteCmd() *cobra.Command {
	var version int
	var setDefault bool
	cmd := &cobra.Command{
		Use:   "promote <primitive>",
		Short: "transition a version to active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrimitiveOrDir(args[0])
			if err != nil {
				return err
			}
			if err := versioning.Promote(p, version, setDefault); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "promoted v%d\n", version)
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "version number to promote")
	cmd.Flags().BoolVar(&setDefault, "set-default", false, "make the promoted version the primitive's default")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newVersionDeprecateCmd() *cobra.Command {
	var version int
	var reason string
	cmd := &cobra.Command{
		Use:   "deprecate <primitive>",
		Short: "transition a version to deprecated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrimitiveOrDir(args[0])
			if err != nil {
				return err
			}
			if err := versioning.Deprecate(p, version, reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deprecated v%d\n", version)
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "version number to deprecate")
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded on the deprecated version entry")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newVersionCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <primitive>",
		Short: "verify every version entry's stored hash against its file's actual content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrimitiveOrDir(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, entry := range versioning.Check(p) {
				if entry.OK {
					fmt.Fprintf(out, "v%d %s: OK\n", entry.Version, entry.File)
					continue
				}
				failed++
				fmt.Fprintf(out, "v%d %s: MISMATCH (expected %s, got %s)\n", entry.Version, entry.File, entry.Expected, entry.Actual)
			}
			if failed > 0 {
				return fmt.Errorf("%d version(s) failed hash check", failed)
			}
			return nil
		},
	}
}
