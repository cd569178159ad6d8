package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/config"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "inspect and scaffold primitives.config.yaml",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(), newConfigListCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "write a default primitives.config.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			path := filepath.Join(cwd, config.Filename)
			out := cmd.OutOrStdout()
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(out, messages.CLIConfigInitExistsFmt, path)
				return nil
			}
			if err := config.Default(cwd).Save(); err != nil {
				return err
			}
			fmt.Fprintf(out, messages.CLIConfigWroteFmt, path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "print the resolved config for the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(".")
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the resolved paths a config resolves against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(".")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "root:         %s\n", cfg.Root)
			fmt.Fprintf(out, "specs:        %s\n", cfg.SpecsDir())
			fmt.Fprintf(out, "primitives:   %s\n", cfg.PrimitivesDir())
			fmt.Fprintf(out, "experimental: %s\n", cfg.ExperimentalDir())
			fmt.Fprintf(out, "providers:    %s\n", cfg.ProvidersDir())
			return nil
		},
	}
}
