package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/hooktest"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

func newTestHookCmd() *cobra.Command {
	var input string
	var asJSON, verbose bool
	var timeoutSec int

	cmd := &cobra.Command{
		Use:   "test-hook <path>",
		Short: "run a hook's implementation against sample input outside the host agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			raw, err := resolveHookInput(input)
			if err != nil {
				return err
			}

			var meta *primitive.HookMeta
			if p, loadErr := primitive.Load(args[0]); loadErr == nil && p.Kind == primitive.KindHook {
				meta = p.Hook
			}

			timeout := 30 * time.Second
			if meta != nil && meta.Execution.TimeoutSec != nil {
				timeout = time.Duration(*meta.Execution.TimeoutSec) * time.Second
			}
			if timeoutSec > 0 {
				timeout = time.Duration(timeoutSec) * time.Second
			}
			result, err := hooktest.Run(context.Background(), hooktest.Options{
				HookDir: args[0], Input: raw, Timeout: timeout, Verbose: verbose,
			})
			if err != nil {
				return err
			}
			if meta != nil {
				if len(meta.Events) == 0 {
					result.Event = "universal"
				} else {
					result.Event = strings.Join(meta.Events, ",")
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, messages.CLIHookDecisionFmt, result.HookID, result.Decision, result.Reason, result.ExecutionTimeMS)
				if verbose && result.Stdout != "" {
					fmt.Fprintf(out, "stdout:\n%s\n", result.Stdout)
				}
				if result.Stderr != "" {
					fmt.Fprintf(out, "stderr:\n%s\n", result.Stderr)
				}
			}

			if result.Blocked() {
				return &exitCodeError{code: 2}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to a JSON input file, or an inline JSON literal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result envelope as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "include the hook's raw stdout in the report")
	cmd.Flags().IntVar(&timeoutSec, "timeout-sec", 0, "override the hook's execution timeout in seconds")
	return cmd
}

// resolveHookInput accepts --input as either a path to a JSON file or an
// inline JSON literal, the same dual convention spec.md's command surface
// documents ("--input <file-or-inline-json>").
func resolveHookInput(input string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return json.RawMessage(trimmed), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
