// Command apc (Agentic Primitives Compiler) is the CLI front end for the
// primitive model, validator, transformer, and installer packages under
// internal/. It carries no business logic of its own: every subcommand
// parses flags and calls into internal/ for the real work, the way the
// teacher's cmd/al/*.go files dispatch into its internal packages.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// exitCodeError lets a subcommand (test-hook's blocked decision) report a
// specific process exit code without cobra printing a usage dump for it.
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	cmd := newRootCmd()
	cmd.Version = Version
	cmd.SetVersionTemplate(messages.VersionTemplate)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
