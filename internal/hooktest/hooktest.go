// Package hooktest runs a hook's implementation file against sample input
// outside the host agent, so authors can exercise the PreToolUse/PostToolUse
// decision logic directly. Grounded on
// original_source/archive/cli-legacy/src/commands/test_hook.rs, translated
// from a single synchronous Command::spawn into os/exec with a
// context.Context deadline.
package hooktest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
)

// interpreters maps an implementation file's extension to the binary used
// to run it, mirroring test_hook.rs::execute_hook_implementation's match.
var interpreters = map[string]string{
	".py": "python3",
	".ts": "ts-node",
	".js": "node",
	".sh": "bash",
}

// preferredExts and legacyNames are tried in order when resolving a hook
// directory's implementation file: the directory-named pattern first
// (bash-validator.py), then the deprecated impl.* convention.
var preferredExts = []string{".py", ".ts", ".rs", ".sh"}
var legacyNames = []string{
	"impl.python.py", "impl.py",
	"impl.typescript.ts", "impl.ts",
	"impl.rust.rs", "impl.rs",
	"impl.bash.sh", "impl.sh",
}

// Result is the outcome of running one hook implementation against one
// test input.
type Result struct {
	HookID            string         `json:"hook_id"`
	Event             string         `json:"event"`
	Decision          string         `json:"decision"`
	Reason            string         `json:"reason"`
	ExecutionTimeMS   int64          `json:"execution_time_ms"`
	MiddlewareResults []any          `json:"middleware_results,omitempty"`
	Metrics           map[string]any `json:"metrics"`
	Stdout            string         `json:"stdout,omitempty"`
	Stderr            string         `json:"stderr,omitempty"`
	ExitCode          int            `json:"exit_code"`
}

// Options controls one Run.
type Options struct {
	HookDir string
	Input   json.RawMessage
	Timeout time.Duration
	Verbose bool
}

// FindImplementation resolves the implementation file for the hook
// directory dir, preferring "<dir-name>.<ext>" over the legacy "impl.*"
// names, and returns the messages.HookTestNoImplFmt error if none exists.
func FindImplementation(dir string) (string, error) {
	dirName := filepath.Base(dir)
	var tried []string

	for _, ext := range preferredExts {
		name := dirName + ext
		tried = append(tried, name)
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	for _, name := range legacyNames {
		tried = append(tried, name)
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", agenticerr.New(agenticerr.KindNotFound, dir, fmt.Sprintf(messages.HookTestNoImplFmt, dir, tried))
}

// Run spawns the hook implementation resolved from opts.HookDir, feeds it
// opts.Input on stdin, and parses its stdout as the hook's decision
// envelope ({"decision","reason","middleware_results","metrics"}).
func Run(ctx context.Context, opts Options) (*Result, error) {
	implPath, err := FindImplementation(opts.HookDir)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(implPath)
	if ext == ".rs" {
		return nil, agenticerr.New(agenticerr.KindChildProcessFailure, implPath, messages.HookTestRustUnsupported)
	}
	interpreter, ok := interpreters[ext]
	if !ok {
		return nil, agenticerr.New(agenticerr.KindChildProcessFailure, implPath, fmt.Sprintf(messages.HookTestUnknownExtFmt, ext))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, interpreter, implPath)
	cmd.Stdin = bytes.NewReader(opts.Input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return nil, agenticerr.New(agenticerr.KindChildProcessFailure, implPath, fmt.Sprintf(messages.HookTestTimeoutFmt, implPath, timeout))
	}
	if runErr != nil {
		if _, isExit := runErr.(*exec.ExitError); !isExit {
			return nil, agenticerr.Wrap(agenticerr.KindChildProcessFailure, implPath, fmt.Sprintf(messages.HookTestSpawnFailedFmt, implPath), runErr)
		}
	}

	if stdout.Len() == 0 {
		return nil, agenticerr.New(agenticerr.KindChildProcessFailure, implPath, fmt.Sprintf(messages.HookTestEmptyOutputFmt, implPath))
	}

	var envelope struct {
		Decision          string         `json:"decision"`
		Reason            string         `json:"reason"`
		MiddlewareResults []any          `json:"middleware_results"`
		Metrics           map[string]any `json:"metrics"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &envelope); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindChildProcessFailure, implPath, fmt.Sprintf(messages.HookTestInvalidOutputFmt, implPath), err)
	}

	result := &Result{
		HookID:            filepath.Base(opts.HookDir),
		Decision:          orDefault(envelope.Decision, "unknown"),
		Reason:            envelope.Reason,
		ExecutionTimeMS:   elapsed.Milliseconds(),
		MiddlewareResults: envelope.MiddlewareResults,
		Metrics:           envelope.Metrics,
		ExitCode:          cmd.ProcessState.ExitCode(),
	}
	if opts.Verbose {
		result.Stdout = stdout.String()
	}
	if opts.Verbose || stderr.Len() > 0 {
		result.Stderr = stderr.String()
	}
	if result.Metrics == nil {
		result.Metrics = map[string]any{}
	}
	return result, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Blocked reports whether r's decision should be treated as a denial, the
// rule the CLI's exit-code mapping (2 for blocked, 0 otherwise) relies on.
func (r *Result) Blocked() bool {
	return r.Decision == "block" || r.Decision == "deny"
}
