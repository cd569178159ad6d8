package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

// ClaudeTransformer projects primitives onto a .claude/-shaped build
// directory: agents become custom prompts, commands become command files,
// skills accumulate into a manifest, tools accumulate into an MCP server
// config, and hooks generate a settings.json wired to handler scripts.
type ClaudeTransformer struct{}

// NewClaudeTransformer constructs a ClaudeTransformer.
func NewClaudeTransformer() *ClaudeTransformer { return &ClaudeTransformer{} }

func (t *ClaudeTransformer) Name() string { return "claude" }

// claudeHookEvents is the full event set the claude target delivers. A
// hook that declares no events of its own registers under all of them.
var claudeHookEvents = []string{
	"PreToolUse",
	"PostToolUse",
	"UserPromptSubmit",
	"Stop",
	"SessionStart",
}

func (t *ClaudeTransformer) TransformPrimitive(p *primitive.Primitive, outputDir string) (Result, error) {
	var files []string
	var err error

	switch p.Kind {
	case primitive.KindAgent:
		files, err = t.transformAgent(p, outputDir)
	case primitive.KindCommand, primitive.KindMetaPrompt:
		files, err = t.transformCommand(p, outputDir)
	case primitive.KindSkill:
		files, err = t.transformSkill(p, outputDir)
	case primitive.KindTool:
		files, err = t.transformTool(p, outputDir)
	case primitive.KindHook:
		files, err = t.transformHook(p, outputDir)
	default:
		return Result{}, fmt.Errorf(messages.TransformKindUndetectedFmt, p.Path)
	}
	if err != nil {
		return Result{}, fmt.Errorf(messages.TransformPrimitiveFailedFmt, p.ID(), t.Name(), err)
	}

	result := Result{
		PrimitiveID:   p.ID(),
		PrimitiveKind: string(p.Kind),
		OutputFiles:   files,
		Success:       true,
	}
	if p.Kind == primitive.KindHook && len(p.Hook.Events) == 0 {
		result.Error = fmt.Sprintf(messages.TransformUniversalHookFmt, len(claudeHookEvents), t.Name())
	}
	return result, nil
}

// transformAgent writes the agent's content as a custom prompt file with a
// frontmatter block carrying id/domain/version/status. Output paths are
// reported relative to outputDir, the convention the manifest and the
// installer share.
func (t *ClaudeTransformer) transformAgent(p *primitive.Primitive, outputDir string) ([]string, error) {
	rel := filepath.Join("custom_prompts", p.ID()+".md")
	if err := os.MkdirAll(filepath.Join(outputDir, "custom_prompts"), 0o755); err != nil {
		return nil, err
	}

	frontmatter := fmt.Sprintf("---\nid: %s\ndomain: %s\n", p.ID(), p.Prompt.Domain)
	if def := p.DefaultVersion(); def != nil {
		frontmatter += "version: " + strconv.Itoa(*def) + "\n"
		for _, v := range p.Versions() {
			if v.Version == *def {
				frontmatter += "status: " + string(v.Status) + "\n"
			}
		}
	}
	frontmatter += "---\n\n"

	if err := os.WriteFile(filepath.Join(outputDir, rel), []byte(frontmatter+p.Content), 0o644); err != nil {
		return nil, err
	}
	return []string{rel}, nil
}

// transformCommand writes content directly with no frontmatter; meta-prompts
// share this path with commands, matching the teacher's "meta-prompts are
// treated like commands" rule.
func (t *ClaudeTransformer) transformCommand(p *primitive.Primitive, outputDir string) ([]string, error) {
	rel := filepath.Join("commands", p.ID()+".md")
	if err := os.MkdirAll(filepath.Join(outputDir, "commands"), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outputDir, rel), []byte(p.Content), 0o644); err != nil {
		return nil, err
	}
	return []string{rel}, nil
}

type skillEntry struct {
	ID       string `json:"id"`
	Domain   string `json:"domain"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Version  *int   `json:"version,omitempty"`
}

type skillsManifest struct {
	Skills []skillEntry `json:"skills"`
	Note   string       `json:"note"`
}

// transformSkill appends (list-valued merge) this skill into the shared
// skills.json manifest rather than overwriting prior entries.
func (t *ClaudeTransformer) transformSkill(p *primitive.Primitive, outputDir string) ([]string, error) {
	path := filepath.Join(outputDir, "skills.json")
	manifest := skillsManifest{Note: "This is a manifest file only. Skills are injected into system prompts by the orchestrator."}
	if raw, err := os.ReadFile(path); err == nil {
		json.Unmarshal(raw, &manifest)
	}

	manifest.Skills = append(manifest.Skills, skillEntry{
		ID:       p.ID(),
		Domain:   p.Prompt.Domain,
		Category: p.Category(),
		Summary:  p.Prompt.Summary,
		Version:  p.DefaultVersion(),
	})

	if err := writeJSON(path, manifest); err != nil {
		return nil, err
	}
	return []string{"skills.json"}, nil
}

type mcpServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

type mcpConfig struct {
	MCPServers map[string]mcpServerConfig `json:"mcpServers"`
}

// transformTool merges (map-valued, overwrite-own-key) this tool's server
// entry into the shared mcp.json config. A per-target implementation file
// (impl.claude.yaml) supplies the real command; otherwise a stub that
// reports the tool as unimplemented is generated.
func (t *ClaudeTransformer) transformTool(p *primitive.Primitive, outputDir string) ([]string, error) {
	path := filepath.Join(outputDir, "mcp.json")
	cfg := mcpConfig{MCPServers: map[string]mcpServerConfig{}}
	if raw, err := os.ReadFile(path); err == nil {
		json.Unmarshal(raw, &cfg)
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = map[string]mcpServerConfig{}
	}

	implPath := filepath.Join(p.Path, "impl.claude.yaml")
	server := mcpServerConfig{Command: "echo", Args: []string{fmt.Sprintf("Tool '%s' not implemented", p.ID())}}
	if raw, err := os.ReadFile(implPath); err == nil {
		var impl struct {
			Command string            `yaml:"command"`
			Args    []string          `yaml:"args"`
			Env     map[string]string `yaml:"env"`
		}
		if yaml.Unmarshal(raw, &impl) == nil && impl.Command != "" {
			server = mcpServerConfig{Command: impl.Command, Args: impl.Args, Env: impl.Env}
		}
	}
	cfg.MCPServers[p.ID()] = server

	if err := writeJSON(path, cfg); err != nil {
		return nil, err
	}
	return []string{"mcp.json"}, nil
}

type claudeHookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

type claudeHookEntry struct {
	Matcher string              `json:"matcher,omitempty"`
	Hooks   []claudeHookCommand `json:"hooks"`
}

type claudeSettings struct {
	Hooks map[string][]claudeHookEntry `json:"hooks"`
}

// transformHook writes the hook's handler script into
// .claude/hooks/handlers/, named after each event it registers for, copies
// any validator sub-scripts bundled with the primitive, and appends
// (list-valued merge) a registration entry into .claude/settings.json under
// each declared event. A hook declaring no events registers under every
// event the claude target supports.
func (t *ClaudeTransformer) transformHook(p *primitive.Primitive, outputDir string) ([]string, error) {
	claudeDir := filepath.Join(outputDir, ".claude")
	hooksDir := filepath.Join(claudeDir, "hooks")
	handlersDir := filepath.Join(hooksDir, "handlers")
	if err := os.MkdirAll(handlersDir, 0o755); err != nil {
		return nil, err
	}

	implPath, err := findHookImpl(p.Path, p.ID())
	if err != nil {
		return nil, err
	}
	implData, err := os.ReadFile(implPath)
	if err != nil {
		return nil, err
	}
	ext := filepath.Ext(implPath)

	events := p.Hook.Events
	if len(events) == 0 {
		events = claudeHookEvents
	}

	timeout := 10
	if p.Hook.Execution.TimeoutSec != nil {
		timeout = *p.Hook.Execution.TimeoutSec
	}

	settingsPath := filepath.Join(claudeDir, "settings.json")
	settings := claudeSettings{Hooks: map[string][]claudeHookEntry{}}
	if raw, readErr := os.ReadFile(settingsPath); readErr == nil {
		json.Unmarshal(raw, &settings)
	}
	if settings.Hooks == nil {
		settings.Hooks = map[string][]claudeHookEntry{}
	}

	var files []string
	for _, event := range events {
		handlerName := eventFileName(event) + ext
		if err := os.WriteFile(filepath.Join(handlersDir, handlerName), implData, 0o755); err != nil {
			return nil, err
		}
		files = append(files, filepath.Join(".claude", "hooks", "handlers", handlerName))

		entry := claudeHookEntry{
			Hooks: []claudeHookCommand{{
				Type:    "command",
				Command: "${CLAUDE_PROJECT_DIR}/.claude/hooks/handlers/" + handlerName,
				Timeout: timeout,
			}},
		}
		if strings.Contains(event, "ToolUse") {
			entry.Matcher = "*"
		}
		settings.Hooks[event] = append(settings.Hooks[event], entry)
	}

	if copied, copyErr := copyScripts(filepath.Join(p.Path, "validators"), filepath.Join(hooksDir, "validators")); copyErr == nil {
		for _, c := range copied {
			rel, relErr := filepath.Rel(outputDir, c)
			if relErr == nil {
				files = append(files, rel)
			}
		}
	}

	if err := writeJSON(settingsPath, settings); err != nil {
		return nil, err
	}
	files = append(files, filepath.Join(".claude", "settings.json"))
	return files, nil
}

// findHookImpl resolves the hook's handler script: the directory-named
// pattern first (bash-validator.py), then the legacy impl.* convention.
// Rust sources are not runnable by an interpreter and are never selected.
func findHookImpl(dir, id string) (string, error) {
	candidates := []string{
		id + ".py", id + ".ts", id + ".js", id + ".sh",
		"impl.python.py", "impl.py",
		"impl.typescript.ts", "impl.ts",
		"impl.bash.sh", "impl.sh",
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf(messages.TransformHookNoImplFmt, dir)
}

// eventFileName converts a CamelCase event name to its kebab-case handler
// file stem (PreToolUse -> pre-tool-use).
func eventFileName(event string) string {
	var b strings.Builder
	for i, r := range event {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (t *ClaudeTransformer) ValidateOutput(outputDir string) error {
	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output directory does not exist: %s", outputDir)
	}
	for _, name := range []string{"mcp.json", "skills.json", filepath.Join(".claude", "settings.json")} {
		path := filepath.Join(outputDir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf(messages.TransformOutputInvalidJSONFmt, path, err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// scriptExts lists the file extensions copyScripts treats as runnable
// validator/handler scripts.
var scriptExts = map[string]bool{".py": true, ".sh": true, ".ts": true, ".js": true}

// copyScripts copies script files from src to dest, preserving nested
// directories, and marks them executable.
func copyScripts(src, dest string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}

	var copied []string
	for _, e := range entries {
		path := filepath.Join(src, e.Name())
		if e.IsDir() {
			sub, err := copyScripts(path, filepath.Join(dest, e.Name()))
			if err == nil {
				copied = append(copied, sub...)
			}
			continue
		}
		if !scriptExts[filepath.Ext(e.Name())] {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		destFile := filepath.Join(dest, e.Name())
		if err := os.WriteFile(destFile, data, 0o755); err != nil {
			continue
		}
		copied = append(copied, destFile)
	}
	return copied, nil
}
