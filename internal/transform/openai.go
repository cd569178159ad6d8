package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

// OpenAITransformer projects primitives onto OpenAI's message/function
// formats: agents become system messages, commands become user messages
// with extracted {{variable}} placeholders, skills become assistant
// messages, tools become function-calling definitions, meta-prompts and
// hooks are not represented in this target and are skipped.
type OpenAITransformer struct {
	specVersion string
}

// NewOpenAITransformer constructs an OpenAITransformer.
func NewOpenAITransformer() *OpenAITransformer {
	return &OpenAITransformer{specVersion: "v1"}
}

func (t *OpenAITransformer) Name() string { return "openai" }

func (t *OpenAITransformer) TransformPrimitive(p *primitive.Primitive, outputDir string) (Result, error) {
	switch p.Kind {
	case primitive.KindAgent, primitive.KindCommand, primitive.KindSkill:
		return t.transformPrompt(p, outputDir)
	case primitive.KindMetaPrompt:
		return Result{PrimitiveID: p.ID(), PrimitiveKind: "meta-prompt", Success: true, Error: "meta-prompts are skipped for OpenAI"}, nil
	case primitive.KindTool:
		return t.transformTool(p, outputDir)
	case primitive.KindHook:
		return Result{PrimitiveID: p.ID(), PrimitiveKind: "hook", Success: true, Error: "hooks have no OpenAI equivalent; skipped"}, nil
	default:
		return Result{}, fmt.Errorf(messages.TransformKindUndetectedFmt, p.Path)
	}
}

func (t *OpenAITransformer) transformPrompt(p *primitive.Primitive, outputDir string) (Result, error) {
	role, subdir := "user", "commands"
	switch p.Kind {
	case primitive.KindAgent:
		role, subdir = "system", "agents"
	case primitive.KindSkill:
		role, subdir = "assistant", "skills"
	}

	var variables []string
	if p.Kind == primitive.KindCommand {
		variables = extractVariables(p.Content)
	}

	message := map[string]any{"role": role, "content": strings.TrimSpace(p.Content)}
	if len(variables) > 0 {
		message["variables"] = variables
	}

	metadata := map[string]any{"domain": p.Prompt.Domain, "tags": p.Prompt.Tags}
	if len(p.Prompt.Defaults.PreferredModels) > 0 {
		metadata["model_preferences"] = p.Prompt.Defaults.PreferredModels
	}
	if p.Kind == primitive.KindSkill && p.Prompt.ContextUsage != nil && p.Prompt.ContextUsage.AsOverlay {
		metadata["usage"] = "overlay"
	}

	output := map[string]any{
		"id":           p.ID(),
		"type":         strings.ToLower(string(p.Kind)),
		"spec_version": t.specVersion,
		"messages":     []any{message},
		"metadata":     metadata,
	}
	if def := p.DefaultVersion(); def != nil {
		output["version"] = *def
	}

	rel := filepath.Join("prompts", subdir, p.ID()+".json")
	if err := os.MkdirAll(filepath.Join(outputDir, "prompts", subdir), 0o755); err != nil {
		return Result{}, err
	}
	if err := writeJSON(filepath.Join(outputDir, rel), output); err != nil {
		return Result{}, err
	}

	return Result{PrimitiveID: p.ID(), PrimitiveKind: "prompt", OutputFiles: []string{rel}, Success: true}, nil
}

// extractVariables returns the distinct {{name}} placeholders in content,
// in first-seen order.
func extractVariables(content string) []string {
	var vars []string
	seen := map[string]bool{}
	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '{' && i+1 < len(runes) && runes[i+1] == '{' {
			j := i + 2
			for j+1 < len(runes) && !(runes[j] == '}' && runes[j+1] == '}') {
				j++
			}
			if j+1 < len(runes) {
				name := strings.TrimSpace(string(runes[i+2 : j]))
				if name != "" && !seen[name] {
					seen[name] = true
					vars = append(vars, name)
				}
				i = j + 1
			}
		}
	}
	return vars
}

func mapTypeToOpenAI(typeStr string) string {
	switch typeStr {
	case "string":
		return "string"
	case "number", "integer", "int", "float":
		return "number"
	case "boolean", "bool":
		return "boolean"
	case "array", "list":
		return "array"
	case "object", "dict":
		return "object"
	default:
		return "string"
	}
}

func (t *OpenAITransformer) transformTool(p *primitive.Primitive, outputDir string) (Result, error) {
	properties := map[string]any{}
	var required []string

	for _, arg := range p.Tool.Args {
		prop := map[string]any{
			"type":        mapTypeToOpenAI(arg.Type),
			"description": arg.Description,
		}
		if arg.Default != nil {
			prop["default"] = arg.Default
		}
		if len(arg.Enum) > 0 {
			prop["enum"] = arg.Enum
		}
		if arg.Pattern != "" {
			prop["pattern"] = arg.Pattern
		}
		properties[arg.Name] = prop
		if arg.Required {
			required = append(required, arg.Name)
		}
	}

	output := map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        strings.ReplaceAll(p.ID(), "-", "_"),
			"description": p.Tool.Description,
			"parameters": map[string]any{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		},
		"metadata": map[string]any{
			"id":       p.ID(),
			"category": p.Category(),
			"safety": map[string]any{
				"max_runtime_sec": p.Tool.Safety.MaxRuntimeSec,
				"working_dir":     p.Tool.Safety.WorkingDir,
				"allow_write":     p.Tool.Safety.AllowWrite,
				"allow_network":   p.Tool.Safety.AllowNetwork,
			},
		},
	}

	rel := filepath.Join("functions", p.ID()+".json")
	if err := os.MkdirAll(filepath.Join(outputDir, "functions"), 0o755); err != nil {
		return Result{}, err
	}
	if err := writeJSON(filepath.Join(outputDir, rel), output); err != nil {
		return Result{}, err
	}

	return Result{PrimitiveID: p.ID(), PrimitiveKind: "tool", OutputFiles: []string{rel}, Success: true}, nil
}

// FinishBatch writes the top-level manifest.json indexing everything the
// batch produced: per-kind id arrays scanned from the output tree, the
// target name, the schema version, and a generation timestamp.
func (t *OpenAITransformer) FinishBatch(outputDir string, _ []Result) error {
	manifest := map[string]any{
		"spec_version": t.specVersion,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"provider":     t.Name(),
		"primitives": map[string]any{
			"prompts": map[string]any{
				"agents":   scanJSONStems(filepath.Join(outputDir, "prompts", "agents")),
				"commands": scanJSONStems(filepath.Join(outputDir, "prompts", "commands")),
				"skills":   scanJSONStems(filepath.Join(outputDir, "prompts", "skills")),
			},
			"tools": scanJSONStems(filepath.Join(outputDir, "functions")),
		},
	}
	return writeJSON(filepath.Join(outputDir, "manifest.json"), manifest)
}

// scanJSONStems lists the file stems of every .json file directly under
// dir, sorted, or an empty slice when dir does not exist.
func scanJSONStems(dir string) []string {
	stems := []string{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return stems
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(stems)
	return stems
}

func (t *OpenAITransformer) ValidateOutput(outputDir string) error {
	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output directory does not exist: %s", outputDir)
	}
	return filepath.WalkDir(outputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf(messages.TransformOutputInvalidJSONFmt, path, err)
		}
		return nil
	})
}
