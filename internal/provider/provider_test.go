package provider

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "models", "anthropic", "config.yaml"), "description: Anthropic models\n")
	writeFile(t, filepath.Join(root, "models", "anthropic", "claude-sonnet.yaml"), `
id: claude-sonnet
name: Claude Sonnet
family: claude
provider: anthropic
context_window: 200000
pricing:
  input: 3.0
  output: 15.0
  currency: USD
  per_tokens: 1000000
api:
  model_id: claude-sonnet-4
`)

	writeFile(t, filepath.Join(root, "agents", "claude", "config.yaml"), "type: cli\ndescription: Claude Code\n")
	writeFile(t, filepath.Join(root, "agents", "claude", "hooks-supported.yaml"), `
agent: claude
version: "1"
supported_events:
  - PreToolUse
  - PostToolUse
`)
	writeFile(t, filepath.Join(root, "agents", "claude", "hooks-format.yaml"), "format: json-stdin\n")

	// malformed provider: missing hooks-supported.yaml
	writeFile(t, filepath.Join(root, "agents", "broken", "config.yaml"), "type: cli\n")

	return root
}

func TestLoadRegistry(t *testing.T) {
	root := setupRegistry(t)
	reg, warnings, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning for the broken agent dir, got %v", warnings)
	}
	if _, ok := reg.Models["anthropic"]; !ok {
		t.Fatalf("expected anthropic model provider loaded")
	}
	if _, ok := reg.Agents["claude"]; !ok {
		t.Fatalf("expected claude agent provider loaded")
	}
	if _, ok := reg.Agents["broken"]; ok {
		t.Fatalf("did not expect broken agent provider to be loaded")
	}
}

func TestGetModel(t *testing.T) {
	reg, _, err := Load(setupRegistry(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := reg.GetModel("anthropic", "claude-sonnet")
	if err != nil {
		t.Fatalf("GetModel: %v", err)
	}
	if m.ContextWindow != 200000 {
		t.Fatalf("unexpected context window: %d", m.ContextWindow)
	}

	if _, err := reg.GetModel("anthropic", "nonexistent"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestAgentSupportsEvent(t *testing.T) {
	reg, _, err := Load(setupRegistry(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reg.AgentSupportsEvent("claude", "PreToolUse") {
		t.Fatal("expected claude to support PreToolUse")
	}
	if reg.AgentSupportsEvent("claude", "NoSuchEvent") {
		t.Fatal("did not expect claude to support NoSuchEvent")
	}
	if reg.AgentSupportsEvent("nonexistent-agent", "PreToolUse") {
		t.Fatal("expected false for unknown agent, not an error")
	}
}

func TestParseModelRef(t *testing.T) {
	provider, model, err := ParseModelRef("anthropic/claude-sonnet")
	if err != nil {
		t.Fatalf("ParseModelRef: %v", err)
	}
	if provider != "anthropic" || model != "claude-sonnet" {
		t.Fatalf("unexpected split: %s / %s", provider, model)
	}

	for _, bad := range []string{"no-slash", "too/many/slashes", "/empty-provider", "empty-model/"} {
		if _, _, err := ParseModelRef(bad); err == nil {
			t.Fatalf("expected error for malformed ref %q", bad)
		}
	}
}

func TestGetAgentNotFound(t *testing.T) {
	reg, _, err := Load(setupRegistry(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := reg.GetAgent("nonexistent"); err == nil {
		t.Fatal("expected error for unknown agent")
	}
}
