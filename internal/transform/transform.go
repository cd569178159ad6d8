// Package transform projects loaded primitives onto a target host's native
// format: Claude's custom-prompt/MCP/hooks layout, OpenAI's message-array
// format, and so on. Each target implements Transformer; Registry resolves
// a target name to its implementation, and TransformBatch runs batches, merging shared
// artifacts (skills.json, mcp.json, settings.json) across primitives
// instead of overwriting them.
package transform

import (
	"fmt"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/messages"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

// Result records the outcome of transforming one primitive.
type Result struct {
	PrimitiveID   string
	PrimitiveKind string
	OutputFiles   []string
	Success       bool
	Error         string
}

// Transformer projects primitives onto one target host's native format.
type Transformer interface {
	Name() string
	TransformPrimitive(p *primitive.Primitive, outputDir string) (Result, error)
	ValidateOutput(outputDir string) error
}

// BatchFinisher is implemented by transformers that emit a top-level,
// batch-scoped artifact (a manifest indexing the whole output tree) once
// every primitive has been projected.
type BatchFinisher interface {
	FinishBatch(outputDir string, results []Result) error
}

// TransformBatch runs t across every primitive in prims, continuing past
// individual failures and recording them as failed Results rather than
// aborting the batch. When t also implements BatchFinisher, its batch
// artifact is written after the last primitive.
func TransformBatch(t Transformer, prims []*primitive.Primitive, outputDir string) []Result {
	results := make([]Result, 0, len(prims))
	for _, p := range prims {
		result, err := t.TransformPrimitive(p, outputDir)
		if err != nil {
			results = append(results, Result{
				PrimitiveID:   p.ID(),
				PrimitiveKind: string(p.Kind),
				Success:       false,
				Error:         err.Error(),
			})
			continue
		}
		results = append(results, result)
	}
	if bf, ok := t.(BatchFinisher); ok && len(prims) > 0 {
		if err := bf.FinishBatch(outputDir, results); err != nil {
			results = append(results, Result{
				PrimitiveID: t.Name() + "-manifest",
				Success:     false,
				Error:       err.Error(),
			})
		}
	}
	return results
}

// Registry resolves a target name to its Transformer.
type Registry struct {
	targets map[string]Transformer
}

// NewRegistry constructs a Registry seeded with the built-in claude and
// openai transformers.
func NewRegistry() *Registry {
	r := &Registry{targets: map[string]Transformer{}}
	r.Register(NewClaudeTransformer())
	r.Register(NewOpenAITransformer())
	return r
}

// Register adds or replaces the transformer for t.Name().
func (r *Registry) Register(t Transformer) {
	r.targets[t.Name()] = t
}

// Get resolves target to its Transformer.
func (r *Registry) Get(target string) (Transformer, error) {
	t, ok := r.targets[target]
	if !ok {
		return nil, fmt.Errorf(messages.TransformUnknownTargetFmt, target)
	}
	return t, nil
}

// Targets lists every registered target name.
func (r *Registry) Targets() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	return names
}
