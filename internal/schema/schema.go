// Package schema implements Layer 2 of the validator: compiling and
// applying the JSON Schema registered for a primitive's kind, once per
// process, and reporting violations as (JSON-pointer, message) pairs.
package schema

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
	"github.com/AgentParadise/agentic-primitives-sub000/internal/primitive"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// schemaForKind maps a primitive Kind to the schema document that governs
// it. Prompt-style kinds share one schema (agent/command/skill/meta-prompt
// differ only in their "kind" enum value, which the shared schema checks).
func schemaForKind(kind primitive.Kind) string {
	if kind.IsPromptStyle() {
		return "schemas/prompt.schema.json"
	}
	switch kind {
	case primitive.KindTool:
		return "schemas/tool.schema.json"
	case primitive.KindHook:
		return "schemas/hook.schema.json"
	default:
		return ""
	}
}

// Issue is one schema violation: the JSON pointer into the document and a
// human-readable message.
type Issue struct {
	Pointer string
	Message string
}

// Registry compiles and caches a jsonschema.Schema per kind. Spec versions
// v1 and v2 currently share the same document set; callers pass spec
// version through for forward compatibility with a future per-version
// schema split, but the registry does not yet key on it.
type Registry struct {
	mu      sync.Mutex
	schemas map[primitive.Kind]*jsonschema.Schema
}

// NewRegistry constructs an empty Registry. Schemas are compiled lazily,
// once per kind, on first use.
func NewRegistry() *Registry {
	return &Registry{schemas: map[primitive.Kind]*jsonschema.Schema{}}
}

func (r *Registry) compiledFor(kind primitive.Kind) (*jsonschema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sch, ok := r.schemas[kind]; ok {
		return sch, nil
	}

	resource := schemaForKind(kind)
	if resource == "" {
		return nil, agenticerr.New(agenticerr.KindInvalidFormat, string(kind), fmt.Sprintf("no schema registered for kind %q", kind))
	}

	data, err := schemaFS.ReadFile(resource)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindIOFailure, resource, "read embedded schema", err)
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, resource, "parse embedded schema", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resource, doc); err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, resource, "register schema resource", err)
	}
	sch, err := compiler.Compile(resource)
	if err != nil {
		return nil, agenticerr.Wrap(agenticerr.KindInvalidFormat, resource, "compile schema", err)
	}

	r.schemas[kind] = sch
	return sch, nil
}

// Validate checks doc (a YAML document already decoded to Go maps/slices,
// e.g. via yaml.Unmarshal into map[string]any) against the schema for kind.
// It returns the list of violations found; an empty (nil) slice means the
// document is schema-valid.
func (r *Registry) Validate(kind primitive.Kind, _ primitive.SpecVersion, doc map[string]any) ([]Issue, error) {
	sch, err := r.compiledFor(kind)
	if err != nil {
		return nil, err
	}

	instance := normalize(doc)
	if err := sch.Validate(instance); err != nil {
		valErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, agenticerr.Wrap(agenticerr.KindValidation, string(kind), "schema validation failed", err)
		}
		return flatten(valErr), nil
	}
	return nil, nil
}

// flatten walks a jsonschema.ValidationError tree into a flat Issue list
// using BasicOutput's leaf errors, each carrying the offending instance
// location as a JSON pointer.
func flatten(err *jsonschema.ValidationError) []Issue {
	basic := err.BasicOutput()
	var issues []Issue
	for _, unit := range basic.Errors {
		if unit.Error == nil {
			continue
		}
		issues = append(issues, Issue{
			Pointer: "/" + strings.TrimPrefix(unit.InstanceLocation, "/"),
			Message: fmt.Sprint(unit.Error),
		})
	}
	if len(issues) == 0 {
		issues = append(issues, Issue{Pointer: "/", Message: err.Error()})
	}
	return issues
}

// normalize converts any map[any]any nodes yaml.v3 produces for maps with
// non-string keys (nested values read through a generic "any" field, e.g.
// tool arg defaults) into the map[string]any trees
// jsonschema.Schema.Validate expects.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[fmt.Sprint(k)] = normalize(vv)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, vv := range val {
			out[i] = normalize(vv)
		}
		return out
	default:
		return v
	}
}
