package primitive

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AgentParadise/agentic-primitives-sub000/internal/agenticerr"
)

// Save re-serializes p's metadata document back to p.MetaPath. The write is
// atomic: the new document is written to a sibling temp file and renamed
// over the original, so a crash mid-write never leaves a truncated or
// half-written metadata file behind. Only the metadata is rewritten;
// content files are managed separately by Versioning and the transform
// pipeline.
func Save(p *Primitive) error {
	var data []byte
	var err error

	switch p.Kind {
	case KindTool:
		data, err = yaml.Marshal(p.Tool)
	case KindHook:
		data, err = marshalHook(p.Hook)
	default:
		data, err = yaml.Marshal(p.Prompt)
	}
	if err != nil {
		return agenticerr.Wrap(agenticerr.KindInvalidFormat, p.MetaPath, "serialize metadata", err)
	}

	tmp := p.MetaPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return agenticerr.Wrap(agenticerr.KindIOFailure, p.MetaPath, "write metadata", err)
	}
	if err := os.Rename(tmp, p.MetaPath); err != nil {
		os.Remove(tmp)
		return agenticerr.Wrap(agenticerr.KindIOFailure, p.MetaPath, "replace metadata", err)
	}
	return nil
}

// marshalHook projects HookMeta back onto rawHookMeta so the plural
// "events" field round-trips even when the document was originally read
// with a legacy singular "event" field.
func marshalHook(h *HookMeta) ([]byte, error) {
	raw := rawHookMeta{
		ID:              h.ID,
		Kind:            h.Kind,
		Category:        h.Category,
		SpecVersion:     h.SpecVersion,
		Summary:         h.Summary,
		Events:          h.Events,
		Execution:       h.Execution,
		Middleware:      h.Middleware,
		DefaultDecision: h.DefaultDecision,
		Metrics:         h.Metrics,
		Logging:         h.Logging,
		Versions:        h.Versions,
		DefaultVersion:  h.DefaultVersion,
	}
	return yaml.Marshal(raw)
}
