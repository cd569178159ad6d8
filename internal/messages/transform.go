package messages

// Transform messages cover the transformer framework (internal/transform).
const (
	TransformUnknownTargetFmt     = "no transformer registered for target %q"
	TransformKindUndetectedFmt    = "could not detect primitive kind for %s"
	TransformPrimitiveFailedFmt   = "transform %s for %s: %w"
	TransformOutputInvalidJSONFmt = "output file %s does not parse as JSON: %w"
	TransformCleanFailedFmt       = "failed to clean output root %s: %w"
	TransformHookNoImplFmt        = "no hook implementation script found in %s"
	TransformUniversalHookFmt     = "universal hook: registered under all %d %s events"
)
