package messages

// Config messages cover the ambient repository config
// (primitives.config.yaml, internal/config).
const (
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigRootRequiredFmt     = "config: repository root is required"
	ConfigUnrecognizedKeysFmt = "config %s has unrecognized keys: %w"
)
