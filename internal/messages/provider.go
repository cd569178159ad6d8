package messages

// Provider messages cover loading and resolving model/agent descriptors
// (internal/provider).
const (
	ProviderModelNotFoundFmt      = "model config not found: %s/%s"
	ProviderAgentNotFoundFmt      = "agent provider not found: %s"
	ProviderConfigMissingFmt      = "provider %s: missing config.yaml"
	ProviderSkippedWarningFmt     = "warning: skipping malformed provider directory %s: %v"
	ProviderModelRefInvalidFmt    = "invalid model reference format: %q (expected provider/model-id)"
	ProviderModelRefEmptyPartsFmt = "model reference %q has an empty provider or model id"
	ProviderHooksSupportedReadFmt = "agent provider %s: failed to read hooks-supported.yaml"
)
