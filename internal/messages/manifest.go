package messages

// Manifest messages cover manifest load/save/diff (internal/manifest).
const (
	ManifestReadFailedFmt  = "failed to read manifest %s: %w"
	ManifestParseFailedFmt = "failed to parse manifest %s: %w"
	ManifestWriteFailedFmt = "failed to write manifest %s: %w"
)
