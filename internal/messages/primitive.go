package messages

// Primitive messages cover discovery and loading of primitives from disk
// (internal/primitive).
const (
	PrimitiveDirNotFoundFmt        = "primitive directory not found: %s"
	PrimitiveNoMetaFileFmt         = "no metadata file found in %s (tried %v)"
	PrimitiveInvalidMetaFmt        = "failed to parse metadata file %s: %w"
	PrimitiveIDMismatchFmt         = "directory name %q does not match metadata id %q"
	PrimitiveIDNotKebabFmt         = "id %q is not kebab-case"
	PrimitiveContentFileMissingFmt = "content file not found: %s"
	PrimitiveVersionNotFoundFmt    = "version %d not found in versions list for %s"
	PrimitiveUnknownKindFmt        = "unknown primitive kind %q"
)
