package messages

// Versioning messages cover bump/promote/deprecate/check operations
// (internal/versioning).
const (
	VersionEntryNotFoundFmt       = "version %d not found on primitive %s"
	VersionCannotPromoteDeprecFmt = "cannot promote version %d on %s: version is deprecated"
	VersionHashMismatchFmt        = "hash mismatch for %s version %d: expected %s, got %s"
	VersionNoContentFileFmt       = "primitive %s has no content file to bump from"
	VersionDuplicateNumberFmt     = "version %d already exists on primitive %s"
)
