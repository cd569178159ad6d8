package messages

// Validate messages cover the three-layer validator (internal/validate).
const (
	ValidateDirMissingFmt               = "%s: path does not exist or is not a directory"
	ValidateNoMetaFileFmt               = "%s: no recognized metadata file present"
	ValidateMetaNotMappingFmt           = "%s: metadata file does not parse as a mapping"
	ValidateIDMissingFmt                = "%s: id field is required"
	ValidateIDNotKebabFmt               = "%s: id %q is not kebab-case"
	ValidateDirNameMismatchFmt          = "%s: directory name %q does not equal id %q"
	ValidatePathShapeFmt                = "%s: enclosing path does not conform to <type>/<category>/<id>"
	ValidateMissingContentFileFmt       = "%s: kind %q requires at least one content file"
	ValidateMissingToolMetaFmt          = "%s: tool primitives require a tool metadata file"
	ValidateMissingHookMetaFmt          = "%s: hook primitives require a hook metadata file"
	ValidateSchemaViolationFmt          = "%s: %s: %s"
	ValidateSchemaNotRegisteredFmt      = "no schema registered for kind %q spec_version %q"
	ValidateToolRefNotFoundFmt          = "Tool reference '%s' not found"
	ValidateModelRefInvalidFmt          = "model reference %q must be in provider/model-id form"
	ValidateModelRefNotFoundFmt         = "model reference %q not found in provider registry"
	ValidateNoActiveVersionFmt          = "%s: version chain has no active entry"
	ValidateDuplicateVersionFmt         = "%s: duplicate version number %d"
	ValidateVersionFileMissingFmt       = "%s: version %d file %q does not exist"
	ValidateVersionHashMismatchFmt      = "%s: version %d hash mismatch: expected %s, got %s"
	ValidateVersionStatusInvalidFmt     = "%s: version %d has invalid status %q"
	ValidateDefaultVersionMissingFmt    = "%s: default_version %d does not reference an existing version"
	ValidateDefaultVersionDeprecatedFmt = "%s: default_version %d references a deprecated version"
	ValidateHookEventUnsupportedFmt     = "%s: event %q is not supported by target agent %q"
	ValidateExperimentalSkippedFmt      = "%s: experimental primitive; schema and semantic validation skipped"
)
