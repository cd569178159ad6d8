package messages

// Migrate messages cover spec-version migration (internal/migrate).
const (
	MigrateUnsupportedTransitionFmt = "unsupported migration transition: %s -> %s"
	MigrateRenameFieldFmt           = "Rename field: %s -> %s"
	MigrateAddFieldFmt              = "Add field: %s = %v"
	MigrateMoveToFmt                = "Move to: %s"
	MigrateDestinationExistsFmt     = "migration destination %s already exists"
)
