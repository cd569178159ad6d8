package messages

// Install messages cover the manifest-directed installer (internal/install).
const (
	InstallBuildDirMissingFmt      = "build directory %s does not exist or is empty"
	InstallSentinelMissingFmt      = "build directory %s is missing expected file %s for target %q"
	InstallBackupFailedFmt         = "failed to back up %s: %w"
	InstallCopyFailedFmt           = "failed to copy %s to %s: %w"
	InstallRemoveFailedFmt         = "failed to remove %s: %w"
	InstallHomeDirFailedFmt        = "failed to resolve user config directory: %w"
	InstallLegacyBackupFailedFmt   = "failed to back up existing install directory %s: %w"
	InstallDiffPreviewPathRequired = "diff preview requires a non-empty relative path"
)
