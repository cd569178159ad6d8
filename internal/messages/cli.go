package messages

// CLI messages cover cmd/apc output not already covered by a
// component-specific message file.
const (
	CLIInvalidGlobFmt       = "invalid glob pattern %q: %w"
	CLINoPrimitiveAtFmt     = "no primitive found at %s"
	VersionTemplate         = "{{.Name}} version {{.Version}}\n"
	CLIUnknownKindFmt       = "unknown primitive kind %q"
	CLIUnknownFormatFmt     = "unknown output format %q"
	CLIAlreadyExistsFmt     = "%s already exists"
	CLIRepoRootNotFoundFmt  = "no %s found in %s or any parent directory"
	CLIScaffoldWroteFmt     = "created %s\n"
	CLIValidationFailedFmt  = "%s: FAIL\n"
	CLIValidationPassedFmt  = "%s: PASS\n"
	CLIBuildSummaryFmt      = "built %d primitive(s) for %s into %s (%d failed)\n"
	CLIBuildCleanFailedFmt  = "failed to clean output directory %s: %w"
	CLIInstallSummaryFmt    = "install %s: %d added, %d updated, %d removed, %d unchanged\n"
	CLIHookDecisionFmt      = "%s: %s (%s) in %dms\n"
	CLIMigratePlanHeaderFmt = "%s: %s -> %s\n"
	CLIConfigInitExistsFmt  = "%s already exists; refusing to overwrite\n"
	CLIConfigWroteFmt       = "wrote default config to %s\n"
)
