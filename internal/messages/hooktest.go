package messages

// Hooktest messages cover the hook test harness (internal/hooktest).
const (
	HookTestNoImplFmt        = "no implementation file found in %s (tried %v)"
	HookTestRustUnsupported  = "Rust implementations must be compiled first"
	HookTestUnknownExtFmt    = "unsupported implementation file extension %q"
	HookTestSpawnFailedFmt   = "failed to execute implementation %s"
	HookTestEmptyOutputFmt   = "hook %s produced no stdout output"
	HookTestInvalidOutputFmt = "failed to parse hook output JSON from %s"
	HookTestTimeoutFmt       = "hook %s timed out after %s"
)
