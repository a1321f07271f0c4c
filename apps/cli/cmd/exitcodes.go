package cmd

// Exit codes for the randspec CLI
const (
	// ExitSuccess indicates the run completed without error
	ExitSuccess = 0

	// ExitTestFailure indicates a test or suite body raised an error
	ExitTestFailure = 1

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
