package cli

// Exit codes for the brpm CLI.
// No partial-success codes exist; any unhandled failure is non-zero.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates an uncategorized failure.
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 2

	// ExitConfigError indicates invalid or missing configuration,
	// including unmapped dependency names.
	ExitConfigError = 3

	// ExitParseError indicates collaborator output could not be parsed.
	ExitParseError = 4

	// ExitExternalTool indicates a collaborator process exited non-zero.
	ExitExternalTool = 5
)
