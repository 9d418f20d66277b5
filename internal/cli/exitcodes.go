package cli

import "github.com/yaklabco/prosecheck/pkg/runner"

// Exit codes for prosecheck.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates the run completed but found issues.
	ExitIssuesFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code from a run result.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasIssues() || result.Stats.FilesErrored > 0 {
		return ExitIssuesFound
	}

	return ExitSuccess
}
