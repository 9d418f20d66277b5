package runner

import "github.com/yaklabco/prosecheck/pkg/text"

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the display path of the processed file.
	Path string

	// Issues are the final, ignore-filtered issues for the file.
	Issues []text.Issue

	// Skipped is true if the file was skipped (e.g., over the size cutoff).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int

	// IssuesTotal is the total number of issues across all files, after
	// ignore filtering.
	IssuesTotal int
}

// Result is the overall runner result. Files are ordered deterministically
// by path regardless of worker scheduling.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any issues survived filtering.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.IssuesTotal > 0
}

// accumulate folds one outcome into the result.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		if len(outcome.Issues) > 0 {
			r.Stats.FilesWithIssues++
			r.Stats.IssuesTotal += len(outcome.Issues)
		}
	}
}
