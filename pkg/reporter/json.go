package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/prosecheck/pkg/runner"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path    string       `json:"path"`
	Issues  []text.Issue `json:"issues"`
	Skipped bool         `json:"skipped,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	TotalIssues     int `json:"totalIssues"`
}

// JSONReporter formats results as JSON for CI and tooling.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := JSONOutput{Files: []JSONFileResult{}}

	if result != nil {
		for _, file := range result.Files {
			fr := JSONFileResult{
				Path:    file.Path,
				Issues:  file.Issues,
				Skipped: file.Skipped,
			}
			if fr.Issues == nil {
				fr.Issues = []text.Issue{}
			}
			if file.Error != nil {
				fr.Error = file.Error.Error()
			}
			out.Files = append(out.Files, fr)
		}
		out.Summary = JSONSummary{
			FilesChecked:    result.Stats.FilesProcessed,
			FilesWithIssues: result.Stats.FilesWithIssues,
			FilesSkipped:    result.Stats.FilesSkipped,
			FilesErrored:    result.Stats.FilesErrored,
			TotalIssues:     result.Stats.IssuesTotal,
		}
	}

	enc := json.NewEncoder(r.bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode json output: %w", err)
	}

	return out.Summary.TotalIssues, nil
}
