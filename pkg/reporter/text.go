package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/prosecheck/internal/ui/pretty"
	"github.com/yaklabco/prosecheck/pkg/runner"
)

// TextReporter formats results as styled terminal output, one issue per
// line, grouped by file. Verbose mode additionally shows the specimen and
// the check kind.
type TextReporter struct {
	opts    Options
	styles  *pretty.Styles
	verbose bool
	bw      *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options, verbose bool) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:    opts,
		styles:  pretty.NewStyles(colorEnabled),
		verbose: verbose,
		bw:      bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		r.writeSummary(result.Stats)
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Dim.Render("skipped: "+file.SkipReason),
		)
		return 0
	}

	if len(file.Issues) == 0 {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FilePath.Render(file.Path))
	for _, issue := range file.Issues {
		// Columns are stored 0-based; display 1-based like every editor.
		location := fmt.Sprintf("%d:%d", issue.LineNum, issue.Col+1)
		fmt.Fprintf(r.bw, "  %s  %s  %s\n",
			r.styles.Location.Render(location),
			r.styles.Message.Render(issue.Message),
			r.styles.CheckName.Render(issue.Check),
		)
		if r.verbose {
			fmt.Fprintf(r.bw, "       %s %s  %s %s\n",
				r.styles.Dim.Render("specimen:"),
				r.styles.Specimen.Render(issue.Specimen),
				r.styles.Dim.Render("kind:"),
				r.styles.Dim.Render(issue.Kind),
			)
		}
	}
	fmt.Fprintln(r.bw)

	return len(file.Issues)
}

func (r *TextReporter) writeSummary(stats runner.Stats) {
	if stats.IssuesTotal == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render(
			fmt.Sprintf("%d files checked, no issues found", stats.FilesProcessed)))
		return
	}
	fmt.Fprintln(r.bw, r.styles.Failure.Render(
		fmt.Sprintf("%d files checked, %d issues in %d files",
			stats.FilesProcessed, stats.IssuesTotal, stats.FilesWithIssues)))
}
