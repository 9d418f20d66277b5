// Package reporter renders runner results for humans and machines.
package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/runner"
)

// bufWriterSize is the buffer size for output writers.
const bufWriterSize = 32 * 1024

// Reporter renders a runner result to its writer, returning the number of
// issues written.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Options control rendering.
type Options struct {
	// Writer receives the rendered output.
	Writer io.Writer

	// Color is the color mode: "auto", "always", or "never".
	Color string

	// ShowSummary appends a one-line run summary.
	ShowSummary bool
}

// New returns the reporter for the given output format.
func New(format config.OutputFormat, opts Options) (Reporter, error) {
	switch format {
	case config.FormatText, "":
		return NewTextReporter(opts, false), nil
	case config.FormatVerbose:
		return NewTextReporter(opts, true), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
