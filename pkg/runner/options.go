// Package runner provides multi-file lint orchestration: discovery, the
// across-file worker pool, and aggregate statistics.
package runner

import "github.com/yaklabco/prosecheck/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to compute display paths. If empty, the process working directory
	// is used.
	WorkingDir string

	// Jobs controls the maximum number of concurrent file workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Checks is the resolved check list for this run.
	Checks []config.Check
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
