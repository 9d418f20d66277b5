// Package cache persists per-file lint results keyed by content hashes,
// so unchanged files (and unchanged lines within edited files) are not
// re-matched on the next run.
package cache

import (
	"fmt"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/stablehash"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// Result is the persisted outcome of matching one file. It round-trips
// through YAML, the same codec the configuration system uses, so records
// stay inspectable with ordinary tooling.
type Result struct {
	// Lines is the exact line snapshot used to produce Results, with
	// per-line issues attached. Incremental recompute reuses issues from
	// lines whose text is unique and unchanged.
	Lines []text.Line `yaml:"lines"`

	// LinesHash covers the full line snapshot.
	LinesHash uint64 `yaml:"lines_hash"`

	// FileHash is the hash of the file identity string; it doubles as
	// the record's storage key, keeping filenames filesystem-safe.
	FileHash uint64 `yaml:"file_hash"`

	// Config is the configuration in effect when the record was written.
	Config *config.Config `yaml:"config"`

	// ConfigHash covers Config, excluding the check list.
	ConfigHash uint64 `yaml:"config_hash"`

	// CheckHash covers the resolved check list.
	CheckHash uint64 `yaml:"check_hash"`

	// Output is the output-mode tag in effect when cached.
	Output string `yaml:"output"`

	// Results is the flattened issue list in line order.
	Results []text.Issue `yaml:"results"`
}

// Hashes bundles the three independent cache-validity channels.
type Hashes struct {
	Lines  uint64
	Config uint64
	Checks uint64
}

// ComputeHashes derives all three channels from the current inputs.
func ComputeHashes(lines []text.Line, cfg *config.Config, checks []config.Check) (Hashes, error) {
	linesHash, err := stablehash.Hash(lines)
	if err != nil {
		return Hashes{}, fmt.Errorf("hash lines: %w", err)
	}
	configHash, err := stablehash.Hash(cfg)
	if err != nil {
		return Hashes{}, fmt.Errorf("hash config: %w", err)
	}
	checkHash, err := stablehash.Hash(checks)
	if err != nil {
		return Hashes{}, fmt.Errorf("hash checks: %w", err)
	}
	return Hashes{Lines: linesHash, Config: configHash, Checks: checkHash}, nil
}

// Valid reports whether the record can be reused verbatim for the given
// inputs: all three hash channels must match.
func (r *Result) Valid(h Hashes) bool {
	return r != nil &&
		r.LinesHash == h.Lines &&
		r.ConfigHash == h.Config &&
		r.CheckHash == h.Checks
}

// Reusable reports whether the record's per-line issues may be partially
// reused: config and checks are unchanged, only line content differs.
func (r *Result) Reusable(h Hashes) bool {
	return r != nil &&
		r.ConfigHash == h.Config &&
		r.CheckHash == h.Checks
}
