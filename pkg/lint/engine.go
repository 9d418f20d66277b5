// Package lint implements the incremental recompute engine: given a file's
// current lines, the resolved checks, and an optional prior cache record,
// it produces the current result while re-matching only the lines that
// actually changed.
package lint

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/prosecheck/pkg/cache"
	"github.com/yaklabco/prosecheck/pkg/check"
	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/stablehash"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// Engine coordinates hashing, partitioning, and parallel check dispatch.
type Engine struct {
	table  *check.Table
	logger *log.Logger

	// jobs bounds line-level parallelism. 0 means GOMAXPROCS.
	jobs int
}

// NewEngine creates an engine over the given dispatch table. A nil logger
// selects the package default.
func NewEngine(table *check.Table, logger *log.Logger, jobs int) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{table: table, logger: logger, jobs: jobs}
}

// Compute produces the current Result for one file.
//
// A prior record is reused verbatim only when all three hash channels
// (lines, config, checks) match. When config and checks are unchanged but
// the lines differ, issues cached for lines whose text is unique within
// both snapshots are carried over; every other line is re-matched. Changed
// lines are matched concurrently; each match task reads only its own line
// and the shared read-only check list.
func (e *Engine) Compute(
	ctx context.Context,
	file string,
	lines []text.Line,
	cfg *config.Config,
	checks []config.Check,
	prior *cache.Result,
) (*cache.Result, error) {
	hashes, err := cache.ComputeHashes(lines, cfg, checks)
	if err != nil {
		return nil, err
	}

	if prior.Valid(hashes) {
		e.logger.Debug("cache hit, reusing result verbatim", "file", file)
		return prior, nil
	}

	var reusable map[string]text.Line
	if prior.Reusable(hashes) {
		reusable = reusableByText(prior.Lines, lines)
		e.logger.Debug("lines changed, reusing unchanged lines",
			"file", file, "reusable", len(reusable), "total", len(lines))
	}

	matched, err := e.matchLines(ctx, lines, checks, reusable)
	if err != nil {
		return nil, err
	}

	return buildResult(file, matched, cfg, hashes), nil
}

// matchLines resolves every line to its matched form, pulling unchanged
// lines from the reusable set and dispatching the rest concurrently.
func (e *Engine) matchLines(
	ctx context.Context,
	lines []text.Line,
	checks []config.Check,
	reusable map[string]text.Line,
) ([]text.Line, error) {
	matched := make([]text.Line, len(lines))

	var changed []int
	for i, line := range lines {
		if cached, ok := reusable[line.Text]; ok {
			matched[i] = cached.Rebind(line.LineNum)
			continue
		}
		changed = append(changed, i)
	}

	if len(changed) == 0 {
		return matched, nil
	}

	jobs := e.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(changed)))

	for _, idx := range changed {
		idx := idx
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			line, err := e.table.ApplyAll(lines[idx], checks)
			if err != nil {
				return fmt.Errorf("match line %d: %w", lines[idx].LineNum, err)
			}
			matched[idx] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matched, nil
}

// reusableByText maps line text to its previously matched Line, restricted
// to texts that occur exactly once in BOTH snapshots. A text duplicated in
// either snapshot is never reused: re-identifying cached issues by content
// alone would misattribute an issue cached for one occurrence to a
// different line sharing identical text.
func reusableByText(prev, cur []text.Line) map[string]text.Line {
	prevCount := make(map[string]int, len(prev))
	for _, l := range prev {
		prevCount[l.Text]++
	}
	curCount := make(map[string]int, len(cur))
	for _, l := range cur {
		curCount[l.Text]++
	}

	reusable := make(map[string]text.Line, len(prev))
	for _, l := range prev {
		if prevCount[l.Text] == 1 && curCount[l.Text] == 1 {
			reusable[l.Text] = l
		}
	}
	return reusable
}

// buildResult assembles the persistable record: the line snapshot with
// duplicate-text lines excluded (they are never eligible for reuse), and
// the flattened issue list in line order.
func buildResult(file string, matched []text.Line, cfg *config.Config, h cache.Hashes) *cache.Result {
	count := make(map[string]int, len(matched))
	for _, l := range matched {
		count[l.Text]++
	}

	snapshot := make([]text.Line, 0, len(matched))
	var results []text.Issue
	for _, l := range matched {
		if count[l.Text] == 1 {
			snapshot = append(snapshot, l)
		}
		results = append(results, l.Issues...)
	}

	var output string
	if cfg != nil {
		output = string(cfg.Output)
	}

	return &cache.Result{
		Lines:      snapshot,
		LinesHash:  h.Lines,
		FileHash:   stablehash.HashString(file),
		Config:     cfg,
		ConfigHash: h.Config,
		CheckHash:  h.Checks,
		Output:     output,
		Results:    results,
	}
}
