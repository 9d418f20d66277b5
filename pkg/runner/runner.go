package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/prosecheck/pkg/cache"
	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/ignore"
	"github.com/yaklabco/prosecheck/pkg/lint"
	"github.com/yaklabco/prosecheck/pkg/loader"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// Runner orchestrates the per-file load -> recompute -> save -> filter
// cycle across many files. Each file's cycle is self-contained; the only
// shared mutable resource is the cache store on disk, which is safe under
// uncoordinated writers thanks to atomic renames.
type Runner struct {
	// Engine performs incremental recompute for one file.
	Engine *lint.Engine

	// Reader turns file content into engine-ready lines.
	Reader *loader.Reader

	// Store persists per-file cache records. Nil disables caching.
	Store *cache.Store

	// Index filters acknowledged issues. Nil disables filtering.
	Index *ignore.Index

	// Logger receives per-file warnings. Nil means the package default.
	Logger *log.Logger
}

// New creates a Runner. A nil logger selects the package default.
func New(engine *lint.Engine, reader *loader.Reader, store *cache.Store, index *ignore.Index, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Engine: engine,
		Reader: reader,
		Store:  store,
		Index:  index,
		Logger: logger,
	}
}

// Run discovers files under opts.Paths and processes them concurrently,
// returning outcomes in deterministic path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, workDir, opts.Config, opts.Checks)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; re-sequence by discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		display := DisplayPath(workDir, path)
		if outcome, ok := outcomes[display]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	workDir string,
	cfg *config.Config,
	checks []config.Check,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, DisplayPath(workDir, path), cfg, checks)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile runs one file through the full cycle.
func (r *Runner) processFile(
	ctx context.Context,
	path, display string,
	cfg *config.Config,
	checks []config.Check,
) FileOutcome {
	outcome := FileOutcome{Path: display}

	lines, err := r.Reader.ReadFile(path, display)
	if err != nil {
		if errors.Is(err, loader.ErrFileTooLarge) {
			outcome.Skipped = true
			outcome.SkipReason = "file exceeds size limit"
			return outcome
		}
		outcome.Error = err
		return outcome
	}

	prior := r.loadPrior(display)

	result, err := r.Engine.Compute(ctx, display, lines, cfg, checks, prior)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if r.Store != nil {
		// A failed save degrades to "skip caching", never aborts the file.
		if err := r.Store.Save(ctx, display, result); err != nil {
			r.Logger.Warn("cache save failed, continuing without cache",
				"file", display, "error", err)
		}
	}

	outcome.Issues = r.filter(result.Results)
	return outcome
}

// loadPrior fetches the cached record, treating corruption as a miss.
func (r *Runner) loadPrior(display string) *cache.Result {
	if r.Store == nil {
		return nil
	}

	prior, err := r.Store.Load(display)
	switch {
	case err == nil:
		return prior
	case errors.Is(err, cache.ErrCacheMiss):
		return nil
	case errors.Is(err, cache.ErrCorruptedCache):
		r.Logger.Warn("corrupted cache record, recomputing", "file", display, "error", err)
		return nil
	default:
		r.Logger.Warn("cache load failed, recomputing", "file", display, "error", err)
		return nil
	}
}

func (r *Runner) filter(issues []text.Issue) []text.Issue {
	if r.Index == nil {
		return issues
	}
	return ignore.Filter(issues, r.Index)
}
