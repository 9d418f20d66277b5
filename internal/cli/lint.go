package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/prosecheck/internal/configloader"
	"github.com/yaklabco/prosecheck/internal/logging"
	"github.com/yaklabco/prosecheck/pkg/cache"
	"github.com/yaklabco/prosecheck/pkg/check"
	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/ignore"
	"github.com/yaklabco/prosecheck/pkg/lint"
	"github.com/yaklabco/prosecheck/pkg/loader"
	"github.com/yaklabco/prosecheck/pkg/reporter"
	"github.com/yaklabco/prosecheck/pkg/runner"
)

// ErrIssuesFound is returned when prose issues are found.
var ErrIssuesFound = errors.New("prose issues found")

type lintFlags struct {
	format   string
	exclude  []string
	noCache  bool
	cacheDir string
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check prose files for style issues",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Check prose files for style issues.

By default, checks all .md, .markdown, and .txt files in the current
directory and subdirectories. Specify paths to check specific files
or directories.

Examples:
  prosecheck lint                    # Check current directory
  prosecheck lint docs/              # Check docs directory
  prosecheck lint README.md          # Check single file
  prosecheck lint --format json      # Output as JSON for CI
  prosecheck lint --no-cache         # Recompute everything from scratch`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		cfg.Output = config.OutputFormat(flags.format)
	}
	cfg.ExcludeGlobs = flags.exclude
	cfg.NoCache = flags.noCache
	cfg.CacheDir = flags.cacheDir

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	table := check.NewTable(logger)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
		Table:        table,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldOutput, finalCfg.Output,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldChecks, len(loadResult.Checks),
	)

	store := openStore(finalCfg, logger)

	engine := lint.NewEngine(table, logger, finalCfg.Jobs)
	reader := loader.NewReader(finalCfg)
	index := ignore.Build(&loadResult.IgnoreSet)

	lintRunner := runner.New(engine, reader, store, index, logger)

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Jobs:       finalCfg.Jobs,
		Config:     finalCfg,
		Checks:     loadResult.Checks,
	}

	logger.Debug("starting run",
		"paths", runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(finalCfg.Output, reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Color:       colorMode,
		ShowSummary: true,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

// openStore opens the result cache, unless caching is disabled. A cache
// that cannot be opened degrades to an uncached run with a warning.
func openStore(cfg *config.Config, logger *log.Logger) *cache.Store {
	if cfg.NoCache {
		return nil
	}

	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			logger.Warn("cache directory unavailable, running without cache", logging.FieldError, err)
			return nil
		}
	}

	store, err := cache.Open(dir)
	if err != nil {
		logger.Warn("cache open failed, running without cache",
			logging.FieldCacheDir, dir, logging.FieldError, err)
		return nil
	}

	return store
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, verbose")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "cache directory override")
	cmd.Flags().BoolVar(&cfg.StripQuotes, "strip-quotes", false, "skip blockquoted text in Markdown files")
}
