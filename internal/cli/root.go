// Package cli provides the Cobra command structure for prosecheck.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/prosecheck/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root prosecheck command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "prosecheck",
		Short: "A fast, incremental prose linter",
		Long: `prosecheck finds style problems in prose: hedging words, casing slips,
discouraged phrasing, repeated words, and anything a custom regular
expression can describe.

Checks are configured in YAML, results are cached per file, and unchanged
lines are never re-examined, so repeated runs over a large document tree
stay fast.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newChecksCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
