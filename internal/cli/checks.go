package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prosecheck/internal/configloader"
	"github.com/yaklabco/prosecheck/internal/logging"
	"github.com/yaklabco/prosecheck/pkg/check"
	"github.com/yaklabco/prosecheck/pkg/config"
)

const formatJSON = "json"

// checkInfo represents a configured check in JSON output.
type checkInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
	Size    int    `json:"size"`
}

func newChecksCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List configured checks",
		Long: `List the checks configured for the current directory, with their
kind and message. With no configuration, lists the available check kinds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func runChecks(cmd *cobra.Command, format string) error {
	logger := logging.Default()

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
		Table:        table,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	if format == formatJSON {
		return outputChecksJSON(cmd, loadResult)
	}

	if len(loadResult.Checks) == 0 {
		logger.Info("no checks configured")
		logger.Info("available kinds", logging.FieldKind, strings.Join(table.Kinds(), ", "))
		return nil
	}

	logger.Info("configured checks")

	for _, c := range loadResult.Checks {
		logger.Info(c.Name,
			logging.FieldKind, c.Kind,
			"size", checkSize(c),
			"message", c.Message,
		)
	}

	return nil
}

// checkSize is the number of configured match targets for a check.
func checkSize(c config.Check) int {
	switch {
	case len(c.Specimens) > 0:
		return len(c.Specimens)
	case len(c.Recommendations) > 0:
		return len(c.Recommendations)
	case len(c.Expressions) > 0:
		return len(c.Expressions)
	default:
		return 0
	}
}

// outputChecksJSON outputs configured checks as a JSON array.
func outputChecksJSON(cmd *cobra.Command, loadResult *configloader.LoadResult) error {
	infos := make([]checkInfo, 0, len(loadResult.Checks))
	for _, c := range loadResult.Checks {
		infos = append(infos, checkInfo{
			Name:    c.Name,
			Kind:    string(c.Kind),
			Message: c.Message,
			Size:    checkSize(c),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding checks: %w", err)
	}
	return nil
}
