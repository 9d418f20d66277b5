// Package logging configures the process-wide structured logger for the
// prosecheck commands. It wraps charmbracelet/log so the rest of the tree
// deals only in level strings and the field-name constants.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// levelNames maps accepted level strings onto log levels. Unknown strings
// fall back to info so a typo in --debug plumbing never silences warnings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var levelNames = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

//nolint:gochecknoglobals // One shared logger per process, created lazily.
var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// parseLevel resolves a level string case-insensitively, defaulting to info.
func parseLevel(level string) log.Level {
	if lv, ok := levelNames[strings.ToLower(level)]; ok {
		return lv
	}
	return log.InfoLevel
}

// New returns a logger writing to stderr at the given level. Timestamps and
// caller reporting stay off: diagnostics share the terminal with issue
// output and must remain visually separable from it.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// Default returns the shared process logger, creating it at info level on
// first use.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// SetDefault replaces the shared process logger.
func SetDefault(logger *log.Logger) {
	defaultOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel adjusts the shared logger's level, e.g. when --debug is passed.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}
