// Package check implements the matching algorithms behind prosecheck's
// built-in check kinds and the dispatch table that binds a kind tag to
// its algorithm.
package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// MatchFunc applies one check to one line and returns the line unchanged
// or with additional issues appended.
type MatchFunc func(text.Line, config.Check) text.Line

// UnknownKindError reports dispatch on a kind with no registered algorithm.
// It carries the offending kind and the registered set so configuration
// errors are self-describing.
type UnknownKindError struct {
	Kind       config.Kind
	Registered []string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown check kind %q (registered kinds: %s)",
		e.Kind, strings.Join(e.Registered, ", "))
}

// Table is an immutable mapping from check kind to matching algorithm.
// It is constructed once at startup and shared read-only across workers;
// there is no global mutable registry.
type Table struct {
	funcs    map[config.Kind]MatchFunc
	logger   *log.Logger
	patterns *patternCache
}

// NewTable builds a dispatch table over the six built-in kinds. The logger
// receives match-time warnings (e.g., malformed regex expressions); nil
// means the package default.
func NewTable(logger *log.Logger) *Table {
	if logger == nil {
		logger = log.Default()
	}

	t := &Table{logger: logger, patterns: newPatternCache()}
	t.funcs = map[config.Kind]MatchFunc{
		config.KindExistence:       t.matchExistence(false),
		config.KindCase:            t.matchExistence(true),
		config.KindRecommender:     t.matchRecommender(false),
		config.KindCaseRecommender: t.matchRecommender(true),
		config.KindRepetition:      matchRepetition,
		config.KindRegex:           t.matchRegex,
	}
	return t
}

// Kinds returns the registered kind tags in sorted order.
func (t *Table) Kinds() []string {
	kinds := make([]string, 0, len(t.funcs))
	for k := range t.funcs {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}

// Validate verifies that every check's kind has a registered algorithm.
// It is called at config load time so an unregistered kind surfaces as a
// configuration error, never as a silent no-op during matching.
func (t *Table) Validate(checks []config.Check) error {
	for _, c := range checks {
		if _, ok := t.funcs[c.Kind]; !ok {
			return &UnknownKindError{Kind: c.Kind, Registered: t.Kinds()}
		}
	}
	return nil
}

// Apply runs one check against one line. Dispatch on an unregistered kind
// returns an UnknownKindError; Validate at load time makes that unreachable
// for well-formed configurations.
func (t *Table) Apply(line text.Line, c config.Check) (text.Line, error) {
	fn, ok := t.funcs[c.Kind]
	if !ok {
		return line, &UnknownKindError{Kind: c.Kind, Registered: t.Kinds()}
	}
	return fn(line, c), nil
}

// ApplyAll runs every check against the line in order. A panic inside a
// single check is recovered and logged; the line keeps whatever issues
// were found before the failure and matching continues with the next check.
func (t *Table) ApplyAll(line text.Line, checks []config.Check) (text.Line, error) {
	for _, c := range checks {
		next, err := t.applyRecovered(line, c)
		if err != nil {
			return line, err
		}
		line = next
	}
	return line, nil
}

func (t *Table) applyRecovered(line text.Line, c config.Check) (out text.Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Warn("check panicked, skipping",
				"check", c.Name, "kind", c.Kind, "line", line.LineNum, "panic", r)
			out = line
			err = nil
		}
	}()
	return t.Apply(line, c)
}
