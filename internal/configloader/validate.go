package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/prosecheck/pkg/check"
	"github.com/yaklabco/prosecheck/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checks[2].kind").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., a check with nothing to match).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a merged configuration file for errors and warnings.
// The table supplies the set of known check kinds.
func Validate(file *config.File, table *check.Table) *ValidationResult {
	if file == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if file.Config.Output != "" && !file.Config.Output.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output",
			Value:   file.Config.Output,
			Message: fmt.Sprintf("invalid output format %q; must be one of: text, json, verbose", file.Config.Output),
		})
	}

	if file.Config.MaxFileBytes < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_file_bytes",
			Value:   file.Config.MaxFileBytes,
			Message: "max_file_bytes must be >= 0 (0 means the default)",
		})
	}

	if file.Config.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   file.Config.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateExcludeGlobs(file, result)
	validateChecks(file, table, result)
	validateIgnoreIssues(file, result)

	return result
}

// validateExcludeGlobs checks that exclude patterns are valid globs.
func validateExcludeGlobs(file *config.File, result *ValidationResult) {
	for i, pattern := range file.Config.ExcludeGlobs {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// validateChecks checks the configured check list for errors and warnings.
func validateChecks(file *config.File, table *check.Table, result *ValidationResult) {
	seenNames := make(map[string]bool, len(file.Checks))

	for i, c := range file.Checks {
		field := fmt.Sprintf("checks[%d]", i)

		if c.Name == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".name",
				Message: "check name must not be empty",
			})
		} else if seenNames[c.Name] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".name",
				Value:   c.Name,
				Message: fmt.Sprintf("duplicate check name %q", c.Name),
			})
		}
		seenNames[c.Name] = true

		if table != nil {
			if err := table.Validate([]config.Check{c}); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".kind",
					Value:   c.Kind,
					Message: err.Error(),
				})
				continue
			}
		}

		validateCheckShape(field, c, result)
	}
}

// validateCheckShape warns about checks whose per-kind fields leave them
// with nothing to match. The engine treats these as no-ops, so they are
// warnings rather than errors.
func validateCheckShape(field string, c config.Check, result *ValidationResult) {
	switch c.Kind {
	case config.KindExistence, config.KindCase:
		if len(c.Specimens) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   c.Name,
				Message: fmt.Sprintf("check %q has no specimens and will never match", c.Name),
			})
		}
	case config.KindRecommender, config.KindCaseRecommender:
		if len(c.Recommendations) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   c.Name,
				Message: fmt.Sprintf("check %q has no recommendations and will never match", c.Name),
			})
		}
	case config.KindRegex:
		if len(c.Expressions) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   c.Name,
				Message: fmt.Sprintf("check %q has no expressions and will never match", c.Name),
			})
		}
	case config.KindRepetition:
		// No per-check configuration.
	}
}

// validateIgnoreIssues checks contextual ignore entries for required fields.
func validateIgnoreIssues(file *config.File, result *ValidationResult) {
	for i, entry := range file.IgnoreIssues {
		field := fmt.Sprintf("ignore_issues[%d]", i)

		if entry.File == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".file",
				Message: "file must not be empty",
			})
		}
		if entry.Specimen == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".specimen",
				Message: "specimen must not be empty",
			})
		}
		if entry.LineNum < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".line",
				Value:   entry.LineNum,
				Message: "line must be >= 0 (0 means any line)",
			})
		}
	}
}

// ValidateWithFile validates a configuration file and includes its path in
// any errors.
func ValidateWithFile(file *config.File, table *check.Table, filePath string) *ValidationResult {
	result := Validate(file, table)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
