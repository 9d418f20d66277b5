// Package text defines the core value types for prose linting: a Line of
// input and the Issues attached to it. These types are pure data structures
// with no external dependencies on checks or config loaders.
package text

import "strings"

// Issue represents a single check match found in a line.
type Issue struct {
	// File is the display path of the file containing the issue.
	File string `yaml:"file" json:"file"`

	// LineNum is the 1-based line number the issue was found on.
	LineNum int `yaml:"line" json:"line"`

	// Check is the human-readable name of the check that produced this issue.
	Check string `yaml:"check" json:"check"`

	// Kind is the check kind tag (e.g., "existence", "repetition").
	Kind string `yaml:"kind" json:"kind"`

	// Specimen is the exact offending substring.
	Specimen string `yaml:"specimen" json:"specimen"`

	// Col is the 0-based column of the specimen's first occurrence.
	Col int `yaml:"col" json:"col"`

	// Message is the human-readable description of the issue.
	Message string `yaml:"message" json:"message"`
}

// Line represents one physical line of an input file. Code-block and quoted
// spans have already been neutralized by the reader, with columns preserved.
type Line struct {
	// File is the display path of the file this line belongs to.
	File string `yaml:"file"`

	// Text is the raw line content.
	Text string `yaml:"text"`

	// LineNum is the 1-based line number.
	LineNum int `yaml:"line"`

	// HasIssue is true once any issue has attached to this line.
	HasIssue bool `yaml:"has_issue"`

	// Issues holds attached issues in check-application order.
	Issues []Issue `yaml:"issues,omitempty"`
}

// ResolveCol locates specimen within lineText. It tries an exact-case
// substring search first and falls back to a case-insensitive search.
// Returns -1 if the specimen cannot be located.
func ResolveCol(lineText, specimen string) int {
	if col := strings.Index(lineText, specimen); col >= 0 {
		return col
	}
	return strings.Index(strings.ToLower(lineText), strings.ToLower(specimen))
}

// WithIssue returns a copy of the line with an issue appended. The specimen
// is located within the line's text via ResolveCol; if it cannot be located
// the issue is dropped and the line is returned unchanged, since an issue
// without a displayable location is meaningless.
func (l Line) WithIssue(check, kind, specimen, message string) Line {
	col := ResolveCol(l.Text, specimen)
	if col < 0 {
		return l
	}

	l.HasIssue = true
	l.Issues = append(l.Issues, Issue{
		File:     l.File,
		LineNum:  l.LineNum,
		Check:    check,
		Kind:     kind,
		Specimen: specimen,
		Col:      col,
		Message:  message,
	})
	return l
}

// Rebind returns a copy of the line re-addressed to a new line number,
// with every attached issue's location updated to match. Used when cached
// issues for an unchanged line are merged back at a shifted position.
func (l Line) Rebind(lineNum int) Line {
	if l.LineNum == lineNum {
		return l
	}
	l.LineNum = lineNum
	if len(l.Issues) > 0 {
		issues := make([]Issue, len(l.Issues))
		copy(issues, l.Issues)
		for i := range issues {
			issues[i].LineNum = lineNum
		}
		l.Issues = issues
	}
	return l
}
