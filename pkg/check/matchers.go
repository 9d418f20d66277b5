package check

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// matchExistence flags every occurrence of a specimen at word boundaries.
// caseSensitive distinguishes the "case" kind from "existence".
func (t *Table) matchExistence(caseSensitive bool) MatchFunc {
	return func(line text.Line, c config.Check) text.Line {
		if len(c.Specimens) == 0 {
			return line
		}

		re, firstFailure, err := t.patterns.compile(boundaryExpr(c.Specimens, caseSensitive))
		if err != nil {
			if firstFailure {
				t.logger.Warn("invalid specimen pattern, skipping check",
					"check", c.Name, "error", err)
			}
			return line
		}

		for _, m := range findGuarded(re, line.Text) {
			line = line.WithIssue(c.Name, string(c.Kind), line.Text[m[0]:m[1]], c.Message)
		}
		return line
	}
}

// matchRecommender flags occurrences of each avoided term, pointing at the
// preferred replacement. Uses the same boundary pattern and link-marker
// guard as existence checks.
func (t *Table) matchRecommender(caseSensitive bool) MatchFunc {
	return func(line text.Line, c config.Check) text.Line {
		for _, rec := range c.Recommendations {
			if rec.Avoid == "" {
				continue
			}

			re, firstFailure, err := t.patterns.compile(boundaryExpr([]string{rec.Avoid}, caseSensitive))
			if err != nil {
				if firstFailure {
					t.logger.Warn("invalid recommendation pattern, skipping",
						"check", c.Name, "avoid", rec.Avoid, "error", err)
				}
				continue
			}

			message := fmt.Sprintf("%s Prefer: %s", c.Message, rec.Prefer)
			for _, m := range findGuarded(re, line.Text) {
				line = line.WithIssue(c.Name, string(c.Kind), line.Text[m[0]:m[1]], message)
			}
		}
		return line
	}
}

// nonWordRunes strips everything that is not a word character, so "stop,"
// and "stop" compare equal during repetition detection. Letters and digits
// are Unicode classes, matching containsWordChar, so accented words keep
// their identity instead of collapsing to punctuation.
var nonWordRunes = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// matchRepetition detects maximal runs of two or more adjacent identical
// word tokens. Comparison is case-sensitive but punctuation-insensitive.
func matchRepetition(line text.Line, c config.Check) text.Line {
	tokens := strings.Fields(line.Text)
	if len(tokens) < 2 {
		return line
	}

	normalized := make([]string, len(tokens))
	for i, tok := range tokens {
		normalized[i] = nonWordRunes.ReplaceAllString(tok, "")
	}

	for i := 0; i < len(normalized); {
		j := i + 1
		for j < len(normalized) && normalized[j] == normalized[i] {
			j++
		}
		if j-i >= 2 && containsWordChar(normalized[i]) {
			specimen := strings.Join(normalized[i:j], " ")
			line = line.WithIssue(c.Name, string(c.Kind), specimen, c.Message)
		}
		i = j
	}
	return line
}

func containsWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// matchRegex applies each configured expression independently. A malformed
// expression is logged once and skipped; it never blocks the remaining
// expressions. The specimen is the first capture group when the pattern
// defines groups, otherwise the full match.
func (t *Table) matchRegex(line text.Line, c config.Check) text.Line {
	for _, expr := range c.Expressions {
		re, firstFailure, err := t.patterns.compile(expr.Pattern)
		if err != nil {
			if firstFailure {
				t.logger.Warn("invalid regex expression, skipping",
					"check", c.Name, "pattern", expr.Pattern, "error", err)
			}
			continue
		}

		for _, m := range re.FindAllStringSubmatchIndex(line.Text, -1) {
			start, end := m[0], m[1]
			if re.NumSubexp() > 0 && len(m) > 3 && m[2] >= 0 {
				start, end = m[2], m[3]
			}
			line = line.WithIssue(c.Name, string(c.Kind), line.Text[start:end], expr.Message)
		}
	}
	return line
}
