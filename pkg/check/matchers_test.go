package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/text"
)

func apply(t *testing.T, table *Table, lineText string, c config.Check) text.Line {
	t.Helper()
	line := text.Line{File: "test.md", Text: lineText, LineNum: 1}
	got, err := table.Apply(line, c)
	require.NoError(t, err)
	return got
}

func TestExistenceWordBoundary(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:      "no-the",
		Kind:      config.KindExistence,
		Message:   "Flagged.",
		Specimens: []string{"the"},
	}

	// "The" matches case-insensitively at a word boundary; "theory" does not.
	got := apply(t, table, "The theory is solid.", c)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, "The", got.Issues[0].Specimen)
	assert.Equal(t, 0, got.Issues[0].Col)
}

func TestExistenceMultipleSpecimensAndMatches(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:      "no-weasels",
		Kind:      config.KindExistence,
		Message:   "Weasel word.",
		Specimens: []string{"clearly", "obviously"},
	}

	got := apply(t, table, "Clearly wrong, obviously clearly so.", c)

	require.Len(t, got.Issues, 3)
	assert.Equal(t, "Clearly", got.Issues[0].Specimen)
	assert.Equal(t, "obviously", got.Issues[1].Specimen)
	assert.Equal(t, "clearly", got.Issues[2].Specimen)
}

func TestCaseIsExactCase(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:      "spell-golang",
		Kind:      config.KindCase,
		Message:   "Capitalize Go.",
		Specimens: []string{"golang"},
	}

	got := apply(t, table, "Golang and golang differ.", c)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, "golang", got.Issues[0].Specimen)
	assert.Equal(t, 11, got.Issues[0].Col)
}

func TestExistenceLinkMarkerGuard(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:      "no-todo",
		Kind:      config.KindExistence,
		Message:   "Flagged.",
		Specimens: []string{"todo"},
	}

	tests := []struct {
		name       string
		lineText   string
		wantIssues int
	}{
		{name: "plain occurrence", lineText: "a todo item", wantIssues: 1},
		{name: "after link bracket", lineText: "see [todo list](x)", wantIssues: 0},
		{name: "after heading marker", lineText: "#todo", wantIssues: 0},
		{name: "after hyphen", lineText: "non-todo", wantIssues: 0},
		{name: "after underscore", lineText: "_todo", wantIssues: 0},
		{name: "at line start", lineText: "todo: fix", wantIssues: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, table, tt.lineText, c)
			assert.Len(t, got.Issues, tt.wantIssues)
		})
	}
}

func TestRecommender(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:    "prefer-short",
		Kind:    config.KindRecommender,
		Message: "Wordy.",
		Recommendations: []config.Recommendation{
			{Prefer: "use", Avoid: "utilize"},
			{Prefer: "help", Avoid: "facilitate"},
		},
	}

	got := apply(t, table, "We Utilize tools to facilitate work.", c)

	require.Len(t, got.Issues, 2)
	assert.Equal(t, "Utilize", got.Issues[0].Specimen)
	assert.Equal(t, "Wordy. Prefer: use", got.Issues[0].Message)
	assert.Equal(t, "facilitate", got.Issues[1].Specimen)
	assert.Equal(t, "Wordy. Prefer: help", got.Issues[1].Message)
}

func TestCaseRecommenderIsExactCase(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:    "brand-names",
		Kind:    config.KindCaseRecommender,
		Message: "Brand style.",
		Recommendations: []config.Recommendation{
			{Prefer: "GitHub", Avoid: "Github"},
		},
	}

	got := apply(t, table, "Github and GitHub and github.", c)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, "Github", got.Issues[0].Specimen)
}

func TestRepetition(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{Name: "no-doubles", Kind: config.KindRepetition, Message: "Repeated word."}

	tests := []struct {
		name          string
		lineText      string
		wantSpecimens []string
	}{
		{
			name:          "simple double",
			lineText:      "This is is a test.",
			wantSpecimens: []string{"is is"},
		},
		{
			name:          "no repetition",
			lineText:      "This is a test.",
			wantSpecimens: nil,
		},
		{
			name:          "punctuation-insensitive",
			lineText:      "Stop, stop, right there.",
			wantSpecimens: nil, // "Stop" vs "stop" differ in case
		},
		{
			name:          "trailing punctuation stripped",
			lineText:      "go go, gadget",
			wantSpecimens: []string{"go go"},
		},
		{
			name:          "triple run yields one issue",
			lineText:      "very very very good",
			wantSpecimens: []string{"very very very"},
		},
		{
			name:          "two separate runs",
			lineText:      "the the cat sat sat down",
			wantSpecimens: []string{"the the", "sat sat"},
		},
		{
			name:          "punctuation-only run is not flagged",
			lineText:      "-- -- done",
			wantSpecimens: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, table, tt.lineText, c)
			var specimens []string
			for _, issue := range got.Issues {
				specimens = append(specimens, issue.Specimen)
			}
			assert.Equal(t, tt.wantSpecimens, specimens)
		})
	}
}

func TestRepetitionInteriorPunctuationDropsIssue(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{Name: "no-doubles", Kind: config.KindRepetition, Message: "Repeated word."}

	// "stop, stop" normalizes to the specimen "stop stop", which never
	// occurs literally in the line. Column resolution requires the
	// specimen to be locatable in the raw text, so the issue is dropped
	// rather than reported at a made-up column.
	got := apply(t, table, "We must stop, stop now.", c)

	assert.Empty(t, got.Issues)
}

func TestRepetitionUnicodeWords(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{Name: "no-doubles", Kind: config.KindRepetition, Message: "Repeated word."}

	// Accented letters are word characters; the pair must not collapse to
	// empty strings during normalization.
	got := apply(t, table, "Le café café est bon.", c)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, "café café", got.Issues[0].Specimen)
}

func TestRegexFullMatch(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name: "iso-dates",
		Kind: config.KindRegex,
		Expressions: []config.Expression{
			{Pattern: `\d{2}/\d{2}/\d{4}`, Message: "Use ISO dates."},
		},
	}

	got := apply(t, table, "Shipped 01/02/2024 and 03/04/2025.", c)

	require.Len(t, got.Issues, 2)
	assert.Equal(t, "01/02/2024", got.Issues[0].Specimen)
	assert.Equal(t, "Use ISO dates.", got.Issues[0].Message)
}

func TestRegexCaptureGroupSpecimen(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name: "bare-urls",
		Kind: config.KindRegex,
		Expressions: []config.Expression{
			{Pattern: `<(https?://[^>]+)>`, Message: "Bare URL."},
		},
	}

	got := apply(t, table, "See <https://example.com> for details.", c)

	require.Len(t, got.Issues, 1)
	// First capture group, not the full match.
	assert.Equal(t, "https://example.com", got.Issues[0].Specimen)
}

func TestRegexMalformedExpressionIsSkipped(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name: "mixed",
		Kind: config.KindRegex,
		Expressions: []config.Expression{
			{Pattern: `(unclosed`, Message: "never matches"},
			{Pattern: `fine`, Message: "matches"},
		},
	}

	// The malformed expression must not block the valid one.
	got := apply(t, table, "this is fine", c)

	require.Len(t, got.Issues, 1)
	assert.Equal(t, "fine", got.Issues[0].Specimen)
}

func TestExistenceEmptySpecimens(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{Name: "empty", Kind: config.KindExistence}

	got := apply(t, table, "anything at all", c)
	assert.Empty(t, got.Issues)
}

func TestSpecimenQuotingIsLiteral(t *testing.T) {
	table := NewTable(nil)
	c := config.Check{
		Name:      "no-node-js",
		Kind:      config.KindExistence,
		Message:   "Write Node.js.",
		Specimens: []string{"node.js"},
	}

	// The dot must match literally, not as a metacharacter.
	got := apply(t, table, "deployed on nodeXjs hosts", c)
	assert.Empty(t, got.Issues)

	got = apply(t, table, "deployed on node.js hosts", c)
	assert.Len(t, got.Issues, 1)
}
