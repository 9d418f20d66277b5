package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	input := `
output: json
strip_quotes: true
checks:
  - name: no-weasels
    kind: existence
    message: Avoid weasel words.
    specimens:
      - clearly
      - obviously
  - name: prefer-use
    kind: recommender
    message: Wordy.
    recommendations:
      - prefer: use
        avoid: utilize
ignore:
  - lorem
ignore_issues:
  - file: docs/guide.md
    line: 12
    specimen: obviously
    check: no-weasels
`

	f, err := FromYAML([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, f.Config.Output)
	assert.True(t, f.Config.StripQuotes)

	require.Len(t, f.Checks, 2)
	assert.Equal(t, KindExistence, f.Checks[0].Kind)
	assert.Equal(t, []string{"clearly", "obviously"}, f.Checks[0].Specimens)
	assert.Equal(t, KindRecommender, f.Checks[1].Kind)
	require.Len(t, f.Checks[1].Recommendations, 1)
	assert.Equal(t, "use", f.Checks[1].Recommendations[0].Prefer)

	assert.Equal(t, []string{"lorem"}, f.Ignore)
	require.Len(t, f.IgnoreIssues, 1)
	assert.Equal(t, 12, f.IgnoreIssues[0].LineNum)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := FromYAML([]byte("checks: {not: [a, list"))
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	f := &File{
		Config: Config{Output: FormatText, StripQuotes: true},
		Checks: []Check{
			{
				Name:      "no-filler",
				Kind:      KindCase,
				Message:   "Filler word.",
				Specimens: []string{"Basically"},
			},
			{
				Name: "no-doubles",
				Kind: KindRepetition,
			},
			{
				Name: "iso-dates",
				Kind: KindRegex,
				Expressions: []Expression{
					{Pattern: `\d{2}/\d{2}/\d{4}`, Message: "Use ISO dates."},
				},
			},
		},
		Ignore: []string{"foo"},
	}

	data, err := f.ToYAML()
	require.NoError(t, err)

	back, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, f.Checks, back.Checks)
	assert.Equal(t, f.Ignore, back.Ignore)
	assert.Equal(t, f.Config.Output, back.Config.Output)
}

func TestIgnoreSetIsEmpty(t *testing.T) {
	var nilSet *IgnoreSet
	assert.True(t, nilSet.IsEmpty())
	assert.True(t, (&IgnoreSet{}).IsEmpty())
	assert.False(t, (&IgnoreSet{Ignore: []string{"x"}}).IsEmpty())
	assert.False(t, (&IgnoreSet{IgnoreIssues: []ContextualIgnore{{File: "a"}}}).IsEmpty())
}
