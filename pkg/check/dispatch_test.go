package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/text"
)

func TestTableKinds(t *testing.T) {
	table := NewTable(nil)
	assert.Equal(t, []string{
		"case", "case-recommender", "existence", "recommender", "regex", "repetition",
	}, table.Kinds())
}

func TestTableValidate(t *testing.T) {
	table := NewTable(nil)

	err := table.Validate([]config.Check{
		{Name: "ok", Kind: config.KindExistence},
		{Name: "bad", Kind: "sentiment"},
	})

	require.Error(t, err)
	var unknown *UnknownKindError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, config.Kind("sentiment"), unknown.Kind)
	assert.Contains(t, unknown.Registered, "existence")
	assert.Contains(t, err.Error(), "sentiment")
}

func TestTableApplyUnknownKind(t *testing.T) {
	table := NewTable(nil)
	line := text.Line{File: "a.md", Text: "hello", LineNum: 1}

	got, err := table.Apply(line, config.Check{Name: "x", Kind: "nope"})

	require.Error(t, err)
	assert.Equal(t, line, got)
}

func TestTableApplyAllRunsChecksInOrder(t *testing.T) {
	table := NewTable(nil)
	line := text.Line{File: "a.md", Text: "Clearly this this is wrong.", LineNum: 1}

	checks := []config.Check{
		{Name: "no-weasels", Kind: config.KindExistence, Specimens: []string{"clearly"}, Message: "Weasel word."},
		{Name: "no-doubles", Kind: config.KindRepetition, Message: "Repeated word."},
	}

	got, err := table.ApplyAll(line, checks)
	require.NoError(t, err)
	require.Len(t, got.Issues, 2)
	assert.Equal(t, "no-weasels", got.Issues[0].Check)
	assert.Equal(t, "no-doubles", got.Issues[1].Check)
}
