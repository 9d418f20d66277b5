package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prosecheck/pkg/config"
)

func TestReadSplitsLines(t *testing.T) {
	r := NewReader(config.NewConfig())

	lines := r.Read("a.txt", []byte("first\nsecond\nthird\n"))

	require.Len(t, lines, 3)
	assert.Equal(t, "first", lines[0].Text)
	assert.Equal(t, 1, lines[0].LineNum)
	assert.Equal(t, "third", lines[2].Text)
	assert.Equal(t, 3, lines[2].LineNum)
	assert.Equal(t, "a.txt", lines[0].File)
}

func TestReadHandlesCRLF(t *testing.T) {
	r := NewReader(config.NewConfig())

	lines := r.Read("a.txt", []byte("first\r\nsecond\r\n"))

	require.Len(t, lines, 2)
	assert.Equal(t, "first", lines[0].Text)
	assert.Equal(t, "second", lines[1].Text)
}

func TestReadNeutralizesFencedCodeBlocks(t *testing.T) {
	r := NewReader(config.NewConfig())

	input := "Some prose here.\n\n```go\nclearly := \"code\"\n```\n\nMore prose.\n"
	lines := r.Read("a.md", []byte(input))

	require.Len(t, lines, 7)
	assert.Equal(t, "Some prose here.", lines[0].Text)
	// The code line is blanked to an equal-length run of spaces.
	assert.Equal(t, strings.Repeat(" ", len(`clearly := "code"`)), lines[3].Text)
	assert.Equal(t, "More prose.", lines[6].Text)
}

func TestReadNeutralizesInlineCodeSpansPreservingColumns(t *testing.T) {
	r := NewReader(config.NewConfig())

	lines := r.Read("a.md", []byte("Use `clearly` sparingly.\n"))

	require.Len(t, lines, 1)
	got := lines[0].Text
	// Length unchanged, code content blanked, surrounding prose intact.
	assert.Len(t, got, len("Use `clearly` sparingly."))
	assert.NotContains(t, got, "clearly")
	assert.Contains(t, got, "sparingly.")
	// Column of the following word is unchanged.
	assert.Equal(t, strings.Index("Use `clearly` sparingly.", "sparingly"), strings.Index(got, "sparingly"))
}

func TestReadLeavesPlainTextUntouched(t *testing.T) {
	r := NewReader(config.NewConfig())

	// Indented lines in .txt files must not be treated as code blocks.
	input := "normal line\n    clearly indented\n"
	lines := r.Read("notes.txt", []byte(input))

	require.Len(t, lines, 2)
	assert.Equal(t, "    clearly indented", lines[1].Text)
}

func TestReadBlockquotes(t *testing.T) {
	input := "Intro.\n\n> Clearly quoted text.\n\nOutro.\n"

	t.Run("kept by default", func(t *testing.T) {
		r := NewReader(config.NewConfig())
		lines := r.Read("a.md", []byte(input))
		assert.Contains(t, lines[2].Text, "Clearly quoted")
	})

	t.Run("stripped when configured", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.StripQuotes = true
		r := NewReader(cfg)
		lines := r.Read("a.md", []byte(input))
		assert.NotContains(t, lines[2].Text, "Clearly")
		// Length preserved so columns stay valid.
		assert.Len(t, lines[2].Text, len("> Clearly quoted text."))
	})
}

func TestReadFileEnforcesSizeCutoff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 128)), 0644))

	cfg := config.NewConfig()
	cfg.MaxFileBytes = 64
	r := NewReader(cfg)

	_, err := r.ReadFile(path, "big.md")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestReadFileMissing(t *testing.T) {
	r := NewReader(config.NewConfig())
	_, err := r.ReadFile(filepath.Join(t.TempDir(), "absent.md"), "absent.md")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("One line.\nTwo lines.\n"), 0644))

	r := NewReader(config.NewConfig())
	lines, err := r.ReadFile(path, "doc.md")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "doc.md", lines[1].File)
	assert.Equal(t, "Two lines.", lines[1].Text)
}
