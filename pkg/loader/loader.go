// Package loader reads input files into Lines for the engine. Markdown
// code spans (and optionally blockquotes) are neutralized before the lines
// reach any check: the spans are replaced with equal-length blank runs,
// never shortened, so reported columns stay valid.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gtext "github.com/yuin/goldmark/text"

	"github.com/yaklabco/prosecheck/pkg/config"
	"github.com/yaklabco/prosecheck/pkg/text"
)

// ErrFileTooLarge indicates the file exceeds the configured size cutoff
// and never reached the engine.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// Reader turns file content into engine-ready Lines.
type Reader struct {
	md          goldmark.Markdown
	stripQuotes bool
	maxBytes    int64
}

// NewReader builds a reader honoring the configuration's quote-stripping
// and file-size settings.
func NewReader(cfg *config.Config) *Reader {
	r := &Reader{
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		maxBytes: cfg.EffectiveMaxFileBytes(),
	}
	if cfg != nil {
		r.stripQuotes = cfg.StripQuotes
	}
	return r
}

// ReadFile loads path from disk, enforcing the size cutoff, and returns
// its lines keyed by the given display path.
func (r *Reader) ReadFile(path, display string) ([]text.Line, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.Size() > r.maxBytes {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, display, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return r.Read(display, content), nil
}

// Read converts content into Lines. Markdown files get their code spans
// neutralized; other files pass through untouched.
func (r *Reader) Read(display string, content []byte) []text.Line {
	if isMarkdown(display) {
		content = r.neutralize(content)
	}
	return splitLines(display, content)
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// neutralize blanks code blocks, inline code spans, and (when configured)
// blockquoted spans, preserving byte offsets throughout.
func (r *Reader) neutralize(content []byte) []byte {
	out := make([]byte, len(content))
	copy(out, content)

	doc := r.md.Parser().Parse(gtext.NewReader(content))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			blankSegments(out, n)
			if fcb, ok := n.(*ast.FencedCodeBlock); ok && fcb.Info != nil {
				blankRange(out, fcb.Info.Segment.Start, fcb.Info.Segment.Stop)
			}
			return ast.WalkSkipChildren, nil

		case ast.KindCodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					blankRange(out, t.Segment.Start, t.Segment.Stop)
				}
			}
			return ast.WalkSkipChildren, nil

		case ast.KindBlockquote:
			if r.stripQuotes {
				blankBlock(out, n)
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})

	return out
}

// blankSegments blanks every source line segment owned by a block node.
func blankSegments(out []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		blankRange(out, seg.Start, seg.Stop)
	}
}

// blankBlock blanks a block node and its entire subtree.
func blankBlock(out []byte, n ast.Node) {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		blankSegments(out, n)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		blankBlock(out, c)
	}
}

// blankRange replaces non-newline bytes in [start, stop) with spaces.
func blankRange(out []byte, start, stop int) {
	if start < 0 {
		start = 0
	}
	if stop > len(out) {
		stop = len(out)
	}
	for i := start; i < stop; i++ {
		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}
}

// splitLines produces 1-based Lines from content. A trailing newline does
// not yield an extra empty line.
func splitLines(display string, content []byte) []text.Line {
	raw := bytes.Split(content, []byte("\n"))
	if len(raw) > 0 && len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]text.Line, len(raw))
	for i, b := range raw {
		b = bytes.TrimSuffix(b, []byte("\r"))
		lines[i] = text.Line{
			File:    display,
			Text:    string(b),
			LineNum: i + 1,
		}
	}
	return lines
}
