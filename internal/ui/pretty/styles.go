// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	FilePath  lipgloss.Style
	Location  lipgloss.Style
	CheckName lipgloss.Style
	Message   lipgloss.Style
	Specimen  lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	Dim       lipgloss.Style
	Bold      lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return &Styles{
		FilePath:  lipgloss.NewStyle().Bold(true),
		Location:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CheckName: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:   lipgloss.NewStyle(),
		Specimen:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:      lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		FilePath:  plain,
		Location:  plain,
		CheckName: plain,
		Message:   plain,
		Specimen:  plain,
		Success:   plain,
		Failure:   plain,
		Dim:       plain,
		Bold:      plain,
	}
}

// IsColorEnabled resolves the color mode ("auto", "always", "never")
// against the output writer.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	}
}
