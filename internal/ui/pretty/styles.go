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
	Pass     lipgloss.Style
	Fail     lipgloss.Style
	CaseName lipgloss.Style
	FilePath lipgloss.Style
	Reason   lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		CaseName: lipgloss.NewStyle(),
		FilePath: lipgloss.NewStyle().Bold(true),
		Reason:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),

		Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Pass:         plain,
		Fail:         plain,
		CaseName:     plain,
		FilePath:     plain,
		Reason:       plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Dim:          plain,
	}
}

// ShouldColorize determines if color output should be enabled.
// mode is one of "auto", "always", "never".
func ShouldColorize(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
