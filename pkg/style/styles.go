// Package style renders the per-target outcome lines and the run
// summary for the terminal.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/shelf-sh/shelf/pkg/types"
)

// Indicator glyphs, one per action kind.
const (
	CreatedIndicator  = "✓"
	SkippedIndicator  = "·"
	RelinkIndicator   = "↻"
	ConflictIndicator = "✗"
)

var (
	// TitleStyle renders the summary header.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	CreatedStyle  = pterm.NewStyle(pterm.FgGreen)
	SkippedStyle  = pterm.NewStyle(pterm.FgGray)
	RelinkStyle   = pterm.NewStyle(pterm.FgYellow)
	ConflictStyle = pterm.NewStyle(pterm.FgRed)
	MutedStyle    = pterm.NewStyle(pterm.FgGray)
	ErrorStyle    = pterm.NewStyle(pterm.FgRed, pterm.Bold)
)

// ActionStyle returns the style and indicator for an action kind.
func ActionStyle(kind types.ActionKind) (*pterm.Style, string) {
	switch kind {
	case types.ActionCreate:
		return CreatedStyle, CreatedIndicator
	case types.ActionRelink:
		return RelinkStyle, RelinkIndicator
	case types.ActionConflict:
		return ConflictStyle, ConflictIndicator
	default:
		return SkippedStyle, SkippedIndicator
	}
}

// AutoColor disables colored output when stdout is not a terminal or
// NO_COLOR is set.
func AutoColor() {
	if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}
