package render

import "github.com/charmbracelet/lipgloss"

// Palette matching the Wayfound CLI theme.
var (
	primary   = lipgloss.Color("#f7c0af") // peach
	secondary = lipgloss.Color("#3ccad7") // cyan
	success   = lipgloss.Color("#87bf47") // green
	errorCol  = lipgloss.Color("#bf5d47") // red
	muted     = lipgloss.Color("#7f7f7f") // gray
)

// ANSI codes for streamed text runs, where lipgloss would break lines.
const (
	streamColorStart = "\033[38;5;252m" // light gray
	streamColorReset = "\033[0m"
)

const separatorLine = "────────────────────────────────────────────────"

type styles struct {
	label     lipgloss.Style
	value     lipgloss.Style
	muted     lipgloss.Style
	success   lipgloss.Style
	errored   lipgloss.Style
	bracket   lipgloss.Style
	streamOn  string
	streamOff string
}

// newStyles builds the style set. With color disabled every style renders
// plain text, so output stays assertable in tests and clean in pipes.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			label:   plain,
			value:   plain,
			muted:   plain,
			success: plain,
			errored: plain,
			bracket: plain,
		}
	}
	return styles{
		label:     lipgloss.NewStyle().Foreground(primary).Bold(true),
		value:     lipgloss.NewStyle().Foreground(secondary),
		muted:     lipgloss.NewStyle().Foreground(muted),
		success:   lipgloss.NewStyle().Foreground(success),
		errored:   lipgloss.NewStyle().Foreground(errorCol),
		bracket:   lipgloss.NewStyle().Foreground(muted),
		streamOn:  streamColorStart,
		streamOff: streamColorReset,
	}
}
