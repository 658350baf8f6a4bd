package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - borders, title
	SuccessColor = lipgloss.Color("#43BF6D") // Green - enabled flags
	MutedColor   = lipgloss.Color("#626262") // Gray - keys, disabled flags
	TextColor    = lipgloss.Color("#FFFFFF") // White - values
)

// Layout constants
const (
	MinTerminalWidth = 40 // Narrowest banner
	MaxContentWidth  = 80 // Widest banner
	KeyWidth         = 10 // Column width for row keys
)

var (
	// TitleStyle is for the product name
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			PaddingLeft(1)

	// SubtitleStyle is for the version line
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(1)

	// KeyStyle is for row keys (e.g., "Root")
	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(1).
			Width(KeyWidth + 1)

	// ValueStyle is for row values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// OnStyle is for enabled flags
	OnStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	// OffStyle is for disabled flags
	OffStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// GetTerminalWidth returns the stdout width clamped to the banner limits.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MaxContentWidth
	}
	return clampWidth(width)
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// BoxStyle returns the rounded border style around the banner
func BoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // Account for border characters
}
