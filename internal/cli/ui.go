package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tickermind/tickermind/internal/format"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	userStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	assistantStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5E7EB"))

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	gainStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	lossStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444"))

	tableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#9CA3AF")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#374151"))

	sourceStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8B5CF6"))
)

// signalStyle renders a signal with its category color and label.
func signalStyle(signal string) string {
	attrs := format.AttrsFor(format.Signal(signal))
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(attrs.Color))
	return style.Render(attrs.Emoji + " " + attrs.Label)
}

// changeStyle colors a percent change green or red.
func changeStyle(pct float64) string {
	s := format.Percent(pct)
	if pct < 0 {
		return lossStyle.Render(s)
	}
	return gainStyle.Render(s)
}
