package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ghostink-ai/ghostink/internal/status"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	ghostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36"))

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

func statusStyle(level status.Level) lipgloss.Style {
	switch level {
	case status.LevelWarn:
		return statusWarnStyle
	case status.LevelError:
		return statusErrorStyle
	}
	return statusInfoStyle
}
