package ui

import (
	"github.com/charmbracelet/lipgloss"

	"pagecells/internal/cell"
)

// modeBadge renders the current mode for the status bar.
func modeBadge(m cell.Mode) string {
	color := ColorAccent
	switch m {
	case cell.ModePreview:
		color = ColorMuted
	case cell.ModeLayout, cell.ModeResize:
		color = ColorWarning
	case cell.ModeInsert:
		color = ColorHighlight
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(m.String())
}

