package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pagecells/internal/cell"
	"pagecells/internal/document"
)

// savePageCmd returns a command that writes the store to path.
func savePageCmd(path string, store *cell.Store) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{Path: path, Err: document.Save(path, store)}
	}
}
