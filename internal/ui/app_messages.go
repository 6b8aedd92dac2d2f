package ui

import "pagecells/internal/cell"

// SetModeMsg switches the document mode (SPC m e|p|l|r).
type SetModeMsg struct {
	Mode cell.Mode
}

// NextLangMsg selects the next configured language (SPC L).
type NextLangMsg struct{}

// SaveMsg writes the page back to its file (SPC s).
type SaveMsg struct{}

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Path string
	Err  error
}

// OpenTextEditMsg opens the text-edit modal for a cell (Enter).
type OpenTextEditMsg struct {
	ID string
}

// ApplyTextMsg is sent when the user confirms the text-edit modal.
type ApplyTextMsg struct {
	ID    string
	State any
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}
