package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"pagecells/internal/plugin"
)

// TextEditModal edits a cell's state as text. Ctrl+S applies; Esc cancels.
type TextEditModal struct {
	CellID string
	editor plugin.TextEditor
	input  textarea.Model
}

// Ensure TextEditModal implements View.
var _ View = (*TextEditModal)(nil)

// NewTextEditModal creates a modal seeded with the text form of state.
func NewTextEditModal(id string, editor plugin.TextEditor, state any, width int) *TextEditModal {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(max(width, 20))
	ta.SetHeight(8)
	ta.SetValue(editor.EditText(state))
	ta.Focus()
	return &TextEditModal{CellID: id, editor: editor, input: ta}
}

// Value returns the text currently in the editor.
func (m *TextEditModal) Value() string {
	return m.input.Value()
}

// Init implements View.
func (m *TextEditModal) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements View.
func (m *TextEditModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "ctrl+s":
			id, state := m.CellID, m.editor.ApplyText(m.input.Value())
			return m, func() tea.Msg { return ApplyTextMsg{ID: id, State: state} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *TextEditModal) View() string {
	content := Styles.Title.Render(fmt.Sprintf("Edit %s", m.CellID)) + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Ctrl+S: apply  Esc: cancel")
	return Styles.Box.Render(content)
}
