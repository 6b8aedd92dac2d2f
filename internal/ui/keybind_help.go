package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccent)).
			Padding(0, 1).
			MarginTop(1)
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHighlight)).
			Bold(true)
)

// helpKeys implements help.KeyMap over the hints live in one editor state.
// The short view lists what may follow the pending sequence; the full view
// adds a column of the editor's own keys.
type helpKeys struct {
	next   []Hint
	direct []Hint
}

func newHelpKeys(h *KeyHandler, st EditorState) helpKeys {
	return helpKeys{
		next:   h.Keymap.Next(h.Seq(), st),
		direct: h.Keymap.Direct(st),
	}
}

func (k helpKeys) ShortHelp() []key.Binding {
	if len(k.next) == 0 {
		return nil
	}
	return append(hintBindings(k.next), key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

func (k helpKeys) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	if short := k.ShortHelp(); len(short) > 0 {
		cols = append(cols, short)
	}
	if len(k.direct) > 0 {
		cols = append(cols, hintBindings(k.direct))
	}
	return cols
}

func hintBindings(hints []Hint) []key.Binding {
	out := make([]key.Binding, 0, len(hints))
	for _, h := range hints {
		out = append(out, key.NewBinding(key.WithKeys(h.Key), key.WithHelp(h.Key, h.Desc)))
	}
	return out
}

// RenderKeybindHelp renders the help box shown while a leader sequence is
// pending. Right after SPC it also lists the editor keys live in st; inside
// a submenu it shows that submenu only.
func RenderKeybindHelp(h *KeyHandler, st EditorState) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	keys := newHelpKeys(h, st)

	hm := help.New()
	hm.Styles.ShortKey = helpKeyStyle
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted
	hm.Styles.FullKey = helpKeyStyle
	hm.Styles.FullDesc = Styles.Muted
	hm.Styles.FullSeparator = Styles.Muted

	var body string
	if len(h.Buffer) > 1 {
		body = hm.ShortHelpView(keys.ShortHelp())
	} else {
		body = hm.FullHelpView(keys.FullHelp())
	}
	if body == "" {
		return ""
	}
	return helpBoxStyle.Render(Styles.Muted.Render(h.Seq()) + " " + body)
}
