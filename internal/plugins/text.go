package plugins

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pagecells/internal/plugin"
	"pagecells/internal/ui/textutil"
)

// Text renders its state as plain, word-wrapped text.
type Text struct{}

var (
	_ plugin.Plugin     = Text{}
	_ plugin.TextEditor = Text{}
	_ plugin.Texter     = Text{}
)

func (Text) ID() string      { return "text" }
func (Text) Name() string    { return "Text" }
func (Text) Version() string { return "1.0.0" }
func (Text) Text() string    { return "Plain text" }

func (Text) Render(props plugin.Props, children string) string {
	body := stateString(props.State)
	width := props.Width
	if props.Focused && width > 1 {
		// The caret takes the first column.
		width--
	}
	if body == "" && !props.ReadOnly {
		body = emptyStyle.Render("(empty)")
	} else if width > 0 {
		body = lipgloss.NewStyle().Width(width).Render(body)
	}
	if props.Focused {
		body = lipgloss.JoinHorizontal(lipgloss.Top, caretStyle.Render("▍"), body)
	}
	return joinChildren(body, children)
}

func (Text) EditText(state any) string {
	return stateString(state)
}

func (Text) ApplyText(text string) any {
	return strings.TrimRight(text, "\n")
}

// stateString renders arbitrary plugin state as text.
func stateString(state any) string {
	switch s := state.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", s)
	}
}

// joinChildren puts the children block below the plugin's own content,
// unmodified.
func joinChildren(body, children string) string {
	if children == "" {
		return body
	}
	if body == "" {
		return children
	}
	return body + "\n" + children
}

// fit truncates every line of s to width, when width is known.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return textutil.TruncateLines(s, width)
}
