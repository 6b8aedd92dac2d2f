package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagecells/internal/cell"
	"pagecells/internal/logging"
	"pagecells/internal/options"
	"pagecells/internal/plugin"
)

// statusHeight is the number of lines below the editor.
const statusHeight = 1

// AppModel is the root model: the editor, the overlays above it and the
// key handler in front of both.
type AppModel struct {
	Editor     *EditorView
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	// PagePath is where SPC s saves. Empty disables saving.
	PagePath string
	Logger   *slog.Logger

	status    string
	statusErr bool
	width     int
	height    int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Editor.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Editor.SetSize(msg.Width, msg.Height-statusHeight)
		return a, nil
	case SetModeMsg:
		a.dispatch(cell.SetMode{Mode: msg.Mode})
		a.setStatus(fmt.Sprintf("%s mode", msg.Mode), false)
		a.Editor.Refresh()
		return a, nil
	case NextLangMsg:
		return a.handleNextLang()
	case SaveMsg:
		if a.PagePath == "" {
			a.setStatus("no page file to save to", true)
			return a, nil
		}
		return a, savePageCmd(a.PagePath, a.Editor.Store)
	case SavedMsg:
		if msg.Err != nil {
			a.Logger.Error("ui: save failed", "path", msg.Path, "err", msg.Err)
			a.setStatus(msg.Err.Error(), true)
		} else {
			a.setStatus("saved "+msg.Path, false)
		}
		return a, nil
	case OpenTextEditMsg:
		return a.handleOpenTextEdit(msg)
	case ApplyTextMsg:
		a.Overlays.Pop()
		a.dispatch(cell.UpdateCellLayout{ID: msg.ID, State: msg.State})
		a.Editor.Refresh()
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// Topmost overlay receives input first
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		// Keybind system (leader key, SPC-prefixed commands)
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Editor.State()); consumed {
				return a, keyCmd
			}
		}
	case tea.MouseMsg:
		if a.Overlays.Len() > 0 {
			return a, nil
		}
	default:
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
	}

	v, cmd := a.Editor.Update(msg)
	if e, ok := v.(*EditorView); ok {
		a.Editor = e
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.Editor.View()
	if top, ok := a.Overlays.Peek(); ok {
		base = lipgloss.Place(a.width, max(a.height-statusHeight, 1), lipgloss.Center, lipgloss.Center, top.View())
	}
	base += "\n" + a.statusLine()
	if help := RenderKeybindHelp(a.KeyHandler, a.Editor.State()); help != "" {
		base += "\n" + help
	}
	return base
}

func (a *AppModel) statusLine() string {
	store := a.Editor.Store
	line := modeBadge(store.Mode())
	if lang := store.Lang(); lang != "" {
		line += " " + Styles.Muted.Render(lang)
	}
	if id, ok := store.Focused(); ok {
		line += " " + Styles.Status.Render(id)
	}
	if a.status != "" {
		style := Styles.Hint
		if a.statusErr {
			style = Styles.Error
		}
		line += "  " + style.Render(a.status)
	}
	return line
}

func (a *AppModel) setStatus(s string, isErr bool) {
	a.status, a.statusErr = s, isErr
}

// handleNextLang cycles through the configured languages.
func (a *appModelAdapter) handleNextLang() (tea.Model, tea.Cmd) {
	langs := a.Editor.Scope.Options().Languages
	if len(langs) == 0 {
		a.setStatus("no languages configured", true)
		return a, nil
	}
	next := nextLanguage(langs, a.Editor.Store.Lang())
	a.dispatch(cell.SetLang{Lang: next.Code})
	a.setStatus(next.Label, false)
	a.Editor.Refresh()
	return a, nil
}

func nextLanguage(langs []options.Language, current string) options.Language {
	for i, l := range langs {
		if l.Code == current {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}

// handleOpenTextEdit pushes the text-edit modal for a cell whose plugin
// edits as text.
func (a *appModelAdapter) handleOpenTextEdit(msg OpenTextEditMsg) (tea.Model, tea.Cmd) {
	n, ok := a.Editor.Store.Cell(msg.ID)
	if !ok {
		return a, nil
	}
	ed, ok := n.Layout.Plugin.(plugin.TextEditor)
	if !ok {
		return a, nil
	}
	modal := NewTextEditModal(n.ID, ed, n.Layout.State, a.width*2/3)
	a.Overlays.Push(modal)
	return a, modal.Init()
}

func (a *AppModel) dispatch(act cell.Action) {
	if err := a.Editor.Store.Dispatch(act); err != nil {
		a.Logger.Error("ui: dispatch failed", "action", act.ActionType(), "err", err)
	}
}

// NewAppModel creates the root application model around an editor and
// registers the leader bindings.
func NewAppModel(editor *EditorView, pagePath string, logger *slog.Logger) *AppModel {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AppModel{
		Editor:     editor,
		KeyHandler: NewKeyHandler(NewEditorKeymap()),
		PagePath:   pagePath,
		Logger:     logger,
	}
}

// NewEditorKeymap returns the leader bindings of the app followed by the
// keys the editor view handles itself.
func NewEditorKeymap() *Keymap {
	k := NewKeymap()
	k.Bind(Binding{Seq: "SPC q", Desc: "Quit", Cmd: tea.Quit})
	k.Bind(Binding{Seq: "SPC s", Desc: "Save", Cmd: func() tea.Msg { return SaveMsg{} }})
	k.Bind(Binding{Seq: "SPC L", Desc: "Next language", Gate: hasLanguages, Cmd: func() tea.Msg { return NextLangMsg{} }})
	k.Group("SPC m", "Mode")
	for _, m := range []struct {
		key  string
		mode cell.Mode
	}{{"e", cell.ModeEdit}, {"p", cell.ModePreview}, {"l", cell.ModeLayout}, {"r", cell.ModeResize}} {
		m := m
		k.Bind(Binding{Seq: "SPC m " + m.key, Desc: m.mode.String(), Cmd: func() tea.Msg { return SetModeMsg{Mode: m.mode} }})
	}
	for _, b := range editorKeys {
		k.Bind(b)
	}
	return k
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
