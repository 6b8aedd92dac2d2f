package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"pagecells/internal/cell"
	"pagecells/internal/layout"
	"pagecells/internal/logging"
	"pagecells/internal/options"
	"pagecells/internal/plugin"
)

// EditorView renders the page into a scrollable viewport and turns pointer
// presses and editing keys into store actions. Every update re-renders the
// page, so lifecycle hooks run in the same update that changed focus.
type EditorView struct {
	Store    *cell.Store
	Renderer *layout.Renderer
	Scope    *options.Scope
	Focus    *FocusManager
	// OnRender, if set, observes the duration of every render pass.
	OnRender func(time.Duration)

	ctx      context.Context
	logger   *slog.Logger
	viewport viewport.Model
	frame    layout.Frame
	width    int
	nextID   int
}

// Ensure EditorView implements View.
var _ View = (*EditorView)(nil)

// NewEditorView creates an editor over store. A nil logger discards.
func NewEditorView(ctx context.Context, store *cell.Store, renderer *layout.Renderer, scope *options.Scope, logger *slog.Logger) *EditorView {
	if logger == nil {
		logger = logging.NewNop()
	}
	vp := viewport.New(0, 0)
	// Space, d, u, f and b belong to the editor and the leader key.
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	vp.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))

	v := &EditorView{
		Store:    store,
		Renderer: renderer,
		Scope:    scope,
		ctx:      ctx,
		logger:   logger,
		viewport: vp,
	}
	v.Focus = &FocusManager{OnChange: func(_, to string) {
		v.dispatch(cell.FocusCell{ID: to, Source: plugin.SourceKeyboard, Scroll: true})
	}}
	return v
}

// Init implements View.
func (v *EditorView) Init() tea.Cmd {
	return nil
}

// SetSize resizes the viewport and re-renders at the new width.
func (v *EditorView) SetSize(width, height int) {
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = max(height, 1)
	v.Refresh()
}

// Frame returns the most recent render pass.
func (v *EditorView) Frame() layout.Frame {
	return v.frame
}

// State returns the mode and options that decide which keys are live.
func (v *EditorView) State() EditorState {
	return EditorState{Mode: v.Store.Mode(), Options: v.Scope.Options()}
}

// Update implements View.
func (v *EditorView) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			v.Renderer.PointerDown(v.frame, msg.X, msg.Y+v.viewport.YOffset)
		} else {
			v.viewport, cmd = v.viewport.Update(msg)
		}
	case tea.KeyMsg:
		var handled bool
		cmd, handled = v.handleKey(msg)
		if !handled {
			v.viewport, cmd = v.viewport.Update(msg)
		}
	}
	v.Refresh()
	return v, cmd
}

// View implements View.
func (v *EditorView) View() string {
	if v.width == 0 {
		return ""
	}
	if len(v.frame.Regions) == 0 {
		return Styles.Empty.Render("Empty page. Press o to add a cell.")
	}
	return v.viewport.View()
}

// Refresh runs a render pass and honors the scroll requests it reports.
func (v *EditorView) Refresh() {
	if v.width <= 0 {
		return
	}
	start := time.Now()
	v.frame = v.Renderer.Render(v.ctx, v.Scope, v.width)
	if v.OnRender != nil {
		v.OnRender(time.Since(start))
	}
	v.viewport.SetContent(v.frame.Content)
	for _, id := range v.Renderer.HonorScroll(v.frame, viewportScroller{&v.viewport}) {
		v.dispatch(cell.ClearScroll{ID: id})
	}
}

// editorKeys are the keys EditorView handles itself. A key whose gate is
// closed passes through to the viewport.
var editorKeys = []Binding{
	{Seq: "tab", Desc: "next cell", Gate: notPreview},
	{Seq: "shift+tab", Desc: "previous cell", Gate: notPreview},
	{Seq: "esc", Desc: "blur", Gate: notPreview},
	{Seq: "enter", Desc: "edit text", Gate: editing},
	{Seq: "o", Desc: "insert cell", Gate: editing},
	{Seq: "d", Desc: "delete cell", Gate: editing},
	{Seq: "+", Desc: "grow", Gate: canResize},
	{Seq: "-", Desc: "shrink", Gate: canResize},
	{Seq: "<", Desc: "move left", Gate: canMove},
	{Seq: ">", Desc: "move right", Gate: canMove},
}

func (v *EditorView) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := msg.String()
	if b, ok := findBinding(editorKeys, s); !ok || !b.live(v.State()) {
		return nil, false
	}
	focused, hasFocus := v.Store.Focused()
	switch s {
	case "tab", "shift+tab":
		v.Focus.Sync(v.Store.CellIDs(), focused)
		if s == "tab" {
			v.Focus.Next()
		} else {
			v.Focus.Prev()
		}
		return nil, true
	case "o":
		v.insertAfter(focused)
		return nil, true
	}
	if !hasFocus {
		return nil, false
	}
	switch s {
	case "esc":
		v.dispatch(cell.BlurAllCells{})
	case "enter":
		if !v.Renderer.Editable {
			return nil, false
		}
		n, _ := v.Store.Cell(focused)
		if _, ok := n.Layout.Plugin.(plugin.TextEditor); ok {
			return func() tea.Msg { return OpenTextEditMsg{ID: focused} }, true
		}
	case "d":
		v.dispatch(cell.RemoveCell{ID: focused})
	case "+", "-":
		delta := 1
		if s == "-" {
			delta = -1
		}
		v.dispatch(cell.ResizeCell{ID: focused, Size: v.size(focused) + delta})
	case "<", ">":
		delta := 1
		if s == "<" {
			delta = -1
		}
		v.dispatch(cell.MoveCell{ID: focused, Delta: delta})
	}
	return nil, true
}

// insertAfter adds a text cell after the given one, or as a new root row
// when after is "", and focuses it.
func (v *EditorView) insertAfter(after string) {
	p := v.Scope.Plugin("text")
	if p == nil {
		if all := v.Scope.Plugins(); len(all) > 0 {
			p = all[0]
		}
	}
	if p == nil {
		v.logger.Warn("editor: no plugin to insert")
		return
	}
	id := v.newCellID()
	if err := v.Store.Dispatch(cell.InsertCellAfter{After: after, Node: cell.Node{ID: id, Layout: cell.Layout{Plugin: p}}}); err != nil {
		v.logger.Error("editor: insert failed", "after", after, "err", err)
		return
	}
	v.dispatch(cell.FocusCell{ID: id, Source: plugin.SourceKeyboard, Scroll: true})
}

func (v *EditorView) newCellID() string {
	for {
		v.nextID++
		id := fmt.Sprintf("cell-%d", v.nextID)
		if _, taken := v.Store.Cell(id); !taken {
			return id
		}
	}
}

// size returns a cell's effective grid width: its own size, or its share
// of an even split.
func (v *EditorView) size(id string) int {
	n, _ := v.Store.Cell(id)
	if n.Size > 0 {
		return n.Size
	}
	rowID, ok := v.Store.ParentRow(id)
	if !ok {
		return cell.GridColumns
	}
	r, _ := v.Store.Row(rowID)
	return max(cell.GridColumns/max(len(r.Cells), 1), 1)
}

func (v *EditorView) dispatch(a cell.Action) {
	if err := v.Store.Dispatch(a); err != nil {
		v.logger.Error("editor: dispatch failed", "action", a.ActionType(), "err", err)
	}
}

// viewportScroller adapts a viewport to layout.Scroller.
type viewportScroller struct {
	vp *viewport.Model
}

func (s viewportScroller) Offset() int    { return s.vp.YOffset }
func (s viewportScroller) Visible() int   { return s.vp.Height }
func (s viewportScroller) ScrollTo(y int) { s.vp.SetYOffset(y) }
