// Package layout renders the cell tree.
//
// Rendering is a walk over rows and cells that threads two values down the
// tree: the configuration Scope visible at that point and the Path of
// ancestor cell ids. Each cell is rendered by its plugin, wrapped in a
// container, and recorded as a Region so pointer events can be resolved to
// the innermost cell.
//
// The Renderer also owns the focus lifecycle. It remembers the snapshot of
// every cell it rendered in the previous pass and, before rendering a cell
// again, compares the two: a focus flag turning on calls the plugin's focus
// hook, turning off calls its blur hook, and a scroll request turning on is
// reported in the Frame. A cell seen for the first time fires no hooks but
// still reports a pending scroll request. Each edge is therefore observed exactly once no
// matter how often the tree is re-rendered.
package layout

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"pagecells/internal/cell"
	"pagecells/internal/logging"
	"pagecells/internal/options"
	"pagecells/internal/plugin"
	"pagecells/internal/ui/textutil"
)

// DefaultScrollOffset is the distance kept above a cell scrolled into view.
// ScrollIntoViewWithOffset caps it at a third of the viewport.
const DefaultScrollOffset = 100

// EventKind names a lifecycle event.
type EventKind string

const (
	EventFocus  EventKind = "focus"
	EventBlur   EventKind = "blur"
	EventScroll EventKind = "scroll"
)

// Event reports a lifecycle transition observed during a render pass.
type Event struct {
	Kind   EventKind
	CellID string
	Plugin string
	Source plugin.FocusSource
	// Handled is false when the plugin has no hook for the event.
	Handled bool
}

// Renderer renders a Store. It is not safe for concurrent use; drive it
// from the UI loop.
type Renderer struct {
	store  *cell.Store
	logger *slog.Logger
	tracer oteltrace.Tracer

	// Editable is handed to plugins as-is.
	Editable bool
	// ScrollOffset is the distance kept above a cell scrolled into view.
	ScrollOffset int
	// OnEvent, if set, observes every lifecycle event.
	OnEvent func(Event)

	prev      map[string]cell.Node
	elements  map[string]*plugin.Element
	overrides map[string]*options.SpacingOverride
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithTracer sets the tracer. The default is the global provider's.
func WithTracer(t oteltrace.Tracer) Option {
	return func(r *Renderer) { r.tracer = t }
}

// NewRenderer creates a renderer for store.
func NewRenderer(store *cell.Store, opts ...Option) *Renderer {
	r := &Renderer{
		store:        store,
		logger:       logging.NewNop(),
		tracer:       otel.Tracer("pagecells/layout"),
		Editable:     true,
		ScrollOffset: DefaultScrollOffset,
		prev:         make(map[string]cell.Node),
		elements:     make(map[string]*plugin.Element),
		overrides:    make(map[string]*options.SpacingOverride),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// pass is the state of one render pass.
type pass struct {
	ctx     context.Context
	edit    bool
	preview bool
	visited map[string]bool
	scroll  []string
}

// Render walks the whole document at the given width.
func (r *Renderer) Render(ctx context.Context, scope *options.Scope, width int) Frame {
	ctx, span := r.tracer.Start(ctx, "layout.render")
	defer span.End()

	p := &pass{
		ctx:     ctx,
		edit:    r.store.IsEditMode(),
		preview: r.store.IsPreviewMode(),
		visited: make(map[string]bool),
	}
	b := r.renderRows(p, scope, r.store.RootRows(), nil, width)

	// Forget cells that are gone so a re-added id starts fresh.
	for id := range r.prev {
		if !p.visited[id] {
			delete(r.prev, id)
			delete(r.elements, id)
			delete(r.overrides, id)
		}
	}
	for _, reg := range b.regions {
		r.elements[reg.ID] = reg.Element()
	}

	span.SetAttributes(
		attribute.Int("pagecells.cells", len(b.regions)),
		attribute.Int("pagecells.width", width),
	)
	return Frame{
		Content:        b.content,
		Width:          b.width,
		Height:         b.height,
		Regions:        b.regions,
		ScrollRequests: p.scroll,
	}
}

func (r *Renderer) renderRows(p *pass, scope *options.Scope, rows []string, ancestors cell.Path, width int) block {
	blocks := make([]block, 0, len(rows))
	for _, id := range rows {
		blocks = append(blocks, r.renderRow(p, scope, id, ancestors, width))
	}
	return joinVertical(blocks)
}

// renderRow splits width between the row's cells by their grid size.
func (r *Renderer) renderRow(p *pass, scope *options.Scope, rowID string, ancestors cell.Path, width int) block {
	row, ok := r.store.Row(rowID)
	if !ok {
		r.logger.Debug("layout: unknown row", "row", rowID)
		return block{}
	}
	var nodes []cell.Node
	for _, id := range row.Cells {
		if ancestors.Contains(id) {
			r.logger.Warn("layout: cell nested in itself", "cell", id, "path", ancestors)
			continue
		}
		n, ok := r.store.Cell(id)
		if !ok {
			r.logger.Debug("layout: unknown cell", "cell", id, "row", rowID)
			continue
		}
		nodes = append(nodes, n)
	}
	widths := splitWidth(nodes, width)
	blocks := make([]block, 0, len(nodes))
	for i, n := range nodes {
		blocks = append(blocks, r.renderCell(p, scope, n, ancestors, widths[i]))
	}
	return joinHorizontal(blocks)
}

// splitWidth distributes width proportionally to cell sizes. Unsized cells
// share the grid evenly; the last cell takes the rounding remainder.
func splitWidth(nodes []cell.Node, width int) []int {
	out := make([]int, len(nodes))
	if len(nodes) == 0 {
		return out
	}
	sizes := make([]int, len(nodes))
	total := 0
	for i, n := range nodes {
		s := n.Size
		if s <= 0 {
			s = max(cell.GridColumns/len(nodes), 1)
		}
		sizes[i] = s
		total += s
	}
	used := 0
	for i := range nodes {
		if i == len(nodes)-1 {
			out[i] = max(width-used, 0)
			break
		}
		out[i] = width * sizes[i] / total
		used += out[i]
	}
	return out
}

func (r *Renderer) renderCell(p *pass, scope *options.Scope, n cell.Node, ancestors cell.Path, width int) block {
	p.visited[n.ID] = true
	bundle := r.passProps(n, p.edit)
	// A cell without a snapshot counts as not scrolling, so a request made
	// before its first pass is still reported. Hooks need a snapshot.
	prev, seen := r.prev[n.ID]
	if !prev.ScrollToCell && n.ScrollToCell {
		p.scroll = append(p.scroll, n.ID)
		r.emit(Event{Kind: EventScroll, CellID: n.ID, Plugin: bundle.Name, Handled: true})
	}
	if seen {
		r.transition(p, prev, n, bundle)
	}
	r.prev[n.ID] = n

	spacing := scope.CellSpacing()
	style := containerStyle(n.Focused && !p.preview, p.preview).
		Margin(spacing.Top, spacing.Right, spacing.Bottom, spacing.Left)
	inner := max(width-style.GetHorizontalFrameSize(), 1)

	childScope := scope.WithCellSpacing(r.override(n.ID), n.Spacing)
	children := r.renderRows(p, childScope, n.Rows, ancestors.Append(n.ID), inner)

	props := plugin.Props{
		PassProps: bundle,
		Text:      plugin.Text(n.Layout.Plugin),
		Focus: func(source plugin.FocusSource) {
			r.dispatch(cell.FocusCell{ID: n.ID, Source: source})
		},
		Blur: func() {
			r.dispatch(cell.BlurCell{ID: n.ID})
		},
		Width: inner,
	}
	var content string
	if n.Layout.Plugin == nil {
		content = missingStyle.Render(textutil.Truncate("missing plugin", inner))
		if children.content != "" {
			content += "\n" + children.content
		}
	} else {
		content = n.Layout.Plugin.Render(props, children.content)
	}

	rendered := style.Width(inner + style.GetHorizontalPadding()).Render(content)
	out := newBlock(rendered, nil)
	self := Region{ID: n.ID, Depth: ancestors.Depth(), X: spacing.Left, Y: spacing.Top,
		W: out.width - spacing.Left - spacing.Right, H: out.height - spacing.Top - spacing.Bottom}
	out.regions = append(out.regions, self)

	if len(children.regions) > 0 {
		if cx, cy, ok := textutil.Locate(content, children.content); ok {
			dx := spacing.Left + style.GetBorderLeftSize() + style.GetPaddingLeft() + cx
			dy := spacing.Top + style.GetBorderTopSize() + style.GetPaddingTop() + cy
			out.regions = append(out.regions, children.shifted(dx, dy)...)
		} else {
			r.logger.Debug("layout: plugin did not embed children", "cell", n.ID)
		}
	}
	return out
}

// passProps builds the bundle shared by Render and the lifecycle hooks.
func (r *Renderer) passProps(n cell.Node, edit bool) plugin.PassProps {
	id := n.ID
	return plugin.PassProps{
		ID:       id,
		State:    n.Layout.State,
		Editable: r.Editable,
		Focused:  edit && n.Focused,
		ReadOnly: !edit,
		Name:     plugin.Name(n.Layout.Plugin),
		Version:  plugin.Version(n.Layout.Plugin),
		OnChange: func(state any) {
			r.dispatch(cell.UpdateCellLayout{ID: id, State: state})
		},
		Remove: func() {
			r.dispatch(cell.RemoveCell{ID: id})
		},
	}
}

// transition fires the hooks for the focus edges between two snapshots of
// a cell.
func (r *Renderer) transition(p *pass, was, is cell.Node, bundle plugin.PassProps) {
	switch {
	case !was.Focused && is.Focused:
		_, span := r.tracer.Start(p.ctx, "cell.focus", oteltrace.WithAttributes(
			attribute.String("pagecells.cell.id", is.ID),
			attribute.String("pagecells.plugin.name", bundle.Name),
			attribute.String("pagecells.focus.source", string(is.FocusSource)),
		))
		handled := is.Layout.Plugin != nil &&
			plugin.Focus(is.Layout.Plugin, bundle, is.FocusSource, r.elements[is.ID])
		span.SetAttributes(attribute.Bool("pagecells.hook.handled", handled))
		span.End()
		r.emit(Event{Kind: EventFocus, CellID: is.ID, Plugin: bundle.Name, Source: is.FocusSource, Handled: handled})
	case was.Focused && !is.Focused:
		_, span := r.tracer.Start(p.ctx, "cell.blur", oteltrace.WithAttributes(
			attribute.String("pagecells.cell.id", is.ID),
			attribute.String("pagecells.plugin.name", bundle.Name),
		))
		handled := is.Layout.Plugin != nil && plugin.Blur(is.Layout.Plugin, bundle)
		span.SetAttributes(attribute.Bool("pagecells.hook.handled", handled))
		span.End()
		r.emit(Event{Kind: EventBlur, CellID: is.ID, Plugin: bundle.Name, Handled: handled})
	}
}

func (r *Renderer) emit(e Event) {
	r.logger.Debug("layout: lifecycle", "event", e.Kind, "cell", e.CellID, "handled", e.Handled)
	if r.OnEvent != nil {
		r.OnEvent(e)
	}
}

func (r *Renderer) dispatch(a cell.Action) {
	if err := r.store.Dispatch(a); err != nil {
		r.logger.Error("layout: dispatch failed", "action", a.ActionType(), "err", err)
	}
}

// override returns the memo of a cell's spacing override, creating it on
// first use. Memos live as long as the cell keeps being rendered.
func (r *Renderer) override(id string) *options.SpacingOverride {
	m, ok := r.overrides[id]
	if !ok {
		m = &options.SpacingOverride{}
		r.overrides[id] = m
	}
	return m
}

var (
	focusedBorder = lipgloss.Color("205")
	idleBorder    = lipgloss.Color("241")
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func containerStyle(focused, preview bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case preview:
		return s.Border(lipgloss.HiddenBorder())
	case focused:
		return s.Border(lipgloss.ThickBorder()).BorderForeground(focusedBorder)
	default:
		return s.Border(lipgloss.RoundedBorder()).BorderForeground(idleBorder)
	}
}
