package plugins

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"pagecells/internal/logging"
	"pagecells/internal/plugin"
)

// Markdown renders its state through glamour. While its cell holds focus in
// edit mode it shows the raw source instead, so the author sees what they
// are about to edit.
type Markdown struct {
	logger *slog.Logger

	mu      sync.Mutex
	raw     map[string]bool
	cache   map[renderKey]string
	renders int
}

type renderKey struct {
	source string
	width  int
}

var (
	_ plugin.Plugin       = (*Markdown)(nil)
	_ plugin.FocusHandler = (*Markdown)(nil)
	_ plugin.BlurHandler  = (*Markdown)(nil)
	_ plugin.TextEditor   = (*Markdown)(nil)
)

// NewMarkdown creates a markdown plugin. A nil logger discards render
// failures.
func NewMarkdown(logger *slog.Logger) *Markdown {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Markdown{
		logger: logger,
		raw:    make(map[string]bool),
		cache:  make(map[renderKey]string),
	}
}

func (m *Markdown) ID() string      { return "markdown" }
func (m *Markdown) Name() string    { return "Markdown" }
func (m *Markdown) Version() string { return "1.0.0" }
func (m *Markdown) Text() string    { return "Markdown" }

// HandleFocus switches the cell to source view.
func (m *Markdown) HandleFocus(props plugin.PassProps, _ plugin.FocusSource, _ *plugin.Element) {
	if props.ReadOnly {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[props.ID] = true
}

// HandleBlur switches the cell back to rendered view.
func (m *Markdown) HandleBlur(props plugin.PassProps) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.raw, props.ID)
}

// Editing reports whether the cell is currently shown as source.
func (m *Markdown) Editing(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw[id]
}

func (m *Markdown) Render(props plugin.Props, children string) string {
	source := stateString(props.State)
	if m.Editing(props.ID) && !props.ReadOnly {
		return joinChildren(fit(sourceView(source), props.Width), children)
	}
	return joinChildren(m.render(source, props.Width), children)
}

func (m *Markdown) EditText(state any) string {
	return stateString(state)
}

func (m *Markdown) ApplyText(text string) any {
	return text
}

func (m *Markdown) render(source string, width int) string {
	if strings.TrimSpace(source) == "" {
		return emptyStyle.Render("(empty)")
	}
	key := renderKey{source: source, width: width}
	m.mu.Lock()
	if out, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return out
	}
	m.mu.Unlock()

	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.logger.Warn("markdown: renderer unavailable", "err", err)
		return fit(source, width)
	}
	out, err := r.Render(source)
	if err != nil {
		m.logger.Warn("markdown: render failed", "err", err)
		return fit(source, width)
	}
	out = strings.Trim(out, "\n")

	m.mu.Lock()
	m.cache[key] = out
	m.renders++
	m.mu.Unlock()
	return out
}

// sourceView prefixes each line with its number.
func sourceView(source string) string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = lineNoStyle.Render(fmt.Sprintf("%2d ", i+1)) + l
	}
	return strings.Join(lines, "\n")
}
