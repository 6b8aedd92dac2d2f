// Package plugins provides the built-in cell plugins and a catalog to pick
// them by id.
package plugins

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"pagecells/internal/plugin"
)

var (
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	lineNoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// Catalog is an ordered set of plugins addressable by id.
type Catalog struct {
	order []plugin.Plugin
	byID  map[string]plugin.Plugin
}

// NewCatalog returns a catalog holding every built-in plugin.
func NewCatalog(logger *slog.Logger) *Catalog {
	c := &Catalog{byID: make(map[string]plugin.Plugin)}
	c.Add(Text{})
	c.Add(NewMarkdown(logger))
	c.Add(Container{})
	c.Add(Spacer{})
	return c
}

// Add registers p, replacing any plugin with the same id in place.
func (c *Catalog) Add(p plugin.Plugin) {
	if _, ok := c.byID[p.ID()]; ok {
		for i, existing := range c.order {
			if existing.ID() == p.ID() {
				c.order[i] = p
			}
		}
	} else {
		c.order = append(c.order, p)
	}
	c.byID[p.ID()] = p
}

// All returns every plugin in registration order.
func (c *Catalog) All() []plugin.Plugin {
	out := make([]plugin.Plugin, len(c.order))
	copy(out, c.order)
	return out
}

// Select returns the plugins with the given ids, in that order. An empty
// ids list selects everything.
func (c *Catalog) Select(ids []string) ([]plugin.Plugin, error) {
	if len(ids) == 0 {
		return c.All(), nil
	}
	out := make([]plugin.Plugin, 0, len(ids))
	for _, id := range ids {
		p, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown plugin %q", id)
		}
		out = append(out, p)
	}
	return out, nil
}
