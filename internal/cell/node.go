// Package cell holds the page layout tree: cells, the rows nested inside
// them, and the Store that owns both.
//
// Nodes are plain values. The store replaces a node wholesale on every
// change, so a renderer can keep the snapshot it last rendered and compare
// it field by field with the current one.
package cell

import (
	"slices"

	"pagecells/internal/plugin"
)

// GridColumns is the number of columns a row is divided into.
const GridColumns = 12

// Layout binds a cell to its plugin and the plugin's private state.
type Layout struct {
	Plugin plugin.Plugin
	State  any
}

// Node is one cell.
type Node struct {
	ID     string
	Rows   []string
	Layout Layout

	Focused      bool
	ScrollToCell bool
	FocusSource  plugin.FocusSource

	// Size is the cell's share of its row in grid columns; 0 means an even
	// split with its siblings.
	Size int
	// Spacing, when set, overrides the cell spacing for this cell's rows.
	Spacing any
}

// IsLeaf reports whether the cell has no nested rows.
func (n Node) IsLeaf() bool {
	return len(n.Rows) == 0
}

// Row is an ordered horizontal run of cells.
type Row struct {
	ID    string
	Cells []string
}

// Path is the chain of cell ids from the root down to, but excluding, the
// cell being visited.
type Path []string

// Contains reports whether id is already on the path.
func (p Path) Contains(id string) bool {
	return slices.Contains(p, id)
}

// Append returns a new path with id appended. The receiver is not
// modified, so sibling subtrees never share a backing array.
func (p Path) Append(id string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, id)
}

// Depth is the number of ancestors on the path.
func (p Path) Depth() int {
	return len(p)
}
