// Package options resolves editor configuration for any point of the cell
// tree.
//
// A Scope is one link of a chain: the root scope carries the editor-wide
// Options, and a cell may shadow it for its subtree with WithCellSpacing.
// Lookups walk to the nearest scope that carries a snapshot; an empty chain
// resolves to Default.
package options

import (
	"pagecells/internal/plugin"
)

// Language is one supported content language.
type Language struct {
	Code  string `toml:"code" yaml:"code" json:"code"`
	Label string `toml:"label" yaml:"label" json:"label"`
}

// Options is one configuration snapshot. Snapshots are treated as
// immutable once handed to a Scope.
type Options struct {
	AllowMoveInEditMode   bool
	AllowResizeInEditMode bool
	CellPlugins           []plugin.Plugin
	Languages             []Language
	// CellSpacing is a number, a Spacing, a *Spacing, a map with edge keys,
	// or nil. Read it through Scope.CellSpacing.
	CellSpacing       any
	PluginsWillChange bool
}

var defaults = &Options{
	AllowMoveInEditMode:   true,
	AllowResizeInEditMode: true,
	CellPlugins:           []plugin.Plugin{},
	Languages:             []Language{},
	PluginsWillChange:     false,
}

// Default returns the snapshot visible when no scope established one.
// The same pointer is returned on every call.
func Default() *Options {
	return defaults
}

// withCellSpacing returns a shallow copy of o with CellSpacing replaced.
func (o *Options) withCellSpacing(s Spacing) *Options {
	cp := *o
	cp.CellSpacing = s
	return &cp
}

// LangSource supplies the currently selected language. The cell store
// implements it.
type LangSource interface {
	Lang() string
}

// WithLang is a snapshot plus the selected language.
type WithLang struct {
	*Options
	Lang string
}
