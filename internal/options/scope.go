package options

import (
	"pagecells/internal/plugin"
)

// Scope is one link of the configuration chain threaded through a render
// walk. A nil *Scope is valid and resolves to Default.
type Scope struct {
	parent *Scope
	opts   *Options
	lang   LangSource
}

// NewScope establishes a root scope. opts may be nil, in which case the
// scope is transparent and lookups resolve to Default.
func NewScope(opts *Options, lang LangSource) *Scope {
	return &Scope{opts: opts, lang: lang}
}

// Options returns the nearest enclosing snapshot.
func (s *Scope) Options() *Options {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.opts != nil {
			return cur.opts
		}
	}
	return Default()
}

// Lang returns the selected language, or "" without a language source.
func (s *Scope) Lang() string {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.lang != nil {
			return cur.lang.Lang()
		}
	}
	return ""
}

// OptionsWithLang returns the nearest snapshot together with the selected
// language.
func (s *Scope) OptionsWithLang() WithLang {
	return WithLang{Options: s.Options(), Lang: s.Lang()}
}

// Plugins returns every configured cell plugin.
func (s *Scope) Plugins() []plugin.Plugin {
	return s.Options().CellPlugins
}

// Plugin returns the configured plugin with the given id, or nil. An empty
// id returns nil without scanning.
func (s *Scope) Plugin(id string) plugin.Plugin {
	if id == "" {
		return nil
	}
	for _, p := range s.Plugins() {
		if p != nil && p.ID() == id {
			return p
		}
	}
	return nil
}

// CellSpacing returns the effective spacing for this subtree.
func (s *Scope) CellSpacing() Spacing {
	return NormalizeSpacing(s.Options().CellSpacing)
}

// WithCellSpacing returns the scope a subtree should see when it overrides
// cell spacing with input. A nil input, including a nil *Spacing or nil
// map, returns s itself, so descendants
// observe the very same snapshot. Otherwise the merged snapshot comes from
// memo, which recomputes it only when the parent snapshot or the serialized
// input changed since its last call. memo may be nil, at the cost of a new
// snapshot per call.
func (s *Scope) WithCellSpacing(memo *SpacingOverride, input any) *Scope {
	if isNilSpacing(input) {
		return s
	}
	if memo == nil {
		memo = &SpacingOverride{}
	}
	return &Scope{parent: s, opts: memo.resolve(s.Options(), input)}
}

func isNilSpacing(input any) bool {
	switch v := input.(type) {
	case nil:
		return true
	case *Spacing:
		return v == nil
	case map[string]any:
		return v == nil
	case map[string]int:
		return v == nil
	}
	return false
}

// SpacingOverride memoizes the merged snapshot of one overriding subtree.
// Keep one per overriding cell across render passes.
type SpacingOverride struct {
	parent *Options
	key    string
	value  *Options
	// Computes counts merges, mostly for tests and metrics.
	Computes int
}

func (m *SpacingOverride) resolve(parent *Options, input any) *Options {
	key := spacingKey(input)
	if m.value != nil && m.parent == parent && m.key == key {
		return m.value
	}
	m.parent = parent
	m.key = key
	m.value = parent.withCellSpacing(NormalizeSpacing(input))
	m.Computes++
	return m.value
}
