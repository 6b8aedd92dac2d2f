package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagecells/internal/plugin"
)

type stubPlugin struct{ id string }

func (p stubPlugin) ID() string { return p.id }
func (p stubPlugin) Name() string { return p.id }
func (p stubPlugin) Version() string { return "1" }
func (p stubPlugin) Render(plugin.Props, string) string { return p.id }

type fixedLang string

func (l fixedLang) Lang() string { return string(l) }

func TestDefaultWhenNoScope(t *testing.T) {
	var s *Scope
	opts := s.Options()
	require.NotNil(t, opts)
	assert.True(t, opts.AllowMoveInEditMode)
	assert.True(t, opts.AllowResizeInEditMode)
	assert.Empty(t, opts.CellPlugins)
	assert.Empty(t, opts.Languages)
	assert.False(t, opts.PluginsWillChange)
	assert.Same(t, Default(), opts)
	assert.Equal(t, Spacing{}, s.CellSpacing())
}

func TestNearestScopeWins(t *testing.T) {
	root := NewScope(&Options{AllowMoveInEditMode: false}, fixedLang("de"))
	child := root.WithCellSpacing(nil, 2)
	assert.False(t, child.Options().AllowMoveInEditMode)
	assert.Equal(t, Uniform(2), child.CellSpacing())
	assert.Equal(t, Spacing{}, root.CellSpacing())

	withLang := child.OptionsWithLang()
	assert.Equal(t, "de", withLang.Lang)
	assert.Same(t, child.Options(), withLang.Options)
}

func TestPluginLookup(t *testing.T) {
	s := NewScope(&Options{CellPlugins: []plugin.Plugin{stubPlugin{"text"}, stubPlugin{"image"}}}, nil)

	assert.Nil(t, s.Plugin(""))
	assert.Nil(t, s.Plugin("x"))
	require.NotNil(t, s.Plugin("image"))
	assert.Equal(t, "image", s.Plugin("image").ID())
	assert.Len(t, s.Plugins(), 2)
}

func TestPluginLookupEmptyIDOnEmptyScope(t *testing.T) {
	var s *Scope
	assert.Nil(t, s.Plugin(""))
	assert.Nil(t, s.Plugin("text"))
}

func TestNormalizeSpacing(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Spacing
	}{
		{"number", 8, Spacing{8, 8, 8, 8}},
		{"float", 2.0, Uniform(2)},
		{"int64 from toml", int64(3), Uniform(3)},
		{"partial struct", Spacing{Top: 1, Left: 2}, Spacing{Top: 1, Left: 2}},
		{"pointer", &Spacing{Bottom: 4}, Spacing{Bottom: 4}},
		{"partial map", map[string]any{"top": 1, "left": int64(2)}, Spacing{Top: 1, Left: 2}},
		{"nil", nil, Spacing{}},
		{"nil pointer", (*Spacing)(nil), Spacing{}},
		{"garbage", "wide", Spacing{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeSpacing(tc.in))
		})
	}
}

func TestWithCellSpacingNilIsPassThrough(t *testing.T) {
	root := NewScope(&Options{CellSpacing: 3}, nil)
	memo := &SpacingOverride{}
	child := root.WithCellSpacing(memo, nil)
	assert.Same(t, root, child)
	assert.Same(t, root.Options(), child.Options())
	assert.Equal(t, 0, memo.Computes)
}

func TestWithCellSpacingTypedNilIsPassThrough(t *testing.T) {
	root := NewScope(&Options{CellSpacing: 3}, nil)
	memo := &SpacingOverride{}
	for _, input := range []any{(*Spacing)(nil), map[string]any(nil), map[string]int(nil)} {
		child := root.WithCellSpacing(memo, input)
		assert.Same(t, root, child, "%T", input)
		assert.Equal(t, Uniform(3), child.CellSpacing())
	}
	assert.Equal(t, 0, memo.Computes)
}

func TestWithCellSpacingMergesOnlySpacing(t *testing.T) {
	parent := &Options{
		AllowMoveInEditMode:   false,
		AllowResizeInEditMode: true,
		CellPlugins:           []plugin.Plugin{stubPlugin{"text"}},
		Languages:             []Language{{Code: "en"}},
		CellSpacing:           1,
		PluginsWillChange:     true,
	}
	root := NewScope(parent, nil)
	child := root.WithCellSpacing(&SpacingOverride{}, 4)

	got := child.Options()
	assert.NotSame(t, parent, got)
	assert.Equal(t, Uniform(4), child.CellSpacing())
	assert.Equal(t, parent.AllowMoveInEditMode, got.AllowMoveInEditMode)
	assert.Equal(t, parent.AllowResizeInEditMode, got.AllowResizeInEditMode)
	assert.Equal(t, parent.CellPlugins, got.CellPlugins)
	assert.Equal(t, parent.Languages, got.Languages)
	assert.Equal(t, parent.PluginsWillChange, got.PluginsWillChange)
	assert.Equal(t, 1, parent.CellSpacing, "parent snapshot must not change")
}

func TestSpacingOverrideMemoizesByValue(t *testing.T) {
	parent := &Options{}
	root := NewScope(parent, nil)
	memo := &SpacingOverride{}

	first := root.WithCellSpacing(memo, map[string]any{"top": 1, "left": 2}).Options()
	second := root.WithCellSpacing(memo, map[string]any{"left": 2, "top": 1}).Options()
	assert.Same(t, first, second, "equal inputs must reuse the merged snapshot")
	assert.Equal(t, 1, memo.Computes)

	third := root.WithCellSpacing(memo, 5).Options()
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, memo.Computes)

	other := NewScope(&Options{}, nil)
	fourth := other.WithCellSpacing(memo, 5).Options()
	assert.NotSame(t, third, fourth, "a new parent snapshot must recompute")
	assert.Equal(t, 3, memo.Computes)
}
