package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bare struct{}

func (bare) ID() string { return "bare" }
func (bare) Name() string { return "" }
func (bare) Version() string { return "" }
func (bare) Render(Props, string) string { return "" }

type hooked struct {
	bare
	focused []FocusSource
	blurred int
}

func (h *hooked) HandleFocus(_ PassProps, source FocusSource, _ *Element) {
	h.focused = append(h.focused, source)
}
func (h *hooked) HandleBlur(PassProps) { h.blurred++ }
func (h *hooked) Text() string { return "Hooked" }

func TestHooksDefaultToNoop(t *testing.T) {
	p := bare{}
	assert.NotPanics(t, func() {
		assert.False(t, Focus(p, PassProps{}, SourceMouseDown, nil))
		assert.False(t, Blur(p, PassProps{}))
	})
	assert.Equal(t, "", Text(p))
}

func TestHooksDispatchWhenImplemented(t *testing.T) {
	h := &hooked{}
	assert.True(t, Focus(h, PassProps{ID: "a"}, SourceKeyboard, nil))
	assert.True(t, Blur(h, PassProps{ID: "a"}))
	assert.Equal(t, []FocusSource{SourceKeyboard}, h.focused)
	assert.Equal(t, 1, h.blurred)
	assert.Equal(t, "Hooked", Text(h))
}

func TestNameAndVersionFallback(t *testing.T) {
	assert.Equal(t, Unknown, Name(bare{}))
	assert.Equal(t, Unknown, Version(bare{}))
	assert.Equal(t, Unknown, Name(nil))
}
