// Package plugin defines the contract between the layout renderer and the
// host-supplied content renderers hosted by cells.
//
// A plugin only has to render. Focus and blur reactions, as well as a
// default text label, are optional capabilities discovered at call time
// through the FocusHandler, BlurHandler and Texter interfaces. The package
// level helpers (Focus, Blur, Text) resolve them and fall back to no-ops.
package plugin

// FocusSource tags why a cell gained focus.
type FocusSource string

const (
	SourceNone         FocusSource = ""
	SourceMouseDown    FocusSource = "onMouseDown"
	SourceKeyboard     FocusSource = "keyboard"
	SourceProgrammatic FocusSource = "programmatic"
)

// Unknown is used for the name and version of plugins that report none.
const Unknown = "N/A"

// PassProps is the bundle handed to focus lifecycle hooks.
type PassProps struct {
	ID       string
	State    any
	Editable bool
	Focused  bool
	ReadOnly bool
	Name     string
	Version  string
	OnChange func(state any)
	Remove   func()
}

// Props is what Render receives: the hook bundle plus focus controls and
// the plugin's text label.
type Props struct {
	PassProps
	Text  string
	Focus func(source FocusSource)
	Blur  func()
	// Width is the number of columns available to the plugin's content.
	Width int
}

// Element locates the rendered container of a cell on screen.
// Hooks may receive nil when the cell has not been rendered yet.
type Element struct {
	ID string
	X  int
	Y  int
	W  int
	H  int
}

// Plugin renders the content of a cell. children holds the already
// rendered child rows; plugins embed it unmodified, usually after their own
// content, so the renderer can locate it for hit testing.
type Plugin interface {
	ID() string
	Name() string
	Version() string
	Render(props Props, children string) string
}

// FocusHandler is implemented by plugins that run side effects when their
// cell gains focus.
type FocusHandler interface {
	HandleFocus(props PassProps, source FocusSource, el *Element)
}

// BlurHandler is implemented by plugins that react to losing focus.
type BlurHandler interface {
	HandleBlur(props PassProps)
}

// Texter exposes a human readable label, e.g. for insert menus.
type Texter interface {
	Text() string
}

// TextEditor is implemented by plugins whose state can be edited as plain
// text.
type TextEditor interface {
	EditText(state any) string
	ApplyText(text string) any
}

// Focus calls p's focus hook if it has one.
func Focus(p Plugin, props PassProps, source FocusSource, el *Element) bool {
	h, ok := p.(FocusHandler)
	if !ok {
		return false
	}
	h.HandleFocus(props, source, el)
	return true
}

// Blur calls p's blur hook if it has one.
func Blur(p Plugin, props PassProps) bool {
	h, ok := p.(BlurHandler)
	if !ok {
		return false
	}
	h.HandleBlur(props)
	return true
}

// Text returns p's label, or "" when it does not provide one.
func Text(p Plugin) string {
	if t, ok := p.(Texter); ok {
		return t.Text()
	}
	return ""
}

// Name returns p.Name(), or Unknown when empty or p is nil.
func Name(p Plugin) string {
	if p == nil || p.Name() == "" {
		return Unknown
	}
	return p.Name()
}

// Version returns p.Version(), or Unknown when empty or p is nil.
func Version(p Plugin) string {
	if p == nil || p.Version() == "" {
		return Unknown
	}
	return p.Version()
}
