package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pagecells/internal/cell"
	"pagecells/internal/options"
)

// leaderSeq is the leader in sequence notation. Bubble Tea reports the space
// key as " ".
const leaderSeq = "SPC"

// EditorState is what decides whether a key is live.
type EditorState struct {
	Mode    cell.Mode
	Options *options.Options
}

// Gate reports whether a binding is live in st. A nil Gate always is.
type Gate func(st EditorState) bool

func notPreview(st EditorState) bool { return st.Mode != cell.ModePreview }
func editing(st EditorState) bool    { return st.Mode == cell.ModeEdit }

// canResize allows resizing in resize mode, and in edit mode when the
// options allow it.
func canResize(st EditorState) bool {
	switch st.Mode {
	case cell.ModeResize:
		return true
	case cell.ModeEdit:
		return st.Options != nil && st.Options.AllowResizeInEditMode
	}
	return false
}

// canMove allows moving in layout mode, and in edit mode when the options
// allow it.
func canMove(st EditorState) bool {
	switch st.Mode {
	case cell.ModeLayout:
		return true
	case cell.ModeEdit:
		return st.Options != nil && st.Options.AllowMoveInEditMode
	}
	return false
}

func hasLanguages(st EditorState) bool {
	return st.Options != nil && len(st.Options.Languages) > 1
}

// Binding is a key sequence in spacemacs notation ("SPC m p", "tab").
// Bindings without Cmd are handled by the editor view and only listed in
// help.
type Binding struct {
	Seq  string
	Desc string
	Gate Gate
	Cmd  tea.Cmd
}

func (b Binding) live(st EditorState) bool {
	return b.Gate == nil || b.Gate(st)
}

func (b Binding) leader() bool {
	return strings.HasPrefix(b.Seq, leaderSeq+" ")
}

// findBinding returns the binding of seq in bs.
func findBinding(bs []Binding, seq string) (Binding, bool) {
	seq = normalizeSeq(seq)
	for _, b := range bs {
		if normalizeSeq(b.Seq) == seq {
			return b, true
		}
	}
	return Binding{}, false
}

// Keymap holds the editor's bindings in registration order.
type Keymap struct {
	bindings []Binding
	index    map[string]int
	groups   map[string]string
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{index: make(map[string]int), groups: make(map[string]string)}
}

// Bind registers b. Binding a sequence again replaces it in place.
func (k *Keymap) Bind(b Binding) {
	b.Seq = normalizeSeq(b.Seq)
	if i, ok := k.index[b.Seq]; ok {
		k.bindings[i] = b
		return
	}
	k.index[b.Seq] = len(k.bindings)
	k.bindings = append(k.bindings, b)
}

// Group labels the submenu opened by prefix, e.g. "SPC m" as "Mode".
func (k *Keymap) Group(prefix, label string) {
	k.groups[normalizeSeq(prefix)] = label
}

// Lookup returns the binding of seq and whether it is live in st.
func (k *Keymap) Lookup(seq string, st EditorState) (Binding, bool) {
	i, ok := k.index[normalizeSeq(seq)]
	if !ok {
		return Binding{}, false
	}
	b := k.bindings[i]
	return b, b.live(st)
}

// Continues reports whether a live binding extends seq.
func (k *Keymap) Continues(seq string, st EditorState) bool {
	prefix := normalizeSeq(seq) + " "
	for _, b := range k.bindings {
		if strings.HasPrefix(b.Seq, prefix) && b.live(st) {
			return true
		}
	}
	return false
}

// Hint is one entry of the help view.
type Hint struct {
	Key  string
	Desc string
}

// Next returns one hint per key that may follow prefix in st. A key that
// opens a submenu shows its group label.
func (k *Keymap) Next(prefix string, st EditorState) []Hint {
	prefix = normalizeSeq(prefix)
	seen := make(map[string]bool)
	var out []Hint
	for _, b := range k.bindings {
		if !strings.HasPrefix(b.Seq, prefix+" ") || !b.live(st) {
			continue
		}
		rest := strings.Fields(strings.TrimPrefix(b.Seq, prefix+" "))
		key := rest[0]
		if seen[key] {
			continue
		}
		seen[key] = true
		desc := b.Desc
		if len(rest) > 1 {
			desc = k.groups[prefix+" "+key]
			if desc == "" {
				desc = key + "…"
			}
		}
		out = append(out, Hint{Key: key, Desc: desc})
	}
	return out
}

// Direct returns hints for the live bindings that take no leader.
func (k *Keymap) Direct(st EditorState) []Hint {
	var out []Hint
	for _, b := range k.bindings {
		if !b.leader() && b.live(st) {
			out = append(out, Hint{Key: b.Seq, Desc: b.Desc})
		}
	}
	return out
}

// normalizeSeq converts tea key strings to sequence notation.
func normalizeSeq(seq string) string {
	if seq == " " {
		return leaderSeq
	}
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = leaderSeq
		}
	}
	return strings.Join(parts, " ")
}

// KeyHandler resolves leader sequences against a Keymap.
type KeyHandler struct {
	Keymap        *Keymap
	LeaderWaiting bool
	// Buffer is the sequence typed since the leader, leader included.
	Buffer []string
}

// NewKeyHandler creates a handler with SPC as leader.
func NewKeyHandler(k *Keymap) *KeyHandler {
	return &KeyHandler{Keymap: k}
}

// Seq returns the pending sequence, or "" outside leader mode.
func (h *KeyHandler) Seq() string {
	return strings.Join(h.Buffer, " ")
}

// Handle processes a key in st. When consumed is false the key belongs to
// the view below.
func (h *KeyHandler) Handle(msg tea.KeyMsg, st EditorState) (consumed bool, cmd tea.Cmd) {
	part := normalizeSeq(msg.String())

	if part == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	if !h.LeaderWaiting {
		if part == leaderSeq {
			h.LeaderWaiting = true
			h.Buffer = []string{leaderSeq}
			return true, nil
		}
		if b, live := h.Keymap.Lookup(part, st); live && b.Cmd != nil {
			return true, b.Cmd
		}
		return false, nil
	}

	h.Buffer = append(h.Buffer, part)
	seq := h.Seq()
	if b, live := h.Keymap.Lookup(seq, st); live && b.Cmd != nil {
		h.reset()
		return true, b.Cmd
	}
	if !h.Keymap.Continues(seq, st) {
		h.reset()
	}
	return true, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}
