package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pagecells/internal/plugin"
)

// Region is the screen rectangle of one cell container.
type Region struct {
	ID    string
	Depth int
	X     int
	Y     int
	W     int
	H     int
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Element converts the region for plugin hooks.
func (r Region) Element() *plugin.Element {
	return &plugin.Element{ID: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Frame is the result of one render pass.
type Frame struct {
	Content string
	Width   int
	Height  int
	// Regions lists every rendered cell in document order; ancestors come
	// before their descendants.
	Regions []Region
	// ScrollRequests holds the cells whose scroll request turned on in this
	// pass.
	ScrollRequests []string
}

// Region returns the region of a cell.
func (f Frame) Region(id string) (Region, bool) {
	for _, r := range f.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Containers returns every region containing the point, innermost first.
// This is the path a pointer event bubbles along.
func (f Frame) Containers(x, y int) []Region {
	var out []Region
	for i := len(f.Regions) - 1; i >= 0; i-- {
		if f.Regions[i].Contains(x, y) {
			out = append(out, f.Regions[i])
		}
	}
	// deepest first
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Depth > out[j-1].Depth; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Closest returns the innermost container of the point.
func (f Frame) Closest(x, y int) (Region, bool) {
	c := f.Containers(x, y)
	if len(c) == 0 {
		return Region{}, false
	}
	return c[0], true
}

// block is a rendered fragment with regions relative to its own origin.
type block struct {
	content string
	width   int
	height  int
	regions []Region
}

func newBlock(content string, regions []Region) block {
	return block{
		content: content,
		width:   lipgloss.Width(content),
		height:  lipgloss.Height(content),
		regions: regions,
	}
}

func (b block) empty() bool {
	return b.content == "" && len(b.regions) == 0
}

// shifted returns b's regions moved by (dx, dy).
func (b block) shifted(dx, dy int) []Region {
	out := make([]Region, len(b.regions))
	for i, r := range b.regions {
		r.X += dx
		r.Y += dy
		out[i] = r
	}
	return out
}

// joinHorizontal places blocks side by side, top aligned.
func joinHorizontal(blocks []block) block {
	if len(blocks) == 0 {
		return block{}
	}
	parts := make([]string, 0, len(blocks))
	var regions []Region
	x := 0
	for _, b := range blocks {
		parts = append(parts, b.content)
		regions = append(regions, b.shifted(x, 0)...)
		x += b.width
	}
	return newBlock(lipgloss.JoinHorizontal(lipgloss.Top, parts...), regions)
}

// joinVertical stacks blocks, left aligned.
func joinVertical(blocks []block) block {
	parts := make([]string, 0, len(blocks))
	var regions []Region
	y := 0
	for _, b := range blocks {
		if b.empty() {
			continue
		}
		parts = append(parts, b.content)
		regions = append(regions, b.shifted(0, y)...)
		y += b.height
	}
	if len(parts) == 0 {
		return block{}
	}
	return newBlock(strings.Join(parts, "\n"), regions)
}
