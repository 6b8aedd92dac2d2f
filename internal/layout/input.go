package layout

import (
	"pagecells/internal/cell"
	"pagecells/internal/plugin"
)

// PointerDown delivers a pointer press at (x, y) of the frame. The press
// bubbles from the innermost container outward; every container runs its
// own handler, but only the one that is the target's closest container may
// request focus. It returns the actions that were dispatched. Preview mode
// installs no handlers.
func (r *Renderer) PointerDown(f Frame, x, y int) []cell.Action {
	if r.store.IsPreviewMode() {
		return nil
	}
	target, ok := f.Closest(x, y)
	if !ok {
		return nil
	}
	var out []cell.Action
	for _, container := range f.Containers(x, y) {
		if a, ok := r.handleMouseDown(container, target); ok {
			r.dispatch(a)
			out = append(out, a)
		}
	}
	return out
}

// handleMouseDown is the handler of one container. target is the closest
// container of the event's origin; a press inside a nested cell reaches
// ancestors with a target that is not theirs.
func (r *Renderer) handleMouseDown(container, target Region) (cell.Action, bool) {
	if target.ID != container.ID {
		return nil, false
	}
	n, ok := r.store.Cell(container.ID)
	if !ok || n.Focused {
		return nil, false
	}
	return cell.FocusCell{ID: n.ID, Source: plugin.SourceMouseDown}, true
}

// Scroller is a vertically scrollable viewport.
type Scroller interface {
	Offset() int
	Visible() int
	ScrollTo(offset int)
}

// ScrollIntoViewWithOffset scrolls s so that reg starts offset lines below
// the top edge, clamped at zero. The offset is capped at a third of the
// visible height so reg always lands on screen. It does nothing when reg is
// already fully visible and reports whether it scrolled.
func ScrollIntoViewWithOffset(s Scroller, reg Region, offset int) bool {
	top, visible := s.Offset(), s.Visible()
	if reg.Y >= top && reg.Y+reg.H <= top+visible {
		return false
	}
	offset = max(min(offset, visible/3), 0)
	s.ScrollTo(max(reg.Y-offset, 0))
	return true
}

// HonorScroll scrolls to every cell whose scroll request turned on in f and
// returns their ids. The caller acknowledges them with cell.ClearScroll.
func (r *Renderer) HonorScroll(f Frame, s Scroller) []string {
	var done []string
	for _, id := range f.ScrollRequests {
		reg, ok := f.Region(id)
		if !ok {
			continue
		}
		ScrollIntoViewWithOffset(s, reg, r.ScrollOffset)
		done = append(done, id)
	}
	return done
}
