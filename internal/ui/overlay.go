package ui

import tea "github.com/charmbracelet/bubbletea"

// OverlayStack holds modal views drawn above the editor. The topmost view
// receives input first.
type OverlayStack struct {
	Stack []View
}

// Push adds a view to the top of the stack.
func (s *OverlayStack) Push(v View) {
	s.Stack = append(s.Stack, v)
}

// Pop removes and returns the top view.
func (s *OverlayStack) Pop() (View, bool) {
	top, ok := s.Peek()
	if ok {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
	return top, ok
}

// Peek returns the top view without removing it.
func (s *OverlayStack) Peek() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// UpdateTop passes msg to the top view and keeps the view it returns. The
// caller runs the returned cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := len(s.Stack) - 1
	next, cmd := s.Stack[top].Update(msg)
	s.Stack[top] = next
	return cmd, true
}
