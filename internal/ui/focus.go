package ui

import "slices"

// FocusManager tracks and rotates focus across cells in document order.
type FocusManager struct {
	Current  string   // ID of the focused cell, "" when none
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Sync replaces the order and the current focus without calling OnChange.
// The store is the source of truth; sync before rotating.
func (f *FocusManager) Sync(order []string, current string) {
	f.Order = order
	f.Current = current
}

// Next advances focus to the next cell in order, wrapping around.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous cell in order, wrapping around.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

// step moves by delta. Without a current focus Next lands on the first
// cell and Prev on the last.
func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	var next int
	switch {
	case idx < 0 && delta > 0:
		next = 0
	case idx < 0:
		next = len(f.Order) - 1
	default:
		next = (idx + delta + len(f.Order)) % len(f.Order)
	}
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given cell ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
