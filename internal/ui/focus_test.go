package ui

import "testing"

func TestFocusManager_Rotation(t *testing.T) {
	var changes [][2]string
	f := &FocusManager{OnChange: func(from, to string) {
		changes = append(changes, [2]string{from, to})
	}}
	f.Sync([]string{"a", "b", "c"}, "")

	if got := f.Next(); got != "a" {
		t.Errorf("expected first cell without focus, got %q", got)
	}
	f.Next()
	f.Next()
	if got := f.Next(); got != "a" {
		t.Errorf("expected wrap to a, got %q", got)
	}
	if got := f.Prev(); got != "c" {
		t.Errorf("expected wrap back to c, got %q", got)
	}
	if len(changes) != 5 || changes[0] != [2]string{"", "a"} {
		t.Errorf("unexpected changes: %v", changes)
	}
}

func TestFocusManager_PrevWithoutFocusPicksLast(t *testing.T) {
	f := &FocusManager{}
	f.Sync([]string{"a", "b"}, "gone")
	if got := f.Prev(); got != "b" {
		t.Errorf("expected b, got %q", got)
	}
}

func TestFocusManager_EmptyAndSetFocus(t *testing.T) {
	calls := 0
	f := &FocusManager{OnChange: func(string, string) { calls++ }}
	if f.Next() != "" {
		t.Error("expected empty focus for empty order")
	}
	f.Sync([]string{"a"}, "a")
	f.Next()
	if calls != 0 {
		t.Errorf("expected no change when rotating onto the same cell, got %d", calls)
	}
	if f.SetFocus("zzz") {
		t.Error("expected unknown id to be rejected")
	}
	if !f.SetFocus("a") || calls != 0 {
		t.Errorf("expected SetFocus on current to be silent, calls=%d", calls)
	}
}
