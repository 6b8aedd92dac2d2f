// Package textutil provides unicode- and ANSI-aware text helpers for
// terminal rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns a plain string
// occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens a plain string to at most maxWidth columns, ending it
// with an ellipsis when something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// TruncateLines applies Truncate to every line of s.
func TruncateLines(s string, maxWidth int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = Truncate(l, maxWidth)
	}
	return strings.Join(lines, "\n")
}

// Locate finds block inside s and returns the column and line of its first
// character. Both strings may carry ANSI sequences; columns are measured in
// visible cells. block must appear verbatim, which holds when a renderer
// embedded it without restyling.
func Locate(s, block string) (x, y int, ok bool) {
	if block == "" {
		return 0, 0, false
	}
	idx := strings.Index(s, block)
	if idx < 0 {
		return 0, 0, false
	}
	before := s[:idx]
	y = strings.Count(before, "\n")
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		before = before[nl+1:]
	}
	return lipgloss.Width(before), y, true
}
