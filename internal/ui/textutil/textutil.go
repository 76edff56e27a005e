// Package textutil fits file names and paths into terminal columns.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width is the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// StyledWidth is Width for strings that carry ANSI styling.
func StyledWidth(s string) int {
	return lipgloss.Width(s)
}

// Truncate cuts s to at most max columns, ending in an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Width(s) <= max {
		return s
	}
	if max == 1 {
		return Ellipsis
	}
	return runewidth.Truncate(s, max, Ellipsis)
}

// TruncateLeft keeps the end of s, which is the useful part of a path.
func TruncateLeft(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Width(s) <= max {
		return s
	}
	runes := []rune(s)
	w := Width(Ellipsis)
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > max {
			break
		}
		w += rw
		i--
	}
	return Ellipsis + string(runes[i:])
}

// Fit truncates or right-pads s to exactly width columns.
func Fit(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// FitLeft truncates or left-pads s to exactly width columns.
func FitLeft(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillLeft(s, width)
}
