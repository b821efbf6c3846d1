// Package components provides the low-level render primitives shared by the
// dashboard widgets: width-aware text measurement and padding, horizontal
// gauges, and sparklines. Everything here returns plain strings; cursor
// positioning belongs to pkg/render.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible character width of s in terminal cells.
// ANSI escape sequences are ignored; wide characters count as width 2.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible characters, preserving
// any ANSI escape sequences that appear before the cut point.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "")
}

// TruncateWithTail truncates s to at most maxWidth visible characters,
// appending tail (e.g. "…") if truncation occurs. The tail counts toward
// maxWidth.
func TruncateWithTail(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with trailing spaces so that its visible width equals
// width. If s is already wider than width, it is returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// PadLeft pads s with leading spaces so that its visible width equals
// width. If s is already wider than width, it is returned unchanged.
func PadLeft(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return strings.Repeat(" ", width-vis) + s
}

// FitLine pads or truncates s to exactly width visible characters. The
// diff renderer compares whole lines, so fixed-width lines keep updates
// from leaving stale tails behind.
func FitLine(s string, width int) string {
	if VisibleLen(s) > width {
		return Truncate(s, width)
	}
	return PadRight(s, width)
}
