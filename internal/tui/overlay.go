package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites overlay on top of base with its top-left corner at
// column x, line y. Both are line grids; ANSI styling on either side of the
// overlay is preserved.
func overlayAt(base, overlay string, x, y, width int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		overlayLine := padRight(line, overlayWidth)
		right := ansi.TruncateLeft(target, x+overlayWidth, "")
		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// centerOverlay places overlay in the middle of a width x height canvas.
func centerOverlay(base, overlay string, width, height int) string {
	lines := splitLines(overlay)
	x := (width - maxLineWidth(lines)) / 2
	y := (height - len(lines)) / 2
	return overlayAt(base, overlay, max(x, 0), max(y, 0), width)
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces to a visual width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates or pads s to exactly width columns.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return padRight(ansi.Truncate(s, width, "…"), width)
}
