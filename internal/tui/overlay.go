package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlay draws box over base with its top-left corner at cell (x, y). Rows
// of box that fall outside base are dropped; short base lines are padded.
func overlay(base, box string, x, y int) string {
	if x < 0 {
		x = 0
	}
	lines := strings.Split(base, "\n")
	for i, b := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]
		if w := ansi.StringWidth(line); w < x {
			line += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(b), "")
		lines[row] = left + ansi.ResetStyle + b + ansi.ResetStyle + right
	}
	return strings.Join(lines, "\n")
}
