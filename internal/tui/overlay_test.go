package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestOverlayPlacesBox(t *testing.T) {
	base := "..........\n..........\n.........."
	got := overlay(base, "ab\ncd", 3, 1)

	lines := strings.Split(ansi.Strip(got), "\n")
	assert.Equal(t, []string{"..........", "...ab.....", "...cd....."}, lines)
}

func TestOverlayClipsRowsOutsideBase(t *testing.T) {
	base := "....\n...."
	got := overlay(base, "x\ny\nz", 0, 1)

	lines := strings.Split(ansi.Strip(got), "\n")
	assert.Equal(t, []string{"....", "x..."}, lines)
}

func TestOverlayPadsShortLines(t *testing.T) {
	got := overlay("ab", "X", 4, 0)
	assert.Equal(t, "ab  X", ansi.Strip(got))
}

// Feature: storydemon, Property 12: drawing a box inside the base never
// changes the width of any base line.
func TestOverlayPreservesWidths(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(5, 60).Draw(t, "width")
		height := rapid.IntRange(1, 20).Draw(t, "height")
		boxW := rapid.IntRange(1, width).Draw(t, "boxW")
		boxH := rapid.IntRange(1, height).Draw(t, "boxH")
		x := rapid.IntRange(0, width-boxW).Draw(t, "x")
		y := rapid.IntRange(0, height-boxH).Draw(t, "y")

		row := strings.Repeat(".", width)
		base := strings.TrimSuffix(strings.Repeat(row+"\n", height), "\n")
		box := strings.TrimSuffix(strings.Repeat(strings.Repeat("#", boxW)+"\n", boxH), "\n")

		lines := strings.Split(overlay(base, box, x, y), "\n")
		if len(lines) != height {
			t.Fatalf("got %d lines, want %d", len(lines), height)
		}
		for i, l := range lines {
			if w := ansi.StringWidth(l); w != width {
				t.Fatalf("line %d has width %d, want %d", i, w, width)
			}
		}
	})
}
