package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSizedEditor(text string) *editor {
	e := newEditor()
	e.SetSize(80, 10, 1)
	e.SetValue(text)
	e.drain()
	return e
}

func TestEditorCursorAtEndAfterSetValue(t *testing.T) {
	e := newSizedEditor("hello\nworld")
	assert.Equal(t, 11, e.Cursor())
}

func TestEditorSetCursor(t *testing.T) {
	e := newSizedEditor("hello\nworld")

	for _, pos := range []int{0, 3, 5, 6, 8, 11} {
		e.SetCursor(pos)
		assert.Equal(t, pos, e.Cursor(), "offset %d", pos)
	}
}

func TestEditorSetCursorClamps(t *testing.T) {
	e := newSizedEditor("héllo")

	e.SetCursor(99)
	assert.Equal(t, 5, e.Cursor())

	e.SetCursor(-4)
	assert.Equal(t, 0, e.Cursor())
}

func TestEditorBoundsFollowCursorLine(t *testing.T) {
	e := newSizedEditor("one\ntwo\nthree")

	e.SetCursor(0)
	b, ok := e.Bounds()
	require.True(t, ok)
	assert.Equal(t, 1.0, b.Top)
	assert.Equal(t, 2.0, b.Bottom)
	assert.Equal(t, 80.0, b.Right)

	e.SetCursor(9)
	b, _ = e.Bounds()
	assert.Equal(t, 3.0, b.Top)
}

func TestEditorFocusQueuesBlink(t *testing.T) {
	e := newSizedEditor("")
	e.Blur()
	assert.False(t, e.Focused())

	e.Focus()
	assert.True(t, e.Focused())
	assert.NotEmpty(t, e.drain())
	assert.Empty(t, e.drain())
}
