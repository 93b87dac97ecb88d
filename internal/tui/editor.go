package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/fakeyudi/storydemon/internal/demon"
)

// editor wraps the textarea and exposes it to the scheduler as a
// demon.FocusTarget. Cursor positions are rune offsets into the whole value.
type editor struct {
	ta   textarea.Model
	top  int // screen row of the first textarea line
	cmds []tea.Cmd
}

func newEditor() *editor {
	ta := textarea.New()
	ta.Placeholder = "Start writing... if you dare."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	e := &editor{ta: ta}
	e.Focus()
	return e
}

var _ demon.FocusTarget = (*editor)(nil)

func (e *editor) Value() string { return e.ta.Value() }

func (e *editor) SetValue(s string) {
	e.ta.SetValue(s)
}

func (e *editor) SetSize(width, height, top int) {
	e.ta.SetWidth(width)
	e.ta.SetHeight(height)
	e.top = top
}

func (e *editor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.ta, cmd = e.ta.Update(msg)
	return cmd
}

func (e *editor) View() string { return e.ta.View() }

func (e *editor) Focused() bool { return e.ta.Focused() }

func (e *editor) Blur() { e.ta.Blur() }

// Focus gives the textarea keyboard focus. The cursor blink command is kept
// until drain.
func (e *editor) Focus() {
	if cmd := e.ta.Focus(); cmd != nil {
		e.cmds = append(e.cmds, cmd)
	}
}

// Cursor returns the cursor as a rune offset into Value.
func (e *editor) Cursor() int {
	lines := strings.Split(e.ta.Value(), "\n")
	row := min(e.ta.Line(), len(lines)-1)
	pos := 0
	for _, l := range lines[:row] {
		pos += utf8.RuneCountInString(l) + 1
	}
	li := e.ta.LineInfo()
	return pos + li.StartColumn + li.ColumnOffset
}

// SetCursor moves the cursor to rune offset pos, clamped to the value.
func (e *editor) SetCursor(pos int) {
	lines := strings.Split(e.ta.Value(), "\n")
	row, col := 0, 0
	for i, l := range lines {
		n := utf8.RuneCountInString(l)
		row, col = i, min(max(pos, 0), n)
		if pos <= n {
			break
		}
		pos -= n + 1
	}

	// The textarea only moves between rows one visual line at a time.
	limit := utf8.RuneCountInString(e.ta.Value()) + len(lines) + 1
	for i := 0; i < limit && (e.ta.Line() > 0 || e.ta.LineInfo().RowOffset > 0); i++ {
		e.ta.CursorUp()
	}
	for i := 0; i < limit && e.ta.Line() < row; i++ {
		e.ta.CursorDown()
	}
	e.ta.SetCursor(col)
}

// Bounds is the screen rectangle of the line being typed on.
func (e *editor) Bounds() (demon.Rect, bool) {
	width := e.ta.Width()
	if width <= 0 {
		return demon.Rect{}, false
	}
	row := e.top + e.cursorRow()
	return demon.Rect{
		Left:   0,
		Top:    float64(row),
		Right:  float64(width),
		Bottom: float64(row + 1),
	}, true
}

// cursorRow estimates the cursor's visual row inside the textarea viewport.
// The textarea scrolls to keep the cursor visible, so rows past the bottom
// pin to the last visible row.
func (e *editor) cursorRow() int {
	width := max(e.ta.Width(), 1)
	lines := strings.Split(e.ta.Value(), "\n")
	row := min(e.ta.Line(), len(lines)-1)
	visual := 0
	for _, l := range lines[:row] {
		visual += max(1, (ansi.StringWidth(l)+width-1)/width)
	}
	visual += e.ta.LineInfo().RowOffset
	return min(visual, max(e.ta.Height()-1, 0))
}

func (e *editor) drain() []tea.Cmd {
	cmds := e.cmds
	e.cmds = nil
	return cmds
}
