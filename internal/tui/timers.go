package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/storydemon/internal/demon"
)

// timerMsg is delivered when a timer armed through teaTimers expires.
type timerMsg struct{ id int }

// teaTimers implements demon.Timers on top of tea.Tick, so every callback
// runs inside Update. Armed ticks are queued and handed to the runtime by
// drain at the end of each Update.
type teaTimers struct {
	next  int
	live  map[int]func()
	queue []tea.Cmd
}

func newTeaTimers() *teaTimers {
	return &teaTimers{live: make(map[int]func())}
}

type teaTimer struct {
	owner *teaTimers
	id    int
}

func (t *teaTimer) Stop() bool {
	_, ok := t.owner.live[t.id]
	delete(t.owner.live, t.id)
	return ok
}

func (t *teaTimers) AfterFunc(d time.Duration, fn func()) demon.Timer {
	t.next++
	id := t.next
	t.live[id] = fn
	t.queue = append(t.queue, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return &teaTimer{owner: t, id: id}
}

// fire runs the callback for id unless it was stopped.
func (t *teaTimers) fire(id int) {
	fn, ok := t.live[id]
	if !ok {
		return
	}
	delete(t.live, id)
	fn()
}

func (t *teaTimers) drain() tea.Cmd {
	if len(t.queue) == 0 {
		return nil
	}
	cmds := t.queue
	t.queue = nil
	return tea.Batch(cmds...)
}
