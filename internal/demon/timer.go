package demon

import (
	"sync"
	"time"
)

// Timer is a pending callback armed through Timers.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// Timers arms callbacks after a delay. Implementations decide where the
// callback runs; the Scheduler assumes every callback is delivered on the
// same goroutine that drives the rest of the game.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// FocusTarget is the text input the demon interrupts.
type FocusTarget interface {
	Cursor() int
	SetCursor(pos int)
	Focus()
	// Bounds reports the on-screen rectangle of the input, if known.
	Bounds() (Rect, bool)
}

// LockedTimers arms callbacks with time.AfterFunc and runs each one while
// holding Mu. Callers that also hold Mu around their own Scheduler calls get
// the single-goroutine delivery the Scheduler expects.
type LockedTimers struct {
	Mu sync.Locker
}

func (t LockedTimers) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		t.Mu.Lock()
		defer t.Mu.Unlock()
		fn()
	})
}
