package demon

import (
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/fakeyudi/storydemon/internal/log"
)

// Game is the slice of session state the scheduler reads and writes.
type Game interface {
	Text() string
	WordCount() int
	CurrentDemon() *Position
	SetCurrentDemon(p *Position)
	IncrementDemonCount()
}

// State is the scheduler's externally visible state.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Scheduler decides when a demon appears, where, and with what comment.
type Scheduler struct {
	cfg      Config
	game     Game
	timers   Timers
	focus    FocusTarget
	rng      *rand.Rand
	viewport Rect

	baseWordCount int
	pending       Timer
	restore       Timer
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithFocusTarget sets the input used for placement avoidance and cursor
// restoration after a squash.
func WithFocusTarget(f FocusTarget) Option {
	return func(s *Scheduler) { s.focus = f }
}

// WithRand replaces the random source, mainly for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = r }
}

// NewScheduler returns an idle scheduler with no timer armed. Call Start to
// arm the first timer.
func NewScheduler(game Game, timers Timers, cfg Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:    cfg,
		game:   game,
		timers: timers,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports Active while a demon is on screen.
func (s *Scheduler) State() State {
	if s.game.CurrentDemon() != nil {
		return Active
	}
	return Idle
}

// Pending reports whether a spawn timer is armed.
func (s *Scheduler) Pending() bool { return s.pending != nil }

// BaseWordCount is the word count snapshot taken at the last squash.
func (s *Scheduler) BaseWordCount() int { return s.baseWordCount }

// SetViewport sets the area demons are placed in.
func (s *Scheduler) SetViewport(width, height float64) {
	s.viewport = Rect{Right: width, Bottom: height}
}

// Configure swaps the tunables. The new values apply from the next schedule.
func (s *Scheduler) Configure(cfg Config) { s.cfg = cfg }

// Start snapshots the current word count and arms the first timer.
func (s *Scheduler) Start() {
	s.baseWordCount = s.game.WordCount()
	s.schedule(false)
}

// Reschedule re-arms the spawn timer, keeping the accumulated reduction.
func (s *Scheduler) Reschedule() { s.schedule(false) }

// Restart re-arms the spawn timer with the base word count reset, as after a
// squash.
func (s *Scheduler) Restart() { s.schedule(true) }

// Stop cancels any pending spawn and cursor restoration.
func (s *Scheduler) Stop() {
	s.cancel(&s.pending)
	s.cancel(&s.restore)
}

// Squash removes the active demon, counts it, and re-arms the timer with the
// pacing reset. After CursorRestoreDelay the focus target regains focus with
// its cursor at offset (clamped to the text length). It reports false and
// does nothing when no demon is active.
func (s *Scheduler) Squash(cursor int) bool {
	if s.State() != Active {
		return false
	}
	s.game.IncrementDemonCount()
	s.game.SetCurrentDemon(nil)
	s.schedule(true)
	log.Debug("demon squashed, next spawn rescheduled from %d words", s.baseWordCount)

	if s.focus == nil || cursor < 0 {
		return true
	}
	s.cancel(&s.restore)
	var t Timer
	t = s.timers.AfterFunc(s.cfg.CursorRestoreDelay, func() {
		if s.restore == t {
			s.restore = nil
		}
		s.focus.Focus()
		s.focus.SetCursor(min(cursor, utf8.RuneCountInString(s.game.Text())))
	})
	s.restore = t
	return true
}

func (s *Scheduler) schedule(resetBase bool) {
	s.cancel(&s.pending)

	words := s.game.WordCount()
	if resetBase {
		s.baseWordCount = words
	}
	lo, hi := s.cfg.DelayBounds(words - s.baseWordCount)
	delay := lo
	if hi > lo {
		delay += time.Duration(s.rng.Int64N(int64(hi - lo)))
	}

	var t Timer
	t = s.timers.AfterFunc(delay, func() {
		if s.pending == t {
			s.pending = nil
		}
		s.spawn()
	})
	s.pending = t
}

func (s *Scheduler) spawn() {
	// A timer that fired just after a squash must not stack a second demon.
	if s.game.CurrentDemon() != nil {
		return
	}
	var avoid *Rect
	if s.focus != nil {
		if b, ok := s.focus.Bounds(); ok {
			zone := b.Expand(s.cfg.AvoidRadius)
			avoid = &zone
		}
	}
	x, y := Place(s.rng, s.viewport, s.cfg.Padding, avoid, s.cfg.PlacementAttempts)
	comments := s.cfg.comments()
	s.game.SetCurrentDemon(&Position{
		X:       x,
		Y:       y,
		Comment: comments[s.rng.IntN(len(comments))],
	})
	log.Debug("demon spawned at (%.0f, %.0f)", x, y)
}

func (s *Scheduler) cancel(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
