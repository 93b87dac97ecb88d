// Package demon schedules and places the demons that interrupt a writing
// session. The Scheduler is a two-state machine (Idle, Active) driven by an
// injected timer port, so it never owns a goroutine of its own.
package demon

import (
	"math"
	"time"
)

// Position is a demon currently on screen. It is never persisted.
type Position struct {
	X       float64
	Y       float64
	Comment string
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Expand grows r by radius on every side.
func (r Rect) Expand(radius float64) Rect {
	return Rect{
		Left:   r.Left - radius,
		Top:    r.Top - radius,
		Right:  r.Right + radius,
		Bottom: r.Bottom + radius,
	}
}

// Contains reports whether (x, y) lies strictly inside r.
func (r Rect) Contains(x, y float64) bool {
	return x > r.Left && x < r.Right && y > r.Top && y < r.Bottom
}

// Config holds the scheduler tunables.
type Config struct {
	MinDelay         time.Duration // lower spawn bound before any reduction
	MaxDelay         time.Duration // upper spawn bound before any reduction
	MinDelayFloor    time.Duration
	MaxDelayFloor    time.Duration
	ReductionPerWord time.Duration

	Padding           float64 // viewport inset on all sides
	AvoidRadius       float64 // growth of the focus target bounds
	PlacementAttempts int     // redraws allowed while inside the avoidance zone

	CursorRestoreDelay time.Duration

	// Comments overrides the built-in phrase list when non-empty.
	Comments []string
}

// DefaultConfig returns the stock pacing: 10-20s, shrinking by 50ms per word
// written since the last squash, never below 3-6s.
func DefaultConfig() Config {
	return Config{
		MinDelay:           10 * time.Second,
		MaxDelay:           20 * time.Second,
		MinDelayFloor:      3 * time.Second,
		MaxDelayFloor:      6 * time.Second,
		ReductionPerWord:   50 * time.Millisecond,
		Padding:            100,
		AvoidRadius:        100,
		PlacementAttempts:  20,
		CursorRestoreDelay: 50 * time.Millisecond,
	}
}

// DelayBounds returns the [min, max) window a spawn delay is drawn from after
// words have been written since the last squash. Negative word counts are
// treated as zero.
func (c Config) DelayBounds(words int) (time.Duration, time.Duration) {
	if words < 0 {
		words = 0
	}
	var reduction time.Duration
	switch {
	case c.ReductionPerWord <= 0:
	case int64(words) > math.MaxInt64/int64(c.ReductionPerWord):
		reduction = math.MaxInt64
	default:
		reduction = time.Duration(words) * c.ReductionPerWord
	}
	lo := max(c.MinDelayFloor, c.MinDelay-reduction)
	hi := max(c.MaxDelayFloor, c.MaxDelay-reduction)
	return lo, hi
}

func (c Config) comments() []string {
	if len(c.Comments) > 0 {
		return c.Comments
	}
	return Comments
}
