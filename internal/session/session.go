package session

import (
	"math"
	"strings"
	"time"
)

const (
	// MaxHistory caps the history log; the oldest entry is evicted on overflow.
	MaxHistory = 50

	// Namespace is the fixed key the persisted blob lives under.
	Namespace = "story-demon-storage"
)

// WritingSession is one continuous writing attempt.
type WritingSession struct {
	ID           string
	Text         string
	WordCount    int
	DemonCount   int
	CreatedAt    time.Time
	LastModified time.Time
}

// Snapshot is the persisted subset of the game state. The current demon and
// the panel flags are never part of it.
type Snapshot struct {
	Text             string
	WordCount        int
	DemonCount       int
	History          []WritingSession
	CurrentSessionID string // "" when no session is active
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Summary is the end-of-session score card.
type Summary struct {
	WordCount  int
	DemonCount int
	Multiplier float64
	TotalScore int
}

// Score computes the summary for a session: every squashed demon adds 10% to
// the word score.
func Score(words, demons int) Summary {
	m := 1 + 0.1*float64(demons)
	return Summary{
		WordCount:  words,
		DemonCount: demons,
		Multiplier: m,
		TotalScore: int(math.Round(float64(words) * m)),
	}
}
