package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/storydemon/internal/demon"
	"github.com/fakeyudi/storydemon/internal/log"
)

var (
	// ErrNotFound is returned by Find when no history entry matches.
	ErrNotFound = errors.New("session not found")

	// ErrAmbiguousID is returned by Find when a prefix matches several entries.
	ErrAmbiguousID = errors.New("ambiguous session id")
)

// Store is the single source of truth for the current writing state and the
// history log. It is not safe for concurrent use: every call is expected to
// come from the goroutine that drives the game.
//
// Every mutation of a persisted field is applied in memory first and then
// written through to the Persister. Write failures never fail the operation.
type Store struct {
	p      Persister
	now    func() time.Time
	newID  func() string
	notify func(error)

	text             string
	wordCount        int
	demonCount       int
	history          []WritingSession
	currentSessionID string

	currentDemon *demon.Position
	showSummary  bool
	showHistory  bool
	copySuccess  bool

	err error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid-based session id generator.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// WithNotifier registers fn to be called with the wrapped error each time
// persistence starts failing.
func WithNotifier(fn func(error)) StoreOption {
	return func(s *Store) { s.notify = fn }
}

// NewStore returns an empty Store writing through to p. Call Restore to load
// previously persisted state.
func NewStore(p Persister, opts ...StoreOption) *Store {
	s := &Store{
		p:     p,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore replaces the in-memory state with the persisted snapshot. Missing
// state leaves the defaults in place. Unreadable state also leaves the
// defaults in place and is reported as ErrPersistenceUnavailable.
func (s *Store) Restore(ctx context.Context) error {
	snap, err := s.p.Load(ctx)
	if errors.Is(err, ErrNoState) {
		return nil
	}
	if err != nil {
		s.fail(err)
		return s.err
	}
	s.text = snap.Text
	s.wordCount = snap.WordCount
	s.demonCount = snap.DemonCount
	s.history = snap.History
	s.currentSessionID = snap.CurrentSessionID
	log.Debug("restored state: %d history entries", len(s.history))
	return nil
}

// Close releases the underlying Persister.
func (s *Store) Close() error { return s.p.Close() }

// SetText replaces the current text and derives the word count. The first
// non-blank text of a session creates its history entry; later edits update
// that entry in place without moving it.
func (s *Store) SetText(text string) {
	s.text = text
	s.wordCount = CountWords(text)

	switch {
	case s.currentSessionID != "":
		if i := s.indexOf(s.currentSessionID); i >= 0 {
			h := &s.history[i]
			h.Text = text
			h.WordCount = s.wordCount
			h.LastModified = s.stamp()
		}
	case strings.TrimSpace(text) != "":
		now := s.stamp()
		entry := WritingSession{
			ID:           s.newID(),
			Text:         text,
			WordCount:    s.wordCount,
			DemonCount:   s.demonCount,
			CreatedAt:    now,
			LastModified: now,
		}
		s.prepend(entry)
		s.currentSessionID = entry.ID
	}
	s.persist()
}

func (s *Store) SetWordCount(n int) {
	s.wordCount = n
	s.persist()
}

func (s *Store) SetDemonCount(n int) {
	s.demonCount = n
	s.persist()
}

func (s *Store) IncrementDemonCount() {
	s.demonCount++
	s.persist()
}

// SaveToHistory upserts the current session into the history log. It does
// nothing when the text is blank and no demon has been squashed.
func (s *Store) SaveToHistory() {
	if strings.TrimSpace(s.text) == "" && s.demonCount == 0 {
		return
	}
	now := s.stamp()
	entry := WritingSession{
		ID:           s.currentSessionID,
		Text:         s.text,
		WordCount:    s.wordCount,
		DemonCount:   s.demonCount,
		CreatedAt:    now,
		LastModified: now,
	}
	if s.currentSessionID != "" {
		// A dangling pointer replaces nothing.
		if i := s.indexOf(s.currentSessionID); i >= 0 {
			entry.CreatedAt = s.history[i].CreatedAt
			s.history[i] = entry
		}
	} else {
		entry.ID = s.newID()
		s.prepend(entry)
		s.currentSessionID = entry.ID
	}
	s.persist()
}

// StartNewSession saves the current session if it has any content and then
// clears the current state. History is kept.
func (s *Store) StartNewSession() {
	if strings.TrimSpace(s.text) != "" || s.demonCount > 0 {
		s.SaveToHistory()
	}
	s.text = ""
	s.wordCount = 0
	s.demonCount = 0
	s.currentDemon = nil
	s.currentSessionID = ""
	s.showSummary = false
	s.copySuccess = false
	s.persist()
}

// LoadFromHistory makes the entry with id the current session and closes the
// history panel. Unknown ids are ignored.
func (s *Store) LoadFromHistory(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	h := s.history[i]
	s.text = h.Text
	s.wordCount = h.WordCount
	s.demonCount = h.DemonCount
	s.currentSessionID = h.ID
	s.showHistory = false
	s.persist()
}

// DeleteFromHistory removes the entry with id. Deleting the active session
// also clears the current text and counts; an on-screen demon stays.
func (s *Store) DeleteFromHistory(id string) {
	i := s.indexOf(id)
	active := id != "" && id == s.currentSessionID
	if i < 0 && !active {
		return
	}
	if i >= 0 {
		s.history = slices.Delete(s.history, i, i+1)
	}
	if active {
		s.currentSessionID = ""
		s.text = ""
		s.wordCount = 0
		s.demonCount = 0
	}
	s.persist()
}

// ClearHistory empties the history log and the current session.
func (s *Store) ClearHistory() {
	s.history = nil
	s.currentSessionID = ""
	s.text = ""
	s.wordCount = 0
	s.demonCount = 0
	s.persist()
}

// ResetGame saves non-blank text and restores every field except the history
// to its initial value.
func (s *Store) ResetGame() {
	if strings.TrimSpace(s.text) != "" {
		s.SaveToHistory()
	}
	s.text = ""
	s.wordCount = 0
	s.demonCount = 0
	s.currentDemon = nil
	s.currentSessionID = ""
	s.showSummary = false
	s.showHistory = false
	s.copySuccess = false
	s.persist()
}

// Import inserts a session produced elsewhere. An entry with the same id is
// replaced in place; otherwise it is prepended. The pointer does not move.
func (s *Store) Import(ws WritingSession) {
	if ws.ID == "" {
		ws.ID = s.newID()
	}
	if ws.LastModified.Before(ws.CreatedAt) {
		ws.LastModified = ws.CreatedAt
	}
	if i := s.indexOf(ws.ID); i >= 0 {
		s.history[i] = ws
	} else {
		s.prepend(ws)
	}
	s.persist()
}

// Presentation flags. These are not persisted.

func (s *Store) SetCurrentDemon(p *demon.Position) { s.currentDemon = p }
func (s *Store) SetShowSummary(v bool)             { s.showSummary = v }
func (s *Store) SetShowHistory(v bool)             { s.showHistory = v }
func (s *Store) SetCopySuccess(v bool)             { s.copySuccess = v }

func (s *Store) Text() string                   { return s.text }
func (s *Store) WordCount() int                 { return s.wordCount }
func (s *Store) DemonCount() int                { return s.demonCount }
func (s *Store) CurrentDemon() *demon.Position  { return s.currentDemon }
func (s *Store) ShowSummary() bool              { return s.showSummary }
func (s *Store) ShowHistory() bool              { return s.showHistory }
func (s *Store) CopySuccess() bool              { return s.copySuccess }
func (s *Store) CurrentSessionID() string       { return s.currentSessionID }
func (s *Store) Summary() Summary               { return Score(s.wordCount, s.demonCount) }
func (s *Store) History() []WritingSession      { return slices.Clone(s.history) }

// Err returns the last persistence failure, or nil once a write succeeds.
func (s *Store) Err() error { return s.err }

// Lookup returns the history entry with exactly id.
func (s *Store) Lookup(id string) (WritingSession, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.history[i], true
	}
	return WritingSession{}, false
}

// Find resolves an exact id or a unique id prefix.
func (s *Store) Find(prefix string) (WritingSession, error) {
	if ws, ok := s.Lookup(prefix); ok {
		return ws, nil
	}
	var match *WritingSession
	if prefix != "" {
		for i := range s.history {
			if !strings.HasPrefix(s.history[i].ID, prefix) {
				continue
			}
			if match != nil {
				return WritingSession{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = &s.history[i]
		}
	}
	if match == nil {
		return WritingSession{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return *match, nil
}

// Snapshot returns a copy of the persisted subset of the state.
func (s *Store) Snapshot() *Snapshot {
	return &Snapshot{
		Text:             s.text,
		WordCount:        s.wordCount,
		DemonCount:       s.demonCount,
		History:          slices.Clone(s.history),
		CurrentSessionID: s.currentSessionID,
	}
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.history, func(h WritingSession) bool { return h.ID == id })
}

func (s *Store) prepend(ws WritingSession) {
	s.history = append([]WritingSession{ws}, s.history...)
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}
}

// stamp returns now truncated to the millisecond, the blob's resolution.
func (s *Store) stamp() time.Time {
	return time.UnixMilli(s.now().UnixMilli())
}

func (s *Store) persist() {
	if err := s.p.Save(context.Background(), s.Snapshot()); err != nil {
		s.fail(err)
		return
	}
	s.err = nil
}

func (s *Store) fail(err error) {
	first := s.err == nil
	s.err = fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	log.Warn("%v", s.err)
	if first && s.notify != nil {
		s.notify(s.err)
	}
}
