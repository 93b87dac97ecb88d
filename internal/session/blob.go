package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireSession and wireSnapshot are the JSON shapes of the persisted blob.
// Timestamps are epoch milliseconds.
type wireSession struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	WordCount    int    `json:"wordCount"`
	DemonCount   int    `json:"demonCount"`
	CreatedAt    int64  `json:"createdAt"`
	LastModified int64  `json:"lastModified"`
}

type wireSnapshot struct {
	Text             string        `json:"text"`
	WordCount        int           `json:"wordCount"`
	DemonCount       int           `json:"demonCount"`
	History          []wireSession `json:"history"`
	CurrentSessionID *string       `json:"currentSessionId"`
}

// EncodeSnapshot marshals snap into the persisted blob format.
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	w := wireSnapshot{
		Text:       snap.Text,
		WordCount:  snap.WordCount,
		DemonCount: snap.DemonCount,
		History:    make([]wireSession, 0, len(snap.History)),
	}
	for _, h := range snap.History {
		w.History = append(w.History, wireSession{
			ID:           h.ID,
			Text:         h.Text,
			WordCount:    h.WordCount,
			DemonCount:   h.DemonCount,
			CreatedAt:    h.CreatedAt.UnixMilli(),
			LastModified: h.LastModified.UnixMilli(),
		})
	}
	if snap.CurrentSessionID != "" {
		id := snap.CurrentSessionID
		w.CurrentSessionID = &id
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a persisted blob. Unknown fields are ignored and
// missing fields take their zero value. Negative counts are clamped to zero
// and the history is truncated to MaxHistory.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	snap := &Snapshot{
		Text:       w.Text,
		WordCount:  max(0, w.WordCount),
		DemonCount: max(0, w.DemonCount),
	}
	if w.CurrentSessionID != nil {
		snap.CurrentSessionID = *w.CurrentSessionID
	}
	for _, h := range w.History {
		if len(snap.History) == MaxHistory {
			break
		}
		snap.History = append(snap.History, WritingSession{
			ID:           h.ID,
			Text:         h.Text,
			WordCount:    max(0, h.WordCount),
			DemonCount:   max(0, h.DemonCount),
			CreatedAt:    time.UnixMilli(h.CreatedAt),
			LastModified: time.UnixMilli(h.LastModified),
		})
	}
	return snap, nil
}
