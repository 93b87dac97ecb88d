package session

import (
	"context"
	"sync"
)

// memoryStore holds the encoded blob in memory. State written to it does not
// survive the process.
type memoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty in-memory Persister.
func NewMemoryStore() Persister {
	return &memoryStore{}
}

func (m *memoryStore) Load(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoState
	}
	return DecodeSnapshot(m.data)
}

func (m *memoryStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) String() string { return "memory" }
