package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileStore keeps the blob in a single JSON file.
type fileStore struct {
	path string // full path to story-demon-storage.json
}

// NewFileStore returns a Persister writing to dir/story-demon-storage.json,
// creating dir if needed.
func NewFileStore(dir string) (Persister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &fileStore{path: filepath.Join(dir, Namespace+".json")}, nil
}

// Save encodes snap and writes it atomically via a temp file + os.Rename.
func (f *fileStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}

	// Same directory, so the rename stays atomic.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist state: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// Load reads and decodes the state file.
// Returns ErrNoState if the file does not exist.
func (f *fileStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	return snap, nil
}

func (f *fileStore) Close() error { return nil }

func (f *fileStore) String() string { return f.path }
