package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNoState is returned by Persister.Load when nothing has been saved yet.
	ErrNoState = errors.New("no saved state")

	// ErrPersistenceUnavailable wraps every failure of the durability layer.
	// The in-memory state keeps working when it occurs.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// Persister stores and retrieves the Snapshot.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error) // returns ErrNoState if nothing is stored
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}

// Storage backends accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the Persister for backend rooted at dir. An empty dir means
// DataDir().
func Open(backend, dir string) (Persister, error) {
	if backend == BackendMemory {
		return NewMemoryStore(), nil
	}
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		dir = d
	}
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "storydemon.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// DataDir returns the storydemon-specific XDG data directory:
// $XDG_DATA_HOME/storydemon or ~/.local/share/storydemon.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "storydemon"), nil
}
