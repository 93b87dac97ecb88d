package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/storydemon/internal/log"
	"github.com/fakeyudi/storydemon/internal/session"
)

// errNotSaved is returned by commands whose change could not be persisted.
// The cause has already been printed by the store's notifier.
var errNotSaved = errors.New("changes were not saved")

// openStore opens the configured storage backend and restores the saved
// game. With fallback set, a backend that cannot be opened is replaced by an
// in-memory store so the game stays playable; otherwise the error is
// returned. Persistence failures after that are printed as warnings when
// warn is set.
func openStore(cmd *cobra.Command, fallback, warn bool) (*session.Store, error) {
	p, err := session.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		if !fallback {
			return nil, fmt.Errorf("opening %s storage: %w", backendName(), err)
		}
		log.Warn("opening %s storage: %v, falling back to memory", backendName(), err)
		if warn {
			cmd.PrintErrf("warning: %v, progress will not be saved\n", err)
		}
		p = session.NewMemoryStore()
	}

	var opts []session.StoreOption
	if warn {
		opts = append(opts, session.WithNotifier(func(err error) {
			cmd.PrintErrf("warning: %v\n", err)
		}))
	}
	store := session.NewStore(p, opts...)

	if err := store.Restore(cmd.Context()); err != nil {
		if !fallback {
			store.Close()
			return nil, err
		}
		log.Warn("restoring state: %v", err)
	}
	log.Debug("store opened: backend=%s sessions=%d", backendName(), len(store.History()))
	return store, nil
}

// findSession resolves a full id or unique id prefix.
func findSession(store *session.Store, id string) (session.WritingSession, error) {
	ws, err := store.Find(id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return ws, fmt.Errorf("session not found: %s", id)
	case errors.Is(err, session.ErrAmbiguousID):
		return ws, fmt.Errorf("ambiguous session id %q, use more characters", id)
	}
	return ws, err
}

func backendName() string {
	if cfg.Storage.Backend == "" {
		return session.BackendFile
	}
	return cfg.Storage.Backend
}
