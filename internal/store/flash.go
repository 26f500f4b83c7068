package store

import (
	"context"

	"github.com/roach88/gaq/internal/session"
)

// sessionFlash binds a Store to one session id.
type sessionFlash struct {
	store     *Store
	sessionID string
}

// Flash returns a session.Flash backed by this store for sessionID.
func (s *Store) Flash(sessionID string) session.Flash {
	return &sessionFlash{store: s, sessionID: sessionID}
}

func (f *sessionFlash) Get(ctx context.Context, key string) (session.Phases, bool, error) {
	return f.store.GetFlash(ctx, f.sessionID, key)
}

func (f *sessionFlash) Set(ctx context.Context, key string, p session.Phases) error {
	_, err := f.store.SetFlash(ctx, f.sessionID, key, p)
	return err
}
