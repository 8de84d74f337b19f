package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// IDCodec turns a session id into a cookie value and back.
type IDCodec interface {
	Sign(sessionID string) (string, error)
	Verify(token string) (string, error)
}

// Manager resolves the browser's Store from its session cookie.
type Manager struct {
	persister Persister
	auth      Authenticator
	codec     IDCodec
	ttl       time.Duration
}

// NewManager creates a manager whose sessions live for ttl.
func NewManager(persister Persister, auth Authenticator, codec IDCodec, ttl time.Duration) *Manager {
	return &Manager{persister: persister, auth: auth, codec: codec, ttl: ttl}
}

// Load returns the rehydrated store for the request. A missing or invalid
// cookie starts a fresh session and sets its cookie on w.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Store, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := m.codec.Verify(c.Value); err == nil {
			store := NewStore(id, m.persister, m.auth, m.ttl)
			return store, store.Init(r.Context())
		}
	}
	store := m.Begin()
	if err := m.Commit(w, r, store); err != nil {
		return nil, err
	}
	return store, store.Init(r.Context())
}

// Begin creates a store under a new session id without touching the
// browser's cookie. Login authenticates a fresh store this way and commits it
// only on success, so a failed attempt keeps the current session.
func (m *Manager) Begin() *Store {
	return NewStore(newSessionID(), m.persister, m.auth, m.ttl)
}

// Commit points the browser's cookie at store.
func (m *Manager) Commit(w http.ResponseWriter, r *http.Request, store *Store) error {
	token, err := m.codec.Sign(store.ID())
	if err != nil {
		return err
	}
	http.SetCookie(w, sessionCookie(r, token, time.Now().Add(m.ttl)))
	return nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie(r, "", time.Time{}))
}

// RunCleanup purges expired entries every interval until ctx is done, for
// persisters that need it.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration) {
	purger, ok := m.persister.(Purger)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.ErrorContext(ctx, "Session cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.InfoContext(ctx, "Purged expired session entries", "count", removed)
			}
		}
	}
}
