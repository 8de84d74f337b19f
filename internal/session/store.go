package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gotera/internal/graphql"
	"gotera/internal/models"
	"gotera/internal/notify"
)

// Persisted entry keys. KeyAuth holds the {token, user} snapshot read on
// rehydrate; KeyPersistRoot holds the same snapshot under a namespaced root
// object.
const (
	KeyAuth        = "auth"
	KeyPersistRoot = "persist:root"
	KeyFlash       = "flash"
)

// ErrEmptyToken is returned when the login response carries no token.
var ErrEmptyToken = errors.New("login response carried no token")

var errCorrupt = errors.New("corrupt persisted session")

// Authenticator performs the remote login and logout calls.
type Authenticator interface {
	Login(ctx context.Context, phone, password string) (*models.AuthSnapshot, error)
	Logout(ctx context.Context) error
}

// State is the authentication state of one browser session.
type State struct {
	Authenticated bool
	Token         string
	User          *models.User
}

// Role returns the signed-in user's role string, or "" when signed out.
func (s State) Role() string {
	if !s.Authenticated || s.User == nil {
		return ""
	}
	return s.User.Role
}

type rootState struct {
	Auth *models.AuthSnapshot `json:"auth"`
}

// Store is the session of one browser. It starts unauthenticated; Init
// rehydrates it from the persister once.
type Store struct {
	id        string
	persister Persister
	auth      Authenticator
	ttl       time.Duration

	once    sync.Once
	initErr error

	mu    sync.RWMutex
	state State
}

// NewStore creates a store for session id.
func NewStore(id string, persister Persister, auth Authenticator, ttl time.Duration) *Store {
	return &Store{id: id, persister: persister, auth: auth, ttl: ttl}
}

// ID is the session id.
func (s *Store) ID() string {
	return s.id
}

// State returns the current authentication state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Init rehydrates the store on first use. Later calls are no-ops.
func (s *Store) Init(ctx context.Context) error {
	s.once.Do(func() {
		s.initErr = s.Rehydrate(ctx)
	})
	return s.initErr
}

// Rehydrate restores the state from persisted entries without contacting the
// API. Entries that fail to parse are removed and the store stays signed out.
func (s *Store) Rehydrate(ctx context.Context) error {
	snap, err := s.readSnapshot(ctx)
	if errors.Is(err, errCorrupt) {
		slog.WarnContext(ctx, "Discarding corrupt persisted session", "session_id", s.id, "error", err)
		s.setState(State{})
		return s.persister.Delete(ctx, s.id, KeyAuth, KeyPersistRoot)
	}
	if err != nil {
		s.setState(State{})
		return err
	}
	if snap == nil || !snap.Valid() {
		s.setState(State{})
		return nil
	}
	user := snap.User
	s.setState(State{Authenticated: true, Token: snap.Token, User: &user})
	return nil
}

func (s *Store) readSnapshot(ctx context.Context) (*models.AuthSnapshot, error) {
	var snap *models.AuthSnapshot

	raw, err := s.persister.Get(ctx, s.id, KeyAuth)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		snap = &models.AuthSnapshot{}
		if err := json.Unmarshal(raw, snap); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errCorrupt, KeyAuth, err)
		}
	}

	raw, err = s.persister.Get(ctx, s.id, KeyPersistRoot)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		var root rootState
		if err := json.Unmarshal(raw, &root); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errCorrupt, KeyPersistRoot, err)
		}
		if snap == nil {
			snap = root.Auth
		}
	}
	return snap, nil
}

// Login authenticates against the API and persists the resulting snapshot.
// A failed login leaves the state unchanged.
func (s *Store) Login(ctx context.Context, phone, password string) (State, error) {
	snap, err := s.auth.Login(ctx, phone, password)
	if err != nil {
		return s.State(), err
	}
	if snap == nil || snap.Token == "" {
		return s.State(), ErrEmptyToken
	}

	if err := s.persist(ctx, *snap); err != nil {
		return s.State(), err
	}
	user := snap.User
	st := State{Authenticated: true, Token: snap.Token, User: &user}
	s.setState(st)
	return st, nil
}

func (s *Store) persist(ctx context.Context, snap models.AuthSnapshot) error {
	authJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	rootJSON, err := json.Marshal(rootState{Auth: &snap})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.persister.Set(ctx, s.id, KeyAuth, authJSON, s.ttl); err != nil {
		return err
	}
	return s.persister.Set(ctx, s.id, KeyPersistRoot, rootJSON, s.ttl)
}

// Logout tells the API best-effort, then clears the persisted entries.
func (s *Store) Logout(ctx context.Context) error {
	st := s.State()
	if st.Token != "" {
		if err := s.auth.Logout(graphql.WithToken(ctx, st.Token)); err != nil {
			slog.WarnContext(ctx, "Remote logout failed", "session_id", s.id, "error", err)
		}
	}
	s.setState(State{})
	return s.persister.Delete(ctx, s.id, KeyAuth, KeyPersistRoot, KeyFlash)
}

// Context attaches the session token for outgoing API calls.
func (s *Store) Context(ctx context.Context) context.Context {
	return graphql.WithToken(ctx, s.State().Token)
}

// AddFlash queues a notice for the next rendered page.
func (s *Store) AddFlash(ctx context.Context, n notify.Notice) error {
	notices := s.readFlashes(ctx)
	notices = append(notices, n)
	raw, err := json.Marshal(notices)
	if err != nil {
		return fmt.Errorf("failed to encode flash: %w", err)
	}
	return s.persister.Set(ctx, s.id, KeyFlash, raw, s.ttl)
}

// Flashes returns and clears the queued notices.
func (s *Store) Flashes(ctx context.Context) []notify.Notice {
	notices := s.readFlashes(ctx)
	if len(notices) > 0 {
		if err := s.persister.Delete(ctx, s.id, KeyFlash); err != nil {
			slog.WarnContext(ctx, "Failed to clear flash", "session_id", s.id, "error", err)
		}
	}
	return notices
}

func (s *Store) readFlashes(ctx context.Context) []notify.Notice {
	raw, err := s.persister.Get(ctx, s.id, KeyFlash)
	if err != nil {
		return nil
	}
	var notices []notify.Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		return nil
	}
	return notices
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}
