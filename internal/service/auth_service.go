package service

import (
	"net/http"

	"gotera/internal/session"
	"gotera/internal/validation"
)

// LoginInput is the login form.
type LoginInput struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// AuthService signs browsers in and out
type AuthService struct {
	sessions  *session.Manager
	validator *validation.Validator
}

// NewAuthService creates a new auth service
func NewAuthService(sessions *session.Manager, validator *validation.Validator) *AuthService {
	return &AuthService{sessions: sessions, validator: validator}
}

// Login validates the form and authenticates a store under a new session id.
// The browser's cookie moves to the new session only once the API accepts the
// credentials; a rejected attempt leaves the current session in place.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request, in LoginInput) (*session.Store, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	store := s.sessions.Begin()
	if _, err := store.Login(r.Context(), in.Phone, in.Password); err != nil {
		return nil, err
	}
	if err := s.sessions.Commit(w, r, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Logout ends the session locally and remotely and clears the cookie.
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request, store *session.Store) error {
	err := store.Logout(r.Context())
	s.sessions.Clear(w, r)
	return err
}
