package handlers

import (
	"context"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/security"
	"gotera/internal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	SessionContextKey ContextKey = "session"
	RequestIDKey      ContextKey = "request_id"
)

// GetSessionFromContext returns the browser session attached by the session
// middleware.
func GetSessionFromContext(ctx context.Context) *session.Store {
	store, _ := ctx.Value(SessionContextKey).(*session.Store)
	return store
}

// GetUserFromContext returns the signed-in user, or nil.
func GetUserFromContext(ctx context.Context) *models.User {
	store := GetSessionFromContext(ctx)
	if store == nil {
		return nil
	}
	return store.State().User
}

// currentRole returns the signed-in user's role.
func currentRole(r *http.Request) security.Role {
	store := GetSessionFromContext(r.Context())
	if store == nil {
		return security.RoleUnknown
	}
	return security.ParseRole(store.State().Role())
}

// GetRequestID returns the id assigned by the logging middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get(hxRequestHeader) == "true"
}

// redirect sends a normal redirect, or HX-Redirect for HTMX requests so the
// whole page navigates.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set(hxRedirectHeader, target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
