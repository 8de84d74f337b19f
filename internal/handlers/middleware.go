package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gotera/internal/graphql"
	"gotera/internal/logger"
	"gotera/internal/metrics"
	"gotera/internal/security"
	"gotera/internal/session"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions    *session.Manager
	csrf        *security.CSRFGenerator
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *session.Manager, csrf *security.CSRFGenerator, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		sessions:    sessions,
		csrf:        csrf,
		rateLimiter: rateLimiter,
	}
}

// Session resolves the browser session for every request and rehydrates it
// before any page decides what to render.
func (m *Middleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, err := m.sessions.Load(w, r)
		if err != nil && store == nil {
			respondWithError(w, r, http.StatusInternalServerError, ErrInternalServerError, err)
			return
		}
		if err != nil {
			slog.WarnContext(r.Context(), "Session rehydrate failed", "error", err)
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, store)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards a page. Signed-out callers go to the login page; callers
// with another role go to their landing page. Allowed requests carry the
// session token for API calls.
func (m *Middleware) RequireRole(required security.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := GetSessionFromContext(r.Context())
		var st session.State
		if store != nil {
			st = store.State()
		}

		decision := security.Guard(st.Authenticated, security.ParseRole(st.Role()), required)
		if !decision.Allow {
			redirect(w, r, decision.Redirect)
			return
		}

		ctx := graphql.WithToken(r.Context(), st.Token)
		next(w, r.WithContext(ctx))
	}
}

// RequireAuth guards a page that any signed-in user may see.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireRole(security.RoleUnknown, next)
}

// CSRFProtect rejects state-changing requests without the session's token.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next(w, r)
			return
		}
		store := GetSessionFromContext(r.Context())
		if store == nil || !m.csrf.ValidateToken(store.ID(), security.CSRFTokenFromRequest(r)) {
			respondWithError(w, r, http.StatusForbidden, ErrInvalidCSRFToken, nil)
			return
		}
		next(w, r)
	}
}

// RateLimit limits requests per client IP.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.rateLimiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, r, http.StatusTooManyRequests, ErrTooManyRequests, nil)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the token for the request's session.
func (m *Middleware) CSRFToken(r *http.Request) string {
	store := GetSessionFromContext(r.Context())
	if store == nil {
		return ""
	}
	token, err := m.csrf.GenerateToken(store.ID())
	if err != nil {
		return ""
	}
	return token
}

// routeLabel carries the matched mux pattern back out to Logging.
type routeLabel struct {
	pattern string
}

const routeLabelKey ContextKey = "route"

// labelRoute records the matched pattern for Logging.
func labelRoute(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if label, ok := r.Context().Value(routeLabelKey).(*routeLabel); ok {
			label.pattern = r.Pattern
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Logging assigns a request id, logs each request and records its metrics
// under the matched route pattern.
func Logging(log *logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			route := &routeLabel{}
			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			ctx = context.WithValue(ctx, routeLabelKey, route)

			next.ServeHTTP(rec, r.WithContext(ctx))

			elapsed := time.Since(start)
			m.ObserveRequest(route.pattern, rec.status, elapsed)
			log.WithRequest(requestID, r.Method, r.URL.Path).InfoContext(ctx, "HTTP request",
				"status", rec.status,
				"route", route.pattern,
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}
