package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "gotera_session"

func newSessionID() string {
	return uuid.NewString()
}

// secureRequest reports whether the browser reached us over HTTPS, directly
// or through a TLS-terminating proxy.
func secureRequest(r *http.Request) bool {
	if r.TLS != nil || r.URL.Scheme == "https" {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}

// sessionCookie builds the session cookie. A zero expiry deletes it.
func sessionCookie(r *http.Request, value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if expires.IsZero() {
		c.MaxAge = -1
	} else {
		c.Expires = expires
	}
	return c
}
