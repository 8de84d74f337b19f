package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "gotera"

// ErrInvalidSessionToken is returned for a cookie that fails verification.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionSigner binds a session id to the browser cookie as an HS256 JWT.
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionSigner creates a signer whose tokens expire after ttl.
func NewSessionSigner(secret string, ttl time.Duration) *SessionSigner {
	return &SessionSigner{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime of issued tokens.
func (s *SessionSigner) TTL() time.Duration {
	return s.ttl
}

// Sign returns a token carrying sessionID as its subject.
func (s *SessionSigner) Sign(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session ID is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the session id from a token signed by Sign.
func (s *SessionSigner) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer))
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.Subject, nil
}
