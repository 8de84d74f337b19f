package security

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{" FL ", RoleFamilyLeader},
		{"tl", RoleTeamLeader},
		{"ml", RoleMinistryLeader},
		{"member", RoleMember},
		{"superuser", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRole(tt.in))
		})
	}
}

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleAdmin, CapManageMembers))
	assert.True(t, Can(RoleFamilyLeader, CapRecordAttendance))
	assert.True(t, Can(RoleMinistryLeader, CapViewMyMinistry))
	assert.False(t, Can(RoleFamilyLeader, CapManageMembers))
	assert.False(t, Can(RoleMember, CapViewMyFamily))
	assert.False(t, Can(RoleUnknown, CapViewActivity))
}

func TestGuard_UnauthenticatedAlwaysGoesToLogin(t *testing.T) {
	required := append([]Role{RoleUnknown}, Roles...)
	for _, req := range required {
		for _, role := range append([]Role{RoleUnknown}, Roles...) {
			d := Guard(false, role, req)
			assert.False(t, d.Allow, "required=%q role=%q", req, role)
			assert.Equal(t, PathLogin, d.Redirect)
		}
	}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     Decision
	}{
		{"no requirement", RoleMember, RoleUnknown, Decision{Allow: true}},
		{"matching role", RoleAdmin, RoleAdmin, Decision{Allow: true}},
		{"fl to admin page", RoleFamilyLeader, RoleAdmin, Decision{Redirect: "/families/my-family"}},
		{"admin to fl page", RoleAdmin, RoleFamilyLeader, Decision{Redirect: "/dashboard"}},
		{"member has no landing", RoleMember, RoleMinistryLeader, Decision{Redirect: PathUnauthorized}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(true, tt.role, tt.required))
		})
	}
}

func TestSessionSigner(t *testing.T) {
	signer := NewSessionSigner("secret", time.Hour)

	token, err := signer.Sign("abc-123")
	require.NoError(t, err)

	id, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	_, err = NewSessionSigner("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	expired, err := NewSessionSigner("secret", -time.Minute).Sign("abc-123")
	require.NoError(t, err)
	_, err = signer.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = signer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	_, err = signer.Sign("")
	assert.Error(t, err)
}

func TestCSRFGenerator(t *testing.T) {
	g := NewCSRFGenerator("secret")

	token, err := g.GenerateToken("session-1")
	require.NoError(t, err)
	assert.True(t, g.ValidateToken("session-1", token))
	assert.False(t, g.ValidateToken("session-2", token))
	assert.False(t, g.ValidateToken("session-1", ""))

	_, err = g.GenerateToken("")
	assert.Error(t, err)
}

func TestCSRFTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/members", strings.NewReader("csrf_token=form"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, "form", CSRFTokenFromRequest(r))

	r.Header.Set(CSRFHeader, "header")
	assert.Equal(t, "header", CSRFTokenFromRequest(r))
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.2.3.4"))

	now = now.Add(5 * time.Minute)
	rl.evict()
	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.3")
	assert.Equal(t, "203.0.113.5", GetClientIP(r))
}
