package repository

import (
	"context"
	"fmt"

	"gotera/internal/models"
)

// AuthRepository sends the login and logout mutations
type AuthRepository struct {
	api Executor
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(api Executor) *AuthRepository {
	return &AuthRepository{api: api}
}

// Login exchanges phone and password for a token and the user record
func (r *AuthRepository) Login(ctx context.Context, phone, password string) (*models.AuthSnapshot, error) {
	var out struct {
		Login models.AuthSnapshot `json:"login"`
	}
	vars := map[string]any{"phone": phone, "password": password}
	if err := r.api.Do(ctx, OpLogin, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	return &out.Login, nil
}

// Logout invalidates the token attached to ctx on the server
func (r *AuthRepository) Logout(ctx context.Context) error {
	if err := r.api.Do(ctx, OpLogout, nil, nil); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}
