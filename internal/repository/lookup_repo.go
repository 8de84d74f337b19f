package repository

import (
	"context"
	"fmt"

	"gotera/internal/models"
)

// LookupRepository reads the read-only lookup lists used by filters and forms
type LookupRepository struct {
	api Executor
}

// NewLookupRepository creates a new lookup repository
func NewLookupRepository(api Executor) *LookupRepository {
	return &LookupRepository{api: api}
}

// Statuses fetches the membership statuses
func (r *LookupRepository) Statuses(ctx context.Context) ([]models.Status, error) {
	var out struct {
		Statuses []models.Status `json:"statuses"`
	}
	if err := r.api.Do(ctx, OpGetStatuses, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return out.Statuses, nil
}

// Roles fetches the role lookup entries
func (r *LookupRepository) Roles(ctx context.Context) ([]models.RoleRef, error) {
	var out struct {
		Roles []models.RoleRef `json:"roles"`
	}
	if err := r.api.Do(ctx, OpGetRoles, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return out.Roles, nil
}

// ActivityRepository reads the audit log
type ActivityRepository struct {
	api         Executor
	defaultSize int
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(api Executor, defaultSize int) *ActivityRepository {
	return &ActivityRepository{api: api, defaultSize: defaultSize}
}

// List fetches one page of activity, newest first as ordered by the server
func (r *ActivityRepository) List(ctx context.Context, page models.PageRequest) (*models.ActivityPage, error) {
	page = page.Normalize(r.defaultSize)
	var out struct {
		Activities models.ActivityPage `json:"activities"`
	}
	vars := map[string]any{"page": page.Page, "limit": page.Limit}
	if err := r.api.Do(ctx, OpGetActivities, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return &out.Activities, nil
}
