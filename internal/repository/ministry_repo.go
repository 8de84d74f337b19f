package repository

import (
	"context"
	"fmt"

	"gotera/internal/models"
)

// MinistryRepository handles ministry operations against the GraphQL API
type MinistryRepository struct {
	api Executor
}

// NewMinistryRepository creates a new ministry repository
func NewMinistryRepository(api Executor) *MinistryRepository {
	return &MinistryRepository{api: api}
}

// List fetches all ministries
func (r *MinistryRepository) List(ctx context.Context) ([]models.Ministry, error) {
	var out struct {
		Ministries []models.Ministry `json:"ministries"`
	}
	if err := r.api.Do(ctx, OpGetMinistries, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list ministries: %w", err)
	}
	return out.Ministries, nil
}

// Get fetches a ministry with its leaders and members
func (r *MinistryRepository) Get(ctx context.Context, id string) (*models.Ministry, error) {
	var out struct {
		Ministry *models.Ministry `json:"ministry"`
	}
	if err := r.api.Do(ctx, OpGetMinistry, map[string]any{"id": id}, &out); err != nil {
		return nil, fmt.Errorf("failed to get ministry: %w", err)
	}
	if out.Ministry == nil {
		return nil, ErrNotFound
	}
	return out.Ministry, nil
}

// Create creates a ministry
func (r *MinistryRepository) Create(ctx context.Context, input models.MinistryInput) (*models.Ministry, error) {
	vars, err := withInput(input, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		CreateMinistry models.Ministry `json:"createMinistry"`
	}
	if err := r.api.Do(ctx, OpCreateMinistry, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to create ministry: %w", err)
	}
	return &out.CreateMinistry, nil
}

// Update updates a ministry
func (r *MinistryRepository) Update(ctx context.Context, id string, input models.MinistryInput) (*models.Ministry, error) {
	vars, err := withInput(input, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	var out struct {
		UpdateMinistry models.Ministry `json:"updateMinistry"`
	}
	if err := r.api.Do(ctx, OpUpdateMinistry, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to update ministry: %w", err)
	}
	return &out.UpdateMinistry, nil
}

// Delete deletes a ministry
func (r *MinistryRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Do(ctx, OpDeleteMinistry, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to delete ministry: %w", err)
	}
	return nil
}
