package repository

import (
	"context"
	"fmt"

	"gotera/internal/models"
)

// FamilyRepository handles family operations against the GraphQL API
type FamilyRepository struct {
	api Executor
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(api Executor) *FamilyRepository {
	return &FamilyRepository{api: api}
}

// List fetches all families
func (r *FamilyRepository) List(ctx context.Context) ([]models.Family, error) {
	var out struct {
		Families []models.Family `json:"families"`
	}
	if err := r.api.Do(ctx, OpGetFamilies, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return out.Families, nil
}

// Summaries fetches the family list rows with precomputed counts
func (r *FamilyRepository) Summaries(ctx context.Context) ([]models.FamilySummary, error) {
	var out struct {
		FamilySummaries []models.FamilySummary `json:"familySummaries"`
	}
	if err := r.api.Do(ctx, OpGetFamilySummaries, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list family summaries: %w", err)
	}
	return out.FamilySummaries, nil
}

// Get fetches a family with its members
func (r *FamilyRepository) Get(ctx context.Context, id string) (*models.Family, error) {
	var out struct {
		Family *models.Family `json:"family"`
	}
	if err := r.api.Do(ctx, OpGetFamily, map[string]any{"id": id}, &out); err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if out.Family == nil {
		return nil, ErrNotFound
	}
	return out.Family, nil
}

// Create creates a family
func (r *FamilyRepository) Create(ctx context.Context, input models.FamilyInput) (*models.Family, error) {
	vars, err := withInput(input, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		CreateFamily models.Family `json:"createFamily"`
	}
	if err := r.api.Do(ctx, OpCreateFamily, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}
	return &out.CreateFamily, nil
}

// Update updates a family
func (r *FamilyRepository) Update(ctx context.Context, id string, input models.FamilyInput) (*models.Family, error) {
	vars, err := withInput(input, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	var out struct {
		UpdateFamily models.Family `json:"updateFamily"`
	}
	if err := r.api.Do(ctx, OpUpdateFamily, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}
	return &out.UpdateFamily, nil
}

// Delete deletes a family
func (r *FamilyRepository) Delete(ctx context.Context, id string) error {
	if err := r.api.Do(ctx, OpDeleteFamily, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	return nil
}
