package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gotera/internal/graphql"
	"gotera/internal/models"
)

// namedOps describes the CRUD operations of a lookup entity that only
// carries a name, and the response field each one answers under.
type namedOps struct {
	entity                 string
	list, get              graphql.Operation
	create, update, delete graphql.Operation
	listKey, getKey        string
	createKey, updateKey   string
}

// NamedRepository handles CRUD for name-only lookups (professions, locations)
type NamedRepository[T any] struct {
	api Executor
	ops namedOps
}

// NewProfessionRepository creates a repository for professions
func NewProfessionRepository(api Executor) *NamedRepository[models.Profession] {
	return &NamedRepository[models.Profession]{api: api, ops: namedOps{
		entity:    "profession",
		list:      OpGetProfessions,
		get:       OpGetProfession,
		create:    OpCreateProfession,
		update:    OpUpdateProfession,
		delete:    OpDeleteProfession,
		listKey:   "professions",
		getKey:    "profession",
		createKey: "createProfession",
		updateKey: "updateProfession",
	}}
}

// NewLocationRepository creates a repository for locations
func NewLocationRepository(api Executor) *NamedRepository[models.Location] {
	return &NamedRepository[models.Location]{api: api, ops: namedOps{
		entity:    "location",
		list:      OpGetLocations,
		get:       OpGetLocation,
		create:    OpCreateLocation,
		update:    OpUpdateLocation,
		delete:    OpDeleteLocation,
		listKey:   "locations",
		getKey:    "location",
		createKey: "createLocation",
		updateKey: "updateLocation",
	}}
}

// List fetches every entry
func (r *NamedRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.run(ctx, r.ops.list, nil, r.ops.listKey, &items); err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.ops.entity, err)
	}
	return items, nil
}

// Get fetches one entry with its member back-references
func (r *NamedRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	var item *T
	if err := r.run(ctx, r.ops.get, map[string]any{"id": id}, r.ops.getKey, &item); err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.ops.entity, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Create creates an entry
func (r *NamedRepository[T]) Create(ctx context.Context, input models.NamedInput) (*T, error) {
	vars, err := withInput(input, nil)
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.run(ctx, r.ops.create, vars, r.ops.createKey, &item); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", r.ops.entity, err)
	}
	return &item, nil
}

// Update renames an entry
func (r *NamedRepository[T]) Update(ctx context.Context, id string, input models.NamedInput) (*T, error) {
	vars, err := withInput(input, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.run(ctx, r.ops.update, vars, r.ops.updateKey, &item); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", r.ops.entity, err)
	}
	return &item, nil
}

// Delete deletes an entry
func (r *NamedRepository[T]) Delete(ctx context.Context, id string) error {
	if err := r.api.Do(ctx, r.ops.delete, map[string]any{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.ops.entity, err)
	}
	return nil
}

func (r *NamedRepository[T]) run(ctx context.Context, op graphql.Operation, vars map[string]any, key string, dst any) error {
	var out map[string]json.RawMessage
	if err := r.api.Do(ctx, op, vars, &out); err != nil {
		return err
	}
	raw, ok := out[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
