// Package resource holds request-scoped read and write state for GraphQL
// backed data: a Query exposes data, loading and error for a read; a Mutation
// sends a write, reports the outcome as a notice and refetches dependents.
package resource

import (
	"context"
	"sync"
)

// Fetcher loads the value of a query.
type Fetcher[T any] func(ctx context.Context) (T, error)

// State is a snapshot of a query. Data is nil until the first successful
// response.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// Refetcher is anything a mutation can ask to reload after success.
type Refetcher interface {
	Refetch(ctx context.Context) error
}

// QueryOption configures a Query.
type QueryOption func(*queryConfig)

type queryConfig struct {
	skip func() bool
}

// Skip suppresses requests while cond reports true, e.g. while a required
// parent id is unknown.
func Skip(cond func() bool) QueryOption {
	return func(c *queryConfig) {
		c.skip = cond
	}
}

// SkipIf is Skip with a fixed condition.
func SkipIf(skip bool) QueryOption {
	return Skip(func() bool { return skip })
}

// Query tracks one read. Fetches may overlap; only the last dispatched
// fetch's outcome is applied, earlier completions are discarded.
type Query[T any] struct {
	fetch Fetcher[T]
	cfg   queryConfig

	mu      sync.Mutex
	seq     uint64
	data    *T
	loading bool
	err     error
}

// NewQuery creates a query that has not fetched yet.
func NewQuery[T any](fetch Fetcher[T], opts ...QueryOption) *Query[T] {
	q := &Query[T]{fetch: fetch}
	for _, opt := range opts {
		opt(&q.cfg)
	}
	return q
}

// Skipped reports whether the skip condition currently holds.
func (q *Query[T]) Skipped() bool {
	return q.cfg.skip != nil && q.cfg.skip()
}

// Fetch runs the fetcher unless skipped and returns the resulting state.
// Success replaces Data wholesale and clears Err; failure records Err and
// keeps the previous Data.
func (q *Query[T]) Fetch(ctx context.Context) State[T] {
	if q.Skipped() {
		return q.State()
	}

	q.mu.Lock()
	q.seq++
	seq := q.seq
	q.loading = true
	q.mu.Unlock()

	value, err := q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if seq != q.seq {
		return q.stateLocked()
	}
	q.loading = false
	if err != nil {
		q.err = err
	} else {
		q.data = &value
		q.err = nil
	}
	return q.stateLocked()
}

// Refetch fetches again and returns the recorded error, if any.
func (q *Query[T]) Refetch(ctx context.Context) error {
	return q.Fetch(ctx).Err
}

// State returns the current snapshot.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stateLocked()
}

func (q *Query[T]) stateLocked() State[T] {
	return State[T]{Data: q.data, Loading: q.loading, Err: q.err}
}
