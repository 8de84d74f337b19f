package resource

import (
	"context"
	"log/slog"
	"sync/atomic"

	"gotera/internal/graphql"
	"gotera/internal/notify"
)

// Sender performs a write.
type Sender[V, T any] func(ctx context.Context, vars V) (T, error)

// MutationOption configures a Mutation.
type MutationOption func(*mutationConfig)

type mutationConfig struct {
	notifier notify.Notifier
	success  string
	refetch  []Refetcher
	silent   []func(error) bool
}

// WithNotifier sets where success and error notices go.
func WithNotifier(n notify.Notifier) MutationOption {
	return func(c *mutationConfig) {
		c.notifier = n
	}
}

// WithSuccessMessage sets the success notice text. Without it no success
// notice is shown.
func WithSuccessMessage(msg string) MutationOption {
	return func(c *mutationConfig) {
		c.success = msg
	}
}

// WithSilentErrors suppresses the error notice for errors matching silent,
// e.g. field validation shown inline by the form. Repeated options add up.
func WithSilentErrors(silent func(error) bool) MutationOption {
	return func(c *mutationConfig) {
		c.silent = append(c.silent, silent)
	}
}

// WithRefetch registers queries to reload after a successful write.
func WithRefetch(r ...Refetcher) MutationOption {
	return func(c *mutationConfig) {
		c.refetch = append(c.refetch, r...)
	}
}

// Mutation wraps a write with notices and dependent refetches. It never
// retries; callers re-run it to retry.
type Mutation[V, T any] struct {
	send     Sender[V, T]
	cfg      mutationConfig
	inflight atomic.Int32
}

// NewMutation creates a mutation around send.
func NewMutation[V, T any](send Sender[V, T], opts ...MutationOption) *Mutation[V, T] {
	m := &Mutation[V, T]{send: send, cfg: mutationConfig{notifier: notify.Discard}}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	return m
}

// Loading reports whether a Run is in flight.
func (m *Mutation[V, T]) Loading() bool {
	return m.inflight.Load() > 0
}

// Run sends the write. On success it notifies, refetches dependents, and
// returns the server payload. On failure it notifies the first server
// message (or the transport message) and returns the error.
func (m *Mutation[V, T]) Run(ctx context.Context, vars V) (T, error) {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	out, err := m.send(ctx, vars)
	if err != nil {
		if !m.cfg.isSilent(err) {
			m.cfg.notifier.Notify(ctx, notify.Error(graphql.Message(err)))
		}
		var zero T
		return zero, err
	}

	if m.cfg.success != "" {
		m.cfg.notifier.Notify(ctx, notify.Success(m.cfg.success))
	}
	for _, r := range m.cfg.refetch {
		if rerr := r.Refetch(ctx); rerr != nil {
			slog.WarnContext(ctx, "Refetch after mutation failed", "error", rerr)
		}
	}
	return out, nil
}

func (c *mutationConfig) isSilent(err error) bool {
	for _, silent := range c.silent {
		if silent(err) {
			return true
		}
	}
	return false
}
