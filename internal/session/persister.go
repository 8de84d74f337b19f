// Package session keeps the signed-in user per browser session. State lives
// behind a Persister so the backing storage can be memory, SQL or Redis.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Persister.Get for a missing or expired entry.
var ErrNotFound = errors.New("session entry not found")

// Persister stores raw session entries keyed by session id and entry key.
type Persister interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// Purger is implemented by persisters that need expired entries removed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryPersister keeps entries in process memory.
type MemoryPersister struct {
	mu      sync.Mutex
	entries map[string]map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{
		entries: make(map[string]map[string]memoryEntry),
		now:     time.Now,
	}
}

func (p *MemoryPersister) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[sessionID][key]
	if !ok || !p.now().Before(e.expiresAt) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (p *MemoryPersister) Set(_ context.Context, sessionID, key string, value []byte, ttl time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.entries[sessionID] == nil {
		p.entries[sessionID] = make(map[string]memoryEntry)
	}
	p.entries[sessionID][key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: p.now().Add(ttl),
	}
	return nil
}

func (p *MemoryPersister) Delete(_ context.Context, sessionID string, keys ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, key := range keys {
		delete(p.entries[sessionID], key)
	}
	if len(p.entries[sessionID]) == 0 {
		delete(p.entries, sessionID)
	}
	return nil
}

// PurgeExpired drops entries past their expiry.
func (p *MemoryPersister) PurgeExpired(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	var removed int64
	for id, entries := range p.entries {
		for key, e := range entries {
			if !now.Before(e.expiresAt) {
				delete(entries, key)
				removed++
			}
		}
		if len(entries) == 0 {
			delete(p.entries, id)
		}
	}
	return removed, nil
}
