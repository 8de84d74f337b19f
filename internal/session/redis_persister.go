package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores each entry as a Redis string with a TTL, so expiry
// needs no purge.
type RedisPersister struct {
	client *redis.Client
	prefix string
}

// NewRedisPersister connects using a redis:// URL.
func NewRedisPersister(ctx context.Context, url string) (*RedisPersister, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisPersister{client: client, prefix: "gotera:session:"}, nil
}

func (p *RedisPersister) key(sessionID, key string) string {
	return p.prefix + sessionID + ":" + key
}

func (p *RedisPersister) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	value, err := p.client.Get(ctx, p.key(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session entry: %w", err)
	}
	return value, nil
}

func (p *RedisPersister) Set(ctx context.Context, sessionID, key string, value []byte, ttl time.Duration) error {
	if err := p.client.Set(ctx, p.key(sessionID, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session entry: %w", err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = p.key(sessionID, k)
	}
	if err := p.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete session entries: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *RedisPersister) Close() error {
	return p.client.Close()
}
