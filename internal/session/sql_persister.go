package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gotera/internal/database"
)

// SQLPersister stores entries in the session_entries table of any supported
// SQL dialect.
type SQLPersister struct {
	db  *database.DB
	now func() time.Time
}

// NewSQLPersister wraps an open, migrated database.
func NewSQLPersister(db *database.DB) *SQLPersister {
	return &SQLPersister{db: db, now: time.Now}
}

func (p *SQLPersister) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value string
	err := p.db.QueryRowContext(ctx,
		"SELECT value FROM session_entries WHERE session_id = ? AND entry_key = ? AND expires_at > ?",
		sessionID, key, p.now().Unix(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session entry: %w", err)
	}
	return []byte(value), nil
}

func (p *SQLPersister) Set(ctx context.Context, sessionID, key string, value []byte, ttl time.Duration) error {
	now := p.now()
	_, err := p.db.ExecContext(ctx, p.db.Dialect.UpsertSessionEntryQuery(),
		sessionID, key, string(value), now.Add(ttl).Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write session entry: %w", err)
	}
	return nil
}

func (p *SQLPersister) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, 0, len(keys)+1)
	args = append(args, sessionID)
	for _, k := range keys {
		args = append(args, k)
	}
	query := "DELETE FROM session_entries WHERE session_id = ? AND entry_key IN (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ") + ")"
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete session entries: %w", err)
	}
	return nil
}

// PurgeExpired deletes entries whose expiry has passed.
func (p *SQLPersister) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, "DELETE FROM session_entries WHERE expires_at <= ?", p.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}
