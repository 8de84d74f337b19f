package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gotera/internal/config"
)

// DB wraps the database connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects with the given dialect, verifies the connection and applies
// dialect-specific settings.
func Open(ctx context.Context, dialect Dialect, dialectConfig DialectConfig) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// OpenSQLite opens a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	return Open(ctx, NewSQLiteDialect(), DialectConfig{Path: path})
}

// DialectFor maps a session backend name to its SQL dialect.
func DialectFor(backend string) (Dialect, error) {
	switch strings.ToLower(backend) {
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", backend)
	}
}

// OpenWithConfig opens the database selected by the session backend setting
func OpenWithConfig(ctx context.Context, cfg *config.Config) (*DB, error) {
	dialect, err := DialectFor(cfg.SessionBackend)
	if err != nil {
		return nil, err
	}
	dialectConfig := DialectConfig{URL: cfg.DatabaseURL}
	if dialect.MigrationsSubdir() == "sqlite" {
		dialectConfig = DialectConfig{Path: cfg.DatabasePath}
	}
	return Open(ctx, dialect, dialectConfig)
}

// QueryContext executes a query with automatic placeholder rewriting
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// QueryRowContext executes a query that returns a single row with automatic placeholder rewriting
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// ExecContext executes a query that doesn't return rows with automatic placeholder rewriting
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.RewriteQuery(query), args...)
}
