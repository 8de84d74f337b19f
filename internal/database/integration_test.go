package database

import (
	"context"
	"path/filepath"
	"testing"
)

// TestDatabaseIntegration opens a SQLite file, migrates it twice and checks
// the session table exists.
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := db.RunMigrations(ctx); err != nil {
			t.Fatalf("RunMigrations() pass %d error = %v", i+1, err)
		}
	}

	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "session_entries").Scan(&name)
	if err != nil {
		t.Fatalf("session_entries table not found: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("migrations recorded = %d, want 1", count)
	}
}

func TestDatabaseUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	upsert := db.Dialect.UpsertSessionEntryQuery()
	if _, err := db.ExecContext(ctx, upsert, "s1", "auth", "first", 10, 1); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := db.ExecContext(ctx, upsert, "s1", "auth", "second", 20, 2); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var value string
	var expires int64
	err = db.QueryRowContext(ctx, "SELECT value, expires_at FROM session_entries WHERE session_id = ? AND entry_key = ?", "s1", "auth").Scan(&value, &expires)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if value != "second" || expires != 20 {
		t.Errorf("got (%q, %d), want (second, 20)", value, expires)
	}
}
