package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gotera/internal/config"
	"gotera/internal/database"
	"gotera/internal/session"
)

func main() {
	// Define subcommands
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	purgeCmd := flag.NewFlagSet("purge", flag.ExitOnError)
	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	// Clear flags
	clearYes := clearCmd.Bool("yes", false, "Skip the confirmation prompt")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()
	switch cfg.SessionBackend {
	case config.BackendSQLite, config.BackendPostgres, config.BackendMySQL:
	default:
		log.Fatalf("Session backend %q has no database to manage", cfg.SessionBackend)
	}

	ctx := context.Background()
	db, err := database.OpenWithConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open session database: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")

	case "purge":
		purgeCmd.Parse(os.Args[2:])
		n, err := session.NewSQLPersister(db).PurgeExpired(ctx)
		if err != nil {
			log.Fatalf("Purge failed: %v", err)
		}
		log.Printf("Purged %d expired session entries", n)

	case "clear":
		clearCmd.Parse(os.Args[2:])
		handleClear(ctx, db, *clearYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleClear(ctx context.Context, db *database.DB, skipConfirm bool) {
	if !skipConfirm {
		fmt.Print("WARNING: This signs out every user. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Clear cancelled")
			return
		}
	}

	res, err := db.ExecContext(ctx, "DELETE FROM session_entries")
	if err != nil {
		log.Fatalf("Failed to clear sessions: %v", err)
	}
	n, _ := res.RowsAffected()
	log.Printf("Cleared %d session entries", n)
}

func printUsage() {
	fmt.Println("Gotera Session Store Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sessionctl migrate          Apply session store migrations")
	fmt.Println("  sessionctl purge            Delete expired session entries")
	fmt.Println("  sessionctl clear [-yes]     Delete every session entry")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  SESSION_BACKEND  sqlite, postgres or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./gotera-sessions.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
