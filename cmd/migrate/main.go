package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"storefront-be/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding *.sql migrations")
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		logger.L().Fatal("DB_URL not set in environment")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.L().Fatal("failed to open db", zap.Error(err))
	}
	defer db.Close()

	if err := run(db, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func run(db *sql.DB, mode, migrationsDir string) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	slices.Sort(files)

	switch mode {
	case "up":
		return runMigrationsUp(db, files)
	case "down":
		return runMigrationsDown(db, files)
	case "status":
		return printStatus(db, files)
	default:
		return fmt.Errorf("unknown mode: %s (use up, down or status)", mode)
	}
}

func applied(db *sql.DB, version string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return exists, nil
}

// runMigrationsUp applies every pending file in order. Each file and its
// version record commit together.
func runMigrationsUp(db *sql.DB, files []string) error {
	log := logger.L()

	for _, file := range files {
		version := filepath.Base(file)

		done, err := applied(db, version)
		if err != nil {
			return err
		}
		if done {
			log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		log.Info("applying migration", zap.String("version", version))
		err = inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(extractMigrationPart(string(content), "Up")); err != nil {
				return fmt.Errorf("migration %s: %w", version, err)
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version)
			return err
		})
		if err != nil {
			return err
		}
	}

	log.Info("migrations up to date")
	return nil
}

// runMigrationsDown rolls back the most recently applied migration.
func runMigrationsDown(db *sql.DB, files []string) error {
	log := logger.L()

	var lastVersion string
	err := db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&lastVersion)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find last migration: %w", err)
	}

	idx := slices.IndexFunc(files, func(f string) bool { return filepath.Base(f) == lastVersion })
	if idx < 0 {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(files[idx])
	if err != nil {
		return fmt.Errorf("read %s: %w", files[idx], err)
	}

	log.Info("rolling back migration", zap.String("version", lastVersion))
	return inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(extractMigrationPart(string(content), "Down")); err != nil {
			return fmt.Errorf("rollback %s: %w", lastVersion, err)
		}
		_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, lastVersion)
		return err
	})
}

func printStatus(db *sql.DB, files []string) error {
	for _, file := range files {
		version := filepath.Base(file)
		done, err := applied(db, version)
		if err != nil {
			return err
		}

		state := "pending"
		if done {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, version)
	}
	return nil
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// extractMigrationPart returns the lines between "-- +migrate <section>" and
// the next marker.
func extractMigrationPart(content string, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "-- +migrate") {
			if inPart {
				break
			}
			inPart = strings.Contains(line, "-- +migrate "+section)
			continue
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
