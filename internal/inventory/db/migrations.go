package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a versioned schema change.
type Migration struct {
	Version     int
	Description string
	Up          string
}

// migrations lists all schema changes in order. The embedded schema.sql is
// idempotent, so version 1 only records that the base schema is present.
func migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "base schema: peers and groups with unique name/key indexes",
			Up:          "", // applied by Setup via the embedded schema
		},
	}
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return 0, fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	var version int
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer tx.Rollback()

	if m.Up != "" {
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
		m.Version, m.Description, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	return tx.Commit()
}

// runMigrations applies all pending migrations.
func runMigrations(ctx context.Context, db *sql.DB) error {
	version, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations() {
		if m.Version <= version {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}
