package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent; Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS hackathons (
		id           TEXT PRIMARY KEY,
		organizer_id TEXT NOT NULL,
		is_approved  BOOLEAN NOT NULL DEFAULT FALSE,
		status       TEXT NOT NULL,
		version      BIGINT NOT NULL,
		doc          JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS hackathons_approved_status_idx ON hackathons (is_approved, status)`,
	`CREATE INDEX IF NOT EXISTS hackathons_organizer_idx ON hackathons (organizer_id)`,
	`CREATE INDEX IF NOT EXISTS hackathons_doc_idx ON hackathons USING GIN (doc jsonb_path_ops)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		subject     TEXT NOT NULL,
		message     TEXT NOT NULL,
		category    TEXT NOT NULL,
		priority    TEXT NOT NULL,
		status      TEXT NOT NULL,
		admin_notes TEXT NOT NULL DEFAULT '',
		resolved_by TEXT NOT NULL DEFAULT '',
		resolved_at TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS feedback_status_priority_idx ON feedback (status, priority)`,
	`CREATE INDEX IF NOT EXISTS feedback_created_idx ON feedback (created_at DESC)`,
}

// Migrate creates the tables and indexes the Postgres stores expect.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
