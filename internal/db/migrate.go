package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate brings the schema to the current revision. The statement list is
// re-run in full on every open; each statement is individually idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run against an already-upgraded
			// schema; tolerate those.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateInlineTasks(db); err != nil {
		return fmt.Errorf("migrating legacy tasks table: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS records (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		task       TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (ended_at IS NULL OR ended_at > started_at)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_records_started ON records(started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_records_open ON records(started_at) WHERE ended_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS settings (
		id           TEXT PRIMARY KEY,
		rounding_min INTEGER NOT NULL DEFAULT 15,
		workday_min  INTEGER NOT NULL DEFAULT 480
	)`,

	// Seed the single settings row.
	`INSERT OR IGNORE INTO settings (id) VALUES ('default')`,
}

// migrateInlineTasks upgrades databases from the revision where tasks were
// their own entity (records carried a task_id into a tasks table) to the
// current inline-text form. The rewrite joins each record back to its task
// and project, then drops the legacy table, all in one transaction, so both
// revisions load identically afterwards.
func migrateInlineTasks(db *sql.DB) error {
	ctx := context.Background()

	var hasTasks int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`,
	).Scan(&hasTasks); err != nil {
		return fmt.Errorf("checking for legacy tasks table: %w", err)
	}
	if hasTasks == 0 {
		return nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS records_new`); err != nil {
		return fmt.Errorf("dropping stale records_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `CREATE TABLE records_new (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id),
		task       TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (ended_at IS NULL OR ended_at > started_at)
	)`); err != nil {
		return fmt.Errorf("creating records_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO records_new (
		id, project_id, task, started_at, ended_at, created_at, updated_at
	) SELECT
		r.id, t.project_id, t.name, r.started_at, r.ended_at, r.created_at, r.updated_at
	FROM records r
	JOIN tasks t ON t.id = r.task_id`); err != nil {
		return fmt.Errorf("rewriting records with inline tasks: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE records`); err != nil {
		return fmt.Errorf("dropping old records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE tasks`); err != nil {
		return fmt.Errorf("dropping legacy tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE records_new RENAME TO records`); err != nil {
		return fmt.Errorf("renaming records_new: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_records_started ON records(started_at)`); err != nil {
		return fmt.Errorf("recreating idx_records_started: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_records_open ON records(started_at) WHERE ended_at IS NULL`); err != nil {
		return fmt.Errorf("recreating idx_records_open: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tasks migration: %w", err)
	}
	committed = true

	return nil
}
