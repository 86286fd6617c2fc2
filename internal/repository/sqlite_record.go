package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/db"
	"github.com/MrJohz/timesheettool/internal/domain"
)

// recordColumns is the canonical SELECT column list for records joined with
// their project name.
const recordColumns = `r.id, r.project_id, r.task, r.started_at, r.ended_at,
		r.created_at, r.updated_at, p.name`

// SQLiteRecordRepo implements RecordRepo using a SQLite database.
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo. Accepts a DBTX so the
// same repository runs standalone or tx-scoped inside a unit of work.
func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

func (r *SQLiteRecordRepo) Create(ctx context.Context, rec *domain.Record) error {
	query := `INSERT INTO records (id, project_id, task, started_at, ended_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ProjectID,
		rec.Task,
		rec.StartedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(rec.EndedAt, time.RFC3339),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (r *SQLiteRecordRepo) GetByID(ctx context.Context, id string) (*domain.RecordWithProject, error) {
	query := `SELECT ` + recordColumns + `
		FROM records r JOIN projects p ON p.id = r.project_id
		WHERE r.id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("loading record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRecordRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.RecordWithProject, error) {
	query := `SELECT ` + recordColumns + `
		FROM records r JOIN projects p ON p.id = r.project_id
		WHERE r.id = ? OR r.id LIKE ? || '%'
		LIMIT 2`
	rows, err := r.db.QueryContext(ctx, query, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("resolving record prefix: %w", err)
	}
	defer rows.Close()

	matches, err := scanRecordRows(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("record %q: %w", prefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("record %q: %w", prefix, ErrAmbiguousID)
	}
}

func (r *SQLiteRecordRepo) Update(ctx context.Context, rec *domain.Record) error {
	query := `UPDATE records SET project_id = ?, task = ?, started_at = ?, ended_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.ProjectID,
		rec.Task,
		rec.StartedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(rec.EndedAt, time.RFC3339),
		nowUTC(),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %q: %w", rec.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRecordRepo) FindOpen(ctx context.Context) (*domain.RecordWithProject, error) {
	query := `SELECT ` + recordColumns + `
		FROM records r JOIN projects p ON p.id = r.project_id
		WHERE r.ended_at IS NULL
		ORDER BY r.started_at DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("open record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("finding open record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRecordRepo) ListOpen(ctx context.Context) ([]*domain.RecordWithProject, error) {
	query := `SELECT ` + recordColumns + `
		FROM records r JOIN projects p ON p.id = r.project_id
		WHERE r.ended_at IS NULL
		ORDER BY r.started_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing open records: %w", err)
	}
	defer rows.Close()

	return scanRecordRows(rows)
}

func (r *SQLiteRecordRepo) FindLatestStartedBefore(ctx context.Context, before time.Time) (*domain.RecordWithProject, error) {
	query := `SELECT ` + recordColumns + `
		FROM records r JOIN projects p ON p.id = r.project_id
		WHERE r.started_at < ?
		ORDER BY r.started_at DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, before.UTC().Format(time.RFC3339))

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("finding latest record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRecordRepo) Complete(ctx context.Context, id string, end time.Time) error {
	// The ended_at IS NULL guard makes the close atomic: if another process
	// got there first, no rows match and we report the race instead of
	// overwriting its end time.
	query := `UPDATE records SET ended_at = ?, updated_at = ? WHERE id = ? AND ended_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, end.UTC().Format(time.RFC3339), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("completing record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %q already closed: %w", id, domain.ErrConcurrentModification)
	}
	return nil
}

func (r *SQLiteRecordRepo) ListRange(ctx context.Context, since, until time.Time) ([]*domain.RecordWithProject, error) {
	// RFC3339 UTC strings compare lexicographically in chronological order.
	query := `SELECT ` + recordColumns + `
		FROM records r JOIN projects p ON p.id = r.project_id
		WHERE r.started_at >= ? AND r.started_at < ?
		ORDER BY r.started_at`
	rows, err := r.db.QueryContext(ctx, query,
		since.UTC().Format(time.RFC3339), until.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	return scanRecordRows(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (*domain.RecordWithProject, error) {
	var rec domain.RecordWithProject
	var startedAtStr, createdAtStr, updatedAtStr string
	var endedAtStr sql.NullString

	err := s.Scan(
		&rec.ID, &rec.ProjectID, &rec.Task,
		&startedAtStr, &endedAtStr,
		&createdAtStr, &updatedAtStr,
		&rec.ProjectName,
	)
	if err != nil {
		return nil, err
	}

	var parseErr error
	rec.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	rec.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rec.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	rec.EndedAt = parseNullableTime(endedAtStr, time.RFC3339)

	return &rec, nil
}

func scanRecordRows(rows *sql.Rows) ([]*domain.RecordWithProject, error) {
	var records []*domain.RecordWithProject
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
