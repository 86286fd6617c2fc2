package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJohz/timesheettool/internal/db"
	"github.com/MrJohz/timesheettool/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo over the single seeded
// settings row.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT id, rounding_min, workday_min FROM settings WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.Settings
	if err := row.Scan(&s.ID, &s.RoundingMin, &s.WorkdayMin); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	if s.ID == "" {
		s.ID = "default"
	}
	query := `INSERT OR REPLACE INTO settings (id, rounding_min, workday_min) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.RoundingMin, s.WorkdayMin)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
