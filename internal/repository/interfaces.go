package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
)

// ErrNotFound is returned when a lookup targets an entity that does not
// exist. Wrapped per entity ("record: not found"); match with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousID is returned when a short id prefix matches more than one
// record.
var ErrAmbiguousID = errors.New("ambiguous record id")

type ProjectRepo interface {
	// UpsertByName returns the project with the given name, creating it if
	// it does not exist yet.
	UpsertByName(ctx context.Context, name string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

type RecordRepo interface {
	Create(ctx context.Context, r *domain.Record) error
	GetByID(ctx context.Context, id string) (*domain.RecordWithProject, error)
	// GetByPrefix resolves a record by full id or unique short prefix.
	GetByPrefix(ctx context.Context, prefix string) (*domain.RecordWithProject, error)
	Update(ctx context.Context, r *domain.Record) error

	// FindOpen returns the most recently started open record, or ErrNotFound
	// when nothing is running.
	FindOpen(ctx context.Context) (*domain.RecordWithProject, error)
	// ListOpen returns all records with no end time, most recent first.
	ListOpen(ctx context.Context) ([]*domain.RecordWithProject, error)
	// FindLatestStartedBefore returns the most recently started record with
	// started_at strictly before the given instant, or ErrNotFound.
	FindLatestStartedBefore(ctx context.Context, before time.Time) (*domain.RecordWithProject, error)
	// Complete closes the record if it is still open. Returns
	// domain.ErrConcurrentModification if the record was closed (or removed)
	// between the caller's read and this write.
	Complete(ctx context.Context, id string, end time.Time) error

	// ListRange returns records with since <= started_at < until, ordered by
	// started_at ascending.
	ListRange(ctx context.Context, since, until time.Time) ([]*domain.RecordWithProject, error)
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}
