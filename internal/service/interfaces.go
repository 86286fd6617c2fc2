package service

import (
	"context"
	"time"

	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/MrJohz/timesheettool/internal/domain"
)

// StartRequest describes a new record. End is optional; a nil End starts an
// open record. Unless AllowOverlap is set, starting over an existing
// interval completes (and possibly splits) that interval first.
type StartRequest struct {
	Project      string
	Task         string
	Start        time.Time
	End          *time.Time
	AllowOverlap bool
}

// StartResult reports the created record plus any neighbours the overlap
// handling touched: Truncated is the previous record now ending at the new
// start, Continuation is the tail re-created after a mid-interval insert.
type StartResult struct {
	Created      *domain.Record
	Truncated    *domain.Record
	Continuation *domain.Record
}

// EditPatch carries the fields an edit wants to change; nil fields are left
// alone. ClearEnd reopens the record and wins over End.
type EditPatch struct {
	Start    *time.Time
	End      *time.Time
	ClearEnd bool
	Project  *string
	Task     *string
}

// TrackerService owns the record lifecycle: creating, closing, and editing
// intervals while holding the interval invariant.
type TrackerService interface {
	Start(ctx context.Context, req StartRequest) (*StartResult, error)
	Stop(ctx context.Context, end time.Time) (*domain.RecordWithProject, error)
	Edit(ctx context.Context, idOrPrefix string, patch EditPatch) (*domain.RecordWithProject, error)
}

// Report is the outcome of a listing: either the raw records (granularity
// all) or aggregated buckets.
type Report struct {
	Granularity aggregate.Granularity
	Records     []*domain.RecordWithProject
	Buckets     []aggregate.Bucket
}

// ReportService reads records: single lookups, the running record, and
// aggregated listings over a window.
type ReportService interface {
	// Get resolves a record by full id or unique short prefix.
	Get(ctx context.Context, idOrPrefix string) (*domain.RecordWithProject, error)
	// Running returns the currently open record, or repository.ErrNotFound.
	Running(ctx context.Context) (*domain.RecordWithProject, error)
	List(ctx context.Context, since, until time.Time, g aggregate.Granularity, rounding time.Duration, now time.Time) (*Report, error)
	Overtime(ctx context.Context, since, until time.Time, expected, rounding time.Duration, now time.Time) ([]aggregate.OvertimeDay, error)
}

// SettingsService reads and writes the durable preferences row.
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	SetRounding(ctx context.Context, rounding time.Duration) (*domain.Settings, error)
	SetWorkday(ctx context.Context, workday time.Duration) (*domain.Settings, error)
}
