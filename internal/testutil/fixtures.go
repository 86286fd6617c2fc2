package testutil

import (
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/google/uuid"
)

// RecordOption mutates a test record before it is returned.
type RecordOption func(*domain.Record)

// WithStart sets the record's start instant.
func WithStart(t time.Time) RecordOption {
	return func(r *domain.Record) {
		r.StartedAt = t
	}
}

// WithEnd closes the record at the given instant.
func WithEnd(t time.Time) RecordOption {
	return func(r *domain.Record) {
		r.EndedAt = &t
	}
}

// WithRecordID overrides the generated id, for prefix-resolution tests.
func WithRecordID(id string) RecordOption {
	return func(r *domain.Record) {
		r.ID = id
	}
}

// NewTestRecord builds an unsaved record for the given project. Without
// options the record starts an hour ago and is still open.
func NewTestRecord(projectID, task string, opts ...RecordOption) *domain.Record {
	now := time.Now().UTC()
	r := &domain.Record{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Task:      task,
		StartedAt: now.Add(-time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
