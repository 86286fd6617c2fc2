package domain

import "time"

// ShortIDLen is the number of leading ID characters shown in listings and
// accepted as a prefix by edit.
const ShortIDLen = 5

// Record is one tracked interval of work: a project, a free-text task label,
// a start instant, and an optional end instant. A record with no end is
// "open" (work still ongoing).
type Record struct {
	ID        string
	ProjectID string
	Task      string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordWithProject is a record joined with its project's display name,
// which is what listings and reports work with.
type RecordWithProject struct {
	Record
	ProjectName string
}

// Open reports whether the record has no end time yet.
func (r *Record) Open() bool {
	return r.EndedAt == nil
}

// Duration returns the record's length. Open records measure elapsed time
// against now.
func (r *Record) Duration(now time.Time) time.Duration {
	if r.EndedAt == nil {
		return now.Sub(r.StartedAt)
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// ShortID returns the display prefix of the record's ID.
func (r *Record) ShortID() string {
	if len(r.ID) > ShortIDLen {
		return r.ID[:ShortIDLen]
	}
	return r.ID
}

// Validate checks the interval invariant: if the record is closed, its end
// must be strictly after its start. Zero-length and negative intervals are
// rejected with ErrInvalidInterval.
func (r *Record) Validate() error {
	if r.EndedAt != nil && !r.EndedAt.After(r.StartedAt) {
		return ErrInvalidInterval
	}
	return nil
}
