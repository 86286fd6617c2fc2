package domain

import "errors"

// Sentinel errors for record lifecycle violations. Callers match with
// errors.Is; layers above wrap them with %w and context.
var (
	// ErrInvalidInterval means a record's end is not strictly after its start.
	ErrInvalidInterval = errors.New("end must be strictly after start")

	// ErrNoOpenRecord means stop was requested with no open record.
	ErrNoOpenRecord = errors.New("no open record")

	// ErrMultipleOpenRecords means more than one open record exists, which
	// only happens when edits bypass the normal stop flow. We refuse to
	// guess which one was meant.
	ErrMultipleOpenRecords = errors.New("multiple open records")

	// ErrConcurrentModification means a record changed between the read and
	// write of a single command, e.g. a second process closed the open
	// record first.
	ErrConcurrentModification = errors.New("record was modified concurrently")
)
