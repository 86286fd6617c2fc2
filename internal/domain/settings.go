package domain

import "time"

// Settings are the durable per-user preferences stored alongside the data.
// A single seeded row exists; command-line flags override per invocation.
type Settings struct {
	ID          string
	RoundingMin int
	WorkdayMin  int
}

// Rounding returns the configured rounding unit as a duration.
func (s *Settings) Rounding() time.Duration {
	return time.Duration(s.RoundingMin) * time.Minute
}

// Workday returns the expected length of a working day as a duration.
func (s *Settings) Workday() time.Duration {
	return time.Duration(s.WorkdayMin) * time.Minute
}
