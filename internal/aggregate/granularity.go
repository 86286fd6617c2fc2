package aggregate

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects the grouping resolution of a listing.
type Granularity string

const (
	GranularityAll     Granularity = "all"
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityAuto    Granularity = "auto"
)

// ParseGranularity parses a user-supplied granularity name.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GranularityAll, GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityAuto:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q (want all, daily, weekly, monthly or auto)", s)
}

// PickGranularity resolves auto from the window span: short windows list
// raw records, longer ones coarsen step by step. Explicit granularities
// pass through unchanged.
func PickGranularity(g Granularity, since, until time.Time) Granularity {
	if g != GranularityAuto {
		return g
	}
	span := until.Sub(since)
	switch {
	case span <= 6*24*time.Hour:
		return GranularityAll
	case span <= 4*7*24*time.Hour:
		return GranularityDaily
	case span <= 60*24*time.Hour:
		return GranularityWeekly
	default:
		return GranularityMonthly
	}
}
