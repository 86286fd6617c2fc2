// Package aggregate turns a window of records into reportable summaries:
// grouping by calendar period, summing per project, and ceiling-rounding
// totals to the configured unit. Everything here is pure; "now" is always
// passed in so open records can report elapsed time.
package aggregate

import (
	"sort"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
)

// DefaultRounding is the rounding unit used when no configuration overrides it.
const DefaultRounding = 15 * time.Minute

// ProjectTotal is one report row: a project's rounded total within a bucket.
type ProjectTotal struct {
	Project string
	Total   time.Duration
}

// Bucket is one reporting period (a day, an ISO week, or a calendar month),
// identified by its local start, with per-project rows in name order.
type Bucket struct {
	Start time.Time
	Rows  []ProjectTotal
}

// Total sums the bucket's project rows.
func (b Bucket) Total() time.Duration {
	var sum time.Duration
	for _, row := range b.Rows {
		sum += row.Total
	}
	return sum
}

// RoundUp rounds a duration up to the next multiple of unit. Exact
// multiples are unchanged; any non-zero remainder costs a whole unit, so a
// one-minute stint still reports a full unit. A unit of zero or less
// disables rounding.
func RoundUp(d, unit time.Duration) time.Duration {
	if unit <= 0 || d <= 0 {
		return d
	}
	if rem := d % unit; rem != 0 {
		return d + unit - rem
	}
	return d
}

// segment is a record's share of a single calendar day.
type segment struct {
	day      time.Time
	duration time.Duration
}

// splitAtMidnight cuts an interval at each local midnight so that every
// piece is attributed to its own calendar day. Intervals that do not cross
// midnight come back as a single segment.
func splitAtMidnight(start, end time.Time) []segment {
	var segs []segment
	for cur := start; cur.Before(end); {
		y, m, d := cur.Date()
		next := time.Date(y, m, d, 0, 0, 0, 0, cur.Location()).AddDate(0, 0, 1)
		if next.After(end) {
			next = end
		}
		segs = append(segs, segment{
			day:      time.Date(y, m, d, 0, 0, 0, 0, cur.Location()),
			duration: next.Sub(cur),
		})
		cur = next
	}
	return segs
}

// Daily groups records by the local calendar day, sums durations per
// project, and rounds each total up to unit. Open records count their
// elapsed time up to now. Days come back ascending, project rows in name
// order.
func Daily(records []*domain.RecordWithProject, now time.Time, unit time.Duration) []Bucket {
	raw := make(map[time.Time]map[string]time.Duration)
	for _, rec := range records {
		end := now
		if rec.EndedAt != nil {
			end = *rec.EndedAt
		}
		for _, seg := range splitAtMidnight(rec.StartedAt.Local(), end.Local()) {
			byProject := raw[seg.day]
			if byProject == nil {
				byProject = make(map[string]time.Duration)
				raw[seg.day] = byProject
			}
			byProject[rec.ProjectName] += seg.duration
		}
	}

	buckets := make([]Bucket, 0, len(raw))
	for day, byProject := range raw {
		b := Bucket{Start: day, Rows: make([]ProjectTotal, 0, len(byProject))}
		for project, total := range byProject {
			b.Rows = append(b.Rows, ProjectTotal{Project: project, Total: RoundUp(total, unit)})
		}
		sort.Slice(b.Rows, func(i, j int) bool { return b.Rows[i].Project < b.Rows[j].Project })
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets
}

// Weekly regroups daily buckets by ISO week, keyed on the week's Monday.
// Totals are sums of the already-rounded daily totals, so a week's report
// always equals the sum of its days' reports.
func Weekly(daily []Bucket) []Bucket {
	return regroup(daily, func(day time.Time) time.Time {
		back := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -back)
	})
}

// Monthly regroups daily buckets by calendar month, keyed on the first of
// the month. As with Weekly, rounding has already happened per day.
func Monthly(daily []Bucket) []Bucket {
	return regroup(daily, func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	})
}

func regroup(daily []Bucket, keyFn func(day time.Time) time.Time) []Bucket {
	raw := make(map[time.Time]map[string]time.Duration)
	for _, day := range daily {
		key := keyFn(day.Start)
		byProject := raw[key]
		if byProject == nil {
			byProject = make(map[string]time.Duration)
			raw[key] = byProject
		}
		for _, row := range day.Rows {
			byProject[row.Project] += row.Total
		}
	}

	buckets := make([]Bucket, 0, len(raw))
	for start, byProject := range raw {
		b := Bucket{Start: start, Rows: make([]ProjectTotal, 0, len(byProject))}
		for project, total := range byProject {
			b.Rows = append(b.Rows, ProjectTotal{Project: project, Total: total})
		}
		sort.Slice(b.Rows, func(i, j int) bool { return b.Rows[i].Project < b.Rows[j].Project })
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets
}

// OvertimeDay is one line of the overtime report: the rounded hours worked
// on a day and the running balance of worked minus expected across all days
// so far.
type OvertimeDay struct {
	Day     time.Time
	Worked  time.Duration
	Balance time.Duration
}

// Overtime folds daily buckets into a running overtime balance against an
// expected workday length.
func Overtime(daily []Bucket, expected time.Duration) []OvertimeDay {
	days := make([]OvertimeDay, 0, len(daily))
	var balance time.Duration
	for _, b := range daily {
		worked := b.Total()
		balance += worked - expected
		days = append(days, OvertimeDay{Day: b.Start, Worked: worked, Balance: balance})
	}
	return days
}
