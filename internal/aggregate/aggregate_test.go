package aggregate

import (
	"testing"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(project, task string, start time.Time, d time.Duration) *domain.RecordWithProject {
	end := start.Add(d)
	return &domain.RecordWithProject{
		Record:      domain.Record{ID: "r-" + task, Task: task, StartedAt: start, EndedAt: &end},
		ProjectName: project,
	}
}

func openRec(project, task string, start time.Time) *domain.RecordWithProject {
	return &domain.RecordWithProject{
		Record:      domain.Record{ID: "r-" + task, Task: task, StartedAt: start},
		ProjectName: project,
	}
}

func TestRoundUp(t *testing.T) {
	unit := 15 * time.Minute
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"37 minutes rounds to 45", 37 * time.Minute, 45 * time.Minute},
		{"exact multiple unchanged", 45 * time.Minute, 45 * time.Minute},
		{"one minute costs a full unit", time.Minute, 15 * time.Minute},
		{"zero stays zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundUp(tt.in, unit))
		})
	}

	assert.Equal(t, 37*time.Minute, RoundUp(37*time.Minute, 0), "zero unit disables rounding")
}

func TestDaily_SumsPerProjectPerDay(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(18 * time.Hour)

	// The worked example: 9:00-12:00 plus 13:00-13:50 on the same project
	// and day is 3h50m raw, reported as 4h.
	records := []*domain.RecordWithProject{
		rec("acme", "design", day.Add(9*time.Hour), 3*time.Hour),
		rec("acme", "design", day.Add(13*time.Hour), 50*time.Minute),
	}

	buckets := Daily(records, now, DefaultRounding)
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Rows, 1)
	assert.Equal(t, day, buckets[0].Start)
	assert.Equal(t, "acme", buckets[0].Rows[0].Project)
	assert.Equal(t, 4*time.Hour, buckets[0].Rows[0].Total)
}

func TestDaily_ProjectsRoundedIndependently(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(18 * time.Hour)

	records := []*domain.RecordWithProject{
		rec("acme", "design", day.Add(9*time.Hour), 37*time.Minute),
		rec("blog", "writing", day.Add(11*time.Hour), time.Minute),
	}

	buckets := Daily(records, now, DefaultRounding)
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Rows, 2)
	assert.Equal(t, ProjectTotal{Project: "acme", Total: 45 * time.Minute}, buckets[0].Rows[0])
	assert.Equal(t, ProjectTotal{Project: "blog", Total: 15 * time.Minute}, buckets[0].Rows[1])
}

func TestDaily_OpenRecordCountsElapsed(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(10 * time.Hour)

	records := []*domain.RecordWithProject{
		openRec("acme", "design", day.Add(9*time.Hour)),
	}

	buckets := Daily(records, now, DefaultRounding)
	require.Len(t, buckets, 1)
	assert.Equal(t, time.Hour, buckets[0].Rows[0].Total, "open record measures against now")
}

func TestDaily_SplitsAtMidnight(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(48 * time.Hour)

	// 23:00 to 01:00 the next morning: one hour on each day.
	records := []*domain.RecordWithProject{
		rec("acme", "late shift", day.Add(23*time.Hour), 2*time.Hour),
	}

	buckets := Daily(records, now, DefaultRounding)
	require.Len(t, buckets, 2)
	assert.Equal(t, day, buckets[0].Start)
	assert.Equal(t, time.Hour, buckets[0].Rows[0].Total)
	assert.Equal(t, day.AddDate(0, 0, 1), buckets[1].Start)
	assert.Equal(t, time.Hour, buckets[1].Rows[0].Total)
}

func TestDaily_OrdersDaysAscending(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(96 * time.Hour)

	records := []*domain.RecordWithProject{
		rec("acme", "later", day.AddDate(0, 0, 2).Add(9*time.Hour), time.Hour),
		rec("acme", "earlier", day.Add(9*time.Hour), time.Hour),
	}

	buckets := Daily(records, now, DefaultRounding)
	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].Start.Before(buckets[1].Start))
}

func TestWeekly_SumsRoundedDailyTotals(t *testing.T) {
	// Wednesday May 1st and Thursday May 2nd 2024 share an ISO week.
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(96 * time.Hour)

	records := []*domain.RecordWithProject{
		rec("acme", "a", day.Add(9*time.Hour), 37*time.Minute),             // rounds to 45m
		rec("acme", "b", day.AddDate(0, 0, 1).Add(9*time.Hour), time.Minute), // rounds to 15m
	}

	daily := Daily(records, now, DefaultRounding)
	weekly := Weekly(daily)

	require.Len(t, weekly, 1)
	assert.Equal(t, time.Monday, weekly[0].Start.Weekday(), "weeks are keyed on their Monday")
	assert.Equal(t, time.Date(2024, 4, 29, 0, 0, 0, 0, time.Local), weekly[0].Start)
	assert.Equal(t, 60*time.Minute, weekly[0].Rows[0].Total,
		"weekly total is the sum of rounded daily totals")
}

func TestMonthly_GroupsByCalendarMonth(t *testing.T) {
	april := time.Date(2024, 4, 29, 0, 0, 0, 0, time.Local)
	now := april.AddDate(0, 1, 0)

	records := []*domain.RecordWithProject{
		rec("acme", "april", april.Add(9*time.Hour), time.Hour),
		rec("acme", "may", april.AddDate(0, 0, 2).Add(9*time.Hour), time.Hour),
	}

	monthly := Monthly(Daily(records, now, DefaultRounding))
	require.Len(t, monthly, 2)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local), monthly[0].Start)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), monthly[1].Start)
}

func TestOvertime_RunningBalance(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	now := day.Add(96 * time.Hour)

	records := []*domain.RecordWithProject{
		rec("acme", "long day", day.Add(9*time.Hour), 9*time.Hour),
		rec("acme", "short day", day.AddDate(0, 0, 1).Add(9*time.Hour), 7*time.Hour),
	}

	days := Overtime(Daily(records, now, DefaultRounding), 8*time.Hour)
	require.Len(t, days, 2)
	assert.Equal(t, 9*time.Hour, days[0].Worked)
	assert.Equal(t, time.Hour, days[0].Balance)
	assert.Equal(t, 7*time.Hour, days[1].Worked)
	assert.Equal(t, time.Duration(0), days[1].Balance, "balance carries across days")
}

func TestPickGranularity(t *testing.T) {
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		span time.Duration
		want Granularity
	}{
		{"short span lists raw records", 3 * 24 * time.Hour, GranularityAll},
		{"six days is still all", 6 * 24 * time.Hour, GranularityAll},
		{"two weeks is daily", 14 * 24 * time.Hour, GranularityDaily},
		{"six weeks is weekly", 42 * 24 * time.Hour, GranularityWeekly},
		{"a quarter is monthly", 90 * 24 * time.Hour, GranularityMonthly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickGranularity(GranularityAuto, since, since.Add(tt.span)))
		})
	}

	assert.Equal(t, GranularityDaily,
		PickGranularity(GranularityDaily, since, since.Add(90*24*time.Hour)),
		"explicit granularity passes through")
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("Daily")
	require.NoError(t, err)
	assert.Equal(t, GranularityDaily, g)

	_, err = ParseGranularity("hourly")
	assert.Error(t, err)
}
