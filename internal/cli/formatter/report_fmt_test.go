package formatter

import (
	"testing"
	"time"

	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/stretchr/testify/assert"
)

func TestFormatReport_DailyRowsAndSubtotal(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	out := FormatReport([]aggregate.Bucket{
		{Start: day, Rows: []aggregate.ProjectTotal{
			{Project: "acme", Total: 4 * time.Hour},
			{Project: "ops", Total: time.Hour},
		}},
	}, aggregate.GranularityDaily)

	assert.Contains(t, out, "Day")
	assert.Contains(t, out, "We  1 May '24")
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "4h 0m 0s")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "5h 0m 0s")
}

func TestFormatReport_HeadingsFollowGranularity(t *testing.T) {
	monday := time.Date(2024, 4, 29, 0, 0, 0, 0, time.Local)
	bucket := []aggregate.Bucket{
		{Start: monday, Rows: []aggregate.ProjectTotal{{Project: "acme", Total: time.Hour}}},
	}

	assert.Contains(t, FormatReport(bucket, aggregate.GranularityWeekly), "Week of")
	assert.Contains(t, FormatReport(bucket, aggregate.GranularityMonthly), "Apr 2024")
}

func TestFormatReport_EmptyRange(t *testing.T) {
	out := FormatReport(nil, aggregate.GranularityDaily)
	assert.Contains(t, out, "no records in this range")
}

func TestFormatOvertime(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	out := FormatOvertime([]aggregate.OvertimeDay{
		{Day: day, Worked: 9 * time.Hour, Balance: time.Hour},
		{Day: day.AddDate(0, 0, 1), Worked: 7*time.Hour + 30*time.Minute, Balance: 30 * time.Minute},
	})

	assert.Contains(t, out, "Hours worked for day 2024-05-01: 9.00   (balance: +1.00)")
	assert.Contains(t, out, "Hours worked for day 2024-05-02: 7.50   (balance: +0.50)")
}
