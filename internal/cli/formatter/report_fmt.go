package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/charmbracelet/lipgloss"
)

// FormatReport renders aggregated buckets as a table. The first column label
// follows the granularity; the bucket label appears on its first row only,
// and buckets with more than one project get a dimmed subtotal row.
func FormatReport(buckets []aggregate.Bucket, g aggregate.Granularity) string {
	if len(buckets) == 0 {
		return Dim("no records in this range") + "\n"
	}

	var rows [][]string
	for _, bucket := range buckets {
		label := bucketLabel(bucket.Start, g)
		for i, row := range bucket.Rows {
			if i > 0 {
				label = ""
			}
			rows = append(rows, []string{label, row.Project, FormatDuration(row.Total)})
		}
		if len(bucket.Rows) > 1 {
			rows = append(rows, []string{"", Dim("total"), Dim(FormatDuration(bucket.Total()))})
		}
	}

	return RenderTable([]string{bucketHeading(g), "Project", "Time"}, rows)
}

func bucketHeading(g aggregate.Granularity) string {
	switch g {
	case aggregate.GranularityWeekly:
		return "Week of"
	case aggregate.GranularityMonthly:
		return "Month"
	default:
		return "Day"
	}
}

func bucketLabel(start time.Time, g aggregate.Granularity) string {
	if g == aggregate.GranularityMonthly {
		return start.Format("Jan 2006")
	}
	return DayHeading(start)
}

// FormatOvertime renders the per-day overtime balance, one line per day:
//
//	Hours worked for day 2024-05-01: 9.00   (balance: +1.00)
func FormatOvertime(days []aggregate.OvertimeDay) string {
	if len(days) == 0 {
		return Dim("no records in this range") + "\n"
	}

	var b strings.Builder
	for _, d := range days {
		fmt.Fprintf(&b, "Hours worked for day %s: %s   (balance: %s)\n",
			d.Day.Format("2006-01-02"),
			DecimalHours(d.Worked),
			balanceStyle(d.Balance).Render(SignedDecimalHours(d.Balance)),
		)
	}
	return b.String()
}

func balanceStyle(balance time.Duration) lipgloss.Style {
	if balance < 0 {
		return StyleRed
	}
	return StyleGreen
}
