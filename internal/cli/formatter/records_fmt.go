package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
)

// FormatRecords renders the raw record listing. Each local calendar day gets
// its date heading once; records on the same day indent under it:
//
//	We  1 May '24  09:00:00-12:00:00       3h 0m 0s  (3fa2c)  acme        design
//	               13:00:00-                 10m 30s  (77b1e)  acme        standup
//
// Open records leave the end time blank and report elapsed time against now.
// A record ending on a later day carries a "+N" day marker after its end time.
func FormatRecords(records []*domain.RecordWithProject, now time.Time) string {
	var b strings.Builder
	var lastDay time.Time

	for _, rec := range records {
		start := rec.StartedAt.Local()

		day := startOfDay(start)
		if day.Equal(lastDay) {
			b.WriteString(strings.Repeat(" ", len("We  1 May '24")))
		} else {
			lastDay = day
			b.WriteString(DayHeading(start))
		}

		b.WriteString("  ")
		b.WriteString(formatTimes(rec, now))

		// The project cell is styled, so pad by visible width rather than
		// letting fmt count escape sequences.
		project := StyleBlue.Render(rec.ProjectName)
		if pad := 10 - len(rec.ProjectName); pad > 0 {
			project += strings.Repeat(" ", pad)
		}
		fmt.Fprintf(&b, " %14s  %s  %s  %s\n",
			FormatDuration(rec.Duration(now)),
			ShortID(rec.ID),
			project,
			rec.Task,
		)
	}

	return b.String()
}

// formatTimes renders the "09:00:00-12:00:00  " interval column, 19 cells
// wide in every branch so the duration column stays aligned.
func formatTimes(rec *domain.RecordWithProject, now time.Time) string {
	start := rec.StartedAt.Local()
	if rec.EndedAt == nil {
		return Clock(start) + "-" + strings.Repeat(" ", 10)
	}

	end := rec.EndedAt.Local()
	times := Clock(start) + "-" + Clock(end)
	if gap := daysBetween(start, end); gap > 0 {
		return times + fmt.Sprintf("+%d", gap)
	}
	return times + "  "
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(start, end time.Time) int {
	return int(startOfDay(end).Sub(startOfDay(start)) / (24 * time.Hour))
}
