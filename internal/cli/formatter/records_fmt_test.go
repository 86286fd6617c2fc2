package formatter

import (
	"testing"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/stretchr/testify/assert"
)

func mayTwelfth(hour, min, sec int) time.Time {
	return time.Date(2024, 5, 12, hour, min, sec, 0, time.Local)
}

func listedRecord(task string, start time.Time, end *time.Time) *domain.RecordWithProject {
	return &domain.RecordWithProject{
		Record: domain.Record{
			ID:        "hello-0000-0000",
			Task:      task,
			StartedAt: start,
			EndedAt:   end,
		},
		ProjectName: "blob",
	}
}

func TestFormatRecords_ClosedRecord(t *testing.T) {
	end := mayTwelfth(13, 34, 45)
	out := FormatRecords([]*domain.RecordWithProject{
		listedRecord("blub", mayTwelfth(12, 23, 34), &end),
	}, mayTwelfth(14, 0, 0))

	assert.Equal(t,
		"Su 12 May '24  12:23:34-13:34:45       1h 11m 11s  (hello)  blob        blub\n",
		out)
}

func TestFormatRecords_OpenRecordReportsElapsed(t *testing.T) {
	out := FormatRecords([]*domain.RecordWithProject{
		listedRecord("blub", mayTwelfth(12, 23, 34), nil),
	}, mayTwelfth(14, 0, 0))

	assert.Equal(t,
		"Su 12 May '24  12:23:34-               1h 36m 26s  (hello)  blob        blub\n",
		out)
}

func TestFormatRecords_DeduplicatesDateHeadings(t *testing.T) {
	end := mayTwelfth(13, 34, 45)
	out := FormatRecords([]*domain.RecordWithProject{
		listedRecord("blub", mayTwelfth(12, 23, 34), &end),
		listedRecord("blub", mayTwelfth(14, 45, 56), nil),
	}, mayTwelfth(15, 0, 0))

	assert.Equal(t,
		"Su 12 May '24  12:23:34-13:34:45       1h 11m 11s  (hello)  blob        blub\n"+
			"               14:45:56-                   14m 4s  (hello)  blob        blub\n",
		out)
}

func TestFormatRecords_MidnightGapMarker(t *testing.T) {
	end := mayTwelfth(1, 0, 0).AddDate(0, 0, 1)
	out := FormatRecords([]*domain.RecordWithProject{
		listedRecord("night shift", mayTwelfth(23, 0, 0), &end),
	}, end)

	assert.Contains(t, out, "23:00:00-01:00:00+1")
}
