package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/MrJohz/timesheettool/internal/repository"
	"github.com/MrJohz/timesheettool/internal/service"
	"github.com/MrJohz/timesheettool/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracker(t *testing.T) (service.TrackerService, repository.RecordRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	return service.NewTrackerService(uow), repository.NewSQLiteRecordRepo(database)
}

func ptr(t time.Time) *time.Time { return &t }

// Local midnight so daily grouping in the report tests is stable across
// timezones.
var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)

func TestStart_ClosedRecordRoundTrips(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	start := day.Add(9 * time.Hour)
	end := day.Add(12 * time.Hour)
	result, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: start, End: ptr(end),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Created)

	got, err := records.GetByID(ctx, result.Created.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", got.ProjectName)
	assert.Equal(t, "design", got.Task)
	assert.True(t, got.StartedAt.Equal(start), "interval round-trips exactly")
	require.NotNil(t, got.EndedAt)
	assert.True(t, got.EndedAt.Equal(end))
}

func TestStart_OpenRecord(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	result, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Created.EndedAt)

	open, err := records.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, result.Created.ID, open[0].ID)
}

func TestStart_InvalidIntervalPersistsNothing(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	start := day.Add(12 * time.Hour)
	for name, end := range map[string]time.Time{
		"end before start": start.Add(-time.Hour),
		"zero length":      start,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tracker.Start(ctx, service.StartRequest{
				Project: "acme", Task: "design", Start: start, End: ptr(end),
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInterval)

			got, err := records.ListRange(ctx, day, day.AddDate(0, 0, 2))
			require.NoError(t, err)
			assert.Empty(t, got, "no record may be persisted on a failed create")
		})
	}
}

func TestStart_TruncatesRunningRecord(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	first, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	second, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "review", Start: day.Add(11 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, second.Truncated, "the running record must be completed")
	assert.Equal(t, first.Created.ID, second.Truncated.ID)
	assert.Nil(t, second.Continuation)

	prev, err := records.GetByID(ctx, first.Created.ID)
	require.NoError(t, err)
	require.NotNil(t, prev.EndedAt)
	assert.True(t, prev.EndedAt.Equal(day.Add(11*time.Hour)), "previous record ends at the new start")

	open, err := records.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1, "only the new record stays open")
	assert.Equal(t, second.Created.ID, open[0].ID)
}

func TestStart_SplitsEnclosingClosedRecord(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	outer, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design",
		Start: day.Add(9 * time.Hour), End: ptr(day.Add(17 * time.Hour)),
	})
	require.NoError(t, err)

	// A closed record dropped into the middle of the previous interval.
	result, err := tracker.Start(ctx, service.StartRequest{
		Project: "ops", Task: "incident",
		Start: day.Add(12 * time.Hour), End: ptr(day.Add(13 * time.Hour)),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Truncated)
	require.NotNil(t, result.Continuation, "the enclosing record must be split in two")

	head, err := records.GetByID(ctx, outer.Created.ID)
	require.NoError(t, err)
	assert.True(t, head.EndedAt.Equal(day.Add(12*time.Hour)))

	tail, err := records.GetByID(ctx, result.Continuation.ID)
	require.NoError(t, err)
	assert.Equal(t, "design", tail.Task, "the tail keeps the original task")
	assert.True(t, tail.StartedAt.Equal(day.Add(13*time.Hour)))
	assert.True(t, tail.EndedAt.Equal(day.Add(17*time.Hour)))
}

func TestStart_AllowOverlapLeavesNeighboursAlone(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	first, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	result, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "meeting", Start: day.Add(10 * time.Hour),
		End: ptr(day.Add(11 * time.Hour)), AllowOverlap: true,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Truncated)

	prev, err := records.GetByID(ctx, first.Created.ID)
	require.NoError(t, err)
	assert.Nil(t, prev.EndedAt, "the running record keeps running")
}

func TestStop_ClosesTheOpenRecord(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	stopped, err := tracker.Stop(ctx, day.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, started.Created.ID, stopped.ID)
	require.NotNil(t, stopped.EndedAt)

	got, err := records.GetByID(ctx, started.Created.ID)
	require.NoError(t, err)
	assert.False(t, got.Open())

	open, err := records.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestStop_NoOpenRecord(t *testing.T) {
	tracker, _ := setupTracker(t)

	_, err := tracker.Stop(context.Background(), day.Add(12*time.Hour))
	assert.ErrorIs(t, err, domain.ErrNoOpenRecord)
}

func TestStop_EndBeforeStartIsRejected(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	_, err = tracker.Stop(ctx, day.Add(8*time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	got, err := records.GetByID(ctx, started.Created.ID)
	require.NoError(t, err)
	assert.True(t, got.Open(), "a failed stop must not close the record")
}

func TestStop_MultipleOpenRecords(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	// Build the precondition violation directly: two open records, as left
	// behind by overlapping starts that bypass completion.
	_, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "one", Start: day.Add(9 * time.Hour), AllowOverlap: true,
	})
	require.NoError(t, err)
	_, err = tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "two", Start: day.Add(10 * time.Hour), AllowOverlap: true,
	})
	require.NoError(t, err)

	open, err := records.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)

	_, err = tracker.Stop(ctx, day.Add(12*time.Hour))
	assert.ErrorIs(t, err, domain.ErrMultipleOpenRecords)
}

func TestEdit_NotFoundMutatesNothing(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	_, err = tracker.Edit(ctx, "zzzzz", service.EditPatch{Task: ptrStr("hacked")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := records.GetByID(ctx, started.Created.ID)
	require.NoError(t, err)
	assert.Equal(t, "design", got.Task)
}

func TestEdit_ByShortPrefix(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	edited, err := tracker.Edit(ctx, started.Created.ID[:domain.ShortIDLen], service.EditPatch{
		Task: ptrStr("research"),
	})
	require.NoError(t, err)
	assert.Equal(t, started.Created.ID, edited.ID)
	assert.Equal(t, "research", edited.Task)
}

func TestEdit_InvalidIntervalLeavesRecordUnchanged(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design",
		Start: day.Add(9 * time.Hour), End: ptr(day.Add(12 * time.Hour)),
	})
	require.NoError(t, err)

	_, err = tracker.Edit(ctx, started.Created.ID, service.EditPatch{
		End: ptr(day.Add(8 * time.Hour)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	got, err := records.GetByID(ctx, started.Created.ID)
	require.NoError(t, err)
	assert.True(t, got.EndedAt.Equal(day.Add(12*time.Hour)), "stored record keeps its old end")
}

func TestEdit_MoveToNewProjectCreatesIt(t *testing.T) {
	tracker, _ := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design", Start: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	edited, err := tracker.Edit(ctx, started.Created.ID, service.EditPatch{
		Project: ptrStr("skunkworks"),
	})
	require.NoError(t, err)
	assert.Equal(t, "skunkworks", edited.ProjectName)
	assert.NotEqual(t, started.Created.ProjectID, edited.ProjectID)
}

func TestEdit_ReopenAndReclose(t *testing.T) {
	tracker, records := setupTracker(t)
	ctx := context.Background()

	started, err := tracker.Start(ctx, service.StartRequest{
		Project: "acme", Task: "design",
		Start: day.Add(9 * time.Hour), End: ptr(day.Add(12 * time.Hour)),
	})
	require.NoError(t, err)

	edited, err := tracker.Edit(ctx, started.Created.ID, service.EditPatch{ClearEnd: true})
	require.NoError(t, err)
	assert.True(t, edited.Open(), "clearing the end reopens the record")

	open, err := records.ListOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = tracker.Stop(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)
}

func ptrStr(s string) *string { return &s }
