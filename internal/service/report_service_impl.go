package service

import (
	"context"
	"time"

	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/MrJohz/timesheettool/internal/repository"
)

type reportService struct {
	records  repository.RecordRepo
	observer UseCaseObserver
}

// NewReportService creates the read-side service behind ls and overtime.
func NewReportService(records repository.RecordRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{
		records:  records,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Get(ctx context.Context, idOrPrefix string) (*domain.RecordWithProject, error) {
	return s.records.GetByPrefix(ctx, idOrPrefix)
}

func (s *reportService) Running(ctx context.Context) (*domain.RecordWithProject, error) {
	return s.records.FindOpen(ctx)
}

func (s *reportService) List(ctx context.Context, since, until time.Time, g aggregate.Granularity, rounding time.Duration, now time.Time) (report *Report, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "list-records",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"granularity": string(g)},
		})
	}()

	records, err := s.records.ListRange(ctx, since, until)
	if err != nil {
		return nil, err
	}

	g = aggregate.PickGranularity(g, since, until)
	report = &Report{Granularity: g}
	if g == aggregate.GranularityAll {
		report.Records = records
		return report, nil
	}

	daily := aggregate.Daily(records, now, rounding)
	switch g {
	case aggregate.GranularityWeekly:
		report.Buckets = aggregate.Weekly(daily)
	case aggregate.GranularityMonthly:
		report.Buckets = aggregate.Monthly(daily)
	default:
		report.Buckets = daily
	}
	return report, nil
}

func (s *reportService) Overtime(ctx context.Context, since, until time.Time, expected, rounding time.Duration, now time.Time) (days []aggregate.OvertimeDay, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "overtime",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	records, err := s.records.ListRange(ctx, since, until)
	if err != nil {
		return nil, err
	}
	daily := aggregate.Daily(records, now, rounding)
	return aggregate.Overtime(daily, expected), nil
}
