package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/db"
	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/MrJohz/timesheettool/internal/repository"
	"github.com/google/uuid"
)

type trackerService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewTrackerService creates the record lifecycle service. All mutating
// operations run inside a unit-of-work transaction with tx-scoped
// repositories, so reads and writes of one command commit atomically.
func NewTrackerService(uow db.UnitOfWork, observers ...UseCaseObserver) TrackerService {
	return &trackerService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *trackerService) Start(ctx context.Context, req StartRequest) (result *StartResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": req.Project, "task": req.Task},
		})
	}()

	if req.End != nil && !req.End.After(req.Start) {
		return nil, fmt.Errorf("starting record: %w", domain.ErrInvalidInterval)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txRecords := repository.NewSQLiteRecordRepo(tx)

		project, err := txProjects.UpsertByName(ctx, req.Project)
		if err != nil {
			return err
		}

		result = &StartResult{}
		if !req.AllowOverlap {
			if err := s.completeOverlapping(ctx, txRecords, req, result); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		rec := &domain.Record{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Task:      req.Task,
			StartedAt: req.Start,
			EndedAt:   req.End,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := txRecords.Create(ctx, rec); err != nil {
			return err
		}
		result.Created = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// completeOverlapping truncates the most recent record overlapping the new
// start, and re-creates its tail when a closed insert lands inside a longer
// interval. Touched records land in result for the caller to report.
func (s *trackerService) completeOverlapping(ctx context.Context, txRecords *repository.SQLiteRecordRepo, req StartRequest, result *StartResult) error {
	prev, err := txRecords.FindLatestStartedBefore(ctx, req.Start)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if prev.EndedAt != nil && !prev.EndedAt.After(req.Start) {
		return nil // previous interval already finished
	}

	prevEnd := prev.EndedAt
	newStart := req.Start
	prev.EndedAt = &newStart
	if err := prev.Validate(); err != nil {
		return fmt.Errorf("truncating %q: %w", prev.Task, err)
	}
	if err := txRecords.Update(ctx, &prev.Record); err != nil {
		return err
	}
	result.Truncated = &prev.Record

	// A closed insert inside a longer interval splits it: the remainder
	// resumes once the new record ends.
	if req.End != nil && (prevEnd == nil || prevEnd.After(*req.End)) {
		now := time.Now().UTC()
		tail := &domain.Record{
			ID:        uuid.New().String(),
			ProjectID: prev.ProjectID,
			Task:      prev.Task,
			StartedAt: *req.End,
			EndedAt:   prevEnd,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := txRecords.Create(ctx, tail); err != nil {
			return err
		}
		result.Continuation = tail
	}
	return nil
}

func (s *trackerService) Stop(ctx context.Context, end time.Time) (stopped *domain.RecordWithProject, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "stop-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteRecordRepo(tx)

		open, err := txRecords.ListOpen(ctx)
		if err != nil {
			return err
		}
		switch {
		case len(open) == 0:
			return fmt.Errorf("stopping: %w", domain.ErrNoOpenRecord)
		case len(open) > 1:
			return fmt.Errorf("stopping: %w", domain.ErrMultipleOpenRecords)
		}

		rec := open[0]
		if !end.After(rec.StartedAt) {
			return fmt.Errorf("stopping %q: %w", rec.Task, domain.ErrInvalidInterval)
		}

		if err := txRecords.Complete(ctx, rec.ID, end); err != nil {
			return err
		}
		endUTC := end.UTC()
		rec.EndedAt = &endUTC
		stopped = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stopped, nil
}

func (s *trackerService) Edit(ctx context.Context, idOrPrefix string, patch EditPatch) (edited *domain.RecordWithProject, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "edit-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"record": idOrPrefix},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txRecords := repository.NewSQLiteRecordRepo(tx)

		rec, err := txRecords.GetByPrefix(ctx, idOrPrefix)
		if err != nil {
			return err
		}

		if patch.Start != nil {
			rec.StartedAt = *patch.Start
		}
		switch {
		case patch.ClearEnd:
			rec.EndedAt = nil
		case patch.End != nil:
			rec.EndedAt = patch.End
		}
		if patch.Task != nil {
			rec.Task = *patch.Task
		}
		if patch.Project != nil {
			// An unknown project name implicitly creates the project, same
			// as on start.
			project, err := txProjects.UpsertByName(ctx, *patch.Project)
			if err != nil {
				return err
			}
			rec.ProjectID = project.ID
			rec.ProjectName = project.Name
		}

		if err := rec.Validate(); err != nil {
			return fmt.Errorf("editing record %s: %w", rec.ShortID(), err)
		}

		if err := txRecords.Update(ctx, &rec.Record); err != nil {
			return err
		}
		edited = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}
