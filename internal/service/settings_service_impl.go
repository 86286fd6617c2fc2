package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
	"github.com/MrJohz/timesheettool/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

// NewSettingsService creates the service behind the config command.
func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) SetRounding(ctx context.Context, rounding time.Duration) (*domain.Settings, error) {
	if rounding < time.Minute || rounding%time.Minute != 0 {
		return nil, fmt.Errorf("rounding unit must be a whole number of minutes, got %s", rounding)
	}
	return s.update(ctx, func(current *domain.Settings) {
		current.RoundingMin = int(rounding / time.Minute)
	})
}

func (s *settingsService) SetWorkday(ctx context.Context, workday time.Duration) (*domain.Settings, error) {
	if workday < time.Minute || workday > 24*time.Hour || workday%time.Minute != 0 {
		return nil, fmt.Errorf("workday must be between 1m and 24h in whole minutes, got %s", workday)
	}
	return s.update(ctx, func(current *domain.Settings) {
		current.WorkdayMin = int(workday / time.Minute)
	})
}

func (s *settingsService) update(ctx context.Context, apply func(*domain.Settings)) (*domain.Settings, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	apply(current)
	if err := s.settings.Upsert(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
