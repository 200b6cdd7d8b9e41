package services

import (
	"context"

	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/streak"
)

type StreakServiceInterface interface {
	RecordActivity(ctx context.Context, userID string) (models.StreakRecord, error)
	GetStreak(ctx context.Context, userID string) (int, error)
}

type StreakService struct {
	tracker streak.TrackerInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStreakService(tracker streak.TrackerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *StreakService {
	return &StreakService{tracker: tracker, logger: logger, metrics: metrics}
}

func (s *StreakService) RecordActivity(ctx context.Context, userID string) (models.StreakRecord, error) {
	rec, transition, err := s.tracker.RecordActivityNow(ctx, userID)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Record activity for %s: %s", userID, err)
		return models.StreakRecord{}, err
	}
	s.metrics.IncStreakTransition(transition.String())
	s.logger.Debugf(providers.TypeApp, "Streak %s for %s: current=%d longest=%d", transition, userID, rec.CurrentStreak, rec.LongestStreak)
	return rec, nil
}

func (s *StreakService) GetStreak(ctx context.Context, userID string) (int, error) {
	return s.tracker.GetStreak(ctx, userID)
}
