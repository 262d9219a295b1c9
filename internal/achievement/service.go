package achievement

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/metrics"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// Service defines the achievement evaluation interface
type Service interface {
	// CheckAchievements re-evaluates unlock conditions for the given action
	// and returns only the achievements unlocked by this call. Calling it
	// again with no intervening action yields an empty set.
	CheckAchievements(ctx context.Context, userID string, action domain.ActionType) ([]domain.AchievementID, error)

	// ListUnlocked returns the user's full unlock history, oldest first.
	ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error)
}

type service struct {
	repo       repository.Progression
	publisher  event.Bus
	maxRetries int
}

// NewService creates a new achievement service
func NewService(repo repository.Progression, publisher event.Bus, maxRetries int) Service {
	return &service{
		repo:       repo,
		publisher:  publisher,
		maxRetries: maxRetries,
	}
}

func (s *service) CheckAchievements(ctx context.Context, userID string, action domain.ActionType) ([]domain.AchievementID, error) {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		rec, err := s.repo.GetRecord(ctx, userID)
		if err != nil {
			return nil, err
		}

		count, err := s.repo.CountActions(ctx, userID, action)
		if err != nil {
			return nil, fmt.Errorf("failed to count actions: %w", err)
		}

		work := rec.Clone()
		outcome := Settle(work, 0, "", action, count)
		if len(outcome.Unlocked) == 0 {
			return nil, nil
		}

		ids := make([]domain.AchievementID, len(outcome.Unlocked))
		for i, def := range outcome.Unlocked {
			ids[i] = def.ID
		}

		work.Version = rec.Version + 1
		err = s.repo.ApplyProgression(ctx, work, rec.Version, domain.ProgressionChange{Unlocked: ids})
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.VersionConflicts.WithLabelValues(MetricOpCheckAchievements).Inc()
			log.Info(LogMsgEvaluationConflict, "user_id", userID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, def := range outcome.Unlocked {
			log.Info(LogMsgAchievementUnlocked,
				"user_id", userID,
				"achievement_id", def.ID,
				"rarity", def.Rarity)
			if s.publisher != nil {
				_ = s.publisher.Publish(ctx, event.NewAchievementUnlockedEvent(userID, def))
			}
		}

		return ids, nil
	}

	metrics.CASRetriesExhausted.WithLabelValues(MetricOpCheckAchievements).Inc()
	log.Error(LogMsgRetriesExhausted, "user_id", userID, "retries", s.maxRetries)
	return nil, fmt.Errorf("%w: check achievements for user %s", domain.ErrConflict, userID)
}

func (s *service) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	// Ensure the user exists so absent users surface as NotFound rather
	// than an empty history.
	if _, err := s.repo.GetRecord(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUnlocked(ctx, userID)
}
