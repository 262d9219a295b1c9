package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/metrics"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// Service defines the daily check-in interface
type Service interface {
	// CheckIn records today's check-in for the user: advances the streak,
	// grants the daily reward and the check-in XP, and re-evaluates
	// achievements. A repeat check-in on the same UTC day is a no-op.
	CheckIn(ctx context.Context, userID string) (*domain.CheckInResult, error)
}

type service struct {
	repo       repository.Progression
	publisher  event.Bus
	maxRetries int
	now        func() time.Time

	// sameDay short-circuits repeat check-ins without a storage round trip.
	sameDay *expirable.LRU[string, string]
}

// NewService creates a new check-in service
func NewService(repo repository.Progression, publisher event.Bus, maxRetries int) Service {
	return &service{
		repo:       repo,
		publisher:  publisher,
		maxRetries: maxRetries,
		now:        time.Now,
		sameDay:    expirable.NewLRU[string, string](CheckInCacheSize, nil, CheckInCacheTTL),
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func (s *service) CheckIn(ctx context.Context, userID string) (*domain.CheckInResult, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	if day, ok := s.sameDay.Get(userID); ok && day == dayKey(now) {
		rec, err := s.repo.GetRecord(ctx, userID)
		if err != nil {
			return nil, err
		}
		log.Info(LogMsgAlreadyCheckedIn, "user_id", userID, "streak", rec.CheckInStreak)
		return alreadyCheckedInResult(rec, now), nil
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		rec, err := s.repo.GetRecord(ctx, userID)
		if err != nil {
			return nil, err
		}

		if rec.LastCheckIn != nil && SameUTCDay(*rec.LastCheckIn, now) {
			s.sameDay.Add(userID, dayKey(now))
			log.Info(LogMsgAlreadyCheckedIn, "user_id", userID, "streak", rec.CheckInStreak)
			return alreadyCheckedInResult(rec, now), nil
		}

		newStreak := ComputeStreak(rec.LastCheckIn, rec.CheckInStreak, now)
		reward := catalog.DailyReward(newStreak)

		work := rec.Clone()
		work.CheckInStreak = newStreak
		work.LastCheckIn = &now

		var newItems []domain.InventoryItem
		switch reward.Type {
		case domain.RewardPoints:
			work.Balance += reward.Value
		case domain.RewardItem:
			item := domain.InventoryItem{
				ID:         uuid.NewString(),
				Type:       reward.Item,
				Value:      reward.Value,
				IsActive:   true,
				ObtainedAt: now,
			}
			work.Inventory = append(work.Inventory, item)
			newItems = append(newItems, item)
		}

		count, err := s.repo.CountActions(ctx, userID, domain.ActionDailyCheckIn)
		if err != nil {
			return nil, fmt.Errorf("failed to count check-ins: %w", err)
		}

		delta, _ := catalog.XPForAction(domain.ActionDailyCheckIn, domain.ActionContext{})
		skill, _ := catalog.SkillForAction(domain.ActionDailyCheckIn)
		outcome := achievement.Settle(work, delta, skill, domain.ActionDailyCheckIn, count+1)

		unlockedIDs := make([]domain.AchievementID, len(outcome.Unlocked))
		for i, def := range outcome.Unlocked {
			unlockedIDs[i] = def.ID
		}

		work.Version = rec.Version + 1
		change := domain.ProgressionChange{
			Action:   &domain.ActionEntry{UserID: userID, Action: domain.ActionDailyCheckIn, CreatedAt: now},
			Unlocked: unlockedIDs,
			NewItems: newItems,
		}

		err = s.repo.ApplyProgression(ctx, work, rec.Version, change)
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.VersionConflicts.WithLabelValues(MetricOpCheckIn).Inc()
			log.Info(LogMsgCheckInConflict, "user_id", userID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.sameDay.Add(userID, dayKey(now))

		log.Info(LogMsgCheckedIn,
			"user_id", userID,
			"streak", newStreak,
			"reward_type", reward.Type,
			"reward_value", reward.Value)

		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, event.NewCheckInCompletedEvent(userID, newStreak, reward))
			if outcome.LeveledUp {
				_ = s.publisher.Publish(ctx, event.NewLevelUpEvent(userID, outcome.OldLevel, outcome.NewLevel, outcome.RewardPoints))
			}
			for _, def := range outcome.Unlocked {
				_ = s.publisher.Publish(ctx, event.NewAchievementUnlockedEvent(userID, def))
			}
		}

		return &domain.CheckInResult{
			UserID:      userID,
			Streak:      newStreak,
			Reward:      reward,
			CheckedInAt: now,
			Unlocked:    unlockedIDs,
		}, nil
	}

	metrics.CASRetriesExhausted.WithLabelValues(MetricOpCheckIn).Inc()
	log.Error(LogMsgRetriesExhausted, "user_id", userID, "retries", s.maxRetries)
	return nil, fmt.Errorf("%w: check-in for user %s", domain.ErrConflict, userID)
}

func alreadyCheckedInResult(rec *domain.ProgressionRecord, now time.Time) *domain.CheckInResult {
	return &domain.CheckInResult{
		UserID:           rec.UserID,
		Streak:           rec.CheckInStreak,
		AlreadyCheckedIn: true,
		Reward:           catalog.DailyReward(rec.CheckInStreak),
		CheckedInAt:      now,
	}
}
