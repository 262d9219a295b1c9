package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/metrics"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// Service defines the XP/leveling engine interface
type Service interface {
	// GiveXP applies an action's XP to the user, re-evaluates achievements
	// and levels, and persists everything atomically. Concurrent grants to
	// the same user are serialized by optimistic versioning; a grant either
	// fully applies or fails without partial writes.
	GiveXP(ctx context.Context, userID string, action domain.ActionType, actx domain.ActionContext) (*domain.XPGainResult, error)

	// EnsureUser creates the progression record on first login.
	// Idempotent: an existing record is returned unchanged.
	EnsureUser(ctx context.Context, userID, username string) (*domain.ProgressionRecord, error)

	// GetProgression returns the user's progression snapshot.
	GetProgression(ctx context.Context, userID string) (*domain.ProgressionSnapshot, error)
}

type service struct {
	repo       repository.Progression
	publisher  event.Bus
	maxRetries int
	now        func() time.Time
}

// NewService creates a new progression service
func NewService(repo repository.Progression, publisher event.Bus, maxRetries int) Service {
	return &service{
		repo:       repo,
		publisher:  publisher,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

func (s *service) GiveXP(ctx context.Context, userID string, action domain.ActionType, actx domain.ActionContext) (*domain.XPGainResult, error) {
	log := logger.FromContext(ctx)

	delta, known := catalog.XPForAction(action, actx)
	if !known {
		log.Warn(LogMsgUnknownActionType, "user_id", userID, "action", action)
	}
	skill, _ := catalog.SkillForAction(action)

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
		// The action being granted counts toward its own conditions: the
		// log append below commits in the same transaction.
		outcome := achievement.Settle(work, delta, skill, action, count+1)

		unlockedIDs := make([]domain.AchievementID, len(outcome.Unlocked))
		for i, def := range outcome.Unlocked {
			unlockedIDs[i] = def.ID
		}

		work.Version = rec.Version + 1
		change := domain.ProgressionChange{
			Action:   &domain.ActionEntry{UserID: userID, Action: action, CreatedAt: s.now().UTC()},
			Unlocked: unlockedIDs,
		}

		err = s.repo.ApplyProgression(ctx, work, rec.Version, change)
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.VersionConflicts.WithLabelValues(MetricOpGiveXP).Inc()
			log.Info(LogMsgGiveXPConflict, "user_id", userID, "action", action, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.publishOutcome(ctx, userID, action, delta, work, outcome)

		result := &domain.XPGainResult{
			UserID:        userID,
			Action:        action,
			XPGained:      delta,
			AchievementXP: outcome.AchievementXP,
			OldLevel:      outcome.OldLevel,
			NewLevel:      outcome.NewLevel,
			LeveledUp:     outcome.LeveledUp,
			TotalXP:       work.TotalXP,
			Skill:         skill,
			SkillXP:       work.Skills[skill],
			RewardPoints:  outcome.RewardPoints,
			Unlocked:      unlockedIDs,
		}

		log.Info(LogMsgXPGranted,
			"user_id", userID,
			"action", action,
			"xp", delta,
			"total_xp", work.TotalXP,
			"level", work.Level)

		return result, nil
	}

	metrics.CASRetriesExhausted.WithLabelValues(MetricOpGiveXP).Inc()
	log.Error(LogMsgRetriesExhausted, "user_id", userID, "action", action, "retries", s.maxRetries)
	return nil, fmt.Errorf("%w: give xp to user %s", domain.ErrConflict, userID)
}

func (s *service) publishOutcome(ctx context.Context, userID string, action domain.ActionType, delta int64, work *domain.ProgressionRecord, outcome achievement.SettleOutcome) {
	if s.publisher == nil {
		return
	}

	skill, _ := catalog.SkillForAction(action)
	_ = s.publisher.Publish(ctx, event.NewXPAwardedEvent(userID, action, delta, work.TotalXP, skill))

	if outcome.LeveledUp {
		logger.FromContext(ctx).Info(LogMsgLevelUp,
			"user_id", userID,
			"old_level", outcome.OldLevel,
			"new_level", outcome.NewLevel)
		_ = s.publisher.Publish(ctx, event.NewLevelUpEvent(userID, outcome.OldLevel, outcome.NewLevel, outcome.RewardPoints))
	}

	for _, def := range outcome.Unlocked {
		_ = s.publisher.Publish(ctx, event.NewAchievementUnlockedEvent(userID, def))
	}
}

func (s *service) EnsureUser(ctx context.Context, userID, username string) (*domain.ProgressionRecord, error) {
	rec, err := s.repo.GetRecord(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	fresh := domain.NewProgressionRecord(userID, username)
	if err := s.repo.CreateRecord(ctx, fresh); err != nil {
		// Another request created the record first; read theirs.
		if errors.Is(err, domain.ErrVersionConflict) {
			return s.repo.GetRecord(ctx, userID)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgUserCreated, "user_id", userID, "username", username)
	return fresh, nil
}

func (s *service) GetProgression(ctx context.Context, userID string) (*domain.ProgressionSnapshot, error) {
	rec, err := s.repo.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	achievements := make([]domain.AchievementID, 0, len(rec.UnlockedAchievements))
	unlocked, err := s.repo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, ua := range unlocked {
		achievements = append(achievements, ua.AchievementID)
	}

	return &domain.ProgressionSnapshot{
		UserID:        rec.UserID,
		Username:      rec.Username,
		TotalXP:       rec.TotalXP,
		Level:         rec.Level,
		XPToNextLevel: catalog.XPToNextLevel(rec.TotalXP),
		Balance:       rec.Balance,
		Skills:        rec.Skills,
		CheckInStreak: rec.CheckInStreak,
		LastCheckIn:   rec.LastCheckIn,
		Inventory:     rec.Inventory,
		Achievements:  achievements,
	}, nil
}
