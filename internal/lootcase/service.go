package lootcase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/metrics"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// Service defines the case-opening interface
type Service interface {
	// OpenCase charges the case price from the user's balance, draws one
	// item, and commits the item, the balance change, the case_opened XP
	// and any achievement unlocks atomically. A draw is never retried:
	// only the persistence round trip retries on version conflicts, and
	// each attempt rolls its own draw against fresh state.
	OpenCase(ctx context.Context, userID, caseID string) (*domain.DrawResult, error)
}

type service struct {
	repo       repository.Progression
	cases      *catalog.CaseCatalog
	publisher  event.Bus
	maxRetries int
	rnd        func() float64
	now        func() time.Time
}

// NewService creates a new case-opening service
func NewService(repo repository.Progression, cases *catalog.CaseCatalog, publisher event.Bus, maxRetries int) Service {
	return &service{
		repo:       repo,
		cases:      cases,
		publisher:  publisher,
		maxRetries: maxRetries,
		rnd:        rand.Float64,
		now:        time.Now,
	}
}

func (s *service) OpenCase(ctx context.Context, userID, caseID string) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)

	c, err := s.cases.GetCase(caseID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		rec, err := s.repo.GetRecord(ctx, userID)
		if err != nil {
			return nil, err
		}

		if rec.Balance < c.Price {
			log.Info(LogMsgInsufficientFunds,
				"user_id", userID,
				"case_id", caseID,
				"balance", rec.Balance,
				"price", c.Price)
			return nil, fmt.Errorf("%w: case %s costs %d, balance is %d",
				domain.ErrInsufficientFunds, caseID, c.Price, rec.Balance)
		}

		drawn, err := DrawItem(c, s.rnd)
		if err != nil {
			return nil, err
		}

		now := s.now().UTC()
		item := domain.InventoryItem{
			ID:         uuid.NewString(),
			Type:       drawn.Type,
			Value:      drawn.Value,
			CaseID:     caseID,
			IsActive:   true,
			ObtainedAt: now,
		}

		work := rec.Clone()
		work.Balance -= c.Price
		work.Inventory = append(work.Inventory, item)

		count, err := s.repo.CountActions(ctx, userID, domain.ActionCaseOpened)
		if err != nil {
			return nil, fmt.Errorf("failed to count actions: %w", err)
		}

		delta, _ := catalog.XPForAction(domain.ActionCaseOpened, domain.ActionContext{})
		skill, _ := catalog.SkillForAction(domain.ActionCaseOpened)
		outcome := achievement.Settle(work, delta, skill, domain.ActionCaseOpened, count+1)

		unlockedIDs := make([]domain.AchievementID, len(outcome.Unlocked))
		for i, def := range outcome.Unlocked {
			unlockedIDs[i] = def.ID
		}

		work.Version = rec.Version + 1
		change := domain.ProgressionChange{
			Action:   &domain.ActionEntry{UserID: userID, Action: domain.ActionCaseOpened, CreatedAt: now},
			Unlocked: unlockedIDs,
			NewItems: []domain.InventoryItem{item},
		}

		err = s.repo.ApplyProgression(ctx, work, rec.Version, change)
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.VersionConflicts.WithLabelValues(MetricOpOpenCase).Inc()
			log.Info(LogMsgOpenCaseConflict, "user_id", userID, "case_id", caseID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Info(LogMsgCaseOpened,
			"user_id", userID,
			"case_id", caseID,
			"item_type", item.Type,
			"item_value", item.Value)

		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, event.NewCaseOpenedEvent(userID, caseID, item))
			if outcome.LeveledUp {
				_ = s.publisher.Publish(ctx, event.NewLevelUpEvent(userID, outcome.OldLevel, outcome.NewLevel, outcome.RewardPoints))
			}
			for _, def := range outcome.Unlocked {
				_ = s.publisher.Publish(ctx, event.NewAchievementUnlockedEvent(userID, def))
			}
		}

		return &domain.DrawResult{
			UserID:  userID,
			CaseID:  caseID,
			Item:    item,
			Balance: work.Balance,
		}, nil
	}

	metrics.CASRetriesExhausted.WithLabelValues(MetricOpOpenCase).Inc()
	log.Error(LogMsgRetriesExhausted, "user_id", userID, "case_id", caseID, "retries", s.maxRetries)
	return nil, fmt.Errorf("%w: open case %s for user %s", domain.ErrConflict, caseID, userID)
}
