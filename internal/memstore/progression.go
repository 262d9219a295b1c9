package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/linkup-app/linkup-engine/internal/concurrency"
	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// ProgressionStore is an in-memory implementation of repository.Progression.
// Used for local development and tests; the version check mirrors the
// compare-and-swap semantics of the Postgres store, so engine retry loops
// behave the same against both.
type ProgressionStore struct {
	mu       sync.RWMutex
	records  map[string]*domain.ProgressionRecord
	actions  map[string][]domain.ActionEntry
	unlocked map[string][]domain.UnlockedAchievement
	locks    *concurrency.LockManager
}

// NewProgressionStore creates an empty in-memory progression store.
func NewProgressionStore() *ProgressionStore {
	return &ProgressionStore{
		records:  make(map[string]*domain.ProgressionRecord),
		actions:  make(map[string][]domain.ActionEntry),
		unlocked: make(map[string][]domain.UnlockedAchievement),
		locks:    concurrency.NewLockManager(),
	}
}

var _ repository.Progression = (*ProgressionStore)(nil)

// GetRecord loads a deep copy of the user's record.
func (s *ProgressionStore) GetRecord(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return rec.Clone(), nil
}

// CreateRecord inserts a fresh record for a first-time user.
func (s *ProgressionStore) CreateRecord(ctx context.Context, rec *domain.ProgressionRecord) error {
	lock := s.locks.GetLock(rec.UserID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.UserID]; exists {
		return fmt.Errorf("%w: user %s already exists", domain.ErrVersionConflict, rec.UserID)
	}
	s.records[rec.UserID] = rec.Clone()
	return nil
}

// ApplyProgression commits the record and its change bundle if the stored
// version still matches expectedVersion.
func (s *ProgressionStore) ApplyProgression(ctx context.Context, rec *domain.ProgressionRecord, expectedVersion int64, change domain.ProgressionChange) error {
	lock := s.locks.GetLock(rec.UserID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[rec.UserID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, rec.UserID)
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: user %s expected version %d, have %d",
			domain.ErrVersionConflict, rec.UserID, expectedVersion, stored.Version)
	}

	s.records[rec.UserID] = rec.Clone()

	if change.Action != nil {
		s.actions[rec.UserID] = append(s.actions[rec.UserID], *change.Action)
	}
	for _, id := range change.Unlocked {
		if s.hasUnlockedLocked(rec.UserID, id) {
			continue
		}
		s.unlocked[rec.UserID] = append(s.unlocked[rec.UserID], domain.UnlockedAchievement{
			UserID:        rec.UserID,
			AchievementID: id,
			UnlockedAt:    time.Now().UTC(),
		})
	}
	return nil
}

func (s *ProgressionStore) hasUnlockedLocked(userID string, id domain.AchievementID) bool {
	for _, ua := range s.unlocked[userID] {
		if ua.AchievementID == id {
			return true
		}
	}
	return false
}

// CountActions returns the user's total count of one action type.
func (s *ProgressionStore) CountActions(ctx context.Context, userID string, action domain.ActionType) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.actions[userID] {
		if entry.Action == action {
			count++
		}
	}
	return count, nil
}

// ListUnlocked returns the user's unlocked achievements, oldest first.
func (s *ProgressionStore) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.UnlockedAchievement, len(s.unlocked[userID]))
	copy(out, s.unlocked[userID])
	sort.Slice(out, func(i, j int) bool { return out[i].UnlockedAt.Before(out[j].UnlockedAt) })
	return out, nil
}
