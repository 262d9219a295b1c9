package repository

import (
	"context"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

// Progression defines the interface for progression record persistence.
//
// Writes use optimistic concurrency: ApplyProgression only succeeds if the
// stored version still equals expectedVersion, and the record together with
// its side effects (action log append, achievement inserts, inventory items)
// commits as a single atomic unit. Callers retry on ErrVersionConflict.
type Progression interface {
	// GetRecord loads a user's progression record, or ErrUserNotFound.
	GetRecord(ctx context.Context, userID string) (*domain.ProgressionRecord, error)

	// CreateRecord inserts a fresh record for a first-time user.
	CreateRecord(ctx context.Context, rec *domain.ProgressionRecord) error

	// ApplyProgression writes rec (with rec.Version already incremented)
	// if the stored version equals expectedVersion, committing the change
	// bundle in the same transaction. Returns ErrVersionConflict if
	// another writer won the race; nothing is written in that case.
	// Achievement inserts are deduplicated by the storage-level uniqueness
	// constraint on (user_id, achievement_id).
	ApplyProgression(ctx context.Context, rec *domain.ProgressionRecord, expectedVersion int64, change domain.ProgressionChange) error

	// CountActions returns the user's total count of one action type.
	CountActions(ctx context.Context, userID string, action domain.ActionType) (int64, error)

	// ListUnlocked returns the user's unlocked achievements, oldest first.
	ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error)
}
