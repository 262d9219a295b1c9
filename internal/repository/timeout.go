package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

// progressionWithTimeout bounds every store round trip with its own deadline
// so a stalled connection cannot hang a caller on an unbounded request
// context. A deadline miss surfaces as ErrConnectionTimeout.
type progressionWithTimeout struct {
	inner   Progression
	timeout time.Duration
}

// NewProgressionWithTimeout wraps a Progression store with a per-call timeout.
func NewProgressionWithTimeout(inner Progression, timeout time.Duration) Progression {
	return &progressionWithTimeout{inner: inner, timeout: timeout}
}

func (p *progressionWithTimeout) GetRecord(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	rec, err := p.inner.GetRecord(ctx, userID)
	return rec, mapDeadline(err)
}

func (p *progressionWithTimeout) CreateRecord(ctx context.Context, rec *domain.ProgressionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return mapDeadline(p.inner.CreateRecord(ctx, rec))
}

func (p *progressionWithTimeout) ApplyProgression(ctx context.Context, rec *domain.ProgressionRecord, expectedVersion int64, change domain.ProgressionChange) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return mapDeadline(p.inner.ApplyProgression(ctx, rec, expectedVersion, change))
}

func (p *progressionWithTimeout) CountActions(ctx context.Context, userID string, action domain.ActionType) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	count, err := p.inner.CountActions(ctx, userID, action)
	return count, mapDeadline(err)
}

func (p *progressionWithTimeout) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	unlocked, err := p.inner.ListUnlocked(ctx, userID)
	return unlocked, mapDeadline(err)
}

// eventLogWithTimeout applies the same per-call deadline to event log storage.
type eventLogWithTimeout struct {
	inner   EventLog
	timeout time.Duration
}

// NewEventLogWithTimeout wraps an EventLog store with a per-call timeout.
func NewEventLogWithTimeout(inner EventLog, timeout time.Duration) EventLog {
	return &eventLogWithTimeout{inner: inner, timeout: timeout}
}

func (e *eventLogWithTimeout) LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return mapDeadline(e.inner.LogEvent(ctx, eventType, userID, payload))
}

func (e *eventLogWithTimeout) GetEvents(ctx context.Context, filter EventLogFilter) ([]EventLogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	entries, err := e.inner.GetEvents(ctx, filter)
	return entries, mapDeadline(err)
}

func (e *eventLogWithTimeout) GetEventsByUser(ctx context.Context, userID string, limit int) ([]EventLogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	entries, err := e.inner.GetEventsByUser(ctx, userID, limit)
	return entries, mapDeadline(err)
}

func (e *eventLogWithTimeout) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	removed, err := e.inner.CleanupOldEvents(ctx, retentionDays)
	return removed, mapDeadline(err)
}

// mapDeadline converts a missed deadline into the domain timeout error so
// callers and the handler layer never see a raw context error.
func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrConnectionTimeout, err)
	}
	return err
}
