package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/linkup-app/linkup-engine/internal/repository"
)

// EventLogStore is an in-memory implementation of repository.EventLog.
type EventLogStore struct {
	mu     sync.RWMutex
	nextID int64
	events []repository.EventLogEntry
}

// NewEventLogStore creates an empty in-memory event log.
func NewEventLogStore() *EventLogStore {
	return &EventLogStore{nextID: 1}
}

var _ repository.EventLog = (*EventLogStore)(nil)

// LogEvent stores an event.
func (s *EventLogStore) LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, repository.EventLogEntry{
		ID:        s.nextID,
		EventType: eventType,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
	s.nextID++
	return nil
}

// GetEvents retrieves events matching the filter, newest first.
func (s *EventLogStore) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []repository.EventLogEntry
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if filter.UserID != nil && (e.UserID == nil || *e.UserID != *filter.UserID) {
			continue
		}
		if filter.EventType != nil && e.EventType != *filter.EventType {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && e.CreatedAt.After(*filter.Until) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// GetEventsByUser retrieves events for a specific user.
func (s *EventLogStore) GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error) {
	return s.GetEvents(ctx, repository.EventLogFilter{UserID: &userID, Limit: limit})
}

// CleanupOldEvents removes events older than the retention window.
func (s *EventLogStore) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	kept := s.events[:0]
	var removed int64
	for _, e := range s.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return removed, nil
}
