package eventlog

import (
	"context"

	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/logger"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// Service persists engine events for audit and analytics
type Service interface {
	// Subscribe registers the event logger to listen to all engine events
	Subscribe(bus event.Bus) error

	// GetUserHistory returns a user's recent logged events
	GetUserHistory(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new event logging service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.XPAwarded,
		event.LevelUp,
		event.AchievementUnlocked,
		event.CheckInCompleted,
		event.CaseOpened,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent processes and logs events to the store
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Payloads are typed structs; round-trip them into a map for storage
	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotDecodable, "type", evt.Type, "error", err)
		return nil
	}

	var userID *string
	if uid, ok := payload["user_id"].(string); ok {
		userID = &uid
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload); err != nil {
		log.Error(LogMsgLogEventFailed, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

func (s *service) GetUserHistory(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.repo.GetEventsByUser(ctx, userID, limit)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
