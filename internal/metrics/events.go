package metrics

import (
	"context"

	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/logger"
)

// EventMetricsCollector subscribes to engine events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// RegisterHandlers subscribes the collector to the event bus
func (c *EventMetricsCollector) RegisterHandlers(bus event.Bus) {
	bus.Subscribe(event.XPAwarded, c.handleXPAwarded)
	bus.Subscribe(event.LevelUp, c.handleLevelUp)
	bus.Subscribe(event.AchievementUnlocked, c.handleAchievementUnlocked)
	bus.Subscribe(event.CheckInCompleted, c.handleCheckIn)
	bus.Subscribe(event.CaseOpened, c.handleCaseOpened)
}

func (c *EventMetricsCollector) handleXPAwarded(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.XPAwardedPayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to decode xp.awarded payload", "error", err)
		return nil
	}
	XPGranted.WithLabelValues(string(payload.Action)).Add(float64(payload.XPGained))
	return nil
}

func (c *EventMetricsCollector) handleLevelUp(ctx context.Context, e event.Event) error {
	LevelUps.Inc()
	return nil
}

func (c *EventMetricsCollector) handleAchievementUnlocked(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to decode achievement.unlocked payload", "error", err)
		return nil
	}
	AchievementsUnlocked.WithLabelValues(string(payload.Rarity)).Inc()
	return nil
}

func (c *EventMetricsCollector) handleCheckIn(ctx context.Context, e event.Event) error {
	CheckIns.Inc()
	return nil
}

func (c *EventMetricsCollector) handleCaseOpened(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[event.CaseOpenedPayloadV1](e.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to decode case.opened payload", "error", err)
		return nil
	}
	CaseDraws.WithLabelValues(payload.CaseID).Inc()
	return nil
}
