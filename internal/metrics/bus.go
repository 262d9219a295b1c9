package metrics

import (
	"context"

	"github.com/linkup-app/linkup-engine/internal/event"
)

// InstrumentedBus wraps an event.Bus and counts publishes and handler
// failures by event type.
type InstrumentedBus struct {
	inner event.Bus
}

// NewInstrumentedBus creates a new InstrumentedBus
func NewInstrumentedBus(inner event.Bus) *InstrumentedBus {
	return &InstrumentedBus{inner: inner}
}

// Publish counts the event and delegates to the inner bus. A subscriber
// error counts once per failed publish.
func (b *InstrumentedBus) Publish(ctx context.Context, e event.Event) error {
	EventsPublished.WithLabelValues(string(e.Type)).Inc()

	err := b.inner.Publish(ctx, e)
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(e.Type)).Inc()
	}
	return err
}

// Subscribe delegates to the inner bus
func (b *InstrumentedBus) Subscribe(eventType event.Type, handler event.Handler) {
	b.inner.Subscribe(eventType, handler)
}
