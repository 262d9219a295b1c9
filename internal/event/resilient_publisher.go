package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/linkup-app/linkup-engine/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead-letter queuing
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects file writes
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelay
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event. On failure it launches a background
// retry loop and returns nil, decoupling the caller from the retry mechanism.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	// The original request context may already be cancelled by the time
	// retries run, so the loop uses a detached context.
	go p.retryLoop(event)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			log.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		}

		log.Warn(LogMsgEventRetryFailed,
			"event_type", event.Type,
			"attempt", attempt,
			"error", lastErr)
	}

	p.writeToDeadLetter(event, lastErr)
}

// DeadLetterEntry represents an event that failed to publish after all retries
type DeadLetterEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     Event     `json:"event"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
}

func (p *ResilientPublisher) writeToDeadLetter(event Event, lastErr error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.FromContext(context.Background())

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		log.Error(LogMsgDeadLetterOpenFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	entry := DeadLetterEntry{
		Timestamp: time.Now(),
		Event:     event,
		Attempts:  p.config.MaxRetries,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "error", err)
	} else {
		log.Info(LogMsgEventDeadLettered, "event_type", event.Type)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
