package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkup-app/linkup-engine/internal/repository"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) repository.EventLog {
	return &eventLogRepository{db: db}
}

// LogEvent stores an event in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error {
	query := `
		INSERT INTO events (event_type, user_id, payload)
		VALUES ($1, $2, $3)
	`

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query, eventType, userID, payloadJSON)
	return err
}

// GetEvents retrieves events based on filter criteria
func (r *eventLogRepository) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, event_type, user_id, payload, created_at
		FROM events
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.UserID != nil {
		fmt.Fprintf(&queryBuilder, " AND user_id = $%d", argNum)
		args = append(args, *filter.UserID)
		argNum++
	}

	if filter.EventType != nil {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, *filter.EventType)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetEventsByUser retrieves events for a specific user
func (r *eventLogRepository) GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error) {
	query := `
		SELECT id, event_type, user_id, payload, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// CleanupOldEvents removes events older than the specified number of days
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM events
		WHERE created_at < NOW() - ($1 * INTERVAL '1 day')
	`

	tag, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *eventLogRepository) scanEvents(rows pgx.Rows) ([]repository.EventLogEntry, error) {
	var events []repository.EventLogEntry
	for rows.Next() {
		var e repository.EventLogEntry
		var payloadJSON []byte

		if err := rows.Scan(&e.ID, &e.EventType, &e.UserID, &payloadJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if len(payloadJSON) > 0 {
			if err := json.Unmarshal(payloadJSON, &e.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		events = append(events, e)
	}
	return events, rows.Err()
}
