package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveAuditEvent stores one audit event and returns its ID
func (db *DB) SaveAuditEvent(ctx context.Context, event AuditEvent) (uuid.UUID, error) {
	var detail []byte
	if len(event.Detail) > 0 {
		b, err := json.Marshal(event.Detail)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal audit detail: %w", err)
		}
		detail = b
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO audit_events (event_type, action, resource_type, resource_id, endpoint, status_code, duration_ms, detail)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		event.EventType, event.Action, event.ResourceType, event.ResourceID,
		event.Endpoint, event.StatusCode, event.DurationMS, detail,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save audit event: %w", err)
	}
	return id, nil
}

// ListAuditEvents retrieves audit events with optional filters, newest first
func (db *DB) ListAuditEvents(ctx context.Context, filters AuditEventFilters) ([]AuditEvent, error) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}

	query := `SELECT id, event_type, action, resource_type, resource_id, endpoint,
		status_code, duration_ms, detail, created_at
		FROM audit_events WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.EventType != "" {
		query += fmt.Sprintf(" AND event_type = $%d", argNum)
		args = append(args, filters.EventType)
		argNum++
	}
	if filters.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", argNum)
		args = append(args, filters.Action)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var event AuditEvent
		var detail []byte
		if err := rows.Scan(&event.ID, &event.EventType, &event.Action, &event.ResourceType,
			&event.ResourceID, &event.Endpoint, &event.StatusCode, &event.DurationMS,
			&detail, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &event.Detail); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit detail: %w", err)
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// DeleteAuditEventsBefore removes audit events older than the cutoff
func (db *DB) DeleteAuditEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM audit_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old audit events: %w", err)
	}
	return result.RowsAffected(), nil
}
