/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// SaveStatusEvent appends an event and returns its ID, also written back
// into event.
func (db *DB) SaveStatusEvent(ctx context.Context, event *models.StatusEvent) (int64, error) {
	return db.insertStatusEvent(ctx, db.db, event)
}

func (db *DB) insertStatusEvent(ctx context.Context, q querier, event *models.StatusEvent) (int64, error) {
	meta, err := models.MarshalEventMeta(event.Meta)
	if err != nil {
		return 0, fmt.Errorf("%w status event: %w", ErrFailedToInsert, err)
	}

	const insertSQL = `
		INSERT INTO status_events
			(provider, service, channel, model, event_type, from_status, to_status,
			 trigger_record_id, observed_at, created_at, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64

	err = q.QueryRowContext(ctx, db.rebind(insertSQL),
		event.Provider,
		event.Service,
		event.Channel,
		event.Model,
		string(event.EventType),
		event.FromStatus,
		event.ToStatus,
		event.TriggerRecordID,
		event.ObservedAt,
		event.CreatedAt,
		meta,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w status event: %w", ErrFailedToInsert, err)
	}

	event.ID = id

	return id, nil
}

// GetStatusEvents returns up to limit events with ID greater than sinceID,
// ascending.
func (db *DB) GetStatusEvents(
	ctx context.Context, sinceID int64, limit int, filters *models.EventFilters) ([]*models.StatusEvent, error) {
	var b strings.Builder

	b.WriteString(`
		SELECT id, provider, service, channel, model, event_type, from_status, to_status,
			trigger_record_id, observed_at, created_at, meta
		FROM status_events
		WHERE id > ?`)

	args := []interface{}{sinceID}

	if filters != nil {
		if filters.Provider != "" {
			b.WriteString(" AND provider = ?")
			args = append(args, filters.Provider)
		}

		if filters.Service != "" {
			b.WriteString(" AND service = ?")
			args = append(args, filters.Service)
		}

		if filters.Channel != "" {
			b.WriteString(" AND channel = ?")
			args = append(args, filters.Channel)
		}

		if len(filters.Types) > 0 {
			placeholders := make([]string, len(filters.Types))
			for i, t := range filters.Types {
				placeholders[i] = "?"
				args = append(args, string(t))
			}

			b.WriteString(" AND event_type IN (" + strings.Join(placeholders, ", ") + ")")
		}
	}

	b.WriteString(" ORDER BY id ASC LIMIT ?")

	args = append(args, limit)

	rows, err := db.db.QueryContext(ctx, db.rebind(b.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("%w status events: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	events := make([]*models.StatusEvent, 0)

	for rows.Next() {
		var (
			e         models.StatusEvent
			eventType string
			meta      string
		)

		if err := rows.Scan(
			&e.ID,
			&e.Provider,
			&e.Service,
			&e.Channel,
			&e.Model,
			&eventType,
			&e.FromStatus,
			&e.ToStatus,
			&e.TriggerRecordID,
			&e.ObservedAt,
			&e.CreatedAt,
			&meta,
		); err != nil {
			return nil, fmt.Errorf("%w status event row: %w", ErrFailedToScan, err)
		}

		e.EventType = models.EventType(eventType)

		if e.Meta, err = models.UnmarshalEventMeta(meta); err != nil {
			return nil, fmt.Errorf("%w status event meta: %w", ErrFailedToScan, err)
		}

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w status events: %w", ErrFailedToQuery, err)
	}

	return events, nil
}

// GetLatestEventID returns the highest event ID, 0 when there are none.
func (db *DB) GetLatestEventID(ctx context.Context) (int64, error) {
	var id sql.NullInt64

	if err := db.db.QueryRowContext(ctx, `SELECT MAX(id) FROM status_events`).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w latest event id: %w", ErrFailedToQuery, err)
	}

	return id.Int64, nil
}
