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
	"errors"
	"fmt"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

func (db *DB) GetServiceState(ctx context.Context, key models.MonitorKey) (*models.ServiceState, error) {
	const query = `
		SELECT provider, service, channel, model, stable_available, streak_count,
			streak_status, last_record_id, last_timestamp
		FROM service_states
		WHERE provider = ? AND service = ? AND channel = ? AND model = ?
	`

	row := db.db.QueryRowContext(ctx, db.rebind(query), key.Provider, key.Service, key.Channel, key.Model)

	state, err := scanServiceState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w service state: %w", ErrFailedToQuery, err)
	}

	return state, nil
}

func (db *DB) UpsertServiceState(ctx context.Context, state *models.ServiceState) error {
	return db.upsertServiceState(ctx, db.db, state)
}

func (db *DB) upsertServiceState(ctx context.Context, q querier, state *models.ServiceState) error {
	const upsertSQL = `
		INSERT INTO service_states
			(provider, service, channel, model, stable_available, streak_count,
			 streak_status, last_record_id, last_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, service, channel, model) DO UPDATE SET
			stable_available = excluded.stable_available,
			streak_count = excluded.streak_count,
			streak_status = excluded.streak_status,
			last_record_id = excluded.last_record_id,
			last_timestamp = excluded.last_timestamp
	`

	_, err := q.ExecContext(ctx, db.rebind(upsertSQL),
		state.Provider,
		state.Service,
		state.Channel,
		state.Model,
		state.StableAvailable,
		state.StreakCount,
		state.StreakStatus,
		state.LastRecordID,
		state.LastTimestamp,
	)
	if err != nil {
		return fmt.Errorf("%w service state: %w", ErrFailedToUpsert, err)
	}

	return nil
}

// ListServiceStates returns the state of every target on a channel.
func (db *DB) ListServiceStates(ctx context.Context, channel models.MonitorKey) ([]*models.ServiceState, error) {
	const query = `
		SELECT provider, service, channel, model, stable_available, streak_count,
			streak_status, last_record_id, last_timestamp
		FROM service_states
		WHERE provider = ? AND service = ? AND channel = ?
		ORDER BY model
	`

	rows, err := db.db.QueryContext(ctx, db.rebind(query), channel.Provider, channel.Service, channel.Channel)
	if err != nil {
		return nil, fmt.Errorf("%w service states: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	var states []*models.ServiceState

	for rows.Next() {
		state, err := scanServiceState(rows)
		if err != nil {
			return nil, fmt.Errorf("%w service state row: %w", ErrFailedToScan, err)
		}

		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w service states: %w", ErrFailedToQuery, err)
	}

	return states, nil
}

func (db *DB) GetChannelState(ctx context.Context, channel models.MonitorKey) (*models.ChannelState, error) {
	const query = `
		SELECT provider, service, channel, stable_available, down_count, known_count,
			last_record_id, last_timestamp
		FROM channel_states
		WHERE provider = ? AND service = ? AND channel = ?
	`

	var s models.ChannelState

	err := db.db.QueryRowContext(ctx, db.rebind(query), channel.Provider, channel.Service, channel.Channel).Scan(
		&s.Provider,
		&s.Service,
		&s.Channel,
		&s.StableAvailable,
		&s.DownCount,
		&s.KnownCount,
		&s.LastRecordID,
		&s.LastTimestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w channel state: %w", ErrFailedToQuery, err)
	}

	return &s, nil
}

func (db *DB) UpsertChannelState(ctx context.Context, state *models.ChannelState) error {
	return db.upsertChannelState(ctx, db.db, state)
}

func (db *DB) upsertChannelState(ctx context.Context, q querier, state *models.ChannelState) error {
	const upsertSQL = `
		INSERT INTO channel_states
			(provider, service, channel, stable_available, down_count, known_count,
			 last_record_id, last_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, service, channel) DO UPDATE SET
			stable_available = excluded.stable_available,
			down_count = excluded.down_count,
			known_count = excluded.known_count,
			last_record_id = excluded.last_record_id,
			last_timestamp = excluded.last_timestamp
	`

	_, err := q.ExecContext(ctx, db.rebind(upsertSQL),
		state.Provider,
		state.Service,
		state.Channel,
		state.StableAvailable,
		state.DownCount,
		state.KnownCount,
		state.LastRecordID,
		state.LastTimestamp,
	)
	if err != nil {
		return fmt.Errorf("%w channel state: %w", ErrFailedToUpsert, err)
	}

	return nil
}

func scanServiceState(row scanner) (*models.ServiceState, error) {
	var s models.ServiceState

	if err := row.Scan(
		&s.Provider,
		&s.Service,
		&s.Channel,
		&s.Model,
		&s.StableAvailable,
		&s.StreakCount,
		&s.StreakStatus,
		&s.LastRecordID,
		&s.LastTimestamp,
	); err != nil {
		return nil, err
	}

	return &s, nil
}
