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
	"strings"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

const recordColumns = `id, provider, service, channel, model, status, latency, http_code, sub_status, timestamp`

// SaveRecord appends a probe record and returns its assigned ID. The ID is
// also written back into record.
func (db *DB) SaveRecord(ctx context.Context, record *models.ProbeRecord) (int64, error) {
	if record == nil {
		return 0, ErrNilRecord
	}

	const insertSQL = `
		INSERT INTO probe_history
			(provider, service, channel, model, status, latency, http_code, sub_status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64

	err := db.db.QueryRowContext(ctx, db.rebind(insertSQL),
		record.Provider,
		record.Service,
		record.Channel,
		record.Model,
		int(record.Status),
		record.Latency,
		record.HTTPCode,
		record.SubStatus,
		record.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w probe record: %w", ErrFailedToInsert, err)
	}

	record.ID = id

	return id, nil
}

// GetLatest returns the newest record of key by timestamp, ID breaking ties.
func (db *DB) GetLatest(ctx context.Context, key models.MonitorKey) (*models.ProbeRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM probe_history
		WHERE provider = ? AND service = ? AND channel = ? AND model = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	row := db.db.QueryRowContext(ctx, db.rebind(query), key.Provider, key.Service, key.Channel, key.Model)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w latest record: %w", ErrFailedToQuery, err)
	}

	return record, nil
}

// GetHistory returns records of key observed at or after since, oldest first.
func (db *DB) GetHistory(ctx context.Context, key models.MonitorKey, since time.Time) ([]*models.ProbeRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM probe_history
		WHERE provider = ? AND service = ? AND channel = ? AND model = ? AND timestamp >= ?
		ORDER BY timestamp ASC, id ASC`

	rows, err := db.db.QueryContext(ctx, db.rebind(query),
		key.Provider, key.Service, key.Channel, key.Model, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("%w history: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	records := make([]*models.ProbeRecord, 0)

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w history row: %w", ErrFailedToScan, err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w history: %w", ErrFailedToQuery, err)
	}

	return records, nil
}

// GetHistoryBatch fetches the history of many keys with as few round trips
// as possible. Every requested key is present in the result.
func (db *DB) GetHistoryBatch(
	ctx context.Context, keys []models.MonitorKey, since time.Time) (map[models.MonitorKey][]*models.ProbeRecord, error) {
	result := make(map[models.MonitorKey][]*models.ProbeRecord, len(keys))

	for _, key := range keys {
		result[key] = []*models.ProbeRecord{}
	}

	for start := 0; start < len(keys); start += historyBatchChunk {
		end := min(start+historyBatchChunk, len(keys))

		if err := db.historyChunk(ctx, keys[start:end], since, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (db *DB) historyChunk(
	ctx context.Context, keys []models.MonitorKey, since time.Time, out map[models.MonitorKey][]*models.ProbeRecord) error {
	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)*4+1)

	args = append(args, since.Unix())

	for _, key := range keys {
		clauses = append(clauses, "(provider = ? AND service = ? AND channel = ? AND model = ?)")
		args = append(args, key.Provider, key.Service, key.Channel, key.Model)
	}

	query := `SELECT ` + recordColumns + `
		FROM probe_history
		WHERE timestamp >= ? AND (` + strings.Join(clauses, " OR ") + `)
		ORDER BY timestamp ASC, id ASC`

	rows, err := db.db.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%w batch history: %w", ErrFailedToQuery, err)
	}
	defer closeRows(rows)

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return fmt.Errorf("%w batch history row: %w", ErrFailedToScan, err)
		}

		key := record.Key()
		out[key] = append(out[key], record)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w batch history: %w", ErrFailedToQuery, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*models.ProbeRecord, error) {
	var (
		r      models.ProbeRecord
		status int
	)

	if err := row.Scan(
		&r.ID,
		&r.Provider,
		&r.Service,
		&r.Channel,
		&r.Model,
		&status,
		&r.Latency,
		&r.HTTPCode,
		&r.SubStatus,
		&r.Timestamp,
	); err != nil {
		return nil, err
	}

	r.Status = models.Status(status)

	return &r, nil
}
