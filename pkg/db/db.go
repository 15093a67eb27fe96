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

// Package db pkg/db/db.go provides SQL persistence for probe records,
// hysteresis state and status events. SQLite (cgo or pure Go) and PostgreSQL
// share one implementation; only the schema and placeholder style differ.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	_ "modernc.org/sqlite"          // pure Go SQLite driver
)

// Supported drivers. DriverMemory is served by MemoryStore.
const (
	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const (
	// historyBatchChunk bounds the OR-clauses in one batch history query.
	historyBatchChunk = 200

	sqliteSchema = `
	CREATE TABLE IF NOT EXISTS probe_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL,
		latency INTEGER NOT NULL DEFAULT 0,
		http_code INTEGER NOT NULL DEFAULT 0,
		sub_status TEXT NOT NULL DEFAULT '',
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_probe_history_key_time
		ON probe_history(provider, service, channel, model, timestamp);
	CREATE INDEX IF NOT EXISTS idx_probe_history_time
		ON probe_history(timestamp);
	CREATE TABLE IF NOT EXISTS service_states (
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		stable_available INTEGER NOT NULL,
		streak_count INTEGER NOT NULL,
		streak_status INTEGER NOT NULL,
		last_record_id INTEGER NOT NULL,
		last_timestamp INTEGER NOT NULL,
		PRIMARY KEY (provider, service, channel, model)
	);
	CREATE TABLE IF NOT EXISTS channel_states (
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		stable_available INTEGER NOT NULL,
		down_count INTEGER NOT NULL,
		known_count INTEGER NOT NULL,
		last_record_id INTEGER NOT NULL,
		last_timestamp INTEGER NOT NULL,
		PRIMARY KEY (provider, service, channel)
	);
	CREATE TABLE IF NOT EXISTS status_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL,
		from_status INTEGER NOT NULL,
		to_status INTEGER NOT NULL,
		trigger_record_id INTEGER NOT NULL,
		observed_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		meta TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_status_events_key
		ON status_events(provider, service, channel, id);
	`

	postgresSchema = `
	CREATE TABLE IF NOT EXISTS probe_history (
		id BIGSERIAL PRIMARY KEY,
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL,
		latency INTEGER NOT NULL DEFAULT 0,
		http_code INTEGER NOT NULL DEFAULT 0,
		sub_status TEXT NOT NULL DEFAULT '',
		timestamp BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_probe_history_key_time
		ON probe_history(provider, service, channel, model, timestamp);
	CREATE INDEX IF NOT EXISTS idx_probe_history_time
		ON probe_history(timestamp);
	CREATE TABLE IF NOT EXISTS service_states (
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		stable_available INTEGER NOT NULL,
		streak_count INTEGER NOT NULL,
		streak_status INTEGER NOT NULL,
		last_record_id BIGINT NOT NULL,
		last_timestamp BIGINT NOT NULL,
		PRIMARY KEY (provider, service, channel, model)
	);
	CREATE TABLE IF NOT EXISTS channel_states (
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		stable_available INTEGER NOT NULL,
		down_count INTEGER NOT NULL,
		known_count INTEGER NOT NULL,
		last_record_id BIGINT NOT NULL,
		last_timestamp BIGINT NOT NULL,
		PRIMARY KEY (provider, service, channel)
	);
	CREATE TABLE IF NOT EXISTS status_events (
		id BIGSERIAL PRIMARY KEY,
		provider TEXT NOT NULL,
		service TEXT NOT NULL,
		channel TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL,
		from_status INTEGER NOT NULL,
		to_status INTEGER NOT NULL,
		trigger_record_id BIGINT NOT NULL,
		observed_at BIGINT NOT NULL,
		created_at BIGINT NOT NULL,
		meta TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_status_events_key
		ON status_events(provider, service, channel, id);
	`
)

// DB represents the database connection and operations.
type DB struct {
	db     *sql.DB
	driver string
}

var (
	_ Service = (*DB)(nil)
	_ Service = (*MemoryStore)(nil)
)

// New opens a store for the given driver. The memory driver ignores dsn.
func New(driver, dsn string) (Service, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite3, DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	db := &DB{db: sqlDB, driver: driver}

	if db.isSQLite() {
		// one writer connection; also keeps :memory: databases on a single handle
		sqlDB.SetMaxOpenConns(1)

		// Enable WAL mode for better concurrent access
		if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
		}
	}

	if err := db.initSchema(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

func (db *DB) isSQLite() bool {
	return db.driver == DriverSQLite3 || db.driver == DriverSQLite
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	schema := sqliteSchema
	if db.driver == DriverPostgres {
		schema = postgresSchema
	}

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}

		if _, err := db.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.db.Close()
}

// rebind converts '?' placeholders to the driver's native style.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder

	b.Grow(len(query) + 16)

	n := 0

	for _, r := range query {
		if r == '?' {
			n++

			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("failed to close rows: %v", err)
	}
}

func rollbackOnError(tx *sql.Tx, err error) {
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
	}
}
