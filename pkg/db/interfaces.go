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

// Package db pkg/db/interfaces.go
package db

import (
	"context"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/itsharex/relay-pulse-sub001/pkg/db Service

// Service represents all persistence operations. Lookups of a single row
// return (nil, nil) when the row does not exist.
type Service interface {
	Close() error

	// Probe record operations.

	SaveRecord(ctx context.Context, record *models.ProbeRecord) (int64, error)
	GetLatest(ctx context.Context, key models.MonitorKey) (*models.ProbeRecord, error)
	GetHistory(ctx context.Context, key models.MonitorKey, since time.Time) ([]*models.ProbeRecord, error)
	GetHistoryBatch(ctx context.Context, keys []models.MonitorKey, since time.Time) (map[models.MonitorKey][]*models.ProbeRecord, error)

	// State operations.

	GetServiceState(ctx context.Context, key models.MonitorKey) (*models.ServiceState, error)
	UpsertServiceState(ctx context.Context, state *models.ServiceState) error
	ListServiceStates(ctx context.Context, channel models.MonitorKey) ([]*models.ServiceState, error)
	GetChannelState(ctx context.Context, channel models.MonitorKey) (*models.ChannelState, error)
	UpsertChannelState(ctx context.Context, state *models.ChannelState) error

	// SaveTransition atomically writes a target's state together with the
	// optional channel state and event. The event ID is written back.
	SaveTransition(ctx context.Context, service *models.ServiceState, channel *models.ChannelState, event *models.StatusEvent) error

	// Event operations.

	SaveStatusEvent(ctx context.Context, event *models.StatusEvent) (int64, error)
	GetStatusEvents(ctx context.Context, sinceID int64, limit int, filters *models.EventFilters) ([]*models.StatusEvent, error)
	GetLatestEventID(ctx context.Context) (int64, error)

	// Maintenance operations.

	CleanOldRecords(ctx context.Context, days int) (int64, error)
}
