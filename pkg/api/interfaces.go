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

package api

//go:generate mockgen -destination=mock_api.go -package=api github.com/itsharex/relay-pulse-sub001/pkg/api QueryEngine,EventFeed

import (
	"context"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
	"github.com/itsharex/relay-pulse-sub001/pkg/query"
)

// Service represents the API server functionality.
type Service interface {
	Start(addr string) error
	Stop(ctx context.Context) error
}

// QueryEngine answers the read-only status endpoints.
type QueryEngine interface {
	GetStatus(ctx context.Context, period, align, timeFilter string) (*query.StatusResponse, error)
	MonitorGroups(ctx context.Context, period, align, timeFilter string) (*query.GroupsResponse, error)
	QueryStatus(ctx context.Context, queries []query.StatusQuery) ([]query.QueryResult, error)
}

// EventFeed ingests probe records and serves the event feed.
type EventFeed interface {
	Ingest(ctx context.Context, record *models.ProbeRecord) (*models.StatusEvent, error)
	ListEvents(ctx context.Context, sinceID int64, limit int, filters *models.EventFilters) ([]*models.StatusEvent, error)
	LatestEventID(ctx context.Context) (int64, error)
}
