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

// Package query builds bucketed timelines, ad-hoc status answers and
// multi-model groups from stored probe records.
package query

import (
	"context"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/db"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// Engine answers read-only queries against storage using the current
// configuration snapshot. It is safe for concurrent use.
type Engine struct {
	store   db.Service
	configs *config.Holder
	now     func() time.Time
}

// NewEngine creates a query engine.
func NewEngine(store db.Service, configs *config.Holder) *Engine {
	return &Engine{
		store:   store,
		configs: configs,
		now:     time.Now,
	}
}

// MonitorStatus is the timeline of one configured monitor.
type MonitorStatus struct {
	Provider      string             `json:"provider"`
	Service       string             `json:"service"`
	Channel       string             `json:"channel"`
	Model         string             `json:"model,omitempty"`
	Board         string             `json:"board"`
	CurrentStatus models.Status      `json:"current_status"`
	Status        string             `json:"status"`
	Timeline      []models.TimePoint `json:"timeline"`
}

// StatusResponse wraps the per-monitor timelines with the resolved window.
type StatusResponse struct {
	Period     string          `json:"period"`
	Since      int64           `json:"since"`
	End        int64           `json:"end"`
	TimeFilter string          `json:"time_filter,omitempty"`
	Monitors   []MonitorStatus `json:"monitors"`
}

// GroupsResponse wraps the multi-model groups with the resolved window.
type GroupsResponse struct {
	Period     string         `json:"period"`
	Since      int64          `json:"since"`
	End        int64          `json:"end"`
	TimeFilter string         `json:"time_filter,omitempty"`
	Groups     []MonitorGroup `json:"groups"`
}

type window struct {
	since  time.Time
	end    time.Time
	filter *TimeFilter
}

func (e *Engine) resolveWindow(period, align, timeFilter string) (*window, error) {
	filter, err := ParseTimeFilter(timeFilter)
	if err != nil {
		return nil, err
	}

	since, end, err := parseTimeRange(period, align, e.now())
	if err != nil {
		return nil, err
	}

	return &window{since: since, end: end, filter: filter}, nil
}

// GetStatus renders the timeline of every enabled monitor.
func (e *Engine) GetStatus(ctx context.Context, period, align, timeFilter string) (*StatusResponse, error) {
	w, err := e.resolveWindow(period, align, timeFilter)
	if err != nil {
		return nil, err
	}

	cfg := e.configs.Load()

	var enabled []*config.MonitorConfig

	keys := make([]models.MonitorKey, 0, len(cfg.Monitors))

	for i := range cfg.Monitors {
		m := &cfg.Monitors[i]
		if m.Disabled {
			continue
		}

		enabled = append(enabled, m)
		keys = append(keys, m.Key())
	}

	resp := &StatusResponse{
		Period:     period,
		Since:      w.since.Unix(),
		End:        w.end.Unix(),
		TimeFilter: w.filter.String(),
		Monitors:   make([]MonitorStatus, 0, len(enabled)),
	}

	if len(enabled) == 0 {
		return resp, nil
	}

	fetcher := &historyFetcher{store: e.store, opts: cfg.Query}

	hist, _, err := fetcher.fetch(ctx, period, keys, w.since)
	if err != nil {
		return nil, err
	}

	for _, m := range enabled {
		records := hist[m.Key()]

		timeline, err := buildTimeline(records, w.end, period, cfg.Query.Weight(), w.filter)
		if err != nil {
			return nil, err
		}

		current := latestStatus(records)

		resp.Monitors = append(resp.Monitors, MonitorStatus{
			Provider:      m.Provider,
			Service:       m.Service,
			Channel:       m.Channel,
			Model:         m.Model,
			Board:         m.Board,
			CurrentStatus: current,
			Status:        current.Label(),
			Timeline:      timeline,
		})
	}

	return resp, nil
}

// MonitorGroups renders the multi-model channel groups.
func (e *Engine) MonitorGroups(ctx context.Context, period, align, timeFilter string) (*GroupsResponse, error) {
	w, err := e.resolveWindow(period, align, timeFilter)
	if err != nil {
		return nil, err
	}

	cfg := e.configs.Load()
	fetcher := &historyFetcher{store: e.store, opts: cfg.Query}

	groups, err := buildMonitorGroups(ctx, fetcher, cfg.Monitors, period, w.since, w.end,
		cfg.Query.Weight(), w.filter)
	if err != nil {
		return nil, err
	}

	return &GroupsResponse{
		Period:     period,
		Since:      w.since.Unix(),
		End:        w.end.Unix(),
		TimeFilter: w.filter.String(),
		Groups:     groups,
	}, nil
}

// QueryStatus answers each query independently. Unmatched queries carry a
// NOT_FOUND error in their result; storage failures and cancellation fail
// the whole call.
func (e *Engine) QueryStatus(ctx context.Context, queries []StatusQuery) ([]QueryResult, error) {
	cfg := e.configs.Load()
	results := make([]QueryResult, 0, len(queries))

	for _, q := range queries {
		result := QueryResult{Query: q.String()}

		targets, err := expandQueryTargets(cfg.Monitors, q)
		if err != nil {
			if models.KindOf(err) != models.KindNotFound {
				return nil, err
			}

			result.Error = &QueryError{Code: models.KindNotFound, Message: err.Error()}
			results = append(results, result)

			continue
		}

		channels, err := executeStatusQuery(ctx, e.store, targets)
		if err != nil {
			return nil, err
		}

		result.Channels = channels
		results = append(results, result)
	}

	return results, nil
}
