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

package query

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/db"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

const (
	// MaxGetQueries caps the packed queries of one GET request.
	MaxGetQueries = 20
	// MaxBatchQueries caps the queries of one POST batch.
	MaxBatchQueries = 50
)

// StatusQuery selects channels by provider, and optionally service and
// channel. Empty fields expand to everything below the level above.
type StatusQuery struct {
	Provider string `json:"provider"`
	Service  string `json:"service,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

func (q StatusQuery) String() string {
	parts := []string{q.Provider}
	if q.Service != "" {
		parts = append(parts, q.Service)
	}

	if q.Channel != "" {
		parts = append(parts, q.Channel)
	}

	return strings.Join(parts, "/")
}

// ParseStatusQuery parses a packed "provider[/service[/channel]]" string.
func ParseStatusQuery(s string) (StatusQuery, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) > 3 {
		return StatusQuery{}, invalidQuery(s, "at most provider/service/channel")
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return StatusQuery{}, invalidQuery(s, "empty segment")
		}
	}

	q := StatusQuery{Provider: parts[0]}

	if len(parts) > 1 {
		q.Service = parts[1]
	}

	if len(parts) > 2 {
		q.Channel = parts[2]
	}

	return q, nil
}

// ParseStatusQueries parses a list of packed queries, rejecting empty input
// and more than limit entries.
func ParseStatusQueries(raw []string, limit int) ([]StatusQuery, error) {
	if len(raw) == 0 {
		return nil, models.NewError(models.KindValidation, "query.ParseStatusQueries", ErrNoQueries)
	}

	if len(raw) > limit {
		return nil, models.NewError(models.KindValidation, "query.ParseStatusQueries",
			fmt.Errorf("%w: %d given, limit %d", ErrTooManyQueries, len(raw), limit))
	}

	out := make([]StatusQuery, 0, len(raw))

	for _, s := range raw {
		q, err := ParseStatusQuery(s)
		if err != nil {
			return nil, err
		}

		out = append(out, q)
	}

	return out, nil
}

func invalidQuery(s, reason string) error {
	return models.NewError(models.KindValidation, "query.ParseStatusQuery",
		fmt.Errorf("%w %q: %s", ErrInvalidQuery, s, reason))
}

// queryTarget is one resolved channel with its models, using the names as
// configured.
type queryTarget struct {
	Provider string
	Service  string
	Channel  string
	Models   []string
	Board    string
}

func (t *queryTarget) key(model string) models.MonitorKey {
	return models.MonitorKey{Provider: t.Provider, Service: t.Service, Channel: t.Channel, Model: model}
}

func matchName(configured, wanted string) bool {
	return strings.EqualFold(strings.TrimSpace(configured), strings.TrimSpace(wanted))
}

// expandQueryTargets resolves q against the configured monitors, in
// configuration order. A query matching nothing yields a NOT_FOUND error.
func expandQueryTargets(monitors []config.MonitorConfig, q StatusQuery) ([]*queryTarget, error) {
	var (
		targets []*queryTarget
		byKey   = make(map[models.MonitorKey]*queryTarget)
		seen    = make(map[models.MonitorKey]map[string]struct{})
	)

	for i := range monitors {
		m := &monitors[i]

		if !matchName(m.Provider, q.Provider) ||
			(q.Service != "" && !matchName(m.Service, q.Service)) ||
			(q.Channel != "" && !matchName(m.Channel, q.Channel)) {
			continue
		}

		key := m.Key().ChannelKey()

		t, ok := byKey[key]
		if !ok {
			t = &queryTarget{Provider: m.Provider, Service: m.Service, Channel: m.Channel}
			byKey[key] = t
			seen[key] = make(map[string]struct{})
			targets = append(targets, t)
		}

		if _, dup := seen[key][m.Model]; !dup {
			seen[key][m.Model] = struct{}{}
			t.Models = append(t.Models, m.Model)
		}
	}

	if len(targets) == 0 {
		return nil, models.NewError(models.KindNotFound, "query.expandQueryTargets",
			fmt.Errorf("%w: %s", ErrTargetNotFound, q))
	}

	for _, t := range targets {
		t.Board = channelBoard(monitors, t.key("").ChannelKey())
	}

	return targets, nil
}

// channelBoard is "cold" only when every enabled monitor of the channel is
// cold; a channel with no enabled monitors is "hot".
func channelBoard(monitors []config.MonitorConfig, channel models.MonitorKey) string {
	enabled := 0

	for i := range monitors {
		m := &monitors[i]
		if m.Disabled || m.Key().ChannelKey() != channel {
			continue
		}

		enabled++

		if !m.IsCold() {
			return config.BoardHot
		}
	}

	if enabled == 0 {
		return config.BoardHot
	}

	return config.BoardCold
}

// ModelStatus is the latest observation of one model.
type ModelStatus struct {
	Model      string        `json:"model"`
	Status     string        `json:"status"`
	StatusCode models.Status `json:"status_code"`
	Latency    int           `json:"latency"`
	UpdatedAt  int64         `json:"updated_at"`
}

// ChannelStatus folds the models of a channel to the worst status.
type ChannelStatus struct {
	Provider   string        `json:"provider"`
	Service    string        `json:"service"`
	Channel    string        `json:"channel"`
	Board      string        `json:"board"`
	Status     string        `json:"status"`
	StatusCode models.Status `json:"status_code"`
	Latency    int           `json:"latency"`
	UpdatedAt  int64         `json:"updated_at"`
	Models     []ModelStatus `json:"models"`
}

// QueryError is the per-item failure of a status query.
type QueryError struct {
	Code    models.ErrorKind `json:"code"`
	Message string           `json:"message"`
}

// QueryResult answers one status query.
type QueryResult struct {
	Query    string          `json:"query"`
	Channels []ChannelStatus `json:"channels,omitempty"`
	Error    *QueryError     `json:"error,omitempty"`
}

// executeStatusQuery fetches the latest record of every model of every
// target. Storage failures and cancellation abort the whole call.
func executeStatusQuery(ctx context.Context, store db.Service, targets []*queryTarget) ([]ChannelStatus, error) {
	out := make([]ChannelStatus, 0, len(targets))

	for _, t := range targets {
		cs := ChannelStatus{
			Provider:   t.Provider,
			Service:    t.Service,
			Channel:    t.Channel,
			Board:      t.Board,
			StatusCode: models.StatusMissing,
			Models:     make([]ModelStatus, 0, len(t.Models)),
		}

		var shown *models.ProbeRecord

		for _, model := range t.Models {
			if err := ctx.Err(); err != nil {
				return nil, models.NewError(models.KindCanceled, "query.executeStatusQuery", err)
			}

			key := t.key(model)

			rec, err := store.GetLatest(ctx, key)
			if err != nil {
				log.Printf("Failed to get latest record for %s: %v", key, err)

				return nil, models.NewError(models.KindStorage, "query.executeStatusQuery",
					fmt.Errorf("%w: %w", errLatestFetch, err))
			}

			ms := ModelStatus{Model: model, StatusCode: models.StatusMissing}
			if rec != nil {
				ms.StatusCode = rec.Status
				ms.Latency = rec.Latency
				ms.UpdatedAt = rec.Timestamp
			}

			ms.Status = ms.StatusCode.Label()
			cs.Models = append(cs.Models, ms)

			if models.Worse(ms.StatusCode, cs.StatusCode) ||
				(rec != nil && ms.StatusCode.Severity() == cs.StatusCode.Severity() && rec.Newer(shown)) {
				cs.StatusCode = ms.StatusCode
				shown = rec
			}
		}

		if shown != nil {
			cs.Latency = shown.Latency
			cs.UpdatedAt = shown.Timestamp
		}

		cs.Status = cs.StatusCode.Label()
		out = append(out, cs)
	}

	return out, nil
}
