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

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/db"
	"github.com/itsharex/relay-pulse-sub001/pkg/events"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
	"github.com/itsharex/relay-pulse-sub001/pkg/query"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp.Error
}

func TestAPIServer_Health(t *testing.T) {
	s := NewAPIServer(nil, nil)

	rr := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAPIServer_Preflight(t *testing.T) {
	s := NewAPIServer(nil, nil)

	rr := do(t, s.Handler(), http.MethodOptions, "/api/status/batch", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAPIServer_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := NewMockQueryEngine(ctrl)
	s := NewAPIServer(engine, nil)

	t.Run("defaults period", func(t *testing.T) {
		engine.EXPECT().GetStatus(gomock.Any(), "24h", "hour", "").
			Return(&query.StatusResponse{Period: "24h", Monitors: []query.MonitorStatus{}}, nil)

		rr := do(t, s.Handler(), http.MethodGet, "/api/status?align=hour", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})

	t.Run("validation maps to 400", func(t *testing.T) {
		engine.EXPECT().GetStatus(gomock.Any(), "7d", "", "09:15-10:00").
			Return(nil, models.NewError(models.KindValidation, "query", query.ErrInvalidTimeFilter))

		rr := do(t, s.Handler(), http.MethodGet, "/api/status?period=7d&time_filter=09:15-10:00", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, models.KindValidation, decodeError(t, rr).Code)
	})

	t.Run("storage maps to 500 without details", func(t *testing.T) {
		engine.EXPECT().MonitorGroups(gomock.Any(), "24h", "", "").
			Return(nil, models.NewError(models.KindStorage, "query", errors.New("secret dsn leaked")))

		rr := do(t, s.Handler(), http.MethodGet, "/api/status/groups", "")
		require.Equal(t, http.StatusInternalServerError, rr.Code)

		body := decodeError(t, rr)
		assert.Equal(t, models.KindStorage, body.Code)
		assert.NotContains(t, body.Message, "secret")
	})

	t.Run("cancellation maps to 503", func(t *testing.T) {
		engine.EXPECT().GetStatus(gomock.Any(), "24h", "", "").
			Return(nil, models.NewError(models.KindCanceled, "query", context.Canceled))

		rr := do(t, s.Handler(), http.MethodGet, "/api/status", "")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestAPIServer_StatusQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := NewMockQueryEngine(ctrl)
	s := NewAPIServer(engine, nil)

	t.Run("get", func(t *testing.T) {
		engine.EXPECT().QueryStatus(gomock.Any(), []query.StatusQuery{
			{Provider: "acme", Service: "chat", Channel: "vip"},
			{Provider: "other"},
		}).Return([]query.QueryResult{{Query: "acme/chat/vip"}, {Query: "other"}}, nil)

		rr := do(t, s.Handler(), http.MethodGet, "/api/status/query?q=acme/chat/vip&q=other", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Results []query.QueryResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Results, 2)
	})

	t.Run("get over cap", func(t *testing.T) {
		target := "/api/status/query?" + strings.Repeat("q=p&", query.MaxGetQueries+1)

		rr := do(t, s.Handler(), http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("get without queries", func(t *testing.T) {
		rr := do(t, s.Handler(), http.MethodGet, "/api/status/query", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("batch", func(t *testing.T) {
		engine.EXPECT().QueryStatus(gomock.Any(), []query.StatusQuery{{Provider: "acme", Service: "chat"}}).
			Return([]query.QueryResult{{Query: "acme/chat"}}, nil)

		rr := do(t, s.Handler(), http.MethodPost, "/api/status/batch", `{"queries":["acme/chat"]}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("batch malformed", func(t *testing.T) {
		rr := do(t, s.Handler(), http.MethodPost, "/api/status/batch", `{"queries":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = do(t, s.Handler(), http.MethodPost, "/api/status/batch", `{"queries":["a//b"]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAPIServer_Events(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	feed := NewMockEventFeed(ctrl)
	s := NewAPIServer(nil, feed)

	t.Run("list with filters", func(t *testing.T) {
		want := &models.EventFilters{
			Provider: "acme",
			Types:    []models.EventType{models.EventTypeDown, models.EventTypeUp},
		}

		feed.EXPECT().ListEvents(gomock.Any(), int64(4), 10, want).Return([]*models.StatusEvent{
			{ID: 5, EventType: models.EventTypeDown, Meta: &models.ServiceEventMeta{StreakCount: 2}},
			{ID: 9, EventType: models.EventTypeUp},
		}, nil)

		rr := do(t, s.Handler(), http.MethodGet, "/api/events?since_id=4&limit=10&provider=acme&type=down,UP", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Events []json.RawMessage `json:"events"`
			Meta   EventsMeta        `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Events, 2)
		assert.Equal(t, int64(9), resp.Meta.NextSinceID)
		assert.Equal(t, 2, resp.Meta.Count)
	})

	t.Run("empty page keeps cursor", func(t *testing.T) {
		feed.EXPECT().ListEvents(gomock.Any(), int64(12), 0, gomock.Any()).Return(nil, nil)

		rr := do(t, s.Handler(), http.MethodGet, "/api/events?since_id=12", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp EventsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(12), resp.Meta.NextSinceID)
	})

	t.Run("bad params", func(t *testing.T) {
		for _, target := range []string{
			"/api/events?since_id=abc",
			"/api/events?limit=1.5",
			"/api/events?type=SIDEWAYS",
		} {
			rr := do(t, s.Handler(), http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		}
	})

	t.Run("latest", func(t *testing.T) {
		feed.EXPECT().LatestEventID(gomock.Any()).Return(int64(42), nil)

		rr := do(t, s.Handler(), http.MethodGet, "/api/events/latest", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"latest_event_id":42}`, rr.Body.String())
	})
}

func TestAPIServer_IngestEndToEnd(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Events:  config.EventsConfig{Enabled: true, DownThreshold: 1},
		Monitors: []config.MonitorConfig{
			{Provider: "acme", Service: "chat", Channel: "vip"},
		},
	}
	cfg.ApplyDefaults()

	holder := config.NewHolder(cfg)
	store := db.NewMemoryStore()

	svc, err := events.NewService(store, holder)
	require.NoError(t, err)

	s := NewAPIServer(query.NewEngine(store, holder), svc)
	h := s.Handler()

	rr := do(t, h, http.MethodPost, "/api/records",
		`{"provider":"acme","service":"chat","channel":"vip","status":1,"latency":120,"http_code":200}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var first IngestResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	assert.Equal(t, int64(1), first.Record.ID)
	assert.Positive(t, first.Record.Timestamp)
	assert.Nil(t, first.Event)

	rr = do(t, h, http.MethodPost, "/api/records",
		`{"provider":"acme","service":"chat","channel":"vip","status":0,"http_code":502,"sub_status":"bad_gateway"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var second struct {
		Event struct {
			ID        int64            `json:"id"`
			EventType models.EventType `json:"event_type"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	assert.Equal(t, models.EventTypeDown, second.Event.EventType)

	rr = do(t, h, http.MethodGet, "/api/events/latest", "")
	assert.JSONEq(t, `{"latest_event_id":1}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/status/query?q=ACME", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"down"`)

	rr = do(t, h, http.MethodPost, "/api/records", `{"provider":"acme","service":"chat","channel":"vip","status":7}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/records", `{"service":"chat","channel":"vip","status":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
