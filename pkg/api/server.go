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

// Package api pkg/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	httpx "github.com/itsharex/relay-pulse-sub001/pkg/http"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
	"github.com/itsharex/relay-pulse-sub001/pkg/query"
)

const (
	defaultPeriod     = query.Period24h
	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 5 * time.Second
)

var (
	errInvalidParam  = errors.New("invalid parameter")
	errInvalidBody   = errors.New("invalid request body")
	errInvalidRecord = errors.New("invalid probe record")
)

var _ Service = (*APIServer)(nil)

func NewAPIServer(engine QueryEngine, events EventFeed) *APIServer {
	s := &APIServer{
		router: mux.NewRouter(),
		engine: engine,
		events: events,
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.Recoverer)
	s.router.Use(httpx.CommonMiddleware)

	s.router.HandleFunc("/healthz", s.getHealth).Methods(http.MethodGet)

	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/status/groups", s.getGroups).Methods(http.MethodGet)
	s.router.HandleFunc("/api/status/query", s.getStatusQuery).Methods(http.MethodGet)
	s.router.HandleFunc("/api/status/batch", s.postStatusBatch).Methods(http.MethodPost)

	s.router.HandleFunc("/api/events", s.getEvents).Methods(http.MethodGet)
	s.router.HandleFunc("/api/events/latest", s.getLatestEvent).Methods(http.MethodGet)

	s.router.HandleFunc("/api/records", s.postRecord).Methods(http.MethodPost)

	// preflight; CommonMiddleware answers before this handler runs
	s.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})
}

// Handler exposes the router, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Printf("Starting API server on %s", addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *APIServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

func (*APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func periodParams(r *http.Request) (period, align, timeFilter string) {
	q := r.URL.Query()

	period = q.Get("period")
	if period == "" {
		period = defaultPeriod
	}

	return period, q.Get("align"), q.Get("time_filter")
}

func (s *APIServer) getStatus(w http.ResponseWriter, r *http.Request) {
	period, align, timeFilter := periodParams(r)

	resp, err := s.engine.GetStatus(r.Context(), period, align, timeFilter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) getGroups(w http.ResponseWriter, r *http.Request) {
	period, align, timeFilter := periodParams(r)

	resp, err := s.engine.MonitorGroups(r.Context(), period, align, timeFilter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) getStatusQuery(w http.ResponseWriter, r *http.Request) {
	queries, err := query.ParseStatusQueries(r.URL.Query()["q"], query.MaxGetQueries)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.answerQueries(w, r, queries)
}

func (s *APIServer) postStatusBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest

	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	queries, err := query.ParseStatusQueries(req.Queries, query.MaxBatchQueries)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.answerQueries(w, r, queries)
}

func (s *APIServer) answerQueries(w http.ResponseWriter, r *http.Request, queries []query.StatusQuery) {
	results, err := s.engine.QueryStatus(r.Context(), queries)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *APIServer) getEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sinceID, err := intParam(q.Get("since_id"), "since_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	filters := &models.EventFilters{
		Provider: q.Get("provider"),
		Service:  q.Get("service"),
		Channel:  q.Get("channel"),
	}

	for _, raw := range q["type"] {
		for _, t := range strings.Split(raw, ",") {
			eventType := models.EventType(strings.ToUpper(strings.TrimSpace(t)))

			switch eventType {
			case models.EventTypeDown, models.EventTypeUp:
				filters.Types = append(filters.Types, eventType)
			case "":
			default:
				writeError(w, r, models.NewError(models.KindValidation, "api.getEvents",
					fmt.Errorf("%w: type %q", errInvalidParam, t)))

				return
			}
		}
	}

	events, err := s.events.ListEvents(r.Context(), sinceID, int(limit), filters)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := EventsResponse{
		Events: events,
		Meta:   EventsMeta{Count: len(events), NextSinceID: max(sinceID, 0)},
	}

	if len(events) > 0 {
		resp.Meta.NextSinceID = events[len(events)-1].ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) getLatestEvent(w http.ResponseWriter, r *http.Request) {
	id, err := s.events.LatestEventID(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LatestEventResponse{LatestEventID: id})
}

func (s *APIServer) postRecord(w http.ResponseWriter, r *http.Request) {
	var record models.ProbeRecord

	if err := decodeBody(w, r, &record); err != nil {
		writeError(w, r, err)
		return
	}

	if err := validateRecord(&record); err != nil {
		writeError(w, r, err)
		return
	}

	// storage assigns the ID
	record.ID = 0

	if record.Timestamp == 0 {
		record.Timestamp = time.Now().Unix()
	}

	event, err := s.events.Ingest(r.Context(), &record)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, IngestResponse{Record: &record, Event: event})
}

func validateRecord(record *models.ProbeRecord) error {
	var reason string

	switch {
	case strings.TrimSpace(record.Provider) == "" || strings.TrimSpace(record.Service) == "" ||
		strings.TrimSpace(record.Channel) == "":
		reason = "provider, service and channel are required"
	case !record.Status.Valid():
		reason = fmt.Sprintf("status %d is not one of 0, 1, 2", record.Status)
	case record.Latency < 0 || record.Timestamp < 0:
		reason = "latency and timestamp must not be negative"
	default:
		return nil
	}

	return models.NewError(models.KindValidation, "api.postRecord", fmt.Errorf("%w: %s", errInvalidRecord, reason))
}

func intParam(raw, name string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.NewError(models.KindValidation, "api", fmt.Errorf("%w: %s=%q", errInvalidParam, name, raw))
	}

	return v, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		return models.NewError(models.KindValidation, "api.decodeBody", fmt.Errorf("%w: %w", errInvalidBody, err))
	}

	return nil
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindCanceled:
		return http.StatusServiceUnavailable
	case models.KindStorage, models.KindInvalidConfig, models.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := models.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)

		message = "internal server error"
	}

	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: kind, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
