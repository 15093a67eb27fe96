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
	"net/http"

	"github.com/gorilla/mux"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

type APIServer struct {
	router *mux.Router
	server *http.Server
	engine QueryEngine
	events EventFeed
}

// BatchRequest is the body of POST /api/status/batch.
type BatchRequest struct {
	Queries []string `json:"queries"`
}

type EventsMeta struct {
	Count       int   `json:"count"`
	NextSinceID int64 `json:"next_since_id"`
}

type EventsResponse struct {
	Events []*models.StatusEvent `json:"events"`
	Meta   EventsMeta            `json:"meta"`
}

type LatestEventResponse struct {
	LatestEventID int64 `json:"latest_event_id"`
}

type IngestResponse struct {
	Record *models.ProbeRecord `json:"record"`
	Event  *models.StatusEvent `json:"event,omitempty"`
}

type ErrorBody struct {
	Code    models.ErrorKind `json:"code"`
	Message string           `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
