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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errUnknownMetaScope = errors.New("unknown event meta scope")

// EventType is the direction of a stable-state transition.
type EventType string

const (
	EventTypeDown EventType = "DOWN"
	EventTypeUp   EventType = "UP"
)

// EventScope distinguishes model/service transitions from channel rollups.
type EventScope string

const (
	ScopeService EventScope = "service"
	ScopeChannel EventScope = "channel"
)

// StatusEvent is an append-only record of a stable-state transition.
type StatusEvent struct {
	ID              int64     `json:"id"`
	Provider        string    `json:"provider"`
	Service         string    `json:"service"`
	Channel         string    `json:"channel"`
	Model           string    `json:"model,omitempty"`
	EventType       EventType `json:"event_type"`
	FromStatus      int       `json:"from_status"`
	ToStatus        int       `json:"to_status"`
	TriggerRecordID int64     `json:"trigger_record_id"`
	ObservedAt      int64     `json:"observed_at"`
	CreatedAt       int64     `json:"created_at"`
	Meta            EventMeta `json:"meta,omitempty"`
}

// EventFilters narrows an event feed query. Empty fields match everything.
type EventFilters struct {
	Provider string
	Service  string
	Channel  string
	Types    []EventType
}

// EventMeta is the diagnostic payload attached to an event. It is one of
// *ServiceEventMeta or *ChannelEventMeta.
type EventMeta interface {
	Scope() EventScope
}

// ServiceEventMeta describes the record that pushed a single target over its
// threshold.
type ServiceEventMeta struct {
	HTTPCode    int    `json:"http_code"`
	Latency     int    `json:"latency"`
	SubStatus   string `json:"sub_status,omitempty"`
	StreakCount int    `json:"streak_count"`
	Threshold   int    `json:"threshold"`
}

func (*ServiceEventMeta) Scope() EventScope { return ScopeService }

// ChannelEventMeta carries the channel counters at the moment of the
// transition together with the triggering model's probe details.
type ChannelEventMeta struct {
	HTTPCode     int    `json:"http_code"`
	Latency      int    `json:"latency"`
	SubStatus    string `json:"sub_status,omitempty"`
	TriggerModel string `json:"trigger_model,omitempty"`
	DownCount    int    `json:"down_count"`
	KnownCount   int    `json:"known_count"`
	TotalModels  int    `json:"total_models"`
	Threshold    int    `json:"threshold"`
}

func (*ChannelEventMeta) Scope() EventScope { return ScopeChannel }

type metaEnvelope struct {
	Scope EventScope      `json:"scope"`
	Data  json.RawMessage `json:"data"`
}

// MarshalEventMeta serializes meta with its scope tag. A nil meta encodes
// as an empty string.
func MarshalEventMeta(meta EventMeta) (string, error) {
	if meta == nil {
		return "", nil
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event meta: %w", err)
	}

	out, err := json.Marshal(metaEnvelope{Scope: meta.Scope(), Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to marshal event meta: %w", err)
	}

	return string(out), nil
}

// UnmarshalEventMeta is the inverse of MarshalEventMeta.
func UnmarshalEventMeta(raw string) (EventMeta, error) {
	if raw == "" {
		return nil, nil
	}

	var env metaEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event meta: %w", err)
	}

	var meta EventMeta

	switch env.Scope {
	case ScopeService:
		meta = &ServiceEventMeta{}
	case ScopeChannel:
		meta = &ChannelEventMeta{}
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMetaScope, env.Scope)
	}

	if err := json.Unmarshal(env.Data, meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s event meta: %w", env.Scope, err)
	}

	return meta, nil
}
