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

// Package db pkg/db/memory_store.go
package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// MemoryStore implements Service without persistence. Useful for tests and
// ephemeral deployments.
type MemoryStore struct {
	mu            sync.RWMutex
	records       map[models.MonitorKey][]*models.ProbeRecord
	serviceStates map[models.MonitorKey]*models.ServiceState
	channelStates map[models.MonitorKey]*models.ChannelState
	events        []*models.StatusEvent
	nextRecordID  int64
	nextEventID   int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:       make(map[models.MonitorKey][]*models.ProbeRecord),
		serviceStates: make(map[models.MonitorKey]*models.ServiceState),
		channelStates: make(map[models.MonitorKey]*models.ChannelState),
		events:        make([]*models.StatusEvent, 0),
	}
}

func (*MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) SaveRecord(_ context.Context, record *models.ProbeRecord) (int64, error) {
	if record == nil {
		return 0, ErrNilRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRecordID++
	record.ID = s.nextRecordID

	stored := *record
	key := stored.Key()
	s.records[key] = append(s.records[key], &stored)

	return stored.ID, nil
}

func (s *MemoryStore) GetLatest(_ context.Context, key models.MonitorKey) (*models.ProbeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.ProbeRecord

	for _, r := range s.records[key] {
		if r.Newer(latest) {
			latest = r
		}
	}

	if latest == nil {
		return nil, nil
	}

	out := *latest

	return &out, nil
}

func (s *MemoryStore) GetHistory(_ context.Context, key models.MonitorKey, since time.Time) ([]*models.ProbeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.historyLocked(key, since.Unix()), nil
}

func (s *MemoryStore) GetHistoryBatch(
	_ context.Context, keys []models.MonitorKey, since time.Time) (map[models.MonitorKey][]*models.ProbeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.MonitorKey][]*models.ProbeRecord, len(keys))
	for _, key := range keys {
		out[key] = s.historyLocked(key, since.Unix())
	}

	return out, nil
}

func (s *MemoryStore) historyLocked(key models.MonitorKey, since int64) []*models.ProbeRecord {
	out := make([]*models.ProbeRecord, 0)

	for _, r := range s.records[key] {
		if r.Timestamp >= since {
			c := *r
			out = append(out, &c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[j].Newer(out[i])
	})

	return out
}

func (s *MemoryStore) GetServiceState(_ context.Context, key models.MonitorKey) (*models.ServiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.serviceStates[key]
	if !ok {
		return nil, nil
	}

	out := *state

	return &out, nil
}

func (s *MemoryStore) UpsertServiceState(_ context.Context, state *models.ServiceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *state
	s.serviceStates[stored.Key()] = &stored

	return nil
}

func (s *MemoryStore) ListServiceStates(_ context.Context, channel models.MonitorKey) ([]*models.ServiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var states []*models.ServiceState

	for key, state := range s.serviceStates {
		if key.ChannelKey() == channel.ChannelKey() {
			out := *state
			states = append(states, &out)
		}
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].Model < states[j].Model
	})

	return states, nil
}

func (s *MemoryStore) GetChannelState(_ context.Context, channel models.MonitorKey) (*models.ChannelState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.channelStates[channel.ChannelKey()]
	if !ok {
		return nil, nil
	}

	out := *state

	return &out, nil
}

func (s *MemoryStore) UpsertChannelState(_ context.Context, state *models.ChannelState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *state
	s.channelStates[stored.Key()] = &stored

	return nil
}

// SaveTransition applies all writes under one lock. Event meta is encoded
// up front so the memory store rejects the same events the SQL store does.
func (s *MemoryStore) SaveTransition(
	_ context.Context, service *models.ServiceState, channel *models.ChannelState, event *models.StatusEvent) error {
	if service == nil {
		return ErrNilState
	}

	if event != nil {
		if _, err := models.MarshalEventMeta(event.Meta); err != nil {
			return fmt.Errorf("%w status event: %w", ErrFailedToInsert, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	storedService := *service
	s.serviceStates[storedService.Key()] = &storedService

	if channel != nil {
		storedChannel := *channel
		s.channelStates[storedChannel.Key()] = &storedChannel
	}

	if event != nil {
		s.nextEventID++
		event.ID = s.nextEventID

		storedEvent := *event
		s.events = append(s.events, &storedEvent)
	}

	return nil
}

func (s *MemoryStore) SaveStatusEvent(_ context.Context, event *models.StatusEvent) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	event.ID = s.nextEventID

	stored := *event
	s.events = append(s.events, &stored)

	return stored.ID, nil
}

func (s *MemoryStore) GetStatusEvents(
	_ context.Context, sinceID int64, limit int, filters *models.EventFilters) ([]*models.StatusEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.StatusEvent, 0)

	for _, e := range s.events {
		if len(out) >= limit {
			break
		}

		if e.ID <= sinceID || !matchesEventFilters(e, filters) {
			continue
		}

		c := *e
		out = append(out, &c)
	}

	return out, nil
}

func matchesEventFilters(e *models.StatusEvent, f *models.EventFilters) bool {
	if f == nil {
		return true
	}

	if f.Provider != "" && e.Provider != f.Provider {
		return false
	}

	if f.Service != "" && e.Service != f.Service {
		return false
	}

	if f.Channel != "" && e.Channel != f.Channel {
		return false
	}

	if len(f.Types) == 0 {
		return true
	}

	for _, t := range f.Types {
		if e.EventType == t {
			return true
		}
	}

	return false
}

func (s *MemoryStore) GetLatestEventID(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nextEventID, nil
}

func (s *MemoryStore) CleanOldRecords(_ context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64

	for key, records := range s.records {
		kept := records[:0]

		for _, r := range records {
			if r.Timestamp < cutoff {
				deleted++
				continue
			}

			kept = append(kept, r)
		}

		s.records[key] = kept
	}

	return deleted, nil
}
