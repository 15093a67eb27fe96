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

package events

import (
	"fmt"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// Detector is the per-target hysteresis state machine. It is pure: callers
// own persistence and serialization.
type Detector struct {
	config DetectorConfig
	now    Clock
}

// NewDetector validates the thresholds and builds a detector.
func NewDetector(cfg DetectorConfig) (*Detector, error) {
	if cfg.DownThreshold < 1 || cfg.UpThreshold < 1 {
		return nil, models.NewError(models.KindInvalidConfig, "events.NewDetector",
			fmt.Errorf("%w: down=%d up=%d", ErrInvalidThreshold, cfg.DownThreshold, cfg.UpThreshold))
	}

	return &Detector{config: cfg, now: time.Now}, nil
}

// Config returns the detector thresholds.
func (d *Detector) Config() DetectorConfig {
	return d.config
}

// Detect applies record to prev and returns the next state plus the event
// fired by this record, if any. prev is never modified. The first record of
// a target only initializes state.
func (d *Detector) Detect(prev *ServiceState, record *ProbeRecord) (*ServiceState, *StatusEvent, error) {
	if record == nil {
		return nil, nil, ErrNilRecord
	}

	available := record.Status.Available()

	if prev == nil || prev.StableAvailable == models.StableUninitialized {
		return &ServiceState{
			Provider:        record.Provider,
			Service:         record.Service,
			Channel:         record.Channel,
			Model:           record.Model,
			StableAvailable: available,
			StreakCount:     1,
			StreakStatus:    available,
			LastRecordID:    record.ID,
			LastTimestamp:   record.Timestamp,
		}, nil, nil
	}

	next := *prev
	next.LastRecordID = record.ID
	next.LastTimestamp = record.Timestamp

	if available == prev.StreakStatus {
		next.StreakCount++
	} else {
		next.StreakCount = 1
		next.StreakStatus = available
	}

	var event *StatusEvent

	switch {
	case prev.StableAvailable == models.StableAvailable && available == models.StableUnavailable &&
		next.StreakCount >= d.config.DownThreshold:
		event = d.newEvent(record, models.EventTypeDown, next.StreakCount, d.config.DownThreshold)
		next.StableAvailable = models.StableUnavailable
		next.StreakCount = 0
	case prev.StableAvailable == models.StableUnavailable && available == models.StableAvailable &&
		next.StreakCount >= d.config.UpThreshold:
		event = d.newEvent(record, models.EventTypeUp, next.StreakCount, d.config.UpThreshold)
		next.StableAvailable = models.StableAvailable
		next.StreakCount = 0
	}

	return &next, event, nil
}

func (d *Detector) newEvent(record *ProbeRecord, eventType models.EventType, streak, threshold int) *StatusEvent {
	from, to := models.StableAvailable, models.StableUnavailable
	if eventType == models.EventTypeUp {
		from, to = models.StableUnavailable, models.StableAvailable
	}

	return &StatusEvent{
		Provider:        record.Provider,
		Service:         record.Service,
		Channel:         record.Channel,
		Model:           record.Model,
		EventType:       eventType,
		FromStatus:      from,
		ToStatus:        to,
		TriggerRecordID: record.ID,
		ObservedAt:      record.Timestamp,
		CreatedAt:       d.now().Unix(),
		Meta: &models.ServiceEventMeta{
			HTTPCode:    record.HTTPCode,
			Latency:     record.Latency,
			SubStatus:   record.SubStatus,
			StreakCount: streak,
			Threshold:   threshold,
		},
	}
}
