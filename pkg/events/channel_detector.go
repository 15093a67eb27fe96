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

// ChannelDetector rolls per-model stable state up into one channel state.
// A channel goes DOWN once DownThreshold models are unavailable and comes
// back UP only when every configured model has reported and none is down.
type ChannelDetector struct {
	config ChannelDetectorConfig
	now    Clock
}

// NewChannelDetector validates the threshold and builds a detector.
func NewChannelDetector(cfg ChannelDetectorConfig) (*ChannelDetector, error) {
	if cfg.DownThreshold < 1 {
		return nil, models.NewError(models.KindInvalidConfig, "events.NewChannelDetector",
			fmt.Errorf("%w: channel down=%d", ErrInvalidThreshold, cfg.DownThreshold))
	}

	return &ChannelDetector{config: cfg, now: time.Now}, nil
}

// DetectChannel updates the channel counters incrementally from one model's
// stable-state change and evaluates the channel transition rules.
// prevModelStable is -1 when the model had never been observed.
func (d *ChannelDetector) DetectChannel(
	prevChannel *ChannelState,
	prevModelStable, newModelStable int,
	totalModels int,
	record *ProbeRecord,
) (*ChannelState, *StatusEvent, error) {
	if record == nil {
		return nil, nil, ErrNilRecord
	}

	downCount, knownCount := 0, 0
	if prevChannel != nil {
		downCount, knownCount = prevChannel.DownCount, prevChannel.KnownCount
	}

	switch {
	case prevModelStable == models.StableUninitialized:
		knownCount++

		if newModelStable == models.StableUnavailable {
			downCount++
		}
	case prevModelStable == models.StableAvailable && newModelStable == models.StableUnavailable:
		downCount++
	case prevModelStable == models.StableUnavailable && newModelStable == models.StableAvailable:
		downCount = max(downCount-1, 0)
	}

	return d.DetectChannelWithCounts(prevChannel, downCount, knownCount, totalModels, record)
}

// DetectChannelWithCounts evaluates the channel rules against counters
// computed by the caller.
func (d *ChannelDetector) DetectChannelWithCounts(
	prevChannel *ChannelState,
	downCount, knownCount int,
	totalModels int,
	record *ProbeRecord,
) (*ChannelState, *StatusEvent, error) {
	if record == nil {
		return nil, nil, ErrNilRecord
	}

	if totalModels < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidModelCount, totalModels)
	}

	knownCount = min(max(knownCount, 0), totalModels)
	downCount = min(max(downCount, 0), knownCount)

	prevStable := models.StableUninitialized
	if prevChannel != nil {
		prevStable = prevChannel.StableAvailable
	}

	next := &ChannelState{
		Provider:        record.Provider,
		Service:         record.Service,
		Channel:         record.Channel,
		StableAvailable: prevStable,
		DownCount:       downCount,
		KnownCount:      knownCount,
		LastRecordID:    record.ID,
		LastTimestamp:   record.Timestamp,
	}

	allReported := knownCount == totalModels

	var event *StatusEvent

	switch prevStable {
	case models.StableAvailable:
		if downCount >= d.config.DownThreshold {
			event = d.newEvent(next, models.EventTypeDown, totalModels, record)
			next.StableAvailable = models.StableUnavailable
		}
	case models.StableUninitialized:
		switch {
		case knownCount >= 1 && downCount >= d.config.DownThreshold:
			event = d.newEvent(next, models.EventTypeDown, totalModels, record)
			next.StableAvailable = models.StableUnavailable
		case allReported && downCount == 0:
			next.StableAvailable = models.StableAvailable
		}
	case models.StableUnavailable:
		if downCount == 0 && allReported {
			event = d.newEvent(next, models.EventTypeUp, totalModels, record)
			next.StableAvailable = models.StableAvailable
		}
	}

	return next, event, nil
}

func (d *ChannelDetector) newEvent(
	state *ChannelState, eventType models.EventType, totalModels int, record *ProbeRecord) *StatusEvent {
	from, to := models.StableAvailable, models.StableUnavailable
	if eventType == models.EventTypeUp {
		from, to = models.StableUnavailable, models.StableAvailable
	}

	return &StatusEvent{
		Provider:        state.Provider,
		Service:         state.Service,
		Channel:         state.Channel,
		EventType:       eventType,
		FromStatus:      from,
		ToStatus:        to,
		TriggerRecordID: record.ID,
		ObservedAt:      record.Timestamp,
		CreatedAt:       d.now().Unix(),
		Meta: &models.ChannelEventMeta{
			HTTPCode:     record.HTTPCode,
			Latency:      record.Latency,
			SubStatus:    record.SubStatus,
			TriggerModel: record.Model,
			DownCount:    state.DownCount,
			KnownCount:   state.KnownCount,
			TotalModels:  totalModels,
			Threshold:    d.config.DownThreshold,
		},
	}
}
