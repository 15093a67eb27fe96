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
	"context"
	"fmt"
	"log"

	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/db"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// Service orchestrates detection and persistence. Calls for the same channel
// are serialized; different channels proceed in parallel.
type Service struct {
	store           db.Service
	configs         *config.Holder
	detector        *Detector
	channelDetector *ChannelDetector
	enabled         bool
	mode            Mode
	countMode       CountMode
	locks           *lockTable
}

// NewService builds the event service from the events section of the
// current configuration snapshot. Threshold errors surface here, at startup.
func NewService(store db.Service, configs *config.Holder) (*Service, error) {
	cfg := configs.Load().Events

	detector, err := NewDetector(DetectorConfig{
		DownThreshold: cfg.DownThreshold,
		UpThreshold:   cfg.UpThreshold,
	})
	if err != nil {
		return nil, err
	}

	channelDetector, err := NewChannelDetector(ChannelDetectorConfig{
		DownThreshold: cfg.ChannelDownThreshold,
	})
	if err != nil {
		return nil, err
	}

	mode := Mode(cfg.Mode)
	if mode == "" {
		mode = ModeModel
	}

	countMode := CountMode(cfg.ChannelCountMode)
	if countMode == "" {
		countMode = CountIncremental
	}

	return &Service{
		store:           store,
		configs:         configs,
		detector:        detector,
		channelDetector: channelDetector,
		enabled:         cfg.Enabled,
		mode:            mode,
		countMode:       countMode,
		locks:           newLockTable(),
	}, nil
}

// Enabled reports whether event detection is active.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Ingest stores a raw probe record, assigning its ID, and runs detection on
// it. The record is kept even when detection fails.
func (s *Service) Ingest(ctx context.Context, record *ProbeRecord) (*StatusEvent, error) {
	if record == nil {
		return nil, models.NewError(models.KindValidation, "events.Ingest", ErrNilRecord)
	}

	if err := ctx.Err(); err != nil {
		return nil, models.NewError(models.KindCanceled, "events.Ingest", err)
	}

	if _, err := s.store.SaveRecord(ctx, record); err != nil {
		log.Printf("Failed to save probe record for %s: %v", record.Key(), err)

		return nil, models.NewError(models.KindStorage, "events.Ingest", fmt.Errorf("%w: %w", errStorage, err))
	}

	return s.ProcessRecord(record)
}

// ProcessRecord runs detection for one stored record and persists the new
// state and any emitted event. Records at or below the last processed ID
// are ignored, which makes replays harmless.
func (s *Service) ProcessRecord(record *ProbeRecord) (*StatusEvent, error) {
	if !s.enabled {
		return nil, nil
	}

	if record == nil {
		return nil, ErrNilRecord
	}

	key := record.Key()

	unlock := s.locks.lock(key)
	defer unlock()

	// detection runs to completion once started
	ctx := context.Background()

	prev, err := s.store.GetServiceState(ctx, key)
	if err != nil {
		return nil, s.storageError("get service state", key, err)
	}

	if prev != nil && prev.LastRecordID > 0 && record.ID <= prev.LastRecordID {
		return nil, nil
	}

	next, event, err := s.detector.Detect(prev, record)
	if err != nil {
		return nil, err
	}

	cfg := s.configs.Load()
	totalModels := cfg.ChannelModelCount(key)
	multiModel := record.Model != "" && totalModels > 1

	var (
		channelState *ChannelState
		channelEvent *StatusEvent
	)

	if multiModel {
		channelState, channelEvent, err = s.detectChannel(ctx, cfg, prev, next, totalModels, record)
		if err != nil {
			return nil, err
		}
	}

	emitted := event
	if multiModel && s.mode == ModeChannel {
		emitted = channelEvent
	}

	// state and event land together or not at all
	if err := s.store.SaveTransition(ctx, next, channelState, emitted); err != nil {
		return nil, s.storageError("save transition", key, err)
	}

	if emitted == nil {
		return nil, nil
	}

	log.Printf("Status event %s for %s/%s/%s model=%q (record %d)",
		emitted.EventType, emitted.Provider, emitted.Service, emitted.Channel, emitted.Model, record.ID)

	return emitted, nil
}

func (s *Service) detectChannel(
	ctx context.Context,
	cfg *config.Config,
	prev, next *ServiceState,
	totalModels int,
	record *ProbeRecord,
) (*ChannelState, *StatusEvent, error) {
	channelKey := record.Key().ChannelKey()

	prevChannel, err := s.store.GetChannelState(ctx, channelKey)
	if err != nil {
		return nil, nil, s.storageError("get channel state", channelKey, err)
	}

	// Incremental counters only see transitions. They are rebuilt from the
	// stored states until the channel row covers every configured model,
	// which includes models that predate the row or arrive by reload.
	if s.countMode == CountRecompute || prevChannel == nil || prevChannel.KnownCount != totalModels {
		down, known, err := s.recount(ctx, cfg, channelKey, next)
		if err != nil {
			return nil, nil, err
		}

		return s.channelDetector.DetectChannelWithCounts(prevChannel, down, known, totalModels, record)
	}

	prevModelStable := models.StableUninitialized
	if prev != nil {
		prevModelStable = prev.StableAvailable
	}

	return s.channelDetector.DetectChannel(prevChannel, prevModelStable, next.StableAvailable, totalModels, record)
}

// recount derives the channel counters from the stored model states, with
// next standing in for the model being processed.
func (s *Service) recount(
	ctx context.Context, cfg *config.Config, channelKey models.MonitorKey, next *ServiceState) (down, known int, err error) {
	states, err := s.store.ListServiceStates(ctx, channelKey)
	if err != nil {
		return 0, 0, s.storageError("list service states", channelKey, err)
	}

	configured := make(map[string]struct{})

	for i := range cfg.Monitors {
		m := &cfg.Monitors[i]
		if !m.Disabled && m.Key().ChannelKey() == channelKey {
			configured[m.Model] = struct{}{}
		}
	}

	stable := make(map[string]int, len(states)+1)

	for _, st := range states {
		stable[st.Model] = st.StableAvailable
	}

	stable[next.Model] = next.StableAvailable

	for model, value := range stable {
		if _, ok := configured[model]; !ok || value == models.StableUninitialized {
			continue
		}

		known++

		if value == models.StableUnavailable {
			down++
		}
	}

	return down, known, nil
}

func (*Service) storageError(op string, key models.MonitorKey, err error) error {
	log.Printf("Event processing failed to %s for %s: %v", op, key, err)

	return models.NewError(models.KindStorage, "events."+op, fmt.Errorf("%w: %w", errStorage, err))
}

// ListEvents returns one page of the event feed after sinceID. limit is
// defaulted when <= 0 and capped at MaxEventLimit.
func (s *Service) ListEvents(
	ctx context.Context, sinceID int64, limit int, filters *models.EventFilters) ([]*StatusEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewError(models.KindCanceled, "events.ListEvents", err)
	}

	if sinceID < 0 {
		sinceID = 0
	}

	switch {
	case limit <= 0:
		limit = DefaultEventLimit
	case limit > MaxEventLimit:
		limit = MaxEventLimit
	}

	events, err := s.store.GetStatusEvents(ctx, sinceID, limit, filters)
	if err != nil {
		log.Printf("Failed to list status events since %d: %v", sinceID, err)

		return nil, models.NewError(models.KindStorage, "events.ListEvents", err)
	}

	return events, nil
}

// LatestEventID returns the cursor a new subscriber should start from.
func (s *Service) LatestEventID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, models.NewError(models.KindCanceled, "events.LatestEventID", err)
	}

	id, err := s.store.GetLatestEventID(ctx)
	if err != nil {
		log.Printf("Failed to get latest event id: %v", err)

		return 0, models.NewError(models.KindStorage, "events.LatestEventID", err)
	}

	return id, nil
}
