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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

func probe(id int64, status models.Status) *ProbeRecord {
	return &ProbeRecord{
		ID:        id,
		Provider:  "acme",
		Service:   "chat",
		Channel:   "vip",
		Status:    status,
		Latency:   120,
		HTTPCode:  200,
		Timestamp: 1_700_000_000 + id*60,
	}
}

func fixedClock() time.Time {
	return time.Unix(1_800_000_000, 0)
}

func newTestDetector(t *testing.T, down, up int) *Detector {
	t.Helper()

	d, err := NewDetector(DetectorConfig{DownThreshold: down, UpThreshold: up})
	require.NoError(t, err)

	d.now = fixedClock

	return d
}

// feed runs records through d and collects every event fired.
func feed(t *testing.T, d *Detector, statuses ...models.Status) (*ServiceState, []*StatusEvent) {
	t.Helper()

	var (
		state  *ServiceState
		events []*StatusEvent
	)

	for i, status := range statuses {
		next, event, err := d.Detect(state, probe(int64(i+1), status))
		require.NoError(t, err)

		state = next

		if event != nil {
			events = append(events, event)
		}
	}

	return state, events
}

func TestNewDetector_InvalidThresholds(t *testing.T) {
	for _, cfg := range []DetectorConfig{
		{DownThreshold: 0, UpThreshold: 1},
		{DownThreshold: 1, UpThreshold: 0},
		{DownThreshold: -2, UpThreshold: -2},
	} {
		_, err := NewDetector(cfg)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidThreshold)
		assert.Equal(t, models.KindInvalidConfig, models.KindOf(err))
	}
}

func TestDetect_FirstRecordInitializes(t *testing.T) {
	d := newTestDetector(t, 2, 1)

	state, event, err := d.Detect(nil, probe(1, models.StatusUnavailable))
	require.NoError(t, err)
	assert.Nil(t, event)

	assert.Equal(t, models.StableUnavailable, state.StableAvailable)
	assert.Equal(t, 1, state.StreakCount)
	assert.Equal(t, models.StableUnavailable, state.StreakStatus)
	assert.Equal(t, int64(1), state.LastRecordID)
}

func TestDetect_NilRecord(t *testing.T) {
	d := newTestDetector(t, 2, 1)

	_, _, err := d.Detect(nil, nil)
	require.ErrorIs(t, err, ErrNilRecord)
}

func TestDetect_DownAfterThreshold(t *testing.T) {
	d := newTestDetector(t, 2, 1)

	state, events := feed(t, d, models.StatusAvailable, models.StatusUnavailable, models.StatusUnavailable)

	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, models.EventTypeDown, event.EventType)
	assert.Equal(t, 1, event.FromStatus)
	assert.Equal(t, 0, event.ToStatus)
	assert.Equal(t, int64(3), event.TriggerRecordID)
	assert.Equal(t, fixedClock().Unix(), event.CreatedAt)

	meta, ok := event.Meta.(*models.ServiceEventMeta)
	require.True(t, ok)
	assert.Equal(t, 2, meta.StreakCount)
	assert.Equal(t, 2, meta.Threshold)

	assert.Equal(t, models.StableUnavailable, state.StableAvailable)
	assert.Equal(t, 0, state.StreakCount)
}

func TestDetect_DegradedCountsAsAvailable(t *testing.T) {
	d := newTestDetector(t, 1, 1)

	_, events := feed(t, d, models.StatusAvailable, models.StatusDegraded, models.StatusDegraded)
	assert.Empty(t, events)
}

func TestDetect_FlapRejected(t *testing.T) {
	d := newTestDetector(t, 3, 2)

	state, events := feed(t, d,
		models.StatusAvailable,
		models.StatusUnavailable,
		models.StatusUnavailable,
		models.StatusAvailable,
		models.StatusUnavailable,
		models.StatusUnavailable,
	)

	assert.Empty(t, events)
	assert.Equal(t, models.StableAvailable, state.StableAvailable)
	assert.Equal(t, 2, state.StreakCount)
}

func TestDetect_DownThenUp(t *testing.T) {
	d := newTestDetector(t, 2, 2)

	state, events := feed(t, d,
		models.StatusAvailable,
		models.StatusUnavailable,
		models.StatusUnavailable,
		models.StatusAvailable,
		models.StatusUnavailable,
		models.StatusAvailable,
		models.StatusAvailable,
	)

	require.Len(t, events, 2)
	assert.Equal(t, models.EventTypeDown, events[0].EventType)
	assert.Equal(t, models.EventTypeUp, events[1].EventType)
	assert.Equal(t, 0, events[1].FromStatus)
	assert.Equal(t, 1, events[1].ToStatus)
	assert.Equal(t, int64(7), events[1].TriggerRecordID)
	assert.Equal(t, models.StableAvailable, state.StableAvailable)
}

func TestDetect_NoRepeatWhileDown(t *testing.T) {
	d := newTestDetector(t, 1, 1)

	_, events := feed(t, d,
		models.StatusAvailable,
		models.StatusUnavailable,
		models.StatusUnavailable,
		models.StatusUnavailable,
	)

	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeDown, events[0].EventType)
}

func TestDetect_DoesNotMutatePrev(t *testing.T) {
	d := newTestDetector(t, 1, 1)

	prev := &ServiceState{
		Provider:        "acme",
		Service:         "chat",
		Channel:         "vip",
		StableAvailable: models.StableAvailable,
		StreakCount:     4,
		StreakStatus:    models.StableAvailable,
		LastRecordID:    9,
	}
	snapshot := *prev

	_, event, err := d.Detect(prev, probe(10, models.StatusUnavailable))
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, snapshot, *prev)
}

func TestDetect_UninitializedPrevActsAsFirst(t *testing.T) {
	d := newTestDetector(t, 1, 1)

	prev := &ServiceState{StableAvailable: models.StableUninitialized}

	state, event, err := d.Detect(prev, probe(1, models.StatusAvailable))
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, models.StableAvailable, state.StableAvailable)
}
