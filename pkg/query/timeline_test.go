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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

var timelineEnd = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func rec(id int64, ts time.Time, status models.Status, latency int) *models.ProbeRecord {
	return &models.ProbeRecord{
		ID:        id,
		Provider:  "acme",
		Service:   "chat",
		Channel:   "vip",
		Status:    status,
		Latency:   latency,
		Timestamp: ts.Unix(),
	}
}

func emptyPoint(start time.Time, layout string) models.TimePoint {
	return models.TimePoint{
		Time:         start.Format(layout),
		Timestamp:    start.Unix(),
		Status:       models.StatusMissing,
		Availability: -1,
		StatusCounts: models.StatusCounts{Missing: 1},
	}
}

func TestBuildTimeline_EmptyBuckets(t *testing.T) {
	points, err := buildTimeline(nil, timelineEnd, Period24h, 0.7, nil)
	require.NoError(t, err)
	require.Len(t, points, 24)

	start := timelineEnd.Add(-24 * time.Hour)
	for i, p := range points {
		want := emptyPoint(start.Add(time.Duration(i)*time.Hour), "15:04")
		if diff := cmp.Diff(want, p); diff != "" {
			t.Fatalf("bucket %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuildTimeline_LatencyExcludesFailuresAndRoundsHalfUp(t *testing.T) {
	base := timelineEnd.Add(-30 * time.Minute)

	records := []*models.ProbeRecord{
		rec(1, base, models.StatusAvailable, 100),
		rec(2, base.Add(time.Minute), models.StatusAvailable, 101),
		rec(3, base.Add(2*time.Minute), models.StatusUnavailable, 9000),
	}

	points, err := buildTimeline(records, timelineEnd, Period24h, 0.7, nil)
	require.NoError(t, err)

	last := points[23]
	assert.Equal(t, 101, last.Latency)
	assert.Equal(t, models.StatusUnavailable, last.Status)

	want := models.StatusCounts{Available: 2, Unavailable: 1}
	if diff := cmp.Diff(want, last.StatusCounts); diff != "" {
		t.Errorf("status counts mismatch (-want +got):\n%s", diff)
	}

	assert.InDelta(t, 66.666, last.Availability, 0.01)
}

func TestBuildTimeline_DegradedWeight(t *testing.T) {
	ts := timelineEnd.Add(-90 * time.Minute)

	records := []*models.ProbeRecord{
		rec(1, ts, models.StatusAvailable, 50),
		rec(2, ts.Add(time.Minute), models.StatusDegraded, 150),
	}

	points, err := buildTimeline(records, timelineEnd, Period24h, 0.5, nil)
	require.NoError(t, err)

	p := points[22]
	assert.InDelta(t, 75.0, p.Availability, 1e-9)
	assert.Equal(t, models.StatusDegraded, p.Status)
	assert.Equal(t, 100, p.Latency)

	// weight outside [0,1] is clamped
	points, err = buildTimeline(records, timelineEnd, Period24h, 3, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, points[22].Availability, 1e-9)
}

func TestBuildTimeline_StatusIsNewestByTimestamp(t *testing.T) {
	ts := timelineEnd.Add(-10 * time.Minute)

	// the higher ID arrived first but was observed earlier
	records := []*models.ProbeRecord{
		rec(7, ts.Add(-time.Minute), models.StatusUnavailable, 0),
		rec(5, ts, models.StatusAvailable, 80),
	}

	points, err := buildTimeline(records, timelineEnd, Period24h, 0.7, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, points[23].Status)
}

func TestBuildTimeline_RangeAndFilter(t *testing.T) {
	start := timelineEnd.Add(-24 * time.Hour)

	records := []*models.ProbeRecord{
		rec(1, start.Add(-time.Second), models.StatusAvailable, 10), // before window
		rec(2, start, models.StatusAvailable, 20),                   // first bucket
		rec(3, timelineEnd, models.StatusAvailable, 30),             // end is exclusive
		rec(4, start.Add(5*time.Hour), models.StatusAvailable, 40),  // filtered out below
		nil,
	}

	points, err := buildTimeline(records, timelineEnd, Period24h, 0.7, nil)
	require.NoError(t, err)

	total := 0
	for _, p := range points {
		total += p.StatusCounts.Total()
	}

	assert.Equal(t, 2, total)
	assert.Equal(t, 20, points[0].Latency)
	assert.Equal(t, 40, points[5].Latency)

	// start is 12:00 UTC; keep only 12:00-13:00
	filter, err := ParseTimeFilter("12:00-13:00")
	require.NoError(t, err)

	points, err = buildTimeline(records, timelineEnd, Period24h, 0.7, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, points[0].StatusCounts.Total())
	assert.Equal(t, models.StatusMissing, points[5].Status)
}

func TestBuildTimeline_DailyBuckets(t *testing.T) {
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	records := []*models.ProbeRecord{
		rec(1, time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC), models.StatusAvailable, 10),
		rec(2, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), models.StatusDegraded, 10),
	}

	points, err := buildTimeline(records, end, Period7d, 0.7, nil)
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, "2025-03-08", points[0].Time)
	assert.Equal(t, models.StatusDegraded, points[0].Status)
	assert.Equal(t, "2025-03-14", points[6].Time)
	assert.Equal(t, models.StatusAvailable, points[6].Status)

	points, err = buildTimeline(records, end, Period30d, 0.7, nil)
	require.NoError(t, err)
	assert.Len(t, points, 30)
}

func TestBuildTimeline_UnknownPeriod(t *testing.T) {
	_, err := buildTimeline(nil, timelineEnd, "2h", 0.7, nil)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestLatestStatus(t *testing.T) {
	assert.Equal(t, models.StatusMissing, latestStatus(nil))

	ts := timelineEnd

	assert.Equal(t, models.StatusDegraded, latestStatus([]*models.ProbeRecord{
		rec(1, ts, models.StatusAvailable, 0),
		rec(2, ts, models.StatusDegraded, 0),
		rec(3, ts.Add(-time.Hour), models.StatusUnavailable, 0),
	}))
}
