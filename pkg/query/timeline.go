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
	"math"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// bucket accumulates the records that fall into one time window.
type bucket struct {
	newest       *models.ProbeRecord
	counts       models.StatusCounts
	latencySum   int64
	latencyCount int
}

func (b *bucket) add(r *models.ProbeRecord) {
	switch r.Status {
	case models.StatusAvailable:
		b.counts.Available++
	case models.StatusDegraded:
		b.counts.Degraded++
	case models.StatusUnavailable:
		b.counts.Unavailable++
	case models.StatusMissing:
		return
	default:
		return
	}

	// failed requests can report misleading latency
	if r.Status != models.StatusUnavailable {
		b.latencySum += int64(r.Latency)
		b.latencyCount++
	}

	if r.Newer(b.newest) {
		b.newest = r
	}
}

func (b *bucket) point(start time.Time, layout string, degradedWeight float64) models.TimePoint {
	p := models.TimePoint{
		Time:         start.Format(layout),
		Timestamp:    start.Unix(),
		Status:       models.StatusMissing,
		Availability: -1,
		StatusCounts: b.counts,
	}

	total := b.counts.Total()
	if total == 0 {
		p.StatusCounts.Missing = 1

		return p
	}

	p.Status = b.newest.Status
	p.Availability = (float64(b.counts.Available) + float64(b.counts.Degraded)*degradedWeight) /
		float64(total) * 100

	if b.latencyCount > 0 {
		// half-up, 100.5 -> 101
		p.Latency = int(math.Floor(float64(b.latencySum)/float64(b.latencyCount) + 0.5))
	}

	return p
}

// buildTimeline spreads records over the fixed buckets of period ending at
// endTime. Records outside the window or the optional time filter are
// dropped; buckets without data report Status -1.
func buildTimeline(
	records []*models.ProbeRecord,
	endTime time.Time,
	period string,
	degradedWeight float64,
	filter *TimeFilter,
) ([]models.TimePoint, error) {
	strategy, err := determineBucketStrategy(period)
	if err != nil {
		return nil, err
	}

	degradedWeight = math.Min(math.Max(degradedWeight, 0), 1)

	endTime = endTime.UTC()
	start := endTime.Add(-time.Duration(strategy.count) * strategy.window)
	startUnix := start.Unix()
	windowSecs := int64(strategy.window / time.Second)

	buckets := make([]bucket, strategy.count)

	for _, r := range records {
		if r == nil || !filter.Contains(r.Time()) {
			continue
		}

		offset := r.Timestamp - startUnix
		if offset < 0 {
			continue
		}

		idx := offset / windowSecs
		if idx >= int64(strategy.count) {
			continue
		}

		buckets[idx].add(r)
	}

	points := make([]models.TimePoint, strategy.count)
	for i := range buckets {
		points[i] = buckets[i].point(start.Add(time.Duration(i)*strategy.window), strategy.layout, degradedWeight)
	}

	return points, nil
}

// latestStatus returns the status of the newest record, or -1 when there is
// none.
func latestStatus(records []*models.ProbeRecord) models.Status {
	var newest *models.ProbeRecord

	for _, r := range records {
		if r != nil && r.Newer(newest) {
			newest = r
		}
	}

	if newest == nil {
		return models.StatusMissing
	}

	return newest.Status
}
