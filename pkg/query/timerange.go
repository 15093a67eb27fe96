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
	"fmt"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// Supported timeline periods.
const (
	Period24h = "24h"
	Period1d  = "1d"
	Period7d  = "7d"
	Period30d = "30d"
)

// Alignment modes for the range end.
const (
	AlignNone = ""
	AlignHour = "hour"
	AlignDay  = "day"
)

const day = 24 * time.Hour

type bucketStrategy struct {
	count  int
	window time.Duration
	layout string
}

func determineBucketStrategy(period string) (bucketStrategy, error) {
	switch period {
	case Period24h, Period1d:
		return bucketStrategy{count: 24, window: time.Hour, layout: "15:04"}, nil
	case Period7d:
		return bucketStrategy{count: 7, window: day, layout: "2006-01-02"}, nil
	case Period30d:
		return bucketStrategy{count: 30, window: day, layout: "2006-01-02"}, nil
	default:
		return bucketStrategy{}, invalidPeriod(period)
	}
}

func invalidPeriod(period string) error {
	return models.NewError(models.KindValidation, "query.period",
		fmt.Errorf("%w: %q (want 24h, 1d, 7d or 30d)", ErrInvalidPeriod, period))
}

// parseTimeRange resolves the [since, end) window of a period relative to
// now. Multi-day periods always end on the next UTC midnight and ignore align.
func parseTimeRange(period, align string, now time.Time) (since, end time.Time, err error) {
	now = now.UTC()

	switch period {
	case Period24h, Period1d:
		switch align {
		case AlignNone, AlignHour:
		default:
			return time.Time{}, time.Time{}, models.NewError(models.KindValidation, "query.parseTimeRange",
				fmt.Errorf("%w: %q", ErrInvalidAlign, align))
		}

		end = alignTimestamp(now, align)

		return end.Add(-day), end, nil
	case Period7d:
		end = alignTimestamp(now, AlignDay)

		return end.AddDate(0, 0, -7), end, nil
	case Period30d:
		end = alignTimestamp(now, AlignDay)

		return end.AddDate(0, 0, -30), end, nil
	default:
		return time.Time{}, time.Time{}, invalidPeriod(period)
	}
}

// alignTimestamp ceils t to the next hour or UTC midnight. Times already on
// a boundary are returned unchanged.
func alignTimestamp(t time.Time, mode string) time.Time {
	t = t.UTC()

	switch mode {
	case AlignHour:
		floor := t.Truncate(time.Hour)
		if floor.Equal(t) {
			return t
		}

		return floor.Add(time.Hour)
	case AlignDay:
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if midnight.Equal(t) {
			return t
		}

		return midnight.AddDate(0, 0, 1)
	default:
		return t
	}
}
