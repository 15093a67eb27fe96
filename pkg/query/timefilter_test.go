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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestParseTimeFilter_Rejects(t *testing.T) {
	for _, s := range []string{
		"09:15-17:00",
		"24:00-17:00",
		"09:00-24:30",
		"09:00-09:00",
		"9:00-17:00",
		"09:00",
		"09:00-17:00-18:00",
		"ab:00-17:00",
		"+9:00-17:00",
		"09:00-25:00",
	} {
		f, err := ParseTimeFilter(s)
		require.Error(t, err, s)
		assert.Nil(t, f, s)
		assert.ErrorIs(t, err, ErrInvalidTimeFilter, s)
		assert.Equal(t, models.KindValidation, models.KindOf(err), s)
	}
}

func TestParseTimeFilter_Accepts(t *testing.T) {
	tests := []struct {
		in    string
		cross bool
	}{
		{"00:00-24:00", false},
		{"22:00-04:00", true},
		{"09:30-17:00", false},
		{"23:30-00:00", true},
	}

	for _, tt := range tests {
		f, err := ParseTimeFilter(tt.in)
		require.NoError(t, err, tt.in)
		require.NotNil(t, f)
		assert.Equal(t, tt.cross, f.CrossMidnight, tt.in)
		assert.Equal(t, tt.in, f.String())
	}
}

func TestParseTimeFilter_Empty(t *testing.T) {
	f, err := ParseTimeFilter("  ")
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.True(t, f.Contains(at(3, 0)))
	assert.Empty(t, f.String())
}

func TestTimeFilter_ContainsCrossMidnight(t *testing.T) {
	f, err := ParseTimeFilter("22:00-04:00")
	require.NoError(t, err)

	assert.True(t, f.Contains(at(23, 59)))
	assert.True(t, f.Contains(at(22, 0)))
	assert.True(t, f.Contains(at(0, 0)))
	assert.True(t, f.Contains(at(3, 59)))
	assert.False(t, f.Contains(at(4, 0)))
	assert.False(t, f.Contains(at(12, 0)))
	assert.False(t, f.Contains(at(21, 59)))
}

func TestTimeFilter_ContainsRightOpen(t *testing.T) {
	f, err := ParseTimeFilter("09:30-17:00")
	require.NoError(t, err)

	assert.False(t, f.Contains(at(9, 29)))
	assert.True(t, f.Contains(at(9, 30)))
	assert.True(t, f.Contains(at(16, 59)))
	assert.False(t, f.Contains(at(17, 0)))

	allDay, err := ParseTimeFilter("00:00-24:00")
	require.NoError(t, err)
	assert.True(t, allDay.Contains(at(0, 0)))
	assert.True(t, allDay.Contains(at(23, 59)))
}

func TestTimeFilter_ContainsUsesUTC(t *testing.T) {
	f, err := ParseTimeFilter("22:00-04:00")
	require.NoError(t, err)

	shanghai := time.FixedZone("UTC+8", 8*3600)

	// 06:00 local is 22:00 UTC
	assert.True(t, f.Contains(time.Date(2025, 3, 15, 6, 0, 0, 0, shanghai)))
}
