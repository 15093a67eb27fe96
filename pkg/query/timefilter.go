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
	"strconv"
	"strings"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// TimeFilter is a repeating daily UTC window. Ranges are right-open; a
// cross-midnight range covers [start, 24:00) and [00:00, end).
type TimeFilter struct {
	StartHour     int
	StartMinute   int
	EndHour       int
	EndMinute     int
	CrossMidnight bool
}

// ParseTimeFilter parses "HH:MM-HH:MM". Minutes must be 00 or 30 and hour 24
// is only valid as the end value 24:00. An empty string yields nil.
func ParseTimeFilter(s string) (*TimeFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return nil, invalidTimeFilter(s, "expected HH:MM-HH:MM")
	}

	startHour, startMinute, err := parseClock(start)
	if err != nil {
		return nil, invalidTimeFilter(s, err.Error())
	}

	endHour, endMinute, err := parseClock(end)
	if err != nil {
		return nil, invalidTimeFilter(s, err.Error())
	}

	if startHour > 23 {
		return nil, invalidTimeFilter(s, "start hour must be within 00-23")
	}

	if endHour == 24 && endMinute != 0 {
		return nil, invalidTimeFilter(s, "24 is only valid as 24:00")
	}

	f := &TimeFilter{
		StartHour:   startHour,
		StartMinute: startMinute,
		EndHour:     endHour,
		EndMinute:   endMinute,
	}

	if f.start() == f.end() {
		return nil, invalidTimeFilter(s, "start equals end")
	}

	f.CrossMidnight = f.start() > f.end()

	return f, nil
}

func parseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, 0, fmt.Errorf("%q is not HH:MM", s)
	}

	hour, err = strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 24 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}

	switch s[3:] {
	case "00":
		minute = 0
	case "30":
		minute = 30
	default:
		return 0, 0, fmt.Errorf("minutes in %q must be 00 or 30", s)
	}

	return hour, minute, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func invalidTimeFilter(s, reason string) error {
	return models.NewError(models.KindValidation, "query.ParseTimeFilter",
		fmt.Errorf("%w %q: %s", ErrInvalidTimeFilter, s, reason))
}

func (f *TimeFilter) start() int {
	return f.StartHour*60 + f.StartMinute
}

func (f *TimeFilter) end() int {
	return f.EndHour*60 + f.EndMinute
}

// Contains reports whether t's UTC time of day falls inside the window.
// A nil filter contains everything.
func (f *TimeFilter) Contains(t time.Time) bool {
	if f == nil {
		return true
	}

	t = t.UTC()
	m := t.Hour()*60 + t.Minute()

	if f.CrossMidnight {
		return m >= f.start() || m < f.end()
	}

	return m >= f.start() && m < f.end()
}

func (f *TimeFilter) String() string {
	if f == nil {
		return ""
	}

	return fmt.Sprintf("%02d:%02d-%02d:%02d", f.StartHour, f.StartMinute, f.EndHour, f.EndMinute)
}
