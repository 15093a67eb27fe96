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

// Package models pkg/models/status.go
package models

// Status is the ternary outcome of a single probe, plus a marker for
// "no data" used by query-time aggregation.
type Status int

const (
	StatusMissing     Status = -1
	StatusUnavailable Status = 0
	StatusAvailable   Status = 1
	StatusDegraded    Status = 2
)

// Binary availability values used by the hysteresis state machines.
const (
	StableUninitialized = -1
	StableUnavailable   = 0
	StableAvailable     = 1
)

// Severity ranks statuses for worst-of folding:
// unavailable(3) > degraded(2) > available(1) > missing(0).
func (s Status) Severity() int {
	switch s {
	case StatusUnavailable:
		return 3
	case StatusDegraded:
		return 2
	case StatusAvailable:
		return 1
	case StatusMissing:
		return 0
	default:
		return 0
	}
}

// Available maps the ternary probe status to binary availability.
// Degraded still counts as available.
func (s Status) Available() int {
	if s == StatusAvailable || s == StatusDegraded {
		return StableAvailable
	}

	return StableUnavailable
}

// Label renders a status for API consumers. Anything that is not positively
// up or degraded reports as "down", missing data included.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "up"
	case StatusDegraded:
		return "degraded"
	case StatusUnavailable, StatusMissing:
		return "down"
	default:
		return "down"
	}
}

// Valid reports whether s is one of the three probe outcomes.
func (s Status) Valid() bool {
	return s == StatusUnavailable || s == StatusAvailable || s == StatusDegraded
}

// Worse reports whether a is strictly more severe than b.
func Worse(a, b Status) bool {
	return a.Severity() > b.Severity()
}
