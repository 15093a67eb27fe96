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

package models

// TimePoint is one bucket of a rendered timeline.
type TimePoint struct {
	Time         string       `json:"time"`
	Timestamp    int64        `json:"timestamp"`
	Status       Status       `json:"status"`       // newest record in the bucket, -1 when empty
	Latency      int          `json:"latency"`      // mean of available/degraded records
	Availability float64      `json:"availability"` // 0-100, -1 when empty
	StatusCounts StatusCounts `json:"status_counts"`
}

// StatusCounts tallies probe outcomes inside a bucket.
type StatusCounts struct {
	Available   int `json:"available"`
	Degraded    int `json:"degraded"`
	Unavailable int `json:"unavailable"`
	Missing     int `json:"missing"`
}

// Total is the number of observations, missing buckets excluded.
func (c StatusCounts) Total() int {
	return c.Available + c.Degraded + c.Unavailable
}
