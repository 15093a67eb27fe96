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

import (
	"fmt"
	"time"
)

// ProbeRecord is one raw measurement of a monitored endpoint. ID is assigned
// by storage and is the only reliable ordering signal; Timestamp may arrive
// out of sequence when probes overlap.
type ProbeRecord struct {
	ID        int64  `json:"id"`
	Provider  string `json:"provider"`
	Service   string `json:"service"`
	Channel   string `json:"channel"`
	Model     string `json:"model,omitempty"`
	Status    Status `json:"status"`
	Latency   int    `json:"latency"`
	HTTPCode  int    `json:"http_code"`
	SubStatus string `json:"sub_status,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the probe timestamp as a UTC time.
func (r *ProbeRecord) Time() time.Time {
	return time.Unix(r.Timestamp, 0).UTC()
}

// Key returns the monitor key the record belongs to.
func (r *ProbeRecord) Key() MonitorKey {
	return MonitorKey{
		Provider: r.Provider,
		Service:  r.Service,
		Channel:  r.Channel,
		Model:    r.Model,
	}
}

// Newer reports whether r was observed after other. Timestamps win; the
// record ID breaks ties.
func (r *ProbeRecord) Newer(other *ProbeRecord) bool {
	if other == nil {
		return true
	}

	if r.Timestamp != other.Timestamp {
		return r.Timestamp > other.Timestamp
	}

	return r.ID > other.ID
}

// MonitorKey identifies a single probed target. Model is empty for
// single-model channels.
type MonitorKey struct {
	Provider string `json:"provider"`
	Service  string `json:"service"`
	Channel  string `json:"channel"`
	Model    string `json:"model,omitempty"`
}

// ChannelKey drops the model, yielding the channel the target belongs to.
func (k MonitorKey) ChannelKey() MonitorKey {
	return MonitorKey{Provider: k.Provider, Service: k.Service, Channel: k.Channel}
}

func (k MonitorKey) String() string {
	if k.Model == "" {
		return fmt.Sprintf("%s/%s/%s", k.Provider, k.Service, k.Channel)
	}

	return fmt.Sprintf("%s/%s/%s/%s", k.Provider, k.Service, k.Channel, k.Model)
}
