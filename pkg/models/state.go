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

// ServiceState is the hysteresis state of one monitor target.
type ServiceState struct {
	Provider        string `json:"provider"`
	Service         string `json:"service"`
	Channel         string `json:"channel"`
	Model           string `json:"model,omitempty"`
	StableAvailable int    `json:"stable_available"` // -1 uninitialized, 0, 1
	StreakCount     int    `json:"streak_count"`
	StreakStatus    int    `json:"streak_status"`
	LastRecordID    int64  `json:"last_record_id"`
	LastTimestamp   int64  `json:"last_timestamp"`
}

func (s *ServiceState) Key() MonitorKey {
	return MonitorKey{Provider: s.Provider, Service: s.Service, Channel: s.Channel, Model: s.Model}
}

// ChannelState aggregates the stable state of every model on a channel.
type ChannelState struct {
	Provider        string `json:"provider"`
	Service         string `json:"service"`
	Channel         string `json:"channel"`
	StableAvailable int    `json:"stable_available"`
	DownCount       int    `json:"down_count"`
	KnownCount      int    `json:"known_count"`
	LastRecordID    int64  `json:"last_record_id"`
	LastTimestamp   int64  `json:"last_timestamp"`
}

func (s *ChannelState) Key() MonitorKey {
	return MonitorKey{Provider: s.Provider, Service: s.Service, Channel: s.Channel}
}
