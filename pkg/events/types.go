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

// Package events turns raw probe records into stable availability state and
// discrete UP/DOWN transition events.
package events

import (
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

const (
	// DefaultEventLimit and MaxEventLimit bound one page of the event feed.
	DefaultEventLimit = 20
	MaxEventLimit     = 100

	defaultDownThreshold        = 2
	defaultUpThreshold          = 1
	defaultChannelDownThreshold = 1
)

// DetectorConfig holds the hysteresis thresholds of a single target.
type DetectorConfig struct {
	// DownThreshold consecutive unavailable observations trigger DOWN.
	DownThreshold int

	// UpThreshold consecutive available observations trigger UP.
	UpThreshold int
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() DetectorConfig {
	return DetectorConfig{
		DownThreshold: defaultDownThreshold,
		UpThreshold:   defaultUpThreshold,
	}
}

// ChannelDetectorConfig holds the multi-model channel threshold.
type ChannelDetectorConfig struct {
	// DownThreshold is the number of unavailable models that marks the
	// channel DOWN.
	DownThreshold int
}

// DefaultChannelConfig returns the default channel threshold.
func DefaultChannelConfig() ChannelDetectorConfig {
	return ChannelDetectorConfig{DownThreshold: defaultChannelDownThreshold}
}

// Mode selects which events get persisted for multi-model channels.
type Mode string

const (
	// ModeModel persists an event per model transition.
	ModeModel Mode = "model"

	// ModeChannel persists channel rollup events for multi-model channels.
	ModeChannel Mode = "channel"
)

// CountMode selects how channel counters are maintained.
type CountMode string

const (
	CountIncremental CountMode = "incremental"
	CountRecompute   CountMode = "recompute"
)

// Clock returns the detection time.
type Clock func() time.Time

type (
	ServiceState = models.ServiceState
	ChannelState = models.ChannelState
	StatusEvent  = models.StatusEvent
	ProbeRecord  = models.ProbeRecord
)
