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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

var (
	errInvalidDuration     = fmt.Errorf("invalid duration")
	errMissingMonitorField = errors.New("monitor requires provider, service and channel")
	errDuplicateMonitor    = errors.New("duplicate monitor")
	errParentWithoutModel  = errors.New("parent set on a monitor without model")
	errInvalidBoard        = errors.New("board must be \"hot\" or \"cold\"")
	errInvalidThreshold    = errors.New("threshold must be >= 1")
	errInvalidEventMode    = errors.New("invalid events mode")
	errInvalidCountMode    = errors.New("invalid channel count mode")
	errInvalidWeight       = errors.New("degraded_weight must be within [0, 1]")
	errInvalidDriver       = errors.New("unsupported storage driver")
)

const (
	BoardHot  = "hot"
	BoardCold = "cold"

	EventModeModel   = "model"
	EventModeChannel = "channel"

	CountModeIncremental = "incremental"
	CountModeRecompute   = "recompute"

	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	defaultListenAddr           = ":8080"
	defaultDSN                  = "relay-pulse.db"
	defaultRetentionDays        = 30
	defaultCleanupInterval      = 24 * time.Hour
	defaultDownThreshold        = 2
	defaultUpThreshold          = 1
	defaultChannelDownThreshold = 1
	defaultDegradedWeight       = 0.7
	defaultBatchQueryMaxKeys    = 300
	defaultConcurrentLimit      = 10
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

// Config is the immutable runtime configuration. Once published through a
// Holder it must not be mutated.
type Config struct {
	ListenAddr string          `json:"listen_addr" yaml:"listen_addr"`
	Storage    StorageConfig   `json:"storage" yaml:"storage"`
	Events     EventsConfig    `json:"events" yaml:"events"`
	Query      QueryConfig     `json:"query" yaml:"query"`
	Monitors   []MonitorConfig `json:"monitors" yaml:"monitors"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver          string   `json:"driver" yaml:"driver"` // sqlite3 | sqlite | postgres | memory
	DSN             string   `json:"dsn" yaml:"dsn"`
	RetentionDays   int      `json:"retention_days" yaml:"retention_days"`
	CleanupInterval Duration `json:"cleanup_interval" yaml:"cleanup_interval"`
}

// EventsConfig controls the availability detection engine.
type EventsConfig struct {
	Enabled              bool   `json:"enabled" yaml:"enabled"`
	Mode                 string `json:"mode" yaml:"mode"`                             // model | channel
	ChannelCountMode     string `json:"channel_count_mode" yaml:"channel_count_mode"` // incremental | recompute
	DownThreshold        int    `json:"down_threshold" yaml:"down_threshold"`
	UpThreshold          int    `json:"up_threshold" yaml:"up_threshold"`
	ChannelDownThreshold int    `json:"channel_down_threshold" yaml:"channel_down_threshold"`
}

// QueryConfig tunes the timeline and status query engine.
type QueryConfig struct {
	DegradedWeight        *float64 `json:"degraded_weight" yaml:"degraded_weight"` // nil means unset; 0 is valid
	EnableBatchQuery      bool     `json:"enable_batch_query" yaml:"enable_batch_query"`
	BatchQueryMaxKeys     int      `json:"batch_query_max_keys" yaml:"batch_query_max_keys"`
	EnableConcurrentQuery bool     `json:"enable_concurrent_query" yaml:"enable_concurrent_query"`
	ConcurrentQueryLimit  int      `json:"concurrent_query_limit" yaml:"concurrent_query_limit"`
}

// Weight returns the configured degraded weight, or the default when the
// field was absent.
func (q *QueryConfig) Weight() float64 {
	if q.DegradedWeight == nil {
		return defaultDegradedWeight
	}

	return *q.DegradedWeight
}

// MonitorConfig defines one probed target. Monitors sharing a channel with a
// non-empty Model form a multi-model channel; Parent marks a child layer.
type MonitorConfig struct {
	Provider string `json:"provider" yaml:"provider"`
	Service  string `json:"service" yaml:"service"`
	Channel  string `json:"channel" yaml:"channel"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Parent   string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Board    string `json:"board,omitempty" yaml:"board,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

func (m *MonitorConfig) Key() models.MonitorKey {
	return models.MonitorKey{Provider: m.Provider, Service: m.Service, Channel: m.Channel, Model: m.Model}
}

// IsCold reports whether the monitor sits on the cold board.
func (m *MonitorConfig) IsCold() bool {
	return strings.EqualFold(m.Board, BoardCold)
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite3
	}

	if c.Storage.DSN == "" {
		c.Storage.DSN = defaultDSN
	}

	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = defaultRetentionDays
	}

	if c.Storage.CleanupInterval == 0 {
		c.Storage.CleanupInterval = Duration(defaultCleanupInterval)
	}

	if c.Events.Mode == "" {
		c.Events.Mode = EventModeModel
	}

	if c.Events.ChannelCountMode == "" {
		c.Events.ChannelCountMode = CountModeIncremental
	}

	if c.Events.DownThreshold == 0 {
		c.Events.DownThreshold = defaultDownThreshold
	}

	if c.Events.UpThreshold == 0 {
		c.Events.UpThreshold = defaultUpThreshold
	}

	if c.Events.ChannelDownThreshold == 0 {
		c.Events.ChannelDownThreshold = defaultChannelDownThreshold
	}

	if c.Query.DegradedWeight == nil {
		weight := defaultDegradedWeight
		c.Query.DegradedWeight = &weight
	}

	if c.Query.BatchQueryMaxKeys == 0 {
		c.Query.BatchQueryMaxKeys = defaultBatchQueryMaxKeys
	}

	if c.Query.ConcurrentQueryLimit == 0 {
		c.Query.ConcurrentQueryLimit = defaultConcurrentLimit
	}

	for i := range c.Monitors {
		if c.Monitors[i].Board == "" {
			c.Monitors[i].Board = BoardHot
		}
	}
}

// Validate implements Validator.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return models.NewError(models.KindInvalidConfig, "config.Validate", err)
	}

	return nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite3, DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", errInvalidDriver, c.Storage.Driver)
	}

	if c.Events.DownThreshold < 1 || c.Events.UpThreshold < 1 || c.Events.ChannelDownThreshold < 1 {
		return errInvalidThreshold
	}

	switch c.Events.Mode {
	case EventModeModel, EventModeChannel:
	default:
		return fmt.Errorf("%w: %q", errInvalidEventMode, c.Events.Mode)
	}

	switch c.Events.ChannelCountMode {
	case CountModeIncremental, CountModeRecompute:
	default:
		return fmt.Errorf("%w: %q", errInvalidCountMode, c.Events.ChannelCountMode)
	}

	if w := c.Query.Weight(); w < 0 || w > 1 {
		return errInvalidWeight
	}

	seen := make(map[models.MonitorKey]struct{}, len(c.Monitors))

	for i := range c.Monitors {
		m := &c.Monitors[i]

		if strings.TrimSpace(m.Provider) == "" || strings.TrimSpace(m.Service) == "" ||
			strings.TrimSpace(m.Channel) == "" {
			return fmt.Errorf("%w (monitor #%d)", errMissingMonitorField, i)
		}

		if m.Parent != "" && m.Model == "" {
			return fmt.Errorf("%w: %s", errParentWithoutModel, m.Key())
		}

		if m.Board != "" && m.Board != BoardHot && m.Board != BoardCold {
			return fmt.Errorf("%w: %s", errInvalidBoard, m.Key())
		}

		if _, dup := seen[m.Key()]; dup {
			return fmt.Errorf("%w: %s", errDuplicateMonitor, m.Key())
		}

		seen[m.Key()] = struct{}{}
	}

	return nil
}

// ChannelModelCount returns how many enabled monitors are configured on the
// channel of key. Single-model channels report 1.
func (c *Config) ChannelModelCount(key models.MonitorKey) int {
	n := 0

	for i := range c.Monitors {
		m := &c.Monitors[i]
		if m.Disabled {
			continue
		}

		if m.Provider == key.Provider && m.Service == key.Service && m.Channel == key.Channel {
			n++
		}
	}

	return n
}
