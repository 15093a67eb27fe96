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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

const sampleYAML = `
listen_addr: ":9090"
storage:
  driver: sqlite
  dsn: /tmp/pulse.db
  cleanup_interval: 12h
events:
  enabled: true
  mode: channel
  down_threshold: 3
monitors:
  - provider: acme
    service: chat
    channel: vip
    model: gpt-a
  - provider: acme
    service: chat
    channel: vip
    model: gpt-b
    parent: gpt-a
    board: cold
  - provider: acme
    service: chat
    channel: vip
    model: gpt-c
    disabled: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func validConfig() *Config {
	cfg := &Config{
		Monitors: []MonitorConfig{{Provider: "acme", Service: "chat", Channel: "vip"}},
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, Duration(12*time.Hour), cfg.Storage.CleanupInterval)
	assert.Equal(t, defaultRetentionDays, cfg.Storage.RetentionDays)

	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, EventModeChannel, cfg.Events.Mode)
	assert.Equal(t, CountModeIncremental, cfg.Events.ChannelCountMode)
	assert.Equal(t, 3, cfg.Events.DownThreshold)
	assert.Equal(t, defaultUpThreshold, cfg.Events.UpThreshold)

	require.NotNil(t, cfg.Query.DegradedWeight)
	assert.InDelta(t, defaultDegradedWeight, cfg.Query.Weight(), 1e-9)
	assert.Equal(t, defaultBatchQueryMaxKeys, cfg.Query.BatchQueryMaxKeys)

	require.Len(t, cfg.Monitors, 3)
	assert.Equal(t, BoardHot, cfg.Monitors[0].Board)
	assert.True(t, cfg.Monitors[1].IsCold())
	assert.Equal(t, 2, cfg.ChannelModelCount(cfg.Monitors[0].Key()))
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"storage": {"driver": "memory", "cleanup_interval": 60000000000},
		"monitors": [{"provider": "p", "service": "s", "channel": "c"}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, Duration(time.Minute), cfg.Storage.CleanupInterval)
	assert.Equal(t, 1, cfg.ChannelModelCount(cfg.Monitors[0].Key()))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "config.yaml", "unknown_field: 1\n"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "config.yaml", "storage:\n  cleanup_interval: soon\n"))
	require.ErrorIs(t, err, errInvalidDuration)

	_, err = Load(writeFile(t, "config.yaml", "storage:\n  driver: mysql\n"))
	require.ErrorIs(t, err, errInvalidDriver)
	assert.Equal(t, models.KindInvalidConfig, models.KindOf(err))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvListenAddr, ":7000")
	t.Setenv(EnvDBDriver, DriverPostgres)
	t.Setenv(EnvDBDSN, "postgres://pulse@localhost/pulse")

	cfg, err := Load(writeFile(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://pulse@localhost/pulse", cfg.Storage.DSN)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"threshold", func(c *Config) { c.Events.UpThreshold = -1 }, errInvalidThreshold},
		{"mode", func(c *Config) { c.Events.Mode = "global" }, errInvalidEventMode},
		{"count mode", func(c *Config) { c.Events.ChannelCountMode = "lazy" }, errInvalidCountMode},
		{"weight", func(c *Config) { w := 1.5; c.Query.DegradedWeight = &w }, errInvalidWeight},
		{"missing field", func(c *Config) { c.Monitors[0].Channel = " " }, errMissingMonitorField},
		{"parent without model", func(c *Config) { c.Monitors[0].Parent = "x" }, errParentWithoutModel},
		{"board", func(c *Config) { c.Monitors[0].Board = "warm" }, errInvalidBoard},
		{"duplicate", func(c *Config) { c.Monitors = append(c.Monitors, c.Monitors[0]) }, errDuplicateMonitor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, models.KindInvalidConfig, models.KindOf(err))
		})
	}

	require.NoError(t, validConfig().Validate())
}

func TestConfig_ChannelModelCountSkipsDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.Monitors = []MonitorConfig{
		{Provider: "acme", Service: "chat", Channel: "vip", Model: "a"},
		{Provider: "acme", Service: "chat", Channel: "vip", Model: "b", Disabled: true},
		{Provider: "acme", Service: "chat", Channel: "std", Model: "a"},
	}

	assert.Equal(t, 1, cfg.ChannelModelCount(cfg.Monitors[0].Key()))
}

func TestHolder(t *testing.T) {
	first := validConfig()
	h := NewHolder(first)

	assert.Same(t, first, h.Load())

	bad := validConfig()
	bad.Events.Mode = "nope"

	require.Error(t, h.Store(bad))
	assert.Same(t, first, h.Load())

	require.Error(t, h.Reload(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Same(t, first, h.Load())

	require.NoError(t, h.Reload(writeFile(t, "config.yaml", sampleYAML)))
	assert.Len(t, h.Load().Monitors, 3)
}

func TestReloader_Reload(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)
	h := NewHolder(validConfig())
	r := NewReloader(h, path)

	assert.True(t, r.reload())
	assert.Len(t, h.Load().Monitors, 3)

	require.NoError(t, os.WriteFile(path, []byte("events:\n  mode: nope\n"), 0o600))

	assert.False(t, r.reload())
	assert.Len(t, h.Load().Monitors, 3)
}

func TestLoad_ZeroDegradedWeightKept(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", "query:\n  degraded_weight: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Query.DegradedWeight)
	assert.Zero(t, cfg.Query.Weight())

	cfg, err = Load(writeFile(t, "config.json", `{"query": {"degraded_weight": 0}}`))
	require.NoError(t, err)
	assert.Zero(t, cfg.Query.Weight())

	cfg, err = Load(writeFile(t, "config.json", `{"query": {}}`))
	require.NoError(t, err)
	assert.InDelta(t, defaultDegradedWeight, cfg.Query.Weight(), 1e-9)

	assert.InDelta(t, defaultDegradedWeight, (&QueryConfig{}).Weight(), 1e-9)
}

func TestLoadAndValidate(t *testing.T) {
	var cfg Config

	err := LoadAndValidate(writeFile(t, "config.yaml", "storage:\n  driver: mysql\n"), &cfg)
	require.ErrorIs(t, err, errInvalidDriver)
	assert.Equal(t, models.KindInvalidConfig, models.KindOf(err))

	var plain struct {
		Name string `yaml:"name"`
	}

	require.NoError(t, LoadAndValidate(writeFile(t, "plain.yaml", "name: pulse\n"), &plain))
	assert.Equal(t, "pulse", plain.Name)
}
