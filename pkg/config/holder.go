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
	"sync/atomic"
)

// Holder publishes the current configuration snapshot. Readers get an
// immutable *Config; reloads swap the pointer wholesale.
type Holder struct {
	current atomic.Pointer[Config]
}

// NewHolder creates a holder seeded with cfg.
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.current.Store(cfg)

	return h
}

// Load returns the current snapshot.
func (h *Holder) Load() *Config {
	return h.current.Load()
}

// Store validates cfg and publishes it.
func (h *Holder) Store(cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	h.current.Store(cfg)

	return nil
}

// Reload reads path and swaps the snapshot in on success. The previous
// snapshot stays active when loading fails.
func (h *Holder) Reload(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}

	h.current.Store(cfg)

	return nil
}
