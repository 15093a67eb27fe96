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

package db

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	defaultCleanupInterval = 24 * time.Hour
	defaultRetentionDays   = 30
	cleanupTimeout         = 5 * time.Minute
)

// CleanupConfig controls raw probe history retention.
type CleanupConfig struct {
	Interval      time.Duration
	RetentionDays int
}

// CleanupService periodically drops probe records older than the retention
// window. States and events are kept.
type CleanupService struct {
	store    Service
	config   CleanupConfig
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCleanupService creates a cleanup service, filling zero config values.
func NewCleanupService(store Service, config CleanupConfig) *CleanupService {
	if config.Interval <= 0 {
		config.Interval = defaultCleanupInterval
	}

	if config.RetentionDays <= 0 {
		config.RetentionDays = defaultRetentionDays
	}

	return &CleanupService{
		store:  store,
		config: config,
		stopCh: make(chan struct{}),
	}
}

// Start runs one cleanup pass immediately and then one per interval until
// Stop is called or ctx ends. It does not block.
func (s *CleanupService) Start(ctx context.Context) error {
	s.wg.Add(1)

	go s.run(ctx)

	return nil
}

// Stop ends the loop and waits for a running pass to finish.
func (s *CleanupService) Stop(_ context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()

	return nil
}

func (s *CleanupService) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.cleanup(ctx)

	for {
		select {
		case <-s.stopCh:
			log.Println("Probe history cleanup service stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *CleanupService) cleanup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()

	deleted, err := s.store.CleanOldRecords(ctx, s.config.RetentionDays)
	if err != nil {
		log.Printf("Error cleaning probe history older than %d days: %v", s.config.RetentionDays, err)
		return
	}

	log.Printf("Deleted %d probe records older than %d days", deleted, s.config.RetentionDays)
}
