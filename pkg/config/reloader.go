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
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Reloader re-reads the config file on SIGHUP and publishes it through the
// holder. A broken file is logged and the running snapshot is kept.
type Reloader struct {
	holder *Holder
	path   string

	sigCh    chan os.Signal
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewReloader(holder *Holder, path string) *Reloader {
	return &Reloader{
		holder: holder,
		path:   path,
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
	}
}

func (r *Reloader) Start(ctx context.Context) error {
	signal.Notify(r.sigCh, syscall.SIGHUP)

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		for {
			select {
			case <-r.sigCh:
				r.reload()
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (r *Reloader) Stop(_ context.Context) error {
	r.stopOnce.Do(func() {
		signal.Stop(r.sigCh)
		close(r.stopCh)
	})
	r.wg.Wait()

	return nil
}

func (r *Reloader) reload() bool {
	if err := r.holder.Reload(r.path); err != nil {
		log.Printf("Config reload from %s failed, keeping current config: %v", r.path, err)
		return false
	}

	log.Printf("Config reloaded from %s (%d monitors)", r.path, len(r.holder.Load().Monitors))

	return true
}
