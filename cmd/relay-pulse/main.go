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

// cmd/relay-pulse/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/api"
	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/db"
	"github.com/itsharex/relay-pulse-sub001/pkg/events"
	"github.com/itsharex/relay-pulse-sub001/pkg/lifecycle"
	"github.com/itsharex/relay-pulse-sub001/pkg/query"
)

func main() {
	configPath := flag.String("config", "/etc/relay-pulse/config.yaml", "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("relay-pulse: %v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := db.New(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	holder := config.NewHolder(cfg)

	eventService, err := events.NewService(store, holder)
	if err != nil {
		return fmt.Errorf("failed to create event service: %w", err)
	}

	apiServer := api.NewAPIServer(query.NewEngine(store, holder), eventService)

	cleanup := db.NewCleanupService(store, db.CleanupConfig{
		Interval:      time.Duration(cfg.Storage.CleanupInterval),
		RetentionDays: cfg.Storage.RetentionDays,
	})

	return lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ListenAddr:  cfg.ListenAddr,
		ServiceName: "relay-pulse",
		Server:      apiServer,
		Services: []lifecycle.Service{
			cleanup,
			config.NewReloader(holder, configPath),
		},
	})
}
