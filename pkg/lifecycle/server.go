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

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	ShutdownTimeout = 10 * time.Second
)

var errServerStopped = errors.New("http server stopped unexpectedly")

// Service defines the interface that all background services must implement.
// Start must not block.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// HTTPServer is a blocking listener such as the API server.
type HTTPServer interface {
	Start(addr string) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for running a server.
type ServerOptions struct {
	ListenAddr  string
	ServiceName string
	Server      HTTPServer
	Services    []Service

	// Signals overrides the shutdown signals, SIGINT and SIGTERM by default.
	Signals []os.Signal
}

// RunServer starts the background services and the HTTP server, then blocks
// until a signal, a server error or ctx cancellation, and shuts everything
// down in reverse order.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	started := make([]Service, 0, len(opts.Services))

	for _, svc := range opts.Services {
		if err := svc.Start(ctx); err != nil {
			stopAll(started)

			return fmt.Errorf("failed to start service: %w", err)
		}

		started = append(started, svc)
	}

	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting HTTP server on %s", opts.ListenAddr)

		err := opts.Server.Start(opts.ListenAddr)
		if err == nil {
			err = errServerStopped
		}

		select {
		case errChan <- err:
		default:
			log.Printf("HTTP server error: %v", err)
		}
	}()

	return handleShutdown(ctx, cancel, opts, started, errChan)
}

func handleShutdown(
	ctx context.Context, cancel context.CancelFunc, opts *ServerOptions, services []Service, errChan chan error) error {
	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	defer signal.Stop(sigChan)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)

		runErr = fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if err := opts.Server.Stop(shutdownCtx); err != nil {
		log.Printf("Error stopping HTTP server: %v", err)

		if runErr == nil {
			runErr = fmt.Errorf("shutdown error: %w", err)
		}
	}

	stopAllWithContext(shutdownCtx, services)

	return runErr
}

func stopAll(services []Service) {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	stopAllWithContext(ctx, services)
}

func stopAllWithContext(ctx context.Context, services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(ctx); err != nil {
			log.Printf("Error during service shutdown: %v", err)
		}
	}
}
