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

package query

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/db"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// fetchStrategy names how histories were loaded, for logging and tests.
type fetchStrategy string

const (
	strategyBatch      fetchStrategy = "batch"
	strategyConcurrent fetchStrategy = "concurrent"
	strategySerial     fetchStrategy = "serial"
)

type histories map[models.MonitorKey][]*models.ProbeRecord

// historyFetcher loads raw history for many keys, trying a single batch call
// first when eligible, then a bounded worker pool or a serial loop.
type historyFetcher struct {
	store db.Service
	opts  config.QueryConfig
}

func batchEligible(period string, keys int, opts config.QueryConfig) bool {
	if !opts.EnableBatchQuery || keys == 0 || keys > opts.BatchQueryMaxKeys {
		return false
	}

	return period == Period7d || period == Period30d
}

func (f *historyFetcher) fetch(
	ctx context.Context, period string, keys []models.MonitorKey, since time.Time) (histories, fetchStrategy, error) {
	if batchEligible(period, len(keys), f.opts) {
		if err := ctx.Err(); err != nil {
			return nil, strategyBatch, models.NewError(models.KindCanceled, "query.fetch", err)
		}

		out, err := f.store.GetHistoryBatch(ctx, keys, since)
		if err == nil {
			return out, strategyBatch, nil
		}

		if ctx.Err() != nil {
			return nil, strategyBatch, models.NewError(models.KindCanceled, "query.fetch", ctx.Err())
		}

		log.Printf("Batch history query for %d keys failed, falling back: %v", len(keys), err)
	}

	if f.opts.EnableConcurrentQuery {
		out, err := f.fetchConcurrent(ctx, keys, since)

		return out, strategyConcurrent, err
	}

	out, err := f.fetchSerial(ctx, keys, since)

	return out, strategySerial, err
}

func (f *historyFetcher) fetchSerial(ctx context.Context, keys []models.MonitorKey, since time.Time) (histories, error) {
	out := make(histories, len(keys))

	for _, key := range keys {
		records, err := f.fetchOne(ctx, key, since)
		if err != nil {
			return nil, err
		}

		out[key] = records
	}

	return out, nil
}

func (f *historyFetcher) fetchConcurrent(
	ctx context.Context, keys []models.MonitorKey, since time.Time) (histories, error) {
	limit := f.opts.ConcurrentQueryLimit
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex

	out := make(histories, len(keys))

	for _, key := range keys {
		key := key
		g.Go(func() error {
			records, err := f.fetchOne(gctx, key, since)
			if err != nil {
				return err
			}

			mu.Lock()
			out[key] = records
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// report the caller's cancellation rather than a sibling's failure
		if ctx.Err() != nil {
			return nil, models.NewError(models.KindCanceled, "query.fetch", ctx.Err())
		}

		return nil, err
	}

	return out, nil
}

func (f *historyFetcher) fetchOne(ctx context.Context, key models.MonitorKey, since time.Time) ([]*models.ProbeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewError(models.KindCanceled, "query.fetch", err)
	}

	records, err := f.store.GetHistory(ctx, key, since)
	if err != nil {
		if ctx.Err() != nil {
			return nil, models.NewError(models.KindCanceled, "query.fetch", ctx.Err())
		}

		log.Printf("Failed to get history for %s: %v", key, err)

		return nil, models.NewError(models.KindStorage, "query.fetch", fmt.Errorf("%w: %w", errHistoryFetch, err))
	}

	return records, nil
}
