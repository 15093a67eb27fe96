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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewCleanupService_Defaults(t *testing.T) {
	s := NewCleanupService(nil, CleanupConfig{})

	assert.Equal(t, defaultCleanupInterval, s.config.Interval)
	assert.Equal(t, defaultRetentionDays, s.config.RetentionDays)
}

func TestCleanupService_RunsImmediatelyAndOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockService(ctrl)
	calls := make(chan struct{}, 8)

	store.EXPECT().CleanOldRecords(gomock.Any(), 7).
		DoAndReturn(func(context.Context, int) (int64, error) {
			select {
			case calls <- struct{}{}:
			default:
			}

			return 3, nil
		}).MinTimes(2)

	s := NewCleanupService(store, CleanupConfig{Interval: 10 * time.Millisecond, RetentionDays: 7})
	require.NoError(t, s.Start(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("cleanup did not run")
		}
	}

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestCleanupService_ErrorKeepsRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockService(ctrl)
	calls := make(chan struct{}, 8)

	store.EXPECT().CleanOldRecords(gomock.Any(), defaultRetentionDays).
		DoAndReturn(func(context.Context, int) (int64, error) {
			select {
			case calls <- struct{}{}:
			default:
			}

			return 0, errors.New("disk full")
		}).MinTimes(2)

	s := NewCleanupService(store, CleanupConfig{Interval: 10 * time.Millisecond})
	require.NoError(t, s.Start(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("cleanup stopped after an error")
		}
	}

	require.NoError(t, s.Stop(context.Background()))
}

func TestCleanupService_ContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockService(ctrl)
	store.EXPECT().CleanOldRecords(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())

	s := NewCleanupService(store, CleanupConfig{Interval: time.Hour})
	require.NoError(t, s.Start(ctx))

	cancel()

	done := make(chan struct{})

	go func() {
		_ = s.Stop(context.Background())

		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after context cancel")
	}
}
