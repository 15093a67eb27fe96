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

package events

import (
	"hash/fnv"
	"sync"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

const lockShards = 64

// lockTable hands out one mutex per channel key. Entries are created lazily
// and never removed; the key space is bounded by configured monitors.
type lockTable struct {
	shards [lockShards]lockShard
}

type lockShard struct {
	mu    sync.Mutex
	locks map[models.MonitorKey]*sync.Mutex
}

func newLockTable() *lockTable {
	t := &lockTable{}
	for i := range t.shards {
		t.shards[i].locks = make(map[models.MonitorKey]*sync.Mutex)
	}

	return t
}

// lock acquires the mutex of key's channel and returns its release func.
func (t *lockTable) lock(key models.MonitorKey) func() {
	m := t.get(key.ChannelKey())
	m.Lock()

	return m.Unlock
}

func (t *lockTable) get(key models.MonitorKey) *sync.Mutex {
	shard := &t.shards[shardIndex(key)]

	shard.mu.Lock()
	defer shard.mu.Unlock()

	m, ok := shard.locks[key]
	if !ok {
		m = &sync.Mutex{}
		shard.locks[key] = m
	}

	return m
}

// size reports the number of live entries.
func (t *lockTable) size() int {
	n := 0

	for i := range t.shards {
		t.shards[i].mu.Lock()
		n += len(t.shards[i].locks)
		t.shards[i].mu.Unlock()
	}

	return n
}

func shardIndex(key models.MonitorKey) uint32 {
	h := fnv.New32a()

	_, _ = h.Write([]byte(key.Provider))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key.Service))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key.Channel))

	return h.Sum32() % lockShards
}
