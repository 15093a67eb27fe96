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
	"log"
	"time"

	"github.com/itsharex/relay-pulse-sub001/pkg/config"
	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// MonitorLayer is one model of a multi-model channel. Layer 0 is the parent.
type MonitorLayer struct {
	Layer         int                `json:"layer"`
	Model         string             `json:"model"`
	Parent        string             `json:"parent,omitempty"`
	Board         string             `json:"board"`
	CurrentStatus models.Status      `json:"current_status"`
	Timeline      []models.TimePoint `json:"timeline"`
}

// MonitorGroup gathers the layers of one (provider, service, channel).
type MonitorGroup struct {
	Provider      string         `json:"provider"`
	Service       string         `json:"service"`
	Channel       string         `json:"channel"`
	Board         string         `json:"board"`
	CurrentStatus models.Status  `json:"current_status"`
	Layers        []MonitorLayer `json:"layers"`
}

type groupSkeleton struct {
	group  MonitorGroup
	layers []*config.MonitorConfig
}

// groupMonitors selects enabled monitors with a model, grouped by channel in
// configuration order. Groups without a parent layer are dropped.
func groupMonitors(monitors []config.MonitorConfig) []*groupSkeleton {
	var (
		order   []models.MonitorKey
		seen    = make(map[models.MonitorKey]struct{})
		parents = make(map[models.MonitorKey]*config.MonitorConfig)
		childs  = make(map[models.MonitorKey][]*config.MonitorConfig)
	)

	for i := range monitors {
		m := &monitors[i]
		if m.Model == "" || m.Disabled {
			continue
		}

		key := m.Key().ChannelKey()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			order = append(order, key)
		}

		if m.Parent != "" {
			childs[key] = append(childs[key], m)

			continue
		}

		if _, ok := parents[key]; ok {
			log.Printf("Channel %s has more than one parent model, ignoring %q", key, m.Model)

			continue
		}

		parents[key] = m
	}

	out := make([]*groupSkeleton, 0, len(order))

	for _, key := range order {
		parent := parents[key]
		if parent == nil {
			log.Printf("Channel %s has child models but no parent, skipping group", key)

			continue
		}

		layers := append([]*config.MonitorConfig{parent}, childs[key]...)

		out = append(out, &groupSkeleton{
			group: MonitorGroup{
				Provider: key.Provider,
				Service:  key.Service,
				Channel:  key.Channel,
				Board:    channelBoard(monitors, key),
			},
			layers: layers,
		})
	}

	return out
}

// buildMonitorGroups renders the multi-model groups of monitors over
// [since, end) using the fetcher's batch, concurrent or serial strategy.
func buildMonitorGroups(
	ctx context.Context,
	fetcher *historyFetcher,
	monitors []config.MonitorConfig,
	period string,
	since, end time.Time,
	degradedWeight float64,
	filter *TimeFilter,
) ([]MonitorGroup, error) {
	skeletons := groupMonitors(monitors)
	if len(skeletons) == 0 {
		return []MonitorGroup{}, nil
	}

	hist, _, err := fetcher.fetch(ctx, period, groupKeys(skeletons), since)
	if err != nil {
		return nil, err
	}

	return assembleGroups(skeletons, hist, func(records []*models.ProbeRecord) ([]models.TimePoint, error) {
		return buildTimeline(records, end, period, degradedWeight, filter)
	})
}

// assembleGroups fills layer timelines from fetched histories and rolls the
// worst layer status up to the group.
func assembleGroups(
	skeletons []*groupSkeleton, hist histories, build func([]*models.ProbeRecord) ([]models.TimePoint, error),
) ([]MonitorGroup, error) {
	out := make([]MonitorGroup, 0, len(skeletons))

	for _, sk := range skeletons {
		g := sk.group
		g.CurrentStatus = models.StatusMissing
		g.Layers = make([]MonitorLayer, 0, len(sk.layers))

		for i, m := range sk.layers {
			records := hist[m.Key()]

			timeline, err := build(records)
			if err != nil {
				return nil, err
			}

			layer := MonitorLayer{
				Layer:         i,
				Model:         m.Model,
				Parent:        m.Parent,
				Board:         m.Board,
				CurrentStatus: latestStatus(records),
				Timeline:      timeline,
			}

			if models.Worse(layer.CurrentStatus, g.CurrentStatus) {
				g.CurrentStatus = layer.CurrentStatus
			}

			g.Layers = append(g.Layers, layer)
		}

		out = append(out, g)
	}

	return out, nil
}

func groupKeys(skeletons []*groupSkeleton) []models.MonitorKey {
	var keys []models.MonitorKey

	for _, sk := range skeletons {
		for _, m := range sk.layers {
			keys = append(keys, m.Key())
		}
	}

	return keys
}
