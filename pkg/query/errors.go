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

import "errors"

var (
	ErrInvalidTimeFilter = errors.New("invalid time filter")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidAlign      = errors.New("invalid align mode")
	ErrInvalidQuery      = errors.New("invalid status query")
	ErrNoQueries         = errors.New("no status queries given")
	ErrTooManyQueries    = errors.New("too many status queries")
	ErrTargetNotFound    = errors.New("no monitor matches query")
	errHistoryFetch      = errors.New("failed to fetch history")
	errLatestFetch       = errors.New("failed to fetch latest record")
)
