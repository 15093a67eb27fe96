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

import "errors"

var (
	// ErrNilRecord is returned when detection is invoked without a record.
	ErrNilRecord = errors.New("record is nil")

	// ErrInvalidThreshold is returned when a detector is configured with a
	// threshold below 1.
	ErrInvalidThreshold = errors.New("threshold must be >= 1")

	// ErrInvalidModelCount is returned when a channel has no configured models.
	ErrInvalidModelCount = errors.New("total models must be >= 1")

	errStorage = errors.New("event storage failed")
)
