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
	"fmt"
	"time"
)

// CleanOldRecords removes probe records older than the retention period in
// days. State and events are kept.
func (db *DB) CleanOldRecords(ctx context.Context, days int) (deleted int64, err error) {
	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	defer func() {
		rollbackOnError(tx, err)
	}()

	result, err := tx.ExecContext(ctx, db.rebind("DELETE FROM probe_history WHERE timestamp < ?"), cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w probe history: %w", ErrFailedToClean, err)
	}

	deleted, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w probe history: %w", ErrFailedToClean, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w probe history: %w", ErrFailedToClean, err)
	}

	return deleted, nil
}
