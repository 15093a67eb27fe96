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
	"database/sql"
	"fmt"

	"github.com/itsharex/relay-pulse-sub001/pkg/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SaveTransition commits the outcome of processing one record in a single
// transaction: the target's state, the channel state (optional) and the
// emitted event (optional). On error nothing is written.
func (db *DB) SaveTransition(
	ctx context.Context, service *models.ServiceState, channel *models.ChannelState, event *models.StatusEvent) (err error) {
	if service == nil {
		return ErrNilState
	}

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	defer func() {
		rollbackOnError(tx, err)
	}()

	if err = db.upsertServiceState(ctx, tx, service); err != nil {
		return err
	}

	if channel != nil {
		if err = db.upsertChannelState(ctx, tx, channel); err != nil {
			return err
		}
	}

	if event != nil {
		if _, err = db.insertStatusEvent(ctx, tx, event); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		if event != nil {
			event.ID = 0
		}

		return fmt.Errorf("%w: %w", ErrFailedToCommit, err)
	}

	return nil
}
