// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"
)

var RetryBackoff = 50 * time.Millisecond

// Retry runs fn up to three times. Integrity violations, empty results and
// context cancellation are returned immediately.
func Retry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(2, retry.NewConstant(RetryBackoff))
	retries := 2
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || !retryable(err) {
			return err
		}
		log.WithError(err).WithField("retries", retries).Warn("db.Retry")
		retries--
		return retry.RetryableError(err)
	})
}

func retryable(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		// only connection and resource problems are worth another attempt
		return pgerrcode.IsConnectionException(pe.Code) ||
			pgerrcode.IsInsufficientResources(pe.Code) ||
			pgerrcode.IsOperatorIntervention(pe.Code) ||
			pgerrcode.IsTransactionRollback(pe.Code)
	}
	return pgconn.SafeToRetry(err)
}
