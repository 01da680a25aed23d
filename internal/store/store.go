// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sapcc/jobly/internal/db"
	apierrors "github.com/sapcc/jobly/internal/errors"
)

// Store runs the company and job queries against a pool.
type Store struct {
	pool db.PgxIface
}

func New(pool db.PgxIface) *Store {
	return &Store{pool: pool}
}

// translate turns constraint and data errors raised by postgres into InvalidInput.
// A unique violation reports the caller supplied duplicate message.
func translate(err error, duplicateFormat string, args ...any) error {
	var pe *pgconn.PgError
	if !errors.As(err, &pe) {
		return err
	}
	switch {
	case pe.Code == pgerrcode.UniqueViolation:
		return apierrors.InvalidInput(apierrors.ErrDuplicate, duplicateFormat, args...)
	case pgerrcode.IsIntegrityConstraintViolation(pe.Code), pgerrcode.IsDataException(pe.Code):
		return apierrors.InvalidInput(err, pe.Message)
	}
	return err
}
