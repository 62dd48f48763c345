// Copyright (c) 2026 Fithub. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fithub/fithub/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// The database error stays in the cause chain so services can still
	// classify it (see [IsUniqueViolation]) and logs keep the action.
	cause := fmt.Errorf("%s_failed: %w", action, err)

	// 2. Constraint violations carry a Postgres SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			appError := apperr.Conflict("Resource already exists")
			appError.Cause = cause
			return appError
		case pgerrcode.ForeignKeyViolation:
			appError := apperr.ValidationError("Referenced resource does not exist")
			appError.Cause = cause
			return appError
		}
	}

	// 3. Connection failures surface as storage unavailability
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		appError := apperr.ServiceUnavailable("Storage temporarily unavailable")
		appError.Cause = cause
		return appError
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(cause)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Services use this to translate duplicates into domain-specific
// conflict messages.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
