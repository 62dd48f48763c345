// Copyright (c) 2026 Fithub. All rights reserved.

package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/platform/apperr"
)

/*
TestWrap_UniqueViolation verifies a unique violation maps to CONFLICT
while the database error stays visible in the cause chain, so services
can replace the generic message with a domain-specific one.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "account_handle_key"}

	wrapped := Wrap(pgErr, "account_create")
	require.Error(t, wrapped)

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	// The classification must survive the wrapping
	assert.True(t, IsUniqueViolation(wrapped))
}

/*
TestWrap_NoRows verifies pgx's empty-result sentinel maps to NOT_FOUND.
*/
func TestWrap_NoRows(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "plan_find")
	assert.True(t, apperr.IsNotFound(wrapped))
}

/*
TestWrap_UnknownError verifies unclassified errors become internal
errors with the original cause retained for logging.
*/
func TestWrap_UnknownError(t *testing.T) {
	cause := errors.New("syntax error at or near SELECT")

	wrapped := Wrap(cause, "plan_browse")
	require.Error(t, wrapped)

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "INTERNAL_ERROR", appError.Code)
	assert.True(t, errors.Is(wrapped, cause))
}

/*
TestWrap_Nil verifies a nil error passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "noop"))
}

/*
TestIsUniqueViolation_OtherSQLState verifies non-unique constraint codes
are not classified as duplicates.
*/
func TestIsUniqueViolation_OtherSQLState(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"} // foreign_key_violation
	assert.False(t, IsUniqueViolation(pgErr))
	assert.False(t, IsUniqueViolation(Wrap(pgErr, "subscription_create")))
}
