// Copyright (c) 2026 Fithub. All rights reserved.

// PostgreSQL implementations of the auth domain repositories.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [AccountRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
// Unique-constraint violations are left intact so the service layer can
// translate them into client-safe Conflict errors.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fithub/fithub/internal/platform/apperr"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
Create persists a new account record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. The unique index on handle is the sole uniqueness gate; under
concurrent signups exactly one insert wins and the loser receives a 23505.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	const query = `
		INSERT INTO users.account (
			id, handle, displayname, email, mobile, role, salt, passwordhash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.Handle,
		account.DisplayName,
		account.Email,
		account.Mobile,
		account.Role,
		account.Salt,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByHandle retrieves an account record by its unique handle.

Description: Standard lookup by handle for authentication and profile resolution.

Parameters:
  - context: context.Context
  - handle: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByHandle(context context.Context, handle string) (*Account, error) {
	const query = `
		SELECT id, handle, displayname, email, mobile, role, salt, passwordhash, createdat, updatedat
		FROM users.account
		WHERE handle = $1`

	account := &Account{}
	err := repository.pool.QueryRow(context, query, handle).Scan(
		&account.ID,
		&account.Handle,
		&account.DisplayName,
		&account.Email,
		&account.Mobile,
		&account.Role,
		&account.Salt,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account not found with this handle")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_handle_failed: %w", err)
	}

	return account, nil
}

/*
FindByID retrieves an account record by its unique ID.

Description: Primary key resolution for accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Account: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	const query = `
		SELECT id, handle, displayname, email, mobile, role, salt, passwordhash, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	account := &Account{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&account.ID,
		&account.Handle,
		&account.DisplayName,
		&account.Email,
		&account.Mobile,
		&account.Role,
		&account.Salt,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return account, nil
}

/*
CreateTrainerProfile persists an empty trainer profile row for the account.

Description: Trainer signups get a profile row immediately so profile reads
never need an existence check.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresAccountRepository) CreateTrainerProfile(context context.Context, accountID string) error {
	const query = `
		INSERT INTO users.trainer_profile (accountid, specialization, experienceyears, bio, createdat, updatedat)
		VALUES ($1, '', 0, '', $2, $2)
		ON CONFLICT (accountid) DO NOTHING`

	_, err := repository.pool.Exec(context, query, accountID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_create_trainer_profile_failed: %w", err)
	}

	return nil
}

// # Token Repository

// PostgresTokenRepository implements the TokenRepository interface.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new PostgreSQL implementation of TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

/*
Create persists a new session token record into the users.token table.

Description: Records a successful authentication in persistent storage.

Parameters:
  - context: context.Context
  - token: *SessionToken

Returns:
  - error: Storage failures
*/
func (repository *PostgresTokenRepository) Create(context context.Context, token *SessionToken) error {
	const query = `
		INSERT INTO users.token (
			id, accountid, tokenhash, issuedat, expiresat
		) VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(context, query,
		token.ID,
		token.AccountID,
		token.TokenHash,
		token.IssuedAt,
		token.ExpiresAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_token_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByHash retrieves a session token by its unique token hash.

Description: Resolves a token hash into its stored row. No expiry filter is
applied here; the service layer owns the expiry decision so it can report
Expired separately from NotFound.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *SessionToken: Hydrated token row
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresTokenRepository) FindByHash(context context.Context, tokenHash string) (*SessionToken, error) {
	const query = `
		SELECT id, accountid, tokenhash, issuedat, expiresat
		FROM users.token
		WHERE tokenhash = $1`

	token := &SessionToken{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&token.ID,
		&token.AccountID,
		&token.TokenHash,
		&token.IssuedAt,
		&token.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session token")
		}
		return nil, fmt.Errorf("postgres_token_repo_find_failed: %w", err)
	}

	return token, nil
}

/*
Delete permanently removes a session token by its ID.

Parameters:
  - context: context.Context
  - tokenID: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresTokenRepository) Delete(context context.Context, tokenID string) error {
	const query = "DELETE FROM users.token WHERE id = $1"
	_, err := repository.pool.Exec(context, query, tokenID)
	if err != nil {
		return fmt.Errorf("postgres_token_repo_delete_failed: %w", err)
	}
	return nil
}

/*
DeleteByHash permanently removes a session token by its token hash.

Description: Explicit revocation path used by logout. Deleting a missing
row is not an error, which keeps logout idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresTokenRepository) DeleteByHash(context context.Context, tokenHash string) error {
	const query = "DELETE FROM users.token WHERE tokenhash = $1"
	_, err := repository.pool.Exec(context, query, tokenHash)
	if err != nil {
		return fmt.Errorf("postgres_token_repo_delete_by_hash_failed: %w", err)
	}
	return nil
}
