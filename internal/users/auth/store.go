// Copyright (c) 2026 Fithub. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/fithub/fithub/internal/platform/sec"
)

// # Account Data Access

// AccountRepository defines the data access contract for accounts.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Account: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Account, error)

	/*
		FindByHandle returns the account with the given handle.

		Parameters:
		  - context: context.Context
		  - handle: string

		Returns:
		  - *Account: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByHandle(context context.Context, handle string) (*Account, error)

	/*
		Create persists a brand-new account to the storage.

		Handle uniqueness is enforced by the storage unique index; a duplicate
		surfaces as a unique-constraint violation, never as a pre-check.

		Parameters:
		  - context: context.Context
		  - account: *Account

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, account *Account) error

	/*
		CreateTrainerProfile persists an empty trainer profile row for the account.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - error: Persistence failures
	*/
	CreateTrainerProfile(context context.Context, accountID string) error
}

// # Session Token Data Access

// TokenRepository defines the data access contract for opaque session tokens.
type TokenRepository interface {

	/*
		Create persists a new session token for an authenticated login.

		Parameters:
		  - context: context.Context
		  - token: *SessionToken

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, token *SessionToken) error

	/*
		FindByHash returns the session token matching the given token hash.

		The lookup deliberately does NOT filter on expiry: the service layer
		distinguishes an expired token from an unknown one.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *SessionToken: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByHash(context context.Context, tokenHash string) (*SessionToken, error)

	/*
		Delete permanently removes a session token by its ID.

		Parameters:
		  - context: context.Context
		  - tokenID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, tokenID string) error

	/*
		DeleteByHash permanently removes a session token by its token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByHash(context context.Context, tokenHash string) error
}

// # Volatile Data Access

// SessionCache defines the contract for the read-through token validation cache.
//
// All cache operations are best-effort: a cache failure must never block
// authentication, which always has the database as its source of truth.
type SessionCache interface {

	/*
		Get retrieves the cached identity for a given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *sec.Identity: Cached identity
		  - error: apperr.NotFound on cache miss, or connectivity errors
	*/
	Get(context context.Context, tokenHash string) (*sec.Identity, error)

	/*
		Set caches the identity for a token hash for a limited duration.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - identity: *sec.Identity
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, identity *sec.Identity, ttl time.Duration) error

	/*
		Delete removes the cached identity for a token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, tokenHash string) error
}
