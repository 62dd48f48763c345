// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from account registration and salted password key
derivation to the session lifecycle of opaque, server-side revocable tokens
(with a Redis read-through validation cache).

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Token lifecycle).
  - Repository: Abstracted interfaces for Postgres (Accounts, Tokens) and Redis (Cache).
  - Security: Leverages PBKDF2-SHA256 credentials and high-entropy opaque tokens.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/dberr"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/pkg/uuid"
)

// # Contracts & Types

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential handling,
// signup, or token logic must be reviewed by the security team.
type Service struct {
	accountRepository AccountRepository
	tokenRepository   TokenRepository
	sessionCache      SessionCache

	// now is swappable so expiry-boundary behavior can be tested deterministically.
	now func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	tokenRepo TokenRepository,
	cache SessionCache,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		tokenRepository:   tokenRepo,
		sessionCache:      cache,
		now:               time.Now,
	}
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Handle      string
	Password    string
	DisplayName string
	Email       string
	Mobile      string
	Role        sec.AccountRole
}

/*
Signup validates, enrolls, and persists a brand new account.

Description: Deep-enrollment of a new member. The password is stretched into
a salted PBKDF2 credential; the raw password never reaches storage. Handle
uniqueness rests on the storage unique index rather than a pre-check, so
concurrent signups with the same handle resolve to exactly one winner.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *Account: Created entity
  - err: Conflict (if handle exists), validation, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Account, error) {

	// Role must be one of the recognized values before anything is persisted.
	if !input.Role.Valid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be either 'user' or 'trainer'",
		})
	}

	// Derive the salted credential. A fresh random salt is drawn per enrollment.
	credential, err := sec.EnrollPassword(input.Password)
	if err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPassword,
			Message: "This field is required",
		})
	}

	// Construct the new Account entity. Time-sortable ID to prevent PG index fragmentation.
	account := &Account{
		ID:           uuid.New(),
		Handle:       strings.TrimSpace(input.Handle),
		DisplayName:  input.DisplayName,
		Email:        input.Email,
		Mobile:       input.Mobile,
		Role:         input.Role,
		Salt:         credential.Salt,
		PasswordHash: credential.Hash,
	}

	// Persist the account. The unique index is the single arbiter of handle
	// uniqueness; translate the violation into a client-safe Conflict.
	if err := service.accountRepository.Create(context, account); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Handle is already taken")
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	// Trainers get an empty profile row immediately so profile reads and
	// directory listings never need an existence check.
	if account.Role == sec.RoleTrainer {
		if err := service.accountRepository.CreateTrainerProfile(context, account.ID); err != nil {
			return nil, fmt.Errorf("auth_service_trainer_profile_failed: %w", err)
		}
	}

	return account, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Handle   string
	Password string
}

// Session represents a successfully established account session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   *Account
}

/*
Login validates account credentials and issues a fresh session token.

Description: Verifies identity with a constant-time credential comparison and
issues a new opaque token with a full seven-day window. Prior tokens for the
account remain untouched, so multiple devices stay logged in concurrently.

The failure message is identical for an unknown handle and a wrong password
to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// Look up the account by handle
	account, err := service.accountRepository.FindByHandle(context, input.Handle)

	// If (err != nil) the account does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid handle or password")
	}

	// Verify the password against the stored salted credential (constant-time compare)
	if !sec.VerifyPassword(input.Password, sec.Credential{Salt: account.Salt, Hash: account.PasswordHash}) {
		return nil, apperr.Unauthorized("Invalid handle or password")
	}

	return service.issueToken(context, account)
}

/*
Logout permanently revokes the presented session token.

Description: Ensures that a session token can never be used again. Revoking
an already-revoked or unknown token is treated as success (idempotent).

Parameters:
  - context: context.Context
  - rawToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, rawToken string) error {

	// Hash the raw token
	tokenHash := sec.HashToken(rawToken)

	// Remove the persistent row. A missing row is not an error.
	if err := service.tokenRepository.DeleteByHash(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	// Best-effort cache invalidation
	_ = service.sessionCache.Delete(context, tokenHash)

	return nil
}

// # Session Management

/*
ValidateToken resolves a raw session token into an authenticated identity.

Description: A token is valid strictly before its expiry instant; at exactly
ExpiresAt it is already invalid. Expired tokens are terminal: they are lazily
purged on first sight and can never be refreshed back to life.

The Redis cache is consulted first. Cache entries carry a TTL bounded by the
token's remaining lifetime, so a hit always implies an active session; misses
and cache failures fall back to Postgres.

Parameters:
  - context: context.Context
  - rawToken: string

Returns:
  - *sec.Identity: The authenticated account identity
  - err: Unauthorized (unknown or expired token) or storage failures
*/
func (service *Service) ValidateToken(context context.Context, rawToken string) (*sec.Identity, error) {

	// Hash the incoming token to look it up
	tokenHash := sec.HashToken(rawToken)

	// 1. Cache fast-path. Failures fall through to the database.
	if identity, err := service.sessionCache.Get(context, tokenHash); err == nil {
		return identity, nil
	}

	// 2. Resolve the token row from persistent storage
	token, err := service.tokenRepository.FindByHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Session token not found")
	}

	// 3. Expiry check (exclusive boundary). Lazily purge the dead row.
	if !token.Active(service.now()) {
		_ = service.tokenRepository.Delete(context, token.ID)
		_ = service.sessionCache.Delete(context, tokenHash)
		return nil, apperr.Unauthorized("Session token expired")
	}

	// 4. Hydrate the identity from the owning account
	account, err := service.accountRepository.FindByID(context, token.AccountID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found")
	}

	identity := &sec.Identity{
		AccountID: account.ID,
		Handle:    account.Handle,
		Role:      account.Role,
	}

	// 5. Populate the cache, bounded by the remaining token lifetime
	_ = service.sessionCache.Set(context, tokenHash, identity, token.ExpiresAt.Sub(service.now()))

	return identity, nil
}

/*
Refresh implements session token rotation.

Description: Only an active token can be refreshed; an expired or unknown
token is rejected with the same generic error. On success the old token is
revoked and a fresh token with a full seven-day window is issued.

Parameters:
  - context: context.Context
  - rawToken: string

Returns:
  - *Session: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, rawToken string) (*Session, error) {

	// Hash the incoming token to look it up
	tokenHash := sec.HashToken(rawToken)
	token, err := service.tokenRepository.FindByHash(context, tokenHash)

	// If (err != nil) the token is unknown or already revoked.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired session token")
	}

	// Expired tokens are terminal: purge and reject.
	if !token.Active(service.now()) {
		_ = service.tokenRepository.Delete(context, token.ID)
		_ = service.sessionCache.Delete(context, tokenHash)
		return nil, apperr.Unauthorized("Invalid or expired session token")
	}

	// Fetch the account associated with this token
	account, err := service.accountRepository.FindByID(context, token.AccountID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found")
	}

	// Rotation: revoke the old token to prevent replay
	if err := service.tokenRepository.Delete(context, token.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}
	_ = service.sessionCache.Delete(context, tokenHash)

	return service.issueToken(context, account)
}

/*
Me returns the account behind an authenticated identity.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *Account: Hydrated account entity
  - err: NotFound or storage failures
*/
func (service *Service) Me(context context.Context, accountID string) (*Account, error) {
	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// issueToken mints and persists a fresh opaque session token for the account.
func (service *Service) issueToken(context context.Context, account *Account) (*Session, error) {

	// Generate the high-entropy opaque value
	rawToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Persist only the hash, with a full seven-day window
	issuedAt := service.now()
	token := &SessionToken{
		ID:        uuid.New(),
		AccountID: account.ID,
		TokenHash: sec.HashToken(rawToken),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(SessionTokenTTL),
	}

	if err := service.tokenRepository.Create(context, token); err != nil {
		return nil, fmt.Errorf("auth_service_token_creation_failed: %w", err)
	}

	return &Session{
		Token:     rawToken,
		ExpiresAt: token.ExpiresAt,
		Account:   account,
	}, nil
}
