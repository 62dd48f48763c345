// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package auth implements the account identity and session management layer.

It defines the core domain entities (Account, SessionToken) and logic for
authentication, authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to account identity.
*/
package auth

import (
	"time"

	"github.com/fithub/fithub/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered member of the Fithub platform.
//
// A single table holds both roles; Role distinguishes trainers from
// standard users. The handle is unique across both roles.
type Account struct {
	ID           string          `json:"id"`
	Handle       string          `json:"handle"`
	DisplayName  string          `json:"display_name"`
	Email        string          `json:"email,omitempty"`
	Mobile       string          `json:"mobile,omitempty"`
	Role         sec.AccountRole `json:"role"`
	Salt         string          `json:"-"` // Explicitly omitted from JSON for security.
	PasswordHash string          `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SessionToken represents an active opaque session.
//
// Only the SHA-256 hash of the raw token value is persisted. A token is
// valid strictly before ExpiresAt; expiry is terminal and the row is
// lazily purged on the first validation after the boundary.
type SessionToken struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	TokenHash string    `json:"-"` // Hashed value of the session token. Omitted for security.
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the token is still valid at the given instant.
// The expiry boundary is exclusive: a token is invalid at exactly ExpiresAt.
func (t *SessionToken) Active(at time.Time) bool {
	return at.Before(t.ExpiresAt)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldHandle      = "handle"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldEmail       = "email"
	FieldMobile      = "mobile"
	FieldRole        = "role"
	FieldToken       = "token"
	FieldExpiresAt   = "expires_at"
	FieldAccount     = "account"
	FieldMessage     = "message"
)
