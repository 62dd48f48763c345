// Copyright (c) 2026 Fithub. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the duration an opaque session token remains valid.
	// Fixed at seven days (604800 seconds) from issuance.
	SessionTokenTTL = 7 * 24 * time.Hour

	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8

	// MinHandleLength is the minimum accepted handle length at signup.
	MinHandleLength = 3

	// MaxHandleLength bounds handle length to keep the unique index compact.
	MaxHandleLength = 32
)
