// Copyright (c) 2026 Fithub. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// # Session Tokens

// tokenBytes is the entropy of a raw session token before encoding.
const tokenBytes = 48

// GenerateSecureToken returns a new opaque session token value.
//
// The token carries no embedded claims; validation always resolves it
// against server-side state, which keeps revocation immediate.
func GenerateSecureToken() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token value.
//
// Only the digest is persisted, so a leaked database dump does not yield
// usable session tokens.
func HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
