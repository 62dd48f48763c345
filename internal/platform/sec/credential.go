// Copyright (c) 2026 Fithub. All rights reserved.

// Package sec provides cryptographic primitives for account security.
//
// # Architecture
//
// This package isolates security-sensitive code (password key derivation,
// session token generation) from the domain logic. It acts as an
// Infrastructure service consumed by the Application layer.
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// # Password Credentials

const (
	// saltBytes is the length of the random salt generated per credential.
	saltBytes = 32

	// pbkdf2Iterations is the PBKDF2-SHA256 iteration count.
	pbkdf2Iterations = 100_000

	// derivedKeyBytes is the length of the derived key.
	derivedKeyBytes = 32
)

// Credential is a salted password digest suitable for persistence.
//
// # Security
//
// The raw password is never stored. Each enrollment draws a fresh random
// salt, so two accounts sharing a password still produce distinct digests.
type Credential struct {
	// Salt is the hex-encoded random salt.
	Salt string
	// Hash is the hex-encoded PBKDF2-SHA256 derived key.
	Hash string
}

// EnrollPassword derives a [Credential] from a plain-text password.
// It returns an error if the password is empty or the system entropy
// source fails.
func EnrollPassword(plainTextPassword string) (Credential, error) {
	if plainTextPassword == "" {
		return Credential{}, fmt.Errorf("sec: password must not be empty")
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plainTextPassword), salt, pbkdf2Iterations, derivedKeyBytes, sha256.New)
	return Credential{
		Salt: hex.EncodeToString(salt),
		Hash: hex.EncodeToString(key),
	}, nil
}

// VerifyPassword reports whether the plain-text password matches the stored
// credential. A malformed credential or a wrong password both return false;
// verification never distinguishes the two.
func VerifyPassword(plainTextPassword string, credential Credential) bool {
	salt, err := hex.DecodeString(credential.Salt)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(credential.Hash)
	if err != nil || len(expected) == 0 {
		return false
	}

	key := pbkdf2.Key([]byte(plainTextPassword), salt, pbkdf2Iterations, derivedKeyBytes, sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
