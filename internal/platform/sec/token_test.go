// Copyright (c) 2026 Fithub. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies opaque tokens are non-empty and unique.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := sec.GenerateSecureToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies hashing is deterministic and never the identity function.
*/
func TestHashToken(t *testing.T) {
	raw := "some-raw-token-value"

	assert.Equal(t, sec.HashToken(raw), sec.HashToken(raw))
	assert.NotEqual(t, raw, sec.HashToken(raw))
	assert.NotEqual(t, sec.HashToken(raw), sec.HashToken(raw+"x"))

	// hex-encoded SHA-256 digest length
	assert.Len(t, sec.HashToken(raw), 64)
}
