// Copyright (c) 2026 Fithub. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/constants"
	"github.com/fithub/fithub/internal/platform/sec"
)

// # Session Cache

// RedisSessionCache implements SessionCache using Redis.
//
// Entries are keyed by the token hash and carry a TTL bounded by the token's
// remaining lifetime, so a cache hit always implies an active session.
type RedisSessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new Redis-backed SessionCache.
func NewSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{client: client}
}

/*
Get retrieves the cached identity for a given token hash.

Description: Returns apperr.NotFound on a cache miss so the caller falls
back to the database.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *sec.Identity: Cached identity
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisSessionCache) Get(context context.Context, tokenHash string) (*sec.Identity, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixSession, tokenHash)

	// Get the cached identity payload from Redis
	payload, err := cache.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cached session")
		}
		return nil, fmt.Errorf("redis_session_cache_get_failed: %w", err)
	}

	// Decode the JSON payload
	identity := &sec.Identity{}
	if err := json.Unmarshal(payload, identity); err != nil {
		return nil, fmt.Errorf("redis_session_cache_decode_failed: %w", err)
	}

	return identity, nil
}

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
func (cache *RedisSessionCache) Set(context context.Context, tokenHash string, identity *sec.Identity, ttl time.Duration) error {

	// A non-positive TTL means the token is already at its boundary
	if ttl <= 0 {
		return nil
	}

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixSession, tokenHash)

	// Encode the identity as JSON
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("redis_session_cache_encode_failed: %w", err)
	}

	// Set the payload with TTL
	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Delete removes the cached identity for a token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisSessionCache) Delete(context context.Context, tokenHash string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixSession, tokenHash)

	// Delete the entry from Redis
	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
