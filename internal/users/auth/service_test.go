// Copyright (c) 2026 Fithub. All rights reserved.

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/sec"
)

// # In-Memory Fakes

// fakeAccountRepository is an in-memory AccountRepository that enforces
// handle uniqueness the way the storage unique index would.
type fakeAccountRepository struct {
	byID            map[string]*Account
	byHandle        map[string]*Account
	trainerProfiles map[string]bool
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		byID:            make(map[string]*Account),
		byHandle:        make(map[string]*Account),
		trainerProfiles: make(map[string]bool),
	}
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return account, nil
}

func (f *fakeAccountRepository) FindByHandle(_ context.Context, handle string) (*Account, error) {
	account, ok := f.byHandle[handle]
	if !ok {
		return nil, apperr.NotFound("Account not found with this handle")
	}
	return account, nil
}

func (f *fakeAccountRepository) Create(_ context.Context, account *Account) error {
	if _, exists := f.byHandle[account.Handle]; exists {
		// Same SQLSTATE a real unique index violation would produce.
		return &pgconn.PgError{Code: "23505", ConstraintName: "account_handle_key"}
	}
	f.byID[account.ID] = account
	f.byHandle[account.Handle] = account
	return nil
}

func (f *fakeAccountRepository) CreateTrainerProfile(_ context.Context, accountID string) error {
	f.trainerProfiles[accountID] = true
	return nil
}

// fakeTokenRepository is an in-memory TokenRepository keyed by token hash.
type fakeTokenRepository struct {
	byHash map[string]*SessionToken
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{byHash: make(map[string]*SessionToken)}
}

func (f *fakeTokenRepository) Create(_ context.Context, token *SessionToken) error {
	f.byHash[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepository) FindByHash(_ context.Context, tokenHash string) (*SessionToken, error) {
	token, ok := f.byHash[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session token")
	}
	return token, nil
}

func (f *fakeTokenRepository) Delete(_ context.Context, tokenID string) error {
	for hash, token := range f.byHash {
		if token.ID == tokenID {
			delete(f.byHash, hash)
		}
	}
	return nil
}

func (f *fakeTokenRepository) DeleteByHash(_ context.Context, tokenHash string) error {
	delete(f.byHash, tokenHash)
	return nil
}

// missCache always misses, forcing every validation through the database path.
type missCache struct{}

func (missCache) Get(_ context.Context, _ string) (*sec.Identity, error) {
	return nil, apperr.NotFound("Cached session")
}
func (missCache) Set(_ context.Context, _ string, _ *sec.Identity, _ time.Duration) error {
	return nil
}
func (missCache) Delete(_ context.Context, _ string) error { return nil }

// recordingCache is a map-backed SessionCache for cache-hit tests.
type recordingCache struct {
	entries map[string]*sec.Identity
	lastTTL time.Duration
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]*sec.Identity)}
}

func (c *recordingCache) Get(_ context.Context, tokenHash string) (*sec.Identity, error) {
	identity, ok := c.entries[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Cached session")
	}
	return identity, nil
}

func (c *recordingCache) Set(_ context.Context, tokenHash string, identity *sec.Identity, ttl time.Duration) error {
	c.entries[tokenHash] = identity
	c.lastTTL = ttl
	return nil
}

func (c *recordingCache) Delete(_ context.Context, tokenHash string) error {
	delete(c.entries, tokenHash)
	return nil
}

// newTestService wires a Service over in-memory fakes with a fixed clock.
func newTestService(t *testing.T, cache SessionCache) (*Service, *fakeAccountRepository, *fakeTokenRepository, *time.Time) {
	t.Helper()

	accountRepo := newFakeAccountRepository()
	tokenRepo := newFakeTokenRepository()

	service := NewService(accountRepo, tokenRepo, cache)

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return clock }

	return service, accountRepo, tokenRepo, &clock
}

func signupUser(t *testing.T, service *Service, handle string, role sec.AccountRole) *Account {
	t.Helper()
	account, err := service.Signup(context.Background(), SignupInput{
		Handle:      handle,
		Password:    "a-strong-password",
		DisplayName: "Test Account",
		Role:        role,
	})
	require.NoError(t, err)
	return account
}

// # Signup

/*
TestSignup_Success verifies the enrollment of a new account.
*/
func TestSignup_Success(t *testing.T) {
	service, accountRepo, _, _ := newTestService(t, missCache{})

	account, err := service.Signup(context.Background(), SignupInput{
		Handle:      "coach_amy",
		Password:    "a-strong-password",
		DisplayName: "Amy W",
		Email:       "amy@fithub.app",
		Role:        sec.RoleTrainer,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "coach_amy", account.Handle)
	assert.Equal(t, sec.RoleTrainer, account.Role)

	// The raw password must never be persisted; only salt + digest.
	assert.NotEmpty(t, account.Salt)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotContains(t, account.PasswordHash, "a-strong-password")

	// Trainer signups get an empty profile row.
	assert.True(t, accountRepo.trainerProfiles[account.ID])
}

/*
TestSignup_UserRoleSkipsTrainerProfile verifies standard users do not get a profile row.
*/
func TestSignup_UserRoleSkipsTrainerProfile(t *testing.T) {
	service, accountRepo, _, _ := newTestService(t, missCache{})

	account := signupUser(t, service, "plain_user", sec.RoleUser)
	assert.False(t, accountRepo.trainerProfiles[account.ID])
}

/*
TestSignup_DuplicateHandle verifies the unique index violation surfaces as Conflict,
regardless of the roles involved.
*/
func TestSignup_DuplicateHandle(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})
	signupUser(t, service, "taken", sec.RoleUser)

	// Same handle, other role: still a conflict (uniqueness spans both roles).
	_, err := service.Signup(context.Background(), SignupInput{
		Handle:      "taken",
		Password:    "another-password",
		DisplayName: "Imposter",
		Role:        sec.RoleTrainer,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestSignup_InvalidInput verifies empty passwords and unknown roles are rejected.
*/
func TestSignup_InvalidInput(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})

	_, err := service.Signup(context.Background(), SignupInput{
		Handle: "nopass", Password: "", DisplayName: "X", Role: sec.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.Signup(context.Background(), SignupInput{
		Handle: "badrole", Password: "a-strong-password", DisplayName: "X", Role: "admin",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Login

/*
TestLogin_Success verifies a fresh token round-trips through validation.
*/
func TestLogin_Success(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})
	account := signupUser(t, service, "coach_amy", sec.RoleTrainer)

	session, err := service.Login(context.Background(), LoginInput{
		Handle: "coach_amy", Password: "a-strong-password",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, account.ID, session.Account.ID)
	assert.Equal(t, session.ExpiresAt, service.now().Add(SessionTokenTTL))

	identity, err := service.ValidateToken(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, identity.AccountID)
	assert.Equal(t, sec.RoleTrainer, identity.Role)
}

/*
TestLogin_FailuresAreIndistinguishable verifies the unknown-handle and
wrong-password failures return byte-identical errors.
*/
func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})
	signupUser(t, service, "known", sec.RoleUser)

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Handle: "ghost", Password: "a-strong-password",
	})
	require.Error(t, unknownErr)

	_, wrongErr := service.Login(context.Background(), LoginInput{
		Handle: "known", Password: "not-the-password",
	})
	require.Error(t, wrongErr)

	unknownAE, wrongAE := apperr.As(unknownErr), apperr.As(wrongErr)
	require.NotNil(t, unknownAE)
	require.NotNil(t, wrongAE)

	assert.Equal(t, unknownAE.Code, wrongAE.Code)
	assert.Equal(t, unknownAE.Message, wrongAE.Message)
	assert.Equal(t, "UNAUTHORIZED", wrongAE.Code)
}

/*
TestLogin_MultipleDevices verifies concurrent sessions do not revoke each other.
*/
func TestLogin_MultipleDevices(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})
	signupUser(t, service, "roamer", sec.RoleUser)

	first, err := service.Login(context.Background(), LoginInput{Handle: "roamer", Password: "a-strong-password"})
	require.NoError(t, err)
	second, err := service.Login(context.Background(), LoginInput{Handle: "roamer", Password: "a-strong-password"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	_, err = service.ValidateToken(context.Background(), first.Token)
	assert.NoError(t, err)
	_, err = service.ValidateToken(context.Background(), second.Token)
	assert.NoError(t, err)
}

// # Token Validation

/*
TestValidateToken_UnknownToken verifies an unissued token is rejected.
*/
func TestValidateToken_UnknownToken(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})

	_, err := service.ValidateToken(context.Background(), "never-issued")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestValidateToken_ExpiryBoundary verifies the boundary is exclusive: a token
is valid one instant before expiry and invalid at exactly the expiry instant.
*/
func TestValidateToken_ExpiryBoundary(t *testing.T) {
	service, _, tokenRepo, clock := newTestService(t, missCache{})
	signupUser(t, service, "boundary", sec.RoleUser)

	session, err := service.Login(context.Background(), LoginInput{Handle: "boundary", Password: "a-strong-password"})
	require.NoError(t, err)

	// One nanosecond before expiry: still valid.
	*clock = session.ExpiresAt.Add(-time.Nanosecond)
	_, err = service.ValidateToken(context.Background(), session.Token)
	assert.NoError(t, err)

	// At exactly the expiry instant: invalid.
	*clock = session.ExpiresAt
	_, err = service.ValidateToken(context.Background(), session.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Expiry is terminal: the row has been lazily purged.
	assert.Empty(t, tokenRepo.byHash)
}

/*
TestValidateToken_CacheHit verifies the Redis fast-path serves repeat
validations without touching the token repository.
*/
func TestValidateToken_CacheHit(t *testing.T) {
	cache := newRecordingCache()
	service, _, tokenRepo, _ := newTestService(t, cache)
	account := signupUser(t, service, "cached", sec.RoleUser)

	session, err := service.Login(context.Background(), LoginInput{Handle: "cached", Password: "a-strong-password"})
	require.NoError(t, err)

	// First validation populates the cache with a lifetime-bounded TTL.
	_, err = service.ValidateToken(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Len(t, cache.entries, 1)
	assert.Equal(t, SessionTokenTTL, cache.lastTTL)

	// Second validation is served from cache even if the row disappears.
	tokenRepo.byHash = make(map[string]*SessionToken)
	identity, err := service.ValidateToken(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, identity.AccountID)
}

// # Refresh

/*
TestRefresh_Rotation verifies refresh issues a new token, a new window, and
revokes the old token.
*/
func TestRefresh_Rotation(t *testing.T) {
	service, _, _, clock := newTestService(t, missCache{})
	signupUser(t, service, "rotator", sec.RoleUser)

	session, err := service.Login(context.Background(), LoginInput{Handle: "rotator", Password: "a-strong-password"})
	require.NoError(t, err)

	// Three days later, refresh while still active.
	*clock = clock.Add(72 * time.Hour)
	refreshed, err := service.Refresh(context.Background(), session.Token)
	require.NoError(t, err)

	assert.NotEqual(t, session.Token, refreshed.Token)
	assert.Equal(t, clock.Add(SessionTokenTTL), refreshed.ExpiresAt)

	// The old token is gone; the new one validates.
	_, err = service.ValidateToken(context.Background(), session.Token)
	require.Error(t, err)
	_, err = service.ValidateToken(context.Background(), refreshed.Token)
	assert.NoError(t, err)
}

/*
TestRefresh_ExpiredRejected verifies an expired token cannot be refreshed
back to life.
*/
func TestRefresh_ExpiredRejected(t *testing.T) {
	service, _, tokenRepo, clock := newTestService(t, missCache{})
	signupUser(t, service, "sleeper", sec.RoleUser)

	session, err := service.Login(context.Background(), LoginInput{Handle: "sleeper", Password: "a-strong-password"})
	require.NoError(t, err)

	*clock = session.ExpiresAt.Add(time.Hour)
	_, err = service.Refresh(context.Background(), session.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The dead row was purged on sight.
	assert.Empty(t, tokenRepo.byHash)
}

// # Logout

/*
TestLogout_RevokesAndIsIdempotent verifies logout kills the session and
tolerates being called again.
*/
func TestLogout_RevokesAndIsIdempotent(t *testing.T) {
	service, _, _, _ := newTestService(t, missCache{})
	signupUser(t, service, "leaver", sec.RoleUser)

	session, err := service.Login(context.Background(), LoginInput{Handle: "leaver", Password: "a-strong-password"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.Token))

	_, err = service.ValidateToken(context.Background(), session.Token)
	require.Error(t, err)

	// Second logout of the same token is still a success.
	assert.NoError(t, service.Logout(context.Background(), session.Token))
}

/*
TestLogout_InvalidatesCache verifies explicit revocation also clears the cache entry.
*/
func TestLogout_InvalidatesCache(t *testing.T) {
	cache := newRecordingCache()
	service, _, _, _ := newTestService(t, cache)
	signupUser(t, service, "cachedout", sec.RoleUser)

	session, err := service.Login(context.Background(), LoginInput{Handle: "cachedout", Password: "a-strong-password"})
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), session.Token)
	require.NoError(t, err)
	require.Len(t, cache.entries, 1)

	require.NoError(t, service.Logout(context.Background(), session.Token))
	assert.Empty(t, cache.entries)

	_, err = service.ValidateToken(context.Background(), session.Token)
	assert.Error(t, err)
}
