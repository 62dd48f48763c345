// Copyright (c) 2026 Fithub. All rights reserved.

package follow

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Test Doubles

// fakeRepository keeps follow edges in memory with storage-level idempotency.
type fakeRepository struct {
	edges    map[string]time.Time // key: userID + "/" + trainerID
	trainers map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		edges:    make(map[string]time.Time),
		trainers: map[string]bool{"trainer-1": true, "trainer-2": true},
	}
}

func (f *fakeRepository) Upsert(_ context.Context, userID, trainerID string) error {
	key := userID + "/" + trainerID
	if _, exists := f.edges[key]; !exists {
		f.edges[key] = time.Now()
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, userID, trainerID string) error {
	delete(f.edges, userID+"/"+trainerID)
	return nil
}

func (f *fakeRepository) Exists(_ context.Context, userID, trainerID string) (bool, error) {
	_, exists := f.edges[userID+"/"+trainerID]
	return exists, nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]FollowedTrainer, int, error) {
	matches := []FollowedTrainer{}
	for key, followedAt := range f.edges {
		if len(key) > len(userID) && key[:len(userID)] == userID {
			matches = append(matches, FollowedTrainer{
				TrainerID:  key[len(userID)+1:],
				FollowedAt: followedAt,
			})
		}
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) TrainerExists(_ context.Context, trainerID string) (bool, error) {
	return f.trainers[trainerID], nil
}

func newTestService() (*Service, *fakeRepository) {
	repository := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, logger), repository
}

// # Tests

/*
TestFollow_Idempotent verifies that follow, unfollow, and re-follow
always leave at most one edge.
*/
func TestFollow_Idempotent(t *testing.T) {
	service, repository := newTestService()

	// 1. Follow creates the edge
	require.NoError(t, service.Follow(context.Background(), "user-1", "trainer-1"))
	assert.Len(t, repository.edges, 1)

	// 2. A repeated follow is a no-op
	require.NoError(t, service.Follow(context.Background(), "user-1", "trainer-1"))
	assert.Len(t, repository.edges, 1)

	// 3. Unfollow removes it
	require.NoError(t, service.Unfollow(context.Background(), "user-1", "trainer-1"))
	assert.Empty(t, repository.edges)

	// 4. Unfollowing again still succeeds
	require.NoError(t, service.Unfollow(context.Background(), "user-1", "trainer-1"))

	// 5. Re-follow creates exactly one edge
	require.NoError(t, service.Follow(context.Background(), "user-1", "trainer-1"))
	assert.Len(t, repository.edges, 1)
}

/*
TestFollow_NonTrainerRejected verifies that only trainer accounts can be
followed.
*/
func TestFollow_NonTrainerRejected(t *testing.T) {
	service, repository := newTestService()

	err := service.Follow(context.Background(), "user-1", "user-2")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, repository.edges)
}

/*
TestFollow_SelfRejected verifies that accounts cannot follow themselves.
*/
func TestFollow_SelfRejected(t *testing.T) {
	service, _ := newTestService()

	err := service.Follow(context.Background(), "trainer-1", "trainer-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestIsFollowing verifies the follow-state read path.
*/
func TestIsFollowing(t *testing.T) {
	service, _ := newTestService()

	following, err := service.IsFollowing(context.Background(), "user-1", "trainer-1")
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, service.Follow(context.Background(), "user-1", "trainer-1"))

	following, err = service.IsFollowing(context.Background(), "user-1", "trainer-1")
	require.NoError(t, err)
	assert.True(t, following)
}

/*
TestListFollowed verifies the followed-trainer listing.
*/
func TestListFollowed(t *testing.T) {
	service, _ := newTestService()

	require.NoError(t, service.Follow(context.Background(), "user-1", "trainer-1"))
	require.NoError(t, service.Follow(context.Background(), "user-1", "trainer-2"))

	trainers, total, err := service.ListFollowed(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, trainers, 2)
}
