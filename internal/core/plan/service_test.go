// Copyright (c) 2026 Fithub. All rights reserved.

package plan_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/core/plan"
	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Test Doubles

// fakeRepository is an in-memory implementation of plan.Repository.
type fakeRepository struct {
	plans map[string]*plan.Plan
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{plans: make(map[string]*plan.Plan)}
}

func (f *fakeRepository) Create(_ context.Context, p *plan.Plan) error {
	clone := *p
	f.plans[p.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, planID string) (*plan.Plan, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, apperr.NotFound("Plan")
	}
	clone := *p
	return &clone, nil
}

func (f *fakeRepository) Update(_ context.Context, p *plan.Plan) error {
	if _, ok := f.plans[p.ID]; !ok {
		return apperr.NotFound("Plan")
	}
	clone := *p
	f.plans[p.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, planID string) error {
	if _, ok := f.plans[planID]; !ok {
		return apperr.NotFound("Plan")
	}
	delete(f.plans, planID)
	return nil
}

func (f *fakeRepository) ListByTrainer(_ context.Context, trainerID string, _ pagination.Params) ([]plan.Plan, int, error) {
	matches := []plan.Plan{}
	for _, p := range f.plans {
		if p.TrainerID == trainerID {
			matches = append(matches, *p)
		}
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) Browse(_ context.Context, filter plan.Filter, _ pagination.Params) ([]plan.Plan, int, error) {
	matches := []plan.Plan{}
	for _, p := range f.plans {
		if !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		matches = append(matches, *p)
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) Feed(_ context.Context, _ string, _ pagination.Params) ([]plan.Plan, int, error) {
	return nil, 0, nil
}

// fakeSubscriptions answers subscription checks from a fixed set.
type fakeSubscriptions struct {
	active map[string]bool // key: userID + "/" + planID
}

func (f *fakeSubscriptions) HasActive(_ context.Context, userID, planID string) (bool, error) {
	return f.active[userID+"/"+planID], nil
}

func newTestService() (*plan.Service, *fakeRepository, *fakeSubscriptions) {
	repository := newFakeRepository()
	subscriptions := &fakeSubscriptions{active: make(map[string]bool)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return plan.NewService(repository, subscriptions, logger), repository, subscriptions
}

func validCreateInput() plan.CreateInput {
	return plan.CreateInput{
		Title:        "12 Week Strength Builder",
		Description:  "Full periodized program with weekly deloads.",
		Price:        49.99,
		DurationDays: 84,
		Difficulty:   plan.DifficultyIntermediate,
		Category:     "strength",
	}
}

// # Tests

/*
TestService_Create verifies plan publication with identity and slug generation.
*/
func TestService_Create(t *testing.T) {
	service, repository, _ := newTestService()

	created, err := service.Create(context.Background(), "trainer-1", validCreateInput())
	require.NoError(t, err)

	// 1. Identity and slug are derived
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "12-week-strength-builder", created.Slug)
	assert.Equal(t, "trainer-1", created.TrainerID)
	assert.True(t, created.IsActive)

	// 2. Row is persisted
	stored, err := repository.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, stored.Title)
}

/*
TestService_Create_InvalidDifficulty verifies the difficulty enum gate.
*/
func TestService_Create_InvalidDifficulty(t *testing.T) {
	service, _, _ := newTestService()

	input := validCreateInput()
	input.Difficulty = plan.Difficulty("extreme")

	_, err := service.Create(context.Background(), "trainer-1", input)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestService_Update_OwnershipEnforced verifies that only the author may
mutate a plan.
*/
func TestService_Update_OwnershipEnforced(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), "trainer-1", validCreateInput())
	require.NoError(t, err)

	newTitle := "8 Week Cut"
	_, err = service.Update(context.Background(), "trainer-2", created.ID, plan.UpdateInput{Title: &newTitle})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

/*
TestService_Update_RegeneratesSlug verifies that a title change refreshes
the slug.
*/
func TestService_Update_RegeneratesSlug(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), "trainer-1", validCreateInput())
	require.NoError(t, err)

	newTitle := "8 Week Cut"
	updated, err := service.Update(context.Background(), "trainer-1", created.ID, plan.UpdateInput{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "8 Week Cut", updated.Title)
	assert.Equal(t, "8-week-cut", updated.Slug)
}

/*
TestService_Delete_OwnershipEnforced verifies deletion is author-only.
*/
func TestService_Delete_OwnershipEnforced(t *testing.T) {
	service, repository, _ := newTestService()

	created, err := service.Create(context.Background(), "trainer-1", validCreateInput())
	require.NoError(t, err)

	// 1. A stranger cannot delete
	err = service.Delete(context.Background(), "trainer-2", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 2. The author can
	err = service.Delete(context.Background(), "trainer-1", created.ID)
	require.NoError(t, err)

	_, err = repository.FindByID(context.Background(), created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Get_AccessStates verifies the teaser policy wiring on the
detail read path.
*/
func TestService_Get_AccessStates(t *testing.T) {
	service, _, subscriptions := newTestService()

	created, err := service.Create(context.Background(), "trainer-1", validCreateInput())
	require.NoError(t, err)

	owner := &sec.Identity{AccountID: "trainer-1", Role: sec.RoleTrainer}
	subscriber := &sec.Identity{AccountID: "user-1", Role: sec.RoleUser}
	stranger := &sec.Identity{AccountID: "user-2", Role: sec.RoleUser}
	subscriptions.active["user-1/"+created.ID] = true

	// 1. Anonymous viewer gets the teaser
	view, err := service.Get(context.Background(), created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, view.Description)
	assert.False(t, view.FullAccess)

	// 2. Stranger gets the teaser
	view, err = service.Get(context.Background(), created.ID, stranger)
	require.NoError(t, err)
	assert.Nil(t, view.Description)

	// 3. Active subscriber gets the full content
	view, err = service.Get(context.Background(), created.ID, subscriber)
	require.NoError(t, err)
	require.NotNil(t, view.Description)
	assert.True(t, view.FullAccess)

	// 4. The author always gets the full content
	view, err = service.Get(context.Background(), created.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, view.Description)
}

/*
TestService_Browse_TeaserOnly verifies catalogue listings stay teasers
for non-authors.
*/
func TestService_Browse_TeaserOnly(t *testing.T) {
	service, _, subscriptions := newTestService()

	created, err := service.Create(context.Background(), "trainer-1", validCreateInput())
	require.NoError(t, err)

	// Even a subscriber sees teasers in listings; full content is detail-only.
	subscriber := &sec.Identity{AccountID: "user-1", Role: sec.RoleUser}
	subscriptions.active["user-1/"+created.ID] = true

	views, total, err := service.Browse(context.Background(), plan.Filter{}, pagination.Params{Page: 1, Limit: 20}, subscriber)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Nil(t, views[0].Description)
}
