// Copyright (c) 2026 Fithub. All rights reserved.

package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/core/plan"
	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/dberr"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Test Doubles

// fakeRepository enforces the (user, plan) uniqueness the way the real
// storage layer does: a duplicate surfaces as a unique violation run
// through the same [dberr.Wrap] the Postgres store applies.
type fakeRepository struct {
	rows map[string]*Subscription // key: userID + "/" + planID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[string]*Subscription)}
}

func (f *fakeRepository) Create(_ context.Context, s *Subscription) error {
	key := s.UserID + "/" + s.PlanID
	if _, exists := f.rows[key]; exists {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "subscription_userid_planid_key"}
		return dberr.Wrap(pgErr, "subscription_create")
	}
	clone := *s
	f.rows[key] = &clone
	return nil
}

func (f *fakeRepository) FindByUserAndPlan(_ context.Context, userID, planID string) (*Subscription, error) {
	s, ok := f.rows[userID+"/"+planID]
	if !ok {
		return nil, apperr.NotFound("Subscription")
	}
	clone := *s
	return &clone, nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]Subscription, int, error) {
	matches := []Subscription{}
	for _, s := range f.rows {
		if s.UserID == userID {
			matches = append(matches, *s)
		}
	}
	return matches, len(matches), nil
}

// fakePlanRepository serves plan lookups from a fixed set.
type fakePlanRepository struct {
	plans map[string]*plan.Plan
}

func (f *fakePlanRepository) FindByID(_ context.Context, planID string) (*plan.Plan, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, apperr.NotFound("Plan")
	}
	clone := *p
	return &clone, nil
}

func (f *fakePlanRepository) Create(_ context.Context, _ *plan.Plan) error { return nil }
func (f *fakePlanRepository) Update(_ context.Context, _ *plan.Plan) error { return nil }
func (f *fakePlanRepository) Delete(_ context.Context, _ string) error     { return nil }
func (f *fakePlanRepository) ListByTrainer(_ context.Context, _ string, _ pagination.Params) ([]plan.Plan, int, error) {
	return nil, 0, nil
}
func (f *fakePlanRepository) Browse(_ context.Context, _ plan.Filter, _ pagination.Params) ([]plan.Plan, int, error) {
	return nil, 0, nil
}
func (f *fakePlanRepository) Feed(_ context.Context, _ string, _ pagination.Params) ([]plan.Plan, int, error) {
	return nil, 0, nil
}

// # Fixtures

var testClock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeRepository, *fakePlanRepository) {
	repository := newFakeRepository()
	planRepository := &fakePlanRepository{plans: map[string]*plan.Plan{
		"plan-1": {
			ID:           "plan-1",
			TrainerID:    "trainer-1",
			Title:        "12 Week Strength Builder",
			Slug:         "12-week-strength-builder",
			Price:        49.99,
			DurationDays: 84,
			IsActive:     true,
		},
		"plan-retired": {
			ID:           "plan-retired",
			TrainerID:    "trainer-1",
			Title:        "Legacy Shred",
			Price:        19.99,
			DurationDays: 30,
			IsActive:     false,
		},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(repository, planRepository, logger)
	service.now = func() time.Time { return testClock }

	return service, repository, planRepository
}

// # Tests

/*
TestSubscribe_Success verifies the purchase snapshot and window math.
*/
func TestSubscribe_Success(t *testing.T) {
	service, repository, _ := newTestService()

	subscription, err := service.Subscribe(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)

	// 1. Price is snapshotted from the plan
	assert.Equal(t, 49.99, subscription.AmountPaid)

	// 2. The window runs from now for the plan's duration in days
	assert.Equal(t, testClock, subscription.StartDate)
	assert.Equal(t, testClock.AddDate(0, 0, 84), subscription.EndDate)

	// 3. Plan details are attached for the response
	assert.Equal(t, "12 Week Strength Builder", subscription.PlanTitle)

	// 4. Row is persisted
	stored, err := repository.FindByUserAndPlan(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)
	assert.Equal(t, subscription.ID, stored.ID)
}

/*
TestSubscribe_DuplicateIsConflict verifies that a second purchase of the
same plan surfaces as a conflict via the uniqueness constraint, carrying
the subscription-specific message rather than the storage layer's
generic one.
*/
func TestSubscribe_DuplicateIsConflict(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Subscribe(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)

	_, err = service.Subscribe(context.Background(), "user-1", "plan-1")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
	assert.Equal(t, "You are already subscribed to this plan", appError.Message)
}

/*
TestSubscribe_InactivePlanRejected verifies retired plans cannot be bought.
*/
func TestSubscribe_InactivePlanRejected(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Subscribe(context.Background(), "user-1", "plan-retired")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestSubscribe_OwnPlanRejected verifies trainers cannot buy their own plans.
*/
func TestSubscribe_OwnPlanRejected(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Subscribe(context.Background(), "trainer-1", "plan-1")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestHasActive_WindowBoundary verifies the exclusive end-date boundary.
*/
func TestHasActive_WindowBoundary(t *testing.T) {
	service, _, _ := newTestService()

	subscription, err := service.Subscribe(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)

	// 1. Just inside the window
	service.now = func() time.Time { return subscription.EndDate.Add(-time.Nanosecond) }
	active, err := service.HasActive(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)
	assert.True(t, active)

	// 2. At the end date the window is closed
	service.now = func() time.Time { return subscription.EndDate }
	active, err = service.HasActive(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)
	assert.False(t, active)
}

/*
TestHasActive_MissingSubscription verifies a missing row answers false
without error.
*/
func TestHasActive_MissingSubscription(t *testing.T) {
	service, _, _ := newTestService()

	active, err := service.HasActive(context.Background(), "user-1", "plan-1")
	require.NoError(t, err)
	assert.False(t, active)
}
