// Copyright (c) 2026 Fithub. All rights reserved.

package tracker

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

type fakeWorkoutRepository struct {
	workouts []Workout
}

func (f *fakeWorkoutRepository) Create(_ context.Context, w *Workout) error {
	f.workouts = append(f.workouts, *w)
	return nil
}

func (f *fakeWorkoutRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]Workout, int, error) {
	matches := []Workout{}
	for _, w := range f.workouts {
		if w.UserID == userID {
			matches = append(matches, w)
		}
	}
	return matches, len(matches), nil
}

type fakeGoalRepository struct {
	goals map[string]*Goal
}

func newFakeGoalRepository() *fakeGoalRepository {
	return &fakeGoalRepository{goals: make(map[string]*Goal)}
}

func (f *fakeGoalRepository) Create(_ context.Context, g *Goal) error {
	clone := *g
	f.goals[g.ID] = &clone
	return nil
}

func (f *fakeGoalRepository) FindByID(_ context.Context, goalID string) (*Goal, error) {
	g, ok := f.goals[goalID]
	if !ok {
		return nil, apperr.NotFound("Goal")
	}
	clone := *g
	return &clone, nil
}

func (f *fakeGoalRepository) Update(_ context.Context, g *Goal) error {
	if _, ok := f.goals[g.ID]; !ok {
		return apperr.NotFound("Goal")
	}
	clone := *g
	f.goals[g.ID] = &clone
	return nil
}

func (f *fakeGoalRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]Goal, int, error) {
	matches := []Goal{}
	for _, g := range f.goals {
		if g.UserID == userID {
			matches = append(matches, *g)
		}
	}
	return matches, len(matches), nil
}

func newTestService() (*Service, *fakeWorkoutRepository, *fakeGoalRepository) {
	workoutRepo := &fakeWorkoutRepository{}
	goalRepo := newFakeGoalRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(workoutRepo, goalRepo, logger), workoutRepo, goalRepo
}

// # Workout Tests

/*
TestLogWorkout verifies session logging and the default date behaviour.
*/
func TestLogWorkout(t *testing.T) {
	service, repository, _ := newTestService()

	// 1. Explicit date is preserved
	sessionDate := time.Date(2026, 2, 20, 7, 30, 0, 0, time.UTC)
	workout, err := service.LogWorkout(context.Background(), "user-1", LogWorkoutInput{
		Name:            "Upper body push",
		DurationMinutes: 55,
		CaloriesBurned:  430,
		WorkoutDate:     sessionDate,
		Notes:           "New bench PR",
	})
	require.NoError(t, err)
	assert.Equal(t, sessionDate, workout.WorkoutDate)
	assert.NotEmpty(t, workout.ID)

	// 2. Omitted date defaults to now
	workout, err = service.LogWorkout(context.Background(), "user-1", LogWorkoutInput{
		Name:            "Evening run",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), workout.WorkoutDate, time.Minute)

	assert.Len(t, repository.workouts, 2)
}

/*
TestListWorkouts verifies per-user isolation of the workout log.
*/
func TestListWorkouts(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.LogWorkout(context.Background(), "user-1", LogWorkoutInput{Name: "Squats", DurationMinutes: 45})
	require.NoError(t, err)
	_, err = service.LogWorkout(context.Background(), "user-2", LogWorkoutInput{Name: "Yoga", DurationMinutes: 60})
	require.NoError(t, err)

	workouts, total, err := service.ListWorkouts(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Squats", workouts[0].Name)
}

// # Goal Tests

/*
TestAddGoal verifies goal creation starts active.
*/
func TestAddGoal(t *testing.T) {
	service, _, _ := newTestService()

	goal, err := service.AddGoal(context.Background(), "user-1", AddGoalInput{
		GoalType:     "weight",
		TargetValue:  80,
		CurrentValue: 92,
	})
	require.NoError(t, err)

	assert.Equal(t, GoalStatusActive, goal.Status)
	assert.Equal(t, 92.0, goal.CurrentValue)
}

/*
TestUpdateProgress_OwnershipEnforced verifies progress updates are
owner-only.
*/
func TestUpdateProgress_OwnershipEnforced(t *testing.T) {
	service, _, _ := newTestService()

	goal, err := service.AddGoal(context.Background(), "user-1", AddGoalInput{
		GoalType: "weight", TargetValue: 80, CurrentValue: 92,
	})
	require.NoError(t, err)

	_, err = service.UpdateProgress(context.Background(), "user-2", goal.ID, 90)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

/*
TestUpdateProgress_CompletesOnTarget verifies both goal directions
complete when the target is reached.
*/
func TestUpdateProgress_CompletesOnTarget(t *testing.T) {
	service, _, _ := newTestService()

	testCases := []struct {
		name       string
		target     float64
		start      float64
		progress   []float64
		wantStatus GoalStatus
	}{
		{name: "weight loss reaches target from above", target: 80, start: 92, progress: []float64{88, 80}, wantStatus: GoalStatusCompleted},
		{name: "weight loss crosses target", target: 80, start: 92, progress: []float64{79.5}, wantStatus: GoalStatusCompleted},
		{name: "lift goal reaches target from below", target: 140, start: 100, progress: []float64{120, 142.5}, wantStatus: GoalStatusCompleted},
		{name: "partial progress stays active", target: 80, start: 92, progress: []float64{85}, wantStatus: GoalStatusActive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			goal, err := service.AddGoal(context.Background(), "user-1", AddGoalInput{
				GoalType: "test", TargetValue: tc.target, CurrentValue: tc.start,
			})
			require.NoError(t, err)

			for _, value := range tc.progress {
				goal, err = service.UpdateProgress(context.Background(), "user-1", goal.ID, value)
				require.NoError(t, err)
			}

			assert.Equal(t, tc.wantStatus, goal.Status)
		})
	}
}

/*
TestUpdateProgress_UnknownGoal verifies the missing-goal path.
*/
func TestUpdateProgress_UnknownGoal(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.UpdateProgress(context.Background(), "user-1", "missing", 10)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
