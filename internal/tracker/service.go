// Copyright (c) 2026 Fithub. All rights reserved.

package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/pkg/pagination"
	"github.com/fithub/fithub/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for workout logs and goals.
type Service struct {
	workoutRepository WorkoutRepository
	goalRepository    GoalRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(workoutRepo WorkoutRepository, goalRepo GoalRepository, logger *slog.Logger) *Service {
	return &Service{
		workoutRepository: workoutRepo,
		goalRepository:    goalRepo,
		logger:            logger,
	}
}

// # Workout Logging

// LogWorkoutInput defines the fields for logging a completed session.
type LogWorkoutInput struct {
	Name            string
	DurationMinutes int
	CaloriesBurned  int
	WorkoutDate     time.Time
	Notes           string
}

/*
LogWorkout records a completed training session for the user.

Description: Sessions logged without an explicit date default to now.

Parameters:
  - context: context.Context
  - userID: string
  - input: LogWorkoutInput

Returns:
  - *Workout: The persisted workout
  - error: Storage failures
*/
func (service *Service) LogWorkout(context context.Context, userID string, input LogWorkoutInput) (*Workout, error) {

	workoutDate := input.WorkoutDate
	if workoutDate.IsZero() {
		workoutDate = time.Now()
	}

	workout := &Workout{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
		WorkoutDate:     workoutDate,
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
	}

	if err := service.workoutRepository.Create(context, workout); err != nil {
		return nil, fmt.Errorf("tracker_service_log_workout_failed: %w", err)
	}

	service.logger.Info("workout_logged",
		slog.String("workout_id", workout.ID),
		slog.String("user_id", userID),
	)

	return workout, nil
}

/*
ListWorkouts pages through the user's logged sessions, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Workout: Page of workouts
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListWorkouts(context context.Context, userID string, params pagination.Params) ([]Workout, int, error) {
	workouts, total, err := service.workoutRepository.ListByUser(context, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("tracker_service_list_workouts_failed: %w", err)
	}
	return workouts, total, nil
}

// # Goal Tracking

// AddGoalInput defines the fields for creating a goal.
type AddGoalInput struct {
	GoalType     string
	TargetValue  float64
	CurrentValue float64
	Deadline     *time.Time
}

/*
AddGoal creates a new measurable goal for the user.

Description: New goals start active; a goal whose starting value
already meets the target completes immediately.

Parameters:
  - context: context.Context
  - userID: string
  - input: AddGoalInput

Returns:
  - *Goal: The persisted goal
  - error: Storage failures
*/
func (service *Service) AddGoal(context context.Context, userID string, input AddGoalInput) (*Goal, error) {

	now := time.Now()
	goal := &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		GoalType:     input.GoalType,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Deadline:     input.Deadline,
		Status:       GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if goal.CurrentValue == goal.TargetValue {
		goal.Status = GoalStatusCompleted
	}

	if err := service.goalRepository.Create(context, goal); err != nil {
		return nil, fmt.Errorf("tracker_service_add_goal_failed: %w", err)
	}

	service.logger.Info("goal_added",
		slog.String("goal_id", goal.ID),
		slog.String("user_id", userID),
		slog.String("goal_type", input.GoalType),
	)

	return goal, nil
}

/*
ListGoals pages through the user's goals, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Goal: Page of goals
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListGoals(context context.Context, userID string, params pagination.Params) ([]Goal, int, error) {
	goals, total, err := service.goalRepository.ListByUser(context, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("tracker_service_list_goals_failed: %w", err)
	}
	return goals, total, nil
}

/*
UpdateProgress records a new current value for a goal owned by the caller.

Description: Reaching the target value completes the goal. Progress on
an abandoned goal is rejected.

Parameters:
  - context: context.Context
  - userID: string (The authenticated caller)
  - goalID: string
  - currentValue: float64

Returns:
  - *Goal: The updated goal
  - error: apperr.Forbidden when the caller does not own the goal
*/
func (service *Service) UpdateProgress(context context.Context, userID, goalID string, currentValue float64) (*Goal, error) {

	goal, err := service.goalRepository.FindByID(context, goalID)
	if err != nil {
		return nil, fmt.Errorf("tracker_service_progress_lookup_failed: %w", err)
	}

	// Business: Only the owner may record progress
	if goal.UserID != userID {
		return nil, apperr.Forbidden("You do not own this goal")
	}

	if goal.Status == GoalStatusAbandoned {
		return nil, apperr.ValidationError("Cannot update an abandoned goal")
	}

	previous := goal.CurrentValue
	goal.CurrentValue = currentValue
	goal.UpdatedAt = time.Now()
	if goal.Status == GoalStatusActive && reached(previous, currentValue, goal.TargetValue) {
		goal.Status = GoalStatusCompleted
	}

	if err := service.goalRepository.Update(context, goal); err != nil {
		return nil, fmt.Errorf("tracker_service_progress_update_failed: %w", err)
	}

	service.logger.Info("goal_progress_updated",
		slog.String("goal_id", goalID),
		slog.String("status", string(goal.Status)),
	)

	return goal, nil
}

// reached reports whether the value met or crossed the target between two
// progress points. Works for both directions: weight-loss goals approach
// the target from above, lift goals from below.
func reached(previous, current, target float64) bool {
	if previous <= target {
		return current >= target
	}
	return current <= target
}
