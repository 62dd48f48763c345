// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package tracker records personal training activity and goals.

Users log completed workouts and maintain measurable goals (weight,
body fat, lift targets). Goal progress updates are owner-checked and
a goal completes automatically once its target is reached.
*/
package tracker

import (
	"context"
	"time"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Domain Enums

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	// GoalStatusActive indicates the goal is still being pursued.
	GoalStatusActive GoalStatus = "active"

	// GoalStatusCompleted indicates the target value has been reached.
	GoalStatusCompleted GoalStatus = "completed"

	// GoalStatusAbandoned indicates the user gave up on the goal.
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// IsValid reports whether s is a recognised [GoalStatus] value.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusAbandoned:
		return true
	}
	return false
}

// # Domain Entities

// Workout represents a single logged training session.
type Workout struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  int       `json:"calories_burned"`
	WorkoutDate     time.Time `json:"workout_date"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Goal represents a measurable target the user works toward.
type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	GoalType     string     `json:"goal_type"` // e.g. "weight", "body_fat", "bench_press"
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       GoalStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// # Repository Contracts

// WorkoutRepository defines the persistence contract for workout logs.
type WorkoutRepository interface {
	/*
		Create persists a new workout row.

		Parameters:
		  - context: context.Context
		  - workout: *Workout

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, workout *Workout) error

	/*
		ListByUser pages through a user's workouts, newest session first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []Workout: Page of workouts
		  - int: Total count
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]Workout, int, error)
}

// GoalRepository defines the persistence contract for goals.
type GoalRepository interface {
	/*
		Create persists a new goal row.

		Parameters:
		  - context: context.Context
		  - goal: *Goal

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, goal *Goal) error

	/*
		FindByID retrieves a goal by its identifier.

		Parameters:
		  - context: context.Context
		  - goalID: string

		Returns:
		  - *Goal: Hydrated goal
		  - error: apperr.NotFound if not present
	*/
	FindByID(context context.Context, goalID string) (*Goal, error)

	/*
		Update persists changes to the mutable goal fields.

		Parameters:
		  - context: context.Context
		  - goal: *Goal

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, goal *Goal) error

	/*
		ListByUser pages through a user's goals, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []Goal: Page of goals
		  - int: Total count
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]Goal, int, error)
}
