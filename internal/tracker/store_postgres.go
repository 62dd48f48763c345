// Copyright (c) 2026 Fithub. All rights reserved.

package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/dberr"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Workout Repository

// PostgresWorkoutRepository implements [WorkoutRepository] using pgx.
type PostgresWorkoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository creates a new PostgreSQL implementation of [WorkoutRepository].
func NewWorkoutRepository(pool *pgxpool.Pool) *PostgresWorkoutRepository {
	return &PostgresWorkoutRepository{pool: pool}
}

/*
Create persists a new workout row.

Parameters:
  - context: context.Context
  - workout: *Workout

Returns:
  - error: Constraint or storage failures
*/
func (repository *PostgresWorkoutRepository) Create(context context.Context, workout *Workout) error {
	const query = `
		INSERT INTO tracker.workout
			(id, userid, name, durationminutes, caloriesburned, workoutdate, notes, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := repository.pool.Exec(context, query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.DurationMinutes,
		workout.CaloriesBurned,
		workout.WorkoutDate,
		workout.Notes,
		workout.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "workout_create")
	}

	return nil
}

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
func (repository *PostgresWorkoutRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]Workout, int, error) {
	const query = `
		SELECT id, userid, name, durationminutes, caloriesburned, workoutdate, notes, createdat
		FROM tracker.workout
		WHERE userid = $1
		ORDER BY workoutdate DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_workout_repo_list_failed: %w", err)
	}
	defer rows.Close()

	workouts := make([]Workout, 0, params.Limit)
	for rows.Next() {
		workout := Workout{}
		if err := rows.Scan(
			&workout.ID,
			&workout.UserID,
			&workout.Name,
			&workout.DurationMinutes,
			&workout.CaloriesBurned,
			&workout.WorkoutDate,
			&workout.Notes,
			&workout.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_workout_repo_scan_failed: %w", err)
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_workout_repo_list_rows_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM tracker.workout WHERE userid = $1"
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_workout_repo_count_failed: %w", err)
	}

	return workouts, total, nil
}

// # Goal Repository

// PostgresGoalRepository implements [GoalRepository] using pgx.
type PostgresGoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new PostgreSQL implementation of [GoalRepository].
func NewGoalRepository(pool *pgxpool.Pool) *PostgresGoalRepository {
	return &PostgresGoalRepository{pool: pool}
}

/*
Create persists a new goal row.

Parameters:
  - context: context.Context
  - goal: *Goal

Returns:
  - error: Constraint or storage failures
*/
func (repository *PostgresGoalRepository) Create(context context.Context, goal *Goal) error {
	const query = `
		INSERT INTO tracker.goal
			(id, userid, goaltype, targetvalue, currentvalue, deadline, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := repository.pool.Exec(context, query,
		goal.ID,
		goal.UserID,
		goal.GoalType,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Deadline,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "goal_create")
	}

	return nil
}

/*
FindByID retrieves a goal by its identifier.

Parameters:
  - context: context.Context
  - goalID: string

Returns:
  - *Goal: Hydrated goal
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresGoalRepository) FindByID(context context.Context, goalID string) (*Goal, error) {
	const query = `
		SELECT id, userid, goaltype, targetvalue, currentvalue, deadline, status, createdat, updatedat
		FROM tracker.goal
		WHERE id = $1`

	goal := &Goal{}
	err := repository.pool.QueryRow(context, query, goalID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.GoalType,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.Deadline,
		&goal.Status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Goal")
		}
		return nil, fmt.Errorf("postgres_goal_repo_find_failed: %w", err)
	}

	return goal, nil
}

/*
Update persists changes to the mutable goal fields.

Parameters:
  - context: context.Context
  - goal: *Goal

Returns:
  - error: apperr.NotFound if no row matched, or storage failures
*/
func (repository *PostgresGoalRepository) Update(context context.Context, goal *Goal) error {
	const query = `
		UPDATE tracker.goal
		SET currentvalue = $2, status = $3, updatedat = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		goal.ID,
		goal.CurrentValue,
		goal.Status,
		goal.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "goal_update")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Goal")
	}

	return nil
}

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
func (repository *PostgresGoalRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]Goal, int, error) {
	const query = `
		SELECT id, userid, goaltype, targetvalue, currentvalue, deadline, status, createdat, updatedat
		FROM tracker.goal
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_goal_repo_list_failed: %w", err)
	}
	defer rows.Close()

	goals := make([]Goal, 0, params.Limit)
	for rows.Next() {
		goal := Goal{}
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.GoalType,
			&goal.TargetValue,
			&goal.CurrentValue,
			&goal.Deadline,
			&goal.Status,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_goal_repo_scan_failed: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_goal_repo_list_rows_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM tracker.goal WHERE userid = $1"
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_goal_repo_count_failed: %w", err)
	}

	return goals, total, nil
}
