// Copyright (c) 2026 Fithub. All rights reserved.

package tracker

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/validate"
	"github.com/fithub/fithub/pkg/pagination"
)

// Handler implements the HTTP layer for workout logs and goals.
type Handler struct {
	trackerService *Service
}

// NewHandler constructs a new tracker [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{trackerService: service}
}

// WorkoutRoutes returns a [chi.Router] for workout logging.
// All endpoints require authentication.
func (handler *Handler) WorkoutRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.logWorkout)
	router.Get("/", handler.listWorkouts)

	return router
}

// GoalRoutes returns a [chi.Router] for goal tracking.
// All endpoints require authentication.
func (handler *Handler) GoalRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.addGoal)
	router.Get("/", handler.listGoals)
	router.Patch("/{goalID}/progress", handler.updateProgress)

	return router
}

// # Workout Endpoints

// logWorkoutRequest defines the expected JSON payload for logging a session.
type logWorkoutRequest struct {
	Name            string     `json:"name"`
	DurationMinutes int        `json:"duration_minutes"`
	CaloriesBurned  int        `json:"calories_burned"`
	WorkoutDate     *time.Time `json:"workout_date"`
	Notes           string     `json:"notes"`
}

/*
POST /api/v1/workouts.

Description: Logs a completed training session for the authenticated
user. The session date defaults to now when omitted.

Request:
  - body: logWorkoutRequest

Response:
  - 201: Workout: The persisted workout
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logWorkout(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input logWorkoutRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 150).
		Min("duration_minutes", input.DurationMinutes, 1).
		Custom("calories_burned", input.CaloriesBurned < 0, "must not be negative").
		MaxLen("notes", input.Notes, 2000)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	logInput := LogWorkoutInput{
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
		Notes:           input.Notes,
	}
	if input.WorkoutDate != nil {
		logInput.WorkoutDate = *input.WorkoutDate
	}

	workout, err := handler.trackerService.LogWorkout(request.Context(), accountID, logInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, workout)
}

/*
GET /api/v1/workouts.

Description: Pages through the authenticated user's logged sessions,
newest first.

Response:
  - 200: []Workout: Paginated workouts
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listWorkouts(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	workouts, total, err := handler.trackerService.ListWorkouts(request.Context(), accountID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, workouts, pagination.NewMeta(params.Page, params.Limit, total))
}

// # Goal Endpoints

// addGoalRequest defines the expected JSON payload for creating a goal.
type addGoalRequest struct {
	GoalType     string     `json:"goal_type"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Deadline     *time.Time `json:"deadline"`
}

/*
POST /api/v1/goals.

Description: Creates a measurable goal for the authenticated user.

Request:
  - body: addGoalRequest

Response:
  - 201: Goal: The persisted goal
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) addGoal(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addGoalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("goal_type", input.GoalType).
		MaxLen("goal_type", input.GoalType, 50).
		NonNegative("target_value", input.TargetValue).
		NonNegative("current_value", input.CurrentValue)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	goal, err := handler.trackerService.AddGoal(request.Context(), accountID, AddGoalInput{
		GoalType:     input.GoalType,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		Deadline:     input.Deadline,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, goal)
}

/*
GET /api/v1/goals.

Description: Pages through the authenticated user's goals, newest first.

Response:
  - 200: []Goal: Paginated goals
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listGoals(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	goals, total, err := handler.trackerService.ListGoals(request.Context(), accountID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, goals, pagination.NewMeta(params.Page, params.Limit, total))
}

// updateProgressRequest defines the expected JSON payload for progress updates.
type updateProgressRequest struct {
	CurrentValue float64 `json:"current_value"`
}

/*
PATCH /api/v1/goals/{goalID}/progress.

Description: Records a new current value for a goal owned by the
authenticated user. Reaching the target completes the goal.

Request:
  - goalID: string (UUID)
  - body: updateProgressRequest

Response:
  - 200: Goal: The updated goal
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Not the goal owner
  - 404: ErrNotFound: Goal not found
*/
func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	goalID := requestutil.Param(request, "goalID")
	if goalID == "" {
		respond.Error(writer, request, apperr.NotFound("Goal"))
		return
	}

	var input updateProgressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.NonNegative("current_value", input.CurrentValue)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	goal, err := handler.trackerService.UpdateProgress(request.Context(), accountID, goalID, input.CurrentValue)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, goal)
}
