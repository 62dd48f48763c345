// Copyright (c) 2026 Fithub. All rights reserved.

package plan

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/internal/platform/validate"
	"github.com/fithub/fithub/pkg/pagination"
)

// Handler implements the HTTP layer for the coaching catalogue.
type Handler struct {
	planService *Service
}

// NewHandler constructs a new plan [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{planService: service}
}

// Routes returns a [chi.Router] configured with the plan domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public Catalogue
	router.Get("/", handler.browse)
	router.Get("/{planID}", handler.getPlan)

	// Personalised Feed
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/feed", handler.feed)
	})

	// Trainer Authoring
	router.Group(func(authoring chi.Router) {
		authoring.Use(middleware.RequireRole(sec.RoleTrainer))
		authoring.Post("/", handler.createPlan)
		authoring.Get("/mine", handler.listMine)
		authoring.Put("/{planID}", handler.updatePlan)
		authoring.Delete("/{planID}", handler.deletePlan)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/plans.

Description: Pages through the active catalogue. Filters are optional
query parameters; results are rendered through the teaser policy.

Request:
  - category: string (Query, optional)
  - difficulty: string (Query, optional)
  - trainer_id: string (Query, optional)
  - max_price: float (Query, optional)
  - q: string (Query, optional title search)

Response:
  - 200: []View: Paginated access-filtered plans
*/
func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := filterFromRequest(request)

	views, total, err := handler.planService.Browse(request.Context(), filter, params, requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, views, pagination.NewMeta(params.Page, params.Limit, total))
}

// filterFromRequest parses the optional browse filters from the query string.
func filterFromRequest(request *http.Request) Filter {
	query := request.URL.Query()

	filter := Filter{
		Category:   query.Get("category"),
		Difficulty: Difficulty(query.Get("difficulty")),
		TrainerID:  query.Get("trainer_id"),
		Query:      query.Get("q"),
	}

	if raw := query.Get("max_price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil && price >= 0 {
			filter.MaxPrice = &price
		}
	}

	return filter
}

/*
GET /api/v1/plans/{planID}.

Description: Retrieves a single plan through the teaser policy. The
description is present only for the author or an active subscriber.

Request:
  - planID: string (UUID)

Response:
  - 200: View: Access-filtered plan
  - 404: ErrNotFound: Plan not found
*/
func (handler *Handler) getPlan(writer http.ResponseWriter, request *http.Request) {
	planID := requestutil.Param(request, "planID")
	if planID == "" {
		respond.Error(writer, request, apperr.NotFound("Plan"))
		return
	}

	view, err := handler.planService.Get(request.Context(), planID, requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
GET /api/v1/plans/feed.

Description: Pages through active plans from trainers the authenticated
user follows, newest first, with real access state per entry.

Response:
  - 200: []View: Paginated feed
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	views, total, err := handler.planService.Feed(request.Context(), identity, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, views, pagination.NewMeta(params.Page, params.Limit, total))
}

// # Authoring Endpoints

// createPlanRequest defines the expected JSON payload for plan creation.
type createPlanRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Difficulty   string  `json:"difficulty"`
	Category     string  `json:"category"`
}

/*
POST /api/v1/plans.

Description: Publishes a new workout plan authored by the authenticated
trainer.

Request:
  - body: createPlanRequest

Response:
  - 201: Plan: The persisted plan
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Trainer role required
*/
func (handler *Handler) createPlan(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPlanRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 150).
		MaxLen(FieldDescription, input.Description, 5000).
		NonNegative(FieldPrice, input.Price).
		Min(FieldDurationDays, input.DurationDays, 1).
		Required(FieldCategory, input.Category).
		MaxLen(FieldCategory, input.Category, 50).
		OneOf(FieldDifficulty, input.Difficulty,
			string(DifficultyBeginner), string(DifficultyIntermediate), string(DifficultyAdvanced))

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, err := handler.planService.Create(request.Context(), identity.AccountID, CreateInput{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		DurationDays: input.DurationDays,
		Difficulty:   Difficulty(input.Difficulty),
		Category:     input.Category,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, plan)
}

/*
GET /api/v1/plans/mine.

Description: Pages through all plans authored by the authenticated
trainer, inactive included, with full fields.

Response:
  - 200: []Plan: Paginated authored plans
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Trainer role required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	plans, total, err := handler.planService.ListMine(request.Context(), identity.AccountID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, plans, pagination.NewMeta(params.Page, params.Limit, total))
}

// updatePlanRequest defines the expected JSON payload for plan updates.
type updatePlanRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	DurationDays *int     `json:"duration_days"`
	Difficulty   *string  `json:"difficulty"`
	Category     *string  `json:"category"`
	IsActive     *bool    `json:"is_active"`
}

/*
PUT /api/v1/plans/{planID}.

Description: Applies partial updates to a plan owned by the
authenticated trainer.

Request:
  - planID: string (UUID)
  - body: updatePlanRequest (Partial JSON)

Response:
  - 200: Plan: The updated plan
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Not the plan author
  - 404: ErrNotFound: Plan not found
*/
func (handler *Handler) updatePlan(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	planID := requestutil.Param(request, "planID")
	if planID == "" {
		respond.Error(writer, request, apperr.NotFound("Plan"))
		return
	}

	var input updatePlanRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 150)
	}
	if input.Description != nil {
		v.MaxLen(FieldDescription, *input.Description, 5000)
	}
	if input.Price != nil {
		v.NonNegative(FieldPrice, *input.Price)
	}
	if input.DurationDays != nil {
		v.Min(FieldDurationDays, *input.DurationDays, 1)
	}
	if input.Difficulty != nil {
		v.OneOf(FieldDifficulty, *input.Difficulty,
			string(DifficultyBeginner), string(DifficultyIntermediate), string(DifficultyAdvanced))
	}
	if input.Category != nil {
		v.Required(FieldCategory, *input.Category).MaxLen(FieldCategory, *input.Category, 50)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updateInput := UpdateInput{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		DurationDays: input.DurationDays,
		Category:     input.Category,
		IsActive:     input.IsActive,
	}
	if input.Difficulty != nil {
		difficulty := Difficulty(*input.Difficulty)
		updateInput.Difficulty = &difficulty
	}

	plan, err := handler.planService.Update(request.Context(), identity.AccountID, planID, updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, plan)
}

/*
DELETE /api/v1/plans/{planID}.

Description: Removes a plan owned by the authenticated trainer.

Request:
  - planID: string (UUID)

Response:
  - 204: No Content: Plan deleted successfully
  - 403: ErrForbidden: Not the plan author
  - 404: ErrNotFound: Plan not found
*/
func (handler *Handler) deletePlan(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	planID := requestutil.Param(request, "planID")
	if planID == "" {
		respond.Error(writer, request, apperr.NotFound("Plan"))
		return
	}

	if err := handler.planService.Delete(request.Context(), identity.AccountID, planID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
