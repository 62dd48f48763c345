// Copyright (c) 2026 Fithub. All rights reserved.

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/internal/platform/validate"
	"github.com/fithub/fithub/pkg/pagination"
)

// Handler implements the HTTP layer for plan subscriptions.
type Handler struct {
	subscriptionService *Service
}

// NewHandler constructs a new subscription [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{subscriptionService: service}
}

// Routes returns a [chi.Router] configured with the subscription endpoints.
// All endpoints require authentication; a subscription links a user
// account to a plan, so only user accounts may purchase.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listMine)

	router.Group(func(purchases chi.Router) {
		purchases.Use(middleware.RequireRole(sec.RoleUser))
		purchases.Post("/", handler.subscribe)
	})

	return router
}

// subscribeRequest defines the expected JSON payload for a purchase.
type subscribeRequest struct {
	PlanID string `json:"plan_id"`
}

/*
POST /api/v1/subscriptions.

Description: Purchases access to a plan for the authenticated user. The
price and access window are derived from the plan at purchase time.

Request:
  - body: subscribeRequest

Response:
  - 201: Subscription: The persisted subscription
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: User role required
  - 404: ErrNotFound: Plan missing or inactive
  - 409: ErrConflict: Already subscribed to this plan
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input subscribeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("plan_id", input.PlanID).UUID("plan_id", input.PlanID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.subscriptionService.Subscribe(request.Context(), accountID, input.PlanID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, subscription)
}

/*
GET /api/v1/subscriptions.

Description: Pages through the authenticated user's subscriptions with
plan and trainer details, newest first.

Response:
  - 200: []Subscription: Paginated subscriptions
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	subscriptions, total, err := handler.subscriptionService.ListMine(request.Context(), accountID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, subscriptions, pagination.NewMeta(params.Page, params.Limit, total))
}
