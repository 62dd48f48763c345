// Copyright (c) 2026 Fithub. All rights reserved.

package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/pkg/pagination"
)

// Handler implements the HTTP layer for the follow graph.
type Handler struct {
	followService *Service
}

// NewHandler constructs a new follow [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{followService: service}
}

// Routes returns a [chi.Router] configured with the follow endpoints.
// All endpoints require authentication; the follow edge is a directed
// user-to-trainer relation, so only user accounts may write edges.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listFollowed)
	router.Get("/{trainerID}", handler.isFollowing)

	router.Group(func(writes chi.Router) {
		writes.Use(middleware.RequireRole(sec.RoleUser))
		writes.Post("/{trainerID}", handler.follow)
		writes.Delete("/{trainerID}", handler.unfollow)
	})

	return router
}

/*
POST /api/v1/follows/{trainerID}.

Description: Follows a trainer. Idempotent; repeating the call leaves a
single follow edge.

Request:
  - trainerID: string (UUID)

Response:
  - 204: No Content: Edge present
  - 400: ErrValidation: Target is not a trainer or is the caller
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: User role required
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trainerID := requestutil.Param(request, "trainerID")
	if trainerID == "" {
		respond.Error(writer, request, apperr.NotFound("Trainer"))
		return
	}

	if err := handler.followService.Follow(request.Context(), accountID, trainerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/follows/{trainerID}.

Description: Unfollows a trainer. Idempotent; unfollowing an absent
edge still answers 204.

Request:
  - trainerID: string (UUID)

Response:
  - 204: No Content: Edge absent
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: User role required
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trainerID := requestutil.Param(request, "trainerID")
	if trainerID == "" {
		respond.Error(writer, request, apperr.NotFound("Trainer"))
		return
	}

	if err := handler.followService.Unfollow(request.Context(), accountID, trainerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// followStateResponse carries the follow-state payload.
type followStateResponse struct {
	Following bool `json:"following"`
}

/*
GET /api/v1/follows/{trainerID}.

Description: Reports whether the authenticated user follows the trainer.

Request:
  - trainerID: string (UUID)

Response:
  - 200: followStateResponse: Current follow state
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) isFollowing(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trainerID := requestutil.Param(request, "trainerID")
	if trainerID == "" {
		respond.Error(writer, request, apperr.NotFound("Trainer"))
		return
	}

	following, err := handler.followService.IsFollowing(request.Context(), accountID, trainerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, followStateResponse{Following: following})
}

/*
GET /api/v1/follows.

Description: Pages through the trainers the authenticated user follows,
most recently followed first.

Response:
  - 200: []FollowedTrainer: Paginated followed trainers
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listFollowed(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	trainers, total, err := handler.followService.ListFollowed(request.Context(), accountID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, trainers, pagination.NewMeta(params.Page, params.Limit, total))
}
