// Copyright (c) 2026 Fithub. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/internal/platform/validate"
	"github.com/fithub/fithub/pkg/pagination"
)

// Handler implements the HTTP layer for trainer profiles and the directory.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// TrainerRoutes returns a [chi.Router] for the trainer catalogue and
// trainer self-service endpoints.
func (handler *Handler) TrainerRoutes() chi.Router {
	router := chi.NewRouter()

	// Public Trainer Catalogue
	router.Get("/", handler.listTrainers)
	router.Get("/{trainerID}", handler.getTrainer)

	// Trainer Self-Service
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleTrainer))
		protected.Put("/me/profile", handler.updateMyProfile)
		protected.Get("/me/followers/count", handler.countMyFollowers)
	})

	return router
}

// UserRoutes returns a [chi.Router] for the member directory.
// Browsing members is restricted to trainer accounts.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleTrainer))
		protected.Get("/", handler.listMembers)
	})

	return router
}

// # Trainer Catalogue Endpoints

/*
GET /api/v1/trainers.

Description: Pages through the public trainer catalogue, newest first.

Request:
  - page: int (Query, optional)
  - limit: int (Query, optional)

Response:
  - 200: []TrainerCard: Paginated trainer cards
*/
func (handler *Handler) listTrainers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	cards, total, err := handler.accountService.ListTrainers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/trainers/{trainerID}.

Description: Retrieves the public card of a single trainer, including
the follower count.

Request:
  - trainerID: string (UUID)

Response:
  - 200: TrainerCard: Public trainer view
  - 404: ErrNotFound: Trainer not found
*/
func (handler *Handler) getTrainer(writer http.ResponseWriter, request *http.Request) {
	trainerID := requestutil.Param(request, "trainerID")
	if trainerID == "" {
		respond.Error(writer, request, apperr.NotFound("Trainer"))
		return
	}

	card, err := handler.accountService.GetTrainer(request.Context(), trainerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, card)
}

// # Trainer Self-Service Endpoints

// updateProfileRequest defines the expected JSON payload for profile updates.
type updateProfileRequest struct {
	Specialization  *string `json:"specialization"`
	ExperienceYears *int    `json:"experience_years"`
	Bio             *string `json:"bio"`
}

/*
PUT /api/v1/trainers/me/profile.

Description: Applies partial updates to the authenticated trainer's
coaching profile.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: TrainerProfile: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Trainer role required
*/
func (handler *Handler) updateMyProfile(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Specialization != nil {
		v.MaxLen("specialization", *input.Specialization, 100)
	}
	if input.ExperienceYears != nil {
		v.Range("experience_years", *input.ExperienceYears, 0, 80)
	}
	if input.Bio != nil {
		v.MaxLen("bio", *input.Bio, 1000)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), identity.AccountID, UpdateProfileInput{
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		Bio:             input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// followerCountResponse carries the follower count payload.
type followerCountResponse struct {
	FollowerCount int `json:"follower_count"`
}

/*
GET /api/v1/trainers/me/followers/count.

Description: Returns the number of users following the authenticated trainer.

Response:
  - 200: followerCountResponse: Current follower count
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Trainer role required
*/
func (handler *Handler) countMyFollowers(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.accountService.CountFollowers(request.Context(), identity.AccountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, followerCountResponse{FollowerCount: count})
}

// # Member Directory Endpoints

/*
GET /api/v1/users.

Description: Pages through standard user accounts so trainers can find
potential clients.

Request:
  - page: int (Query, optional)
  - limit: int (Query, optional)

Response:
  - 200: []MemberInfo: Paginated member rows
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Trainer role required
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	members, total, err := handler.accountService.ListMembers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, pagination.NewMeta(params.Page, params.Limit, total))
}
