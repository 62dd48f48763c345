// Copyright (c) 2026 Fithub. All rights reserved.

/*
HTTP delivery layer for account identity management.

It implements the gateway for the authentication lifecycle, from account
creation to session rotation and revocation.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Opaque bearer tokens resolved against server-side session state.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the account lifecycle entry points
// (Signup, Login, Session rotation, Logout).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup  : Creates a new account.
//   - POST /login   : Authenticates and returns a session token.
//   - POST /refresh : Rotates an active session token.
//   - POST /logout  : Revokes the presented session token.
//   - GET  /me      : Returns the authenticated account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	Handle      string `json:"handle"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// sessionResponse is the transport shape of a freshly issued session.
type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in"`
	Account   *Account  `json:"account"`
}

func newSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		ExpiresIn: int64(SessionTokenTTL / time.Second),
		Account:   session.Account,
	}
}

/*
Signup handles the creation of a new account.

POST /api/v1/auth/signup

Description: Validates input, persists a new account, and relies on the
storage unique index for handle conflicts.

Request:
  - Body: signupRequest (Handle, Password, DisplayName, Email, Mobile, Role)

Response:
  - 201: Account: Created account profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Handle already exists
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldHandle, input.Handle).
		MinLen(FieldHandle, input.Handle, MinHandleLength).
		MaxLen(FieldHandle, input.Handle, MaxHandleLength).
		Handle(FieldHandle, input.Handle).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldDisplayName, input.DisplayName).
		OneOf(FieldRole, input.Role, string(sec.RoleUser), string(sec.RoleTrainer))

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.Signup(request.Context(), SignupInput{
		Handle:      input.Handle,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Mobile:      input.Mobile,
		Role:        sec.AccountRole(input.Role),
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

/*
Login authenticates an account and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials and issues a fresh opaque session token
with a seven-day validity window.

Request:
  - Body: loginRequest (Handle, Password)

Response:
  - 200: sessionResponse: Session token and account profile
  - 401: ErrUnauthorized: Invalid credentials (generic for unknown handle and wrong password)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldHandle, input.Handle)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Handle:   input.Handle,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
Refresh rotates an active session token.

POST /api/v1/auth/refresh

Description: Validates the presented bearer token, revokes it, and issues
a fresh token with a new seven-day window. Expired tokens are rejected.

Response:
  - 200: sessionResponse: New session credentials
  - 401: ErrUnauthorized: Missing, unknown, or expired token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	rawToken := requestutil.BearerToken(request)
	if rawToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing bearer token"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), rawToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

/*
Logout terminates the presented session.

POST /api/v1/auth/logout

Description: Revokes the bearer token so it can never be used again.
Revoking an unknown token still succeeds (idempotent).

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	rawToken := requestutil.BearerToken(request)

	if rawToken != "" {
		if err := handler.authService.Logout(request.Context(), rawToken); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.NoContent(writer)
}

/*
Me returns the authenticated account's profile.

GET /api/v1/auth/me

Response:
  - 200: Account: Current account profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.Me(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}
