// Copyright (c) 2026 Fithub. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Fithub API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/ctxkey"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/sec"
)

// TokenValidator defines the interface needed to resolve session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenValidator here decouples the middleware from the `auth` service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenValidator interface {
	ValidateToken(ctx context.Context, rawToken string) (*sec.Identity, error)
}

// Authenticate extracts and resolves the opaque session token from the
// Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token against server-side session state.
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// # Parameters
//   - validator: The TokenValidator instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Resolution ───────────────────────────────────────────
			rawToken := parts[1]
			identity, err := validator.ValidateToken(request.Context(), rawToken)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyIdentity, identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated account doesn't hold the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Check if the account's role matches the required role.
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.AccountRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if identity.Role != role {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetIdentity retrieves the [*sec.Identity] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.Identity] if the account is authenticated.
//   - nil if the request is anonymous.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(*sec.Identity)
	if !ok {
		return nil
	}
	return identity
}
