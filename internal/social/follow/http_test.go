// Copyright (c) 2026 Fithub. All rights reserved.

package follow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/platform/ctxkey"
	"github.com/fithub/fithub/internal/platform/sec"
)

// # Helpers

// serveAs runs a request against the follow routes with the given identity
// attached to the context, mirroring the authentication middleware.
func serveAs(t *testing.T, handler *Handler, identity *sec.Identity, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, nil)
	if identity != nil {
		request = request.WithContext(context.WithValue(request.Context(), ctxkey.KeyIdentity, identity))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

// # Tests

/*
TestRoutes_EdgeWritesAreUserOnly verifies that the follow edge stays a
directed user-to-trainer relation at the transport layer: trainer
accounts cannot create or remove edges, while user accounts can.
*/
func TestRoutes_EdgeWritesAreUserOnly(t *testing.T) {
	service, repository := newTestService()
	handler := NewHandler(service)

	trainer := &sec.Identity{AccountID: "trainer-2", Handle: "coach", Role: sec.RoleTrainer}
	user := &sec.Identity{AccountID: "user-1", Handle: "member", Role: sec.RoleUser}

	// 1. Trainer writes are rejected before the service runs
	recorder := serveAs(t, handler, trainer, http.MethodPost, "/trainer-1")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Empty(t, repository.edges)

	recorder = serveAs(t, handler, trainer, http.MethodDelete, "/trainer-1")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// 2. User writes pass the role gate
	recorder = serveAs(t, handler, user, http.MethodPost, "/trainer-1")
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Len(t, repository.edges, 1)

	recorder = serveAs(t, handler, user, http.MethodDelete, "/trainer-1")
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, repository.edges)
}

/*
TestRoutes_ReadsStayAuthOnly verifies the read endpoints accept any
authenticated account and reject anonymous requests.
*/
func TestRoutes_ReadsStayAuthOnly(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service)

	trainer := &sec.Identity{AccountID: "trainer-2", Handle: "coach", Role: sec.RoleTrainer}

	recorder := serveAs(t, handler, trainer, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serveAs(t, handler, trainer, http.MethodGet, "/trainer-1")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serveAs(t, handler, nil, http.MethodGet, "/")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serveAs(t, handler, nil, http.MethodPost, "/trainer-1")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
