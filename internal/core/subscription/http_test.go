// Copyright (c) 2026 Fithub. All rights reserved.

package subscription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/core/plan"
	"github.com/fithub/fithub/internal/platform/ctxkey"
	"github.com/fithub/fithub/internal/platform/sec"
)

// # Helpers

// serveAs runs a request against the subscription routes with the given
// identity attached to the context, mirroring the authentication middleware.
func serveAs(t *testing.T, handler *Handler, identity *sec.Identity, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if identity != nil {
		request = request.WithContext(context.WithValue(request.Context(), ctxkey.KeyIdentity, identity))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

// # Tests

/*
TestRoutes_PurchaseIsUserOnly verifies that a subscription links a user
account to a plan: trainer accounts cannot purchase, user accounts can.
*/
func TestRoutes_PurchaseIsUserOnly(t *testing.T) {
	service, repository, planRepository := newTestService()
	handler := NewHandler(service)

	const planID = "0195c9a4-7c1e-7b6a-8f4d-2a9e61c0d377"
	planRepository.plans[planID] = &plan.Plan{
		ID:           planID,
		TrainerID:    "trainer-1",
		Title:        "Mobility Reset",
		Slug:         "mobility-reset",
		Price:        29.99,
		DurationDays: 28,
		IsActive:     true,
	}

	trainer := &sec.Identity{AccountID: "trainer-2", Handle: "coach", Role: sec.RoleTrainer}
	user := &sec.Identity{AccountID: "user-1", Handle: "member", Role: sec.RoleUser}
	body := `{"plan_id": "` + planID + `"}`

	// 1. Trainer purchases are rejected before the service runs
	recorder := serveAs(t, handler, trainer, http.MethodPost, "/", body)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Empty(t, repository.rows)

	// 2. User purchases pass the role gate
	recorder = serveAs(t, handler, user, http.MethodPost, "/", body)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Len(t, repository.rows, 1)

	// 3. Anonymous purchases are unauthorized
	recorder = serveAs(t, handler, nil, http.MethodPost, "/", body)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRoutes_ListStaysAuthOnly verifies the listing endpoint accepts any
authenticated account.
*/
func TestRoutes_ListStaysAuthOnly(t *testing.T) {
	service, _, _ := newTestService()
	handler := NewHandler(service)

	trainer := &sec.Identity{AccountID: "trainer-2", Handle: "coach", Role: sec.RoleTrainer}

	recorder := serveAs(t, handler, trainer, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serveAs(t, handler, nil, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
