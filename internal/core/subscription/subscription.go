// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package subscription manages paid access to workout plans.

It records which users purchased which plans, derives the access window
from the plan's duration, and answers the active-subscription checks the
catalogue's teaser policy depends on.

Core Responsibility:

  - Purchase: Records the amount paid and the derived access window.
  - Uniqueness: One subscription row per (user, plan) pair.
  - Access: Reports whether a subscription window is still open.
*/
package subscription

import (
	"context"
	"time"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Domain Entities

// Subscription represents a user's purchased access to a plan.
type Subscription struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PlanID     string    `json:"plan_id"`
	AmountPaid float64   `json:"amount_paid"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`

	// Denormalized plan fields for subscription listings.
	PlanTitle          string `json:"plan_title,omitempty"`
	PlanSlug           string `json:"plan_slug,omitempty"`
	TrainerHandle      string `json:"trainer_handle,omitempty"`
	TrainerDisplayName string `json:"trainer_display_name,omitempty"`
}

// Active reports whether the subscription window is still open at the
// given instant. The end date itself is outside the window.
func (s *Subscription) Active(at time.Time) bool {
	return at.Before(s.EndDate)
}

// # Repository Contract

// Repository defines the persistence contract for subscriptions.
type Repository interface {
	/*
		Create persists a new subscription row.

		Description: The storage layer enforces one row per (user, plan)
		pair; a duplicate purchase surfaces as a unique violation.

		Parameters:
		  - context: context.Context
		  - subscription: *Subscription

		Returns:
		  - error: Unique violation or storage failures
	*/
	Create(context context.Context, subscription *Subscription) error

	/*
		FindByUserAndPlan retrieves the subscription a user holds for a plan.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - planID: string

		Returns:
		  - *Subscription: Hydrated subscription
		  - error: apperr.NotFound if not present
	*/
	FindByUserAndPlan(context context.Context, userID, planID string) (*Subscription, error)

	/*
		ListByUser pages through a user's subscriptions with denormalized
		plan details, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []Subscription: Page of subscriptions
		  - int: Total count
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]Subscription, int, error)
}
