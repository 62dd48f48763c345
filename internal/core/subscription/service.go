// Copyright (c) 2026 Fithub. All rights reserved.

package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fithub/fithub/internal/core/plan"
	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/dberr"
	"github.com/fithub/fithub/pkg/pagination"
	"github.com/fithub/fithub/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for plan subscriptions.
//
// It derives the access window and price from the plan at purchase time
// and implements [plan.SubscriptionChecker] for the teaser policy.
type Service struct {
	repository     Repository
	planRepository plan.Repository
	logger         *slog.Logger

	// now is the clock source, injectable for deterministic tests.
	now func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, planRepository plan.Repository, logger *slog.Logger) *Service {
	return &Service{
		repository:     repository,
		planRepository: planRepository,
		logger:         logger,
		now:            time.Now,
	}
}

/*
Subscribe purchases access to a plan for the authenticated user.

Description: Snapshots the plan's current price as the amount paid and
derives the access window from the plan's duration in days, starting
now. The storage layer's uniqueness constraint is the sole arbiter of
duplicate purchases; a second purchase surfaces as a conflict.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - *Subscription: The persisted subscription
  - error: apperr.Conflict on duplicate purchase, apperr.NotFound for
    missing or inactive plans
*/
func (service *Service) Subscribe(context context.Context, userID, planID string) (*Subscription, error) {

	target, err := service.planRepository.FindByID(context, planID)
	if err != nil {
		return nil, fmt.Errorf("subscription_service_plan_lookup_failed: %w", err)
	}

	// Business: Retired plans cannot be purchased
	if !target.IsActive {
		return nil, apperr.NotFound("Plan")
	}

	// Business: Trainers cannot purchase their own plans
	if target.TrainerID == userID {
		return nil, apperr.ValidationError("You cannot subscribe to your own plan")
	}

	start := service.now()
	subscription := &Subscription{
		ID:         uuid.New(),
		UserID:     userID,
		PlanID:     planID,
		AmountPaid: target.Price,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, target.DurationDays),
		CreatedAt:  start,
	}

	if err := service.repository.Create(context, subscription); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("You are already subscribed to this plan")
		}
		return nil, fmt.Errorf("subscription_service_create_failed: %w", err)
	}

	service.logger.Info("subscription_created",
		slog.String("subscription_id", subscription.ID),
		slog.String("user_id", userID),
		slog.String("plan_id", planID),
	)

	subscription.PlanTitle = target.Title
	subscription.PlanSlug = target.Slug
	subscription.TrainerHandle = target.TrainerHandle
	subscription.TrainerDisplayName = target.TrainerDisplayName

	return subscription, nil
}

/*
ListMine pages through the authenticated user's subscriptions with plan
and trainer details, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Subscription: Page of subscriptions
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListMine(context context.Context, userID string, params pagination.Params) ([]Subscription, int, error) {
	subscriptions, total, err := service.repository.ListByUser(context, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("subscription_service_list_mine_failed: %w", err)
	}
	return subscriptions, total, nil
}

/*
HasActive reports whether a user currently holds an open subscription
window for a plan.

Description: Implements [plan.SubscriptionChecker]. A missing
subscription answers false without error; the end date itself is
outside the window.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - bool: True when the window is still open
  - error: Retrieval failures
*/
func (service *Service) HasActive(context context.Context, userID, planID string) (bool, error) {
	subscription, err := service.repository.FindByUserAndPlan(context, userID, planID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("subscription_service_has_active_failed: %w", err)
	}

	return subscription.Active(service.now()), nil
}
