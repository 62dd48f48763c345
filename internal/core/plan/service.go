// Copyright (c) 2026 Fithub. All rights reserved.

package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/sec"
	"github.com/fithub/fithub/pkg/pagination"
	"github.com/fithub/fithub/pkg/slug"
	"github.com/fithub/fithub/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for the coaching catalogue.
//
// It enforces plan ownership on mutations and applies the teaser access
// policy when plans are read.
type Service struct {
	repository    Repository
	subscriptions SubscriptionChecker
	logger        *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, subscriptions SubscriptionChecker, logger *slog.Logger) *Service {
	return &Service{
		repository:    repository,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// # Plan Authoring

// CreateInput defines the fields required to publish a new plan.
type CreateInput struct {
	Title        string
	Description  string
	Price        float64
	DurationDays int
	Difficulty   Difficulty
	Category     string
}

/*
Create publishes a new workout plan authored by a trainer.

Description: Generates the plan identity and a URL-safe slug from the title,
then persists the row. New plans are active immediately.

Parameters:
  - context: context.Context
  - trainerID: string
  - input: CreateInput

Returns:
  - *Plan: The persisted plan
  - error: Validation or storage failures
*/
func (service *Service) Create(context context.Context, trainerID string, input CreateInput) (*Plan, error) {

	if !input.Difficulty.IsValid() {
		return nil, apperr.ValidationError("Invalid difficulty level")
	}

	now := time.Now()
	plan := &Plan{
		ID:           uuid.New(),
		TrainerID:    trainerID,
		Title:        input.Title,
		Slug:         slug.From(input.Title),
		Description:  input.Description,
		Price:        input.Price,
		DurationDays: input.DurationDays,
		Difficulty:   input.Difficulty,
		Category:     input.Category,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repository.Create(context, plan); err != nil {
		return nil, fmt.Errorf("plan_service_create_failed: %w", err)
	}

	service.logger.Info("plan_created",
		slog.String("plan_id", plan.ID),
		slog.String("trainer_id", trainerID),
	)

	return plan, nil
}

// UpdateInput defines the mutable subset of plan fields.
type UpdateInput struct {
	Title        *string
	Description  *string
	Price        *float64
	DurationDays *int
	Difficulty   *Difficulty
	Category     *string
	IsActive     *bool
}

/*
Update applies a partial set of changes to a plan owned by the caller.

Description: Fetches the current state, verifies ownership, overrides
provided fields, and persists the result. A title change regenerates
the slug.

Parameters:
  - context: context.Context
  - trainerID: string (The authenticated caller)
  - planID: string
  - input: UpdateInput

Returns:
  - *Plan: The updated plan
  - error: apperr.Forbidden when the caller is not the author
*/
func (service *Service) Update(context context.Context, trainerID, planID string, input UpdateInput) (*Plan, error) {

	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return nil, fmt.Errorf("plan_service_update_lookup_failed: %w", err)
	}

	// Business: Only the authoring trainer may mutate a plan
	if plan.TrainerID != trainerID {
		return nil, apperr.Forbidden("You do not own this plan")
	}

	// Apply delta updates; a title change regenerates the slug
	if input.Title != nil {
		plan.Title = *input.Title
		plan.Slug = slug.From(*input.Title)
	}

	if input.Description != nil {
		plan.Description = *input.Description
	}

	if input.Price != nil {
		plan.Price = *input.Price
	}

	if input.DurationDays != nil {
		plan.DurationDays = *input.DurationDays
	}

	if input.Difficulty != nil {
		if !input.Difficulty.IsValid() {
			return nil, apperr.ValidationError("Invalid difficulty level")
		}
		plan.Difficulty = *input.Difficulty
	}

	if input.Category != nil {
		plan.Category = *input.Category
	}

	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	// Persist changes
	if err := service.repository.Update(context, plan); err != nil {
		return nil, fmt.Errorf("plan_service_update_failed: %w", err)
	}

	service.logger.Info("plan_updated", slog.String("plan_id", planID))

	return plan, nil
}

/*
Delete removes a plan owned by the caller.

Parameters:
  - context: context.Context
  - trainerID: string (The authenticated caller)
  - planID: string

Returns:
  - error: apperr.Forbidden when the caller is not the author
*/
func (service *Service) Delete(context context.Context, trainerID, planID string) error {

	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return fmt.Errorf("plan_service_delete_lookup_failed: %w", err)
	}

	// Business: Only the authoring trainer may mutate a plan
	if plan.TrainerID != trainerID {
		return apperr.Forbidden("You do not own this plan")
	}

	if err := service.repository.Delete(context, planID); err != nil {
		return fmt.Errorf("plan_service_delete_failed: %w", err)
	}

	service.logger.Warn("plan_deleted",
		slog.String("plan_id", planID),
		slog.String("trainer_id", trainerID),
	)

	return nil
}

/*
ListMine pages through all plans authored by the caller, inactive included.

Parameters:
  - context: context.Context
  - trainerID: string
  - params: pagination.Params

Returns:
  - []Plan: Page of plans with full fields
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListMine(context context.Context, trainerID string, params pagination.Params) ([]Plan, int, error) {
	plans, total, err := service.repository.ListByTrainer(context, trainerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("plan_service_list_mine_failed: %w", err)
	}
	return plans, total, nil
}

// # Catalogue Access

/*
Get retrieves a single plan filtered through the teaser access policy.

Description: Resolves the viewer's subscription state, then renders the
plan. Authors and active subscribers receive the full description;
everyone else gets the teaser fields only.

Parameters:
  - context: context.Context
  - planID: string
  - viewer: *sec.Identity (nil for anonymous requests)

Returns:
  - *View: The access-filtered plan
  - error: Not found or retrieval failures
*/
func (service *Service) Get(context context.Context, planID string, viewer *sec.Identity) (*View, error) {

	plan, err := service.repository.FindByID(context, planID)
	if err != nil {
		return nil, fmt.Errorf("plan_service_get_failed: %w", err)
	}

	subscribed := false
	if viewer != nil && viewer.AccountID != plan.TrainerID {
		subscribed, err = service.subscriptions.HasActive(context, viewer.AccountID, planID)
		if err != nil {
			return nil, fmt.Errorf("plan_service_subscription_check_failed: %w", err)
		}
	}

	view := Render(plan, viewer, subscribed)
	return &view, nil
}

/*
Browse pages through the active catalogue matching the filter.

Description: List results are always rendered as teasers for
non-authors. The per-plan subscription check happens only on the
detail endpoint to keep catalogue queries cheap.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params
  - viewer: *sec.Identity (nil for anonymous requests)

Returns:
  - []View: Page of access-filtered plans
  - int: Total match count
  - error: Retrieval failures
*/
func (service *Service) Browse(context context.Context, filter Filter, params pagination.Params, viewer *sec.Identity) ([]View, int, error) {

	plans, total, err := service.repository.Browse(context, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("plan_service_browse_failed: %w", err)
	}

	views := make([]View, 0, len(plans))
	for i := range plans {
		views = append(views, Render(&plans[i], viewer, false))
	}

	return views, total, nil
}

/*
Feed pages through active plans from trainers the user follows.

Description: Each feed entry carries the viewer's real access state so
purchased plans surface with their full content.

Parameters:
  - context: context.Context
  - viewer: *sec.Identity
  - params: pagination.Params

Returns:
  - []View: Page of access-filtered feed plans
  - int: Total feed count
  - error: Retrieval failures
*/
func (service *Service) Feed(context context.Context, viewer *sec.Identity, params pagination.Params) ([]View, int, error) {

	plans, total, err := service.repository.Feed(context, viewer.AccountID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("plan_service_feed_failed: %w", err)
	}

	views := make([]View, 0, len(plans))
	for i := range plans {
		subscribed, err := service.subscriptions.HasActive(context, viewer.AccountID, plans[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("plan_service_feed_subscription_check_failed: %w", err)
		}
		views = append(views, Render(&plans[i], viewer, subscribed))
	}

	return views, total, nil
}
