// Copyright (c) 2026 Fithub. All rights reserved.

package plan

import (
	"context"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Repository Contracts

// Repository defines the persistence contract for workout plans.
type Repository interface {
	/*
		Create persists a new plan row.

		Parameters:
		  - context: context.Context
		  - plan: *Plan

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, plan *Plan) error

	/*
		FindByID retrieves a plan with its denormalized trainer fields.

		Parameters:
		  - context: context.Context
		  - planID: string

		Returns:
		  - *Plan: Hydrated plan
		  - error: apperr.NotFound if not present
	*/
	FindByID(context context.Context, planID string) (*Plan, error)

	/*
		Update persists changes to the mutable plan fields.

		Parameters:
		  - context: context.Context
		  - plan: *Plan

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, plan *Plan) error

	/*
		Delete removes a plan row permanently.

		Parameters:
		  - context: context.Context
		  - planID: string

		Returns:
		  - error: apperr.NotFound if no row matched
	*/
	Delete(context context.Context, planID string) error

	/*
		ListByTrainer pages through all plans authored by a trainer,
		including inactive ones.

		Parameters:
		  - context: context.Context
		  - trainerID: string
		  - params: pagination.Params

		Returns:
		  - []Plan: Page of plans
		  - int: Total count for the trainer
		  - error: Retrieval failures
	*/
	ListByTrainer(context context.Context, trainerID string, params pagination.Params) ([]Plan, int, error)

	/*
		Browse pages through active plans matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - params: pagination.Params

		Returns:
		  - []Plan: Page of matching plans
		  - int: Total match count
		  - error: Retrieval failures
	*/
	Browse(context context.Context, filter Filter, params pagination.Params) ([]Plan, int, error)

	/*
		Feed pages through active plans authored by trainers the user
		follows, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []Plan: Page of feed plans
		  - int: Total feed count
		  - error: Retrieval failures
	*/
	Feed(context context.Context, userID string, params pagination.Params) ([]Plan, int, error)
}

// SubscriptionChecker answers whether a user currently holds an active
// subscription to a plan. Implemented by the subscription domain; declared
// here so the plan package stays free of that dependency.
type SubscriptionChecker interface {
	HasActive(context context.Context, userID, planID string) (bool, error)
}
