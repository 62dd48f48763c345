// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package follow manages the user-to-trainer follow graph.

Follows power the personalised plan feed and trainer follower counts.
The edge is idempotent: following twice leaves a single edge, and
unfollowing an absent edge is a no-op.
*/
package follow

import (
	"context"
	"time"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Domain Entities

// Edge represents a user following a trainer.
type Edge struct {
	UserID    string    `json:"user_id"`
	TrainerID string    `json:"trainer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowedTrainer is the listing view of a trainer the user follows.
type FollowedTrainer struct {
	TrainerID      string    `json:"trainer_id"`
	Handle         string    `json:"handle"`
	DisplayName    string    `json:"display_name"`
	Specialization string    `json:"specialization"`
	FollowedAt     time.Time `json:"followed_at"`
}

// # Repository Contract

// Repository defines the persistence contract for the follow graph.
type Repository interface {
	/*
		Upsert creates the follow edge if it does not already exist.

		Description: Storage-level idempotency; inserting an existing
		edge is a silent no-op.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - trainerID: string

		Returns:
		  - error: Constraint or storage failures
	*/
	Upsert(context context.Context, userID, trainerID string) error

	/*
		Delete removes the follow edge. Deleting an absent edge is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - trainerID: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, userID, trainerID string) error

	/*
		Exists reports whether the user currently follows the trainer.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - trainerID: string

		Returns:
		  - bool: True when the edge exists
		  - error: Retrieval failures
	*/
	Exists(context context.Context, userID, trainerID string) (bool, error)

	/*
		ListByUser pages through the trainers a user follows, most
		recently followed first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []FollowedTrainer: Page of followed trainers
		  - int: Total followed count
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]FollowedTrainer, int, error)

	/*
		TrainerExists reports whether the target account exists and
		holds the trainer role.

		Parameters:
		  - context: context.Context
		  - trainerID: string

		Returns:
		  - bool: True for existing trainer accounts
		  - error: Retrieval failures
	*/
	TrainerExists(context context.Context, trainerID string) (bool, error)
}
