// Copyright (c) 2026 Fithub. All rights reserved.

package follow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for the follow graph.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Follow creates the follow edge from a user to a trainer.

Description: Idempotent; following an already-followed trainer succeeds
without creating a second edge. The target must be an existing trainer
account, and self-follows are rejected.

Parameters:
  - context: context.Context
  - userID: string
  - trainerID: string

Returns:
  - error: apperr.ValidationError for invalid targets
*/
func (service *Service) Follow(context context.Context, userID, trainerID string) error {

	// Business: Accounts cannot follow themselves
	if userID == trainerID {
		return apperr.ValidationError("You cannot follow yourself")
	}

	// Business: Only trainer accounts can be followed
	isTrainer, err := service.repository.TrainerExists(context, trainerID)
	if err != nil {
		return fmt.Errorf("follow_service_target_check_failed: %w", err)
	}
	if !isTrainer {
		return apperr.ValidationError("Target account is not a trainer")
	}

	if err := service.repository.Upsert(context, userID, trainerID); err != nil {
		return fmt.Errorf("follow_service_create_failed: %w", err)
	}

	service.logger.Info("trainer_followed",
		slog.String("user_id", userID),
		slog.String("trainer_id", trainerID),
	)

	return nil
}

/*
Unfollow removes the follow edge from a user to a trainer.

Description: Idempotent; unfollowing a trainer that was never followed
is a silent no-op.

Parameters:
  - context: context.Context
  - userID: string
  - trainerID: string

Returns:
  - error: Storage failures
*/
func (service *Service) Unfollow(context context.Context, userID, trainerID string) error {
	if err := service.repository.Delete(context, userID, trainerID); err != nil {
		return fmt.Errorf("follow_service_delete_failed: %w", err)
	}

	service.logger.Info("trainer_unfollowed",
		slog.String("user_id", userID),
		slog.String("trainer_id", trainerID),
	)

	return nil
}

/*
IsFollowing reports whether the user currently follows the trainer.

Parameters:
  - context: context.Context
  - userID: string
  - trainerID: string

Returns:
  - bool: True when the edge exists
  - error: Retrieval failures
*/
func (service *Service) IsFollowing(context context.Context, userID, trainerID string) (bool, error) {
	exists, err := service.repository.Exists(context, userID, trainerID)
	if err != nil {
		return false, fmt.Errorf("follow_service_exists_failed: %w", err)
	}
	return exists, nil
}

/*
ListFollowed pages through the trainers the user follows.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []FollowedTrainer: Page of followed trainers
  - int: Total followed count
  - error: Retrieval failures
*/
func (service *Service) ListFollowed(context context.Context, userID string, params pagination.Params) ([]FollowedTrainer, int, error) {
	trainers, total, err := service.repository.ListByUser(context, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("follow_service_list_failed: %w", err)
	}
	return trainers, total, nil
}
