// Copyright (c) 2026 Fithub. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for trainer profiles and the
// member directory.
type Service struct {
	profileRepository   ProfileRepository
	directoryRepository DirectoryRepository
	logger              *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	profileRepo ProfileRepository,
	directoryRepo DirectoryRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		profileRepository:   profileRepo,
		directoryRepository: directoryRepo,
		logger:              logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the coaching profile for a trainer account.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *TrainerProfile: The hydrated profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, accountID string) (*TrainerProfile, error) {
	profile, err := service.profileRepository.FindByAccountID(context, accountID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return profile, nil
}

// UpdateProfileInput defines the mutable subset of trainer profile fields.
type UpdateProfileInput struct {
	Specialization  *string
	ExperienceYears *int
	Bio             *string
}

/*
UpdateProfile applies a partial set of changes to a trainer's coaching profile.

Description: Fetches the existing profile state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - accountID: string
  - input: UpdateProfileInput

Returns:
  - *TrainerProfile: The updated profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, accountID string, input UpdateProfileInput) (*TrainerProfile, error) {

	profile, err := service.profileRepository.FindByAccountID(context, accountID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Specialization != nil {
		profile.Specialization = *input.Specialization
	}

	// Apply delta updates
	if input.ExperienceYears != nil {
		profile.ExperienceYears = *input.ExperienceYears
	}

	// Apply delta updates
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}

	// Persist changes
	if err := service.profileRepository.Update(context, profile); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("trainer_profile_updated", slog.String("account_id", accountID))

	return profile, nil
}

// # Directory

/*
GetTrainer retrieves the public card for a specific trainer.

Parameters:
  - context: context.Context
  - trainerID: string

Returns:
  - *TrainerCard: Public trainer view with follower count
  - error: Not found or retrieval failures
*/
func (service *Service) GetTrainer(context context.Context, trainerID string) (*TrainerCard, error) {
	card, err := service.directoryRepository.GetTrainer(context, trainerID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_trainer_failed: %w", err)
	}
	return card, nil
}

/*
ListTrainers pages through the public trainer catalogue.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []TrainerCard: Page of trainer cards
  - int: Total trainer count
  - error: Retrieval failures
*/
func (service *Service) ListTrainers(context context.Context, params pagination.Params) ([]TrainerCard, int, error) {
	cards, total, err := service.directoryRepository.ListTrainers(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_trainers_failed: %w", err)
	}
	return cards, total, nil
}

/*
ListMembers pages through all standard user accounts.

Description: Intended for trainer consumption only; role enforcement happens
at the delivery layer.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []MemberInfo: Page of member rows
  - int: Total member count
  - error: Retrieval failures
*/
func (service *Service) ListMembers(context context.Context, params pagination.Params) ([]MemberInfo, int, error) {
	members, total, err := service.directoryRepository.ListMembers(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_members_failed: %w", err)
	}
	return members, total, nil
}

/*
CountFollowers returns the follower count for a trainer account.

Parameters:
  - context: context.Context
  - trainerID: string

Returns:
  - int: Follower count
  - error: Retrieval failures
*/
func (service *Service) CountFollowers(context context.Context, trainerID string) (int, error) {
	count, err := service.directoryRepository.CountFollowers(context, trainerID)
	if err != nil {
		return 0, fmt.Errorf("account_service_count_followers_failed: %w", err)
	}
	return count, nil
}
