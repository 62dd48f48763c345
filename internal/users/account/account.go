// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package account handles trainer profile management and the member directory.

It provides functionalities for trainers to maintain their public coaching
profile and for clients to browse the trainer catalogue.

# Architecture

  - Entities: TrainerProfile, TrainerCard (DTO), MemberInfo (DTO).
  - Domain: This package depends on the auth package for the Account entity.
  - Visibility: The user directory is restricted to trainer accounts.
*/
package account

import (
	"context"
	"time"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Domain Entities

// TrainerProfile represents the public coaching profile of a trainer account.
type TrainerProfile struct {
	AccountID       string    `json:"account_id"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	Bio             string    `json:"bio"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TrainerCard is the directory-facing view of a trainer.
// It merges the account identity, the coaching profile, and the follower count.
type TrainerCard struct {
	ID              string    `json:"id"`
	Handle          string    `json:"handle"`
	DisplayName     string    `json:"display_name"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	Bio             string    `json:"bio"`
	FollowerCount   int       `json:"follower_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// MemberInfo is a safety-mapped view of a standard user account.
// It omits credentials and contact details beyond what trainers need.
type MemberInfo struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Repository Contracts

// ProfileRepository defines the persistence contract for trainer profiles.
type ProfileRepository interface {
	/*
		FindByAccountID retrieves the trainer profile for a specific account.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - *TrainerProfile: Hydrated profile
		  - error: apperr.NotFound if not present
	*/
	FindByAccountID(context context.Context, accountID string) (*TrainerProfile, error)

	/*
		Update persists changes to the mutable trainer profile fields.

		Parameters:
		  - context: context.Context
		  - profile: *TrainerProfile

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, profile *TrainerProfile) error
}

// DirectoryRepository defines the read contract for the member directory.
type DirectoryRepository interface {
	/*
		GetTrainer retrieves a single trainer card with its follower count.

		Parameters:
		  - context: context.Context
		  - trainerID: string

		Returns:
		  - *TrainerCard: Hydrated card
		  - error: apperr.NotFound or retrieval failures
	*/
	GetTrainer(context context.Context, trainerID string) (*TrainerCard, error)

	/*
		ListTrainers pages through all trainer cards, newest first.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []TrainerCard: Page of trainer cards
		  - int: Total trainer count
		  - error: Retrieval failures
	*/
	ListTrainers(context context.Context, params pagination.Params) ([]TrainerCard, int, error)

	/*
		ListMembers pages through all standard user accounts, newest first.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []MemberInfo: Page of member rows
		  - int: Total member count
		  - error: Retrieval failures
	*/
	ListMembers(context context.Context, params pagination.Params) ([]MemberInfo, int, error)

	/*
		CountFollowers returns the number of accounts following a trainer.

		Parameters:
		  - context: context.Context
		  - trainerID: string

		Returns:
		  - int: Follower count
		  - error: Retrieval failures
	*/
	CountFollowers(context context.Context, trainerID string) (int, error)
}
