// Copyright (c) 2026 Fithub. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Profile Repository

// PostgresProfileRepository implements the ProfileRepository interface using pgx.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

/*
FindByAccountID retrieves the trainer profile row for an account.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *TrainerProfile: Hydrated profile
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresProfileRepository) FindByAccountID(context context.Context, accountID string) (*TrainerProfile, error) {
	const query = `
		SELECT accountid, specialization, experienceyears, bio, createdat, updatedat
		FROM users.trainer_profile
		WHERE accountid = $1`

	profile := &TrainerProfile{}
	err := repository.pool.QueryRow(context, query, accountID).Scan(
		&profile.AccountID,
		&profile.Specialization,
		&profile.ExperienceYears,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Trainer profile")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_failed: %w", err)
	}

	return profile, nil
}

/*
Update persists changes to the trainer profile fields.

Parameters:
  - context: context.Context
  - profile: *TrainerProfile

Returns:
  - error: Update failures
*/
func (repository *PostgresProfileRepository) Update(context context.Context, profile *TrainerProfile) error {
	const query = `
		UPDATE users.trainer_profile
		SET specialization = $2, experienceyears = $3, bio = $4, updatedat = $5
		WHERE accountid = $1`

	profile.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		profile.AccountID,
		profile.Specialization,
		profile.ExperienceYears,
		profile.Bio,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Trainer profile")
	}

	return nil
}

// # Directory Repository

// PostgresDirectoryRepository implements the DirectoryRepository interface.
type PostgresDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new PostgreSQL implementation of DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{pool: pool}
}

// trainerCardQuery joins account, profile, and follower counts into one card.
const trainerCardQuery = `
	SELECT a.id, a.handle, a.displayname,
	       COALESCE(p.specialization, ''), COALESCE(p.experienceyears, 0), COALESCE(p.bio, ''),
	       COALESCE(f.followers, 0), a.createdat
	FROM users.account a
	LEFT JOIN users.trainer_profile p ON p.accountid = a.id
	LEFT JOIN (
		SELECT trainerid, COUNT(*) AS followers
		FROM social.follow
		GROUP BY trainerid
	) f ON f.trainerid = a.id
	WHERE a.role = 'trainer'`

/*
GetTrainer retrieves a single trainer card including its follower count.

Parameters:
  - context: context.Context
  - trainerID: string

Returns:
  - *TrainerCard: Hydrated card
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresDirectoryRepository) GetTrainer(context context.Context, trainerID string) (*TrainerCard, error) {
	query := trainerCardQuery + " AND a.id = $1"

	card := &TrainerCard{}
	err := repository.pool.QueryRow(context, query, trainerID).Scan(
		&card.ID,
		&card.Handle,
		&card.DisplayName,
		&card.Specialization,
		&card.ExperienceYears,
		&card.Bio,
		&card.FollowerCount,
		&card.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Trainer")
		}
		return nil, fmt.Errorf("postgres_directory_repo_get_trainer_failed: %w", err)
	}

	return card, nil
}

/*
ListTrainers pages through the trainer directory, newest accounts first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []TrainerCard: Page of cards
  - int: Total trainer count
  - error: Retrieval failures
*/
func (repository *PostgresDirectoryRepository) ListTrainers(context context.Context, params pagination.Params) ([]TrainerCard, int, error) {
	query := trainerCardQuery + " ORDER BY a.createdat DESC LIMIT $1 OFFSET $2"

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_repo_list_trainers_failed: %w", err)
	}
	defer rows.Close()

	cards := make([]TrainerCard, 0, params.Limit)
	for rows.Next() {
		card := TrainerCard{}
		if err := rows.Scan(
			&card.ID,
			&card.Handle,
			&card.DisplayName,
			&card.Specialization,
			&card.ExperienceYears,
			&card.Bio,
			&card.FollowerCount,
			&card.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_directory_repo_scan_trainer_failed: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_repo_list_trainers_rows_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM users.account WHERE role = 'trainer'"
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_repo_count_trainers_failed: %w", err)
	}

	return cards, total, nil
}

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
func (repository *PostgresDirectoryRepository) ListMembers(context context.Context, params pagination.Params) ([]MemberInfo, int, error) {
	const query = `
		SELECT id, handle, displayname, createdat
		FROM users.account
		WHERE role = 'user'
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_repo_list_members_failed: %w", err)
	}
	defer rows.Close()

	members := make([]MemberInfo, 0, params.Limit)
	for rows.Next() {
		member := MemberInfo{}
		if err := rows.Scan(&member.ID, &member.Handle, &member.DisplayName, &member.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_directory_repo_scan_member_failed: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_repo_list_members_rows_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM users.account WHERE role = 'user'"
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_repo_count_members_failed: %w", err)
	}

	return members, total, nil
}

/*
CountFollowers returns the number of accounts following a trainer.

Parameters:
  - context: context.Context
  - trainerID: string

Returns:
  - int: Follower count
  - error: Retrieval failures
*/
func (repository *PostgresDirectoryRepository) CountFollowers(context context.Context, trainerID string) (int, error) {
	const query = "SELECT COUNT(*) FROM social.follow WHERE trainerid = $1"

	count := 0
	if err := repository.pool.QueryRow(context, query, trainerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_directory_repo_count_followers_failed: %w", err)
	}

	return count, nil
}
