// Copyright (c) 2026 Fithub. All rights reserved.

package follow

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fithub/fithub/internal/platform/dberr"
	"github.com/fithub/fithub/pkg/pagination"
)

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Upsert creates the follow edge if it does not already exist.

Parameters:
  - context: context.Context
  - userID: string
  - trainerID: string

Returns:
  - error: Constraint or storage failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, userID, trainerID string) error {
	const query = `
		INSERT INTO social.follow (userid, trainerid, createdat)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid, trainerid) DO NOTHING`

	if _, err := repository.pool.Exec(context, query, userID, trainerID, time.Now()); err != nil {
		return dberr.Wrap(err, "follow_upsert")
	}

	return nil
}

/*
Delete removes the follow edge. Deleting an absent edge is a no-op.

Parameters:
  - context: context.Context
  - userID: string
  - trainerID: string

Returns:
  - error: Storage failures
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, trainerID string) error {
	const query = "DELETE FROM social.follow WHERE userid = $1 AND trainerid = $2"

	if _, err := repository.pool.Exec(context, query, userID, trainerID); err != nil {
		return dberr.Wrap(err, "follow_delete")
	}

	return nil
}

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
func (repository *PostgresRepository) Exists(context context.Context, userID, trainerID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM social.follow WHERE userid = $1 AND trainerid = $2
		)`

	exists := false
	if err := repository.pool.QueryRow(context, query, userID, trainerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_follow_repo_exists_failed: %w", err)
	}

	return exists, nil
}

/*
ListByUser pages through the trainers a user follows, most recently
followed first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []FollowedTrainer: Page of followed trainers
  - int: Total followed count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]FollowedTrainer, int, error) {
	const query = `
		SELECT f.trainerid, a.handle, a.displayname,
		       COALESCE(p.specialization, ''), f.createdat
		FROM social.follow f
		JOIN users.account a ON a.id = f.trainerid
		LEFT JOIN users.trainer_profile p ON p.accountid = f.trainerid
		WHERE f.userid = $1
		ORDER BY f.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_follow_repo_list_failed: %w", err)
	}
	defer rows.Close()

	trainers := make([]FollowedTrainer, 0, params.Limit)
	for rows.Next() {
		trainer := FollowedTrainer{}
		if err := rows.Scan(
			&trainer.TrainerID,
			&trainer.Handle,
			&trainer.DisplayName,
			&trainer.Specialization,
			&trainer.FollowedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_follow_repo_scan_failed: %w", err)
		}
		trainers = append(trainers, trainer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_follow_repo_list_rows_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM social.follow WHERE userid = $1"
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_follow_repo_count_failed: %w", err)
	}

	return trainers, total, nil
}

/*
TrainerExists reports whether the target account exists with the trainer role.

Parameters:
  - context: context.Context
  - trainerID: string

Returns:
  - bool: True for existing trainer accounts
  - error: Retrieval failures
*/
func (repository *PostgresRepository) TrainerExists(context context.Context, trainerID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users.account WHERE id = $1 AND role = 'trainer'
		)`

	exists := false
	if err := repository.pool.QueryRow(context, query, trainerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_follow_repo_trainer_exists_failed: %w", err)
	}

	return exists, nil
}
