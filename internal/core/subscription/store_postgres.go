// Copyright (c) 2026 Fithub. All rights reserved.

package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fithub/fithub/internal/platform/apperr"
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
Create persists a new subscription row.

Description: Relies on the UNIQUE (userid, planid) index to reject
duplicate purchases; callers inspect the error with
dberr.IsUniqueViolation.

Parameters:
  - context: context.Context
  - subscription: *Subscription

Returns:
  - error: Unique violation or storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, subscription *Subscription) error {
	const query = `
		INSERT INTO core.subscription
			(id, userid, planid, amountpaid, startdate, enddate, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(context, query,
		subscription.ID,
		subscription.UserID,
		subscription.PlanID,
		subscription.AmountPaid,
		subscription.StartDate,
		subscription.EndDate,
		subscription.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "subscription_create")
	}

	return nil
}

/*
FindByUserAndPlan retrieves the subscription a user holds for a plan.

Parameters:
  - context: context.Context
  - userID: string
  - planID: string

Returns:
  - *Subscription: Hydrated subscription
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByUserAndPlan(context context.Context, userID, planID string) (*Subscription, error) {
	const query = `
		SELECT id, userid, planid, amountpaid, startdate, enddate, createdat
		FROM core.subscription
		WHERE userid = $1 AND planid = $2`

	subscription := &Subscription{}
	err := repository.pool.QueryRow(context, query, userID, planID).Scan(
		&subscription.ID,
		&subscription.UserID,
		&subscription.PlanID,
		&subscription.AmountPaid,
		&subscription.StartDate,
		&subscription.EndDate,
		&subscription.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Subscription")
		}
		return nil, fmt.Errorf("postgres_subscription_repo_find_failed: %w", err)
	}

	return subscription, nil
}

/*
ListByUser pages through a user's subscriptions with denormalized plan
details, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Subscription: Page of subscriptions
  - int: Total count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]Subscription, int, error) {
	const query = `
		SELECT s.id, s.userid, s.planid, s.amountpaid, s.startdate, s.enddate, s.createdat,
		       p.title, p.slug, a.handle, a.displayname
		FROM core.subscription s
		JOIN core.plan p ON p.id = s.planid
		JOIN users.account a ON a.id = p.trainerid
		WHERE s.userid = $1
		ORDER BY s.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_subscription_repo_list_failed: %w", err)
	}
	defer rows.Close()

	subscriptions := make([]Subscription, 0, params.Limit)
	for rows.Next() {
		subscription := Subscription{}
		if err := rows.Scan(
			&subscription.ID,
			&subscription.UserID,
			&subscription.PlanID,
			&subscription.AmountPaid,
			&subscription.StartDate,
			&subscription.EndDate,
			&subscription.CreatedAt,
			&subscription.PlanTitle,
			&subscription.PlanSlug,
			&subscription.TrainerHandle,
			&subscription.TrainerDisplayName,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_subscription_repo_scan_failed: %w", err)
		}
		subscriptions = append(subscriptions, subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_subscription_repo_list_rows_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM core.subscription WHERE userid = $1"
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_subscription_repo_count_failed: %w", err)
	}

	return subscriptions, total, nil
}
