// Copyright (c) 2026 Fithub. All rights reserved.

package plan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

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

// planColumns joins the plan row with its author's public identity.
const planColumns = `
	p.id, p.trainerid, p.title, p.slug, p.description, p.price,
	p.durationdays, p.difficulty, p.category, p.isactive,
	p.createdat, p.updatedat, a.handle, a.displayname`

const planFrom = `
	FROM core.plan p
	JOIN users.account a ON a.id = p.trainerid`

// scanPlan hydrates one plan row including the denormalized trainer fields.
func scanPlan(row pgx.Row) (*Plan, error) {
	plan := &Plan{}
	err := row.Scan(
		&plan.ID,
		&plan.TrainerID,
		&plan.Title,
		&plan.Slug,
		&plan.Description,
		&plan.Price,
		&plan.DurationDays,
		&plan.Difficulty,
		&plan.Category,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
		&plan.TrainerHandle,
		&plan.TrainerDisplayName,
	)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

/*
Create persists a new plan row.

Parameters:
  - context: context.Context
  - plan: *Plan

Returns:
  - error: Constraint or storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, plan *Plan) error {
	const query = `
		INSERT INTO core.plan
			(id, trainerid, title, slug, description, price, durationdays,
			 difficulty, category, isactive, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := repository.pool.Exec(context, query,
		plan.ID,
		plan.TrainerID,
		plan.Title,
		plan.Slug,
		plan.Description,
		plan.Price,
		plan.DurationDays,
		plan.Difficulty,
		plan.Category,
		plan.IsActive,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "plan_create")
	}

	return nil
}

/*
FindByID retrieves a plan with its denormalized trainer fields.

Parameters:
  - context: context.Context
  - planID: string

Returns:
  - *Plan: Hydrated plan
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, planID string) (*Plan, error) {
	query := "SELECT " + planColumns + planFrom + " WHERE p.id = $1"

	plan, err := scanPlan(repository.pool.QueryRow(context, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Plan")
		}
		return nil, fmt.Errorf("postgres_plan_repo_find_failed: %w", err)
	}

	return plan, nil
}

/*
Update persists changes to the mutable plan fields.

Parameters:
  - context: context.Context
  - plan: *Plan

Returns:
  - error: apperr.NotFound if no row matched, or storage failures
*/
func (repository *PostgresRepository) Update(context context.Context, plan *Plan) error {
	const query = `
		UPDATE core.plan
		SET title = $2, slug = $3, description = $4, price = $5,
		    durationdays = $6, difficulty = $7, category = $8,
		    isactive = $9, updatedat = $10
		WHERE id = $1`

	plan.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		plan.ID,
		plan.Title,
		plan.Slug,
		plan.Description,
		plan.Price,
		plan.DurationDays,
		plan.Difficulty,
		plan.Category,
		plan.IsActive,
		plan.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "plan_update")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Plan")
	}

	return nil
}

/*
Delete removes a plan row permanently.

Parameters:
  - context: context.Context
  - planID: string

Returns:
  - error: apperr.NotFound if no row matched
*/
func (repository *PostgresRepository) Delete(context context.Context, planID string) error {
	const query = "DELETE FROM core.plan WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, planID)
	if err != nil {
		return dberr.Wrap(err, "plan_delete")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Plan")
	}

	return nil
}

/*
ListByTrainer pages through all plans authored by a trainer, inactive included.

Parameters:
  - context: context.Context
  - trainerID: string
  - params: pagination.Params

Returns:
  - []Plan: Page of plans
  - int: Total count for the trainer
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByTrainer(context context.Context, trainerID string, params pagination.Params) ([]Plan, int, error) {
	query := "SELECT " + planColumns + planFrom + `
		WHERE p.trainerid = $1
		ORDER BY p.createdat DESC
		LIMIT $2 OFFSET $3`

	plans, err := repository.queryPlans(context, query, trainerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_plan_repo_list_by_trainer_failed: %w", err)
	}

	total := 0
	const countQuery = "SELECT COUNT(*) FROM core.plan WHERE trainerid = $1"
	if err := repository.pool.QueryRow(context, countQuery, trainerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_plan_repo_count_by_trainer_failed: %w", err)
	}

	return plans, total, nil
}

/*
Browse pages through active plans matching the filter, newest first.

Description: Builds the WHERE clause dynamically from the populated
filter fields using positional parameters only.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []Plan: Page of matching plans
  - int: Total match count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Browse(context context.Context, filter Filter, params pagination.Params) ([]Plan, int, error) {

	conditions := []string{"p.isactive = TRUE"}
	args := []interface{}{}

	appendCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.Category != "" {
		appendCondition("p.category = ", filter.Category)
	}
	if filter.Difficulty != "" {
		appendCondition("p.difficulty = ", string(filter.Difficulty))
	}
	if filter.TrainerID != "" {
		appendCondition("p.trainerid = ", filter.TrainerID)
	}
	if filter.MaxPrice != nil {
		appendCondition("p.price <= ", *filter.MaxPrice)
	}
	if filter.Query != "" {
		appendCondition("p.title ILIKE ", "%"+filter.Query+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) " + planFrom + where
	total := 0
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_plan_repo_browse_count_failed: %w", err)
	}

	args = append(args, params.Limit, params.Offset())
	query := "SELECT " + planColumns + planFrom + where +
		" ORDER BY p.createdat DESC" +
		" LIMIT $" + strconv.Itoa(len(args)-1) +
		" OFFSET $" + strconv.Itoa(len(args))

	plans, err := repository.queryPlans(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_plan_repo_browse_failed: %w", err)
	}

	return plans, total, nil
}

/*
Feed pages through active plans authored by trainers the user follows.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Plan: Page of feed plans
  - int: Total feed count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Feed(context context.Context, userID string, params pagination.Params) ([]Plan, int, error) {
	query := "SELECT " + planColumns + planFrom + `
		JOIN social.follow f ON f.trainerid = p.trainerid
		WHERE f.userid = $1 AND p.isactive = TRUE
		ORDER BY p.createdat DESC
		LIMIT $2 OFFSET $3`

	plans, err := repository.queryPlans(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_plan_repo_feed_failed: %w", err)
	}

	total := 0
	const countQuery = `
		SELECT COUNT(*)
		FROM core.plan p
		JOIN social.follow f ON f.trainerid = p.trainerid
		WHERE f.userid = $1 AND p.isactive = TRUE`
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_plan_repo_feed_count_failed: %w", err)
	}

	return plans, total, nil
}

// queryPlans runs a multi-row plan query and hydrates the results.
func (repository *PostgresRepository) queryPlans(context context.Context, query string, args ...interface{}) ([]Plan, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []Plan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}

	return plans, rows.Err()
}
