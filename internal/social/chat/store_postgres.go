// Copyright (c) 2026 Fithub. All rights reserved.

package chat

import (
	"context"
	"fmt"

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
Create persists a new message row.

Parameters:
  - context: context.Context
  - message: *Message

Returns:
  - error: Constraint or storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, message *Message) error {
	const query = `
		INSERT INTO social.message (id, senderid, recipientid, body, isread, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(context, query,
		message.ID,
		message.SenderID,
		message.RecipientID,
		message.Body,
		message.IsRead,
		message.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "message_create")
	}

	return nil
}

/*
Conversation pages through the messages exchanged between two accounts
in both directions, oldest first.

Parameters:
  - context: context.Context
  - accountID: string
  - partnerID: string
  - params: pagination.Params

Returns:
  - []Message: Page of messages in chronological order
  - int: Total message count for the pair
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Conversation(context context.Context, accountID, partnerID string, params pagination.Params) ([]Message, int, error) {
	const query = `
		SELECT id, senderid, recipientid, body, isread, createdat
		FROM social.message
		WHERE (senderid = $1 AND recipientid = $2)
		   OR (senderid = $2 AND recipientid = $1)
		ORDER BY createdat ASC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(context, query, accountID, partnerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_chat_repo_conversation_failed: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0, params.Limit)
	for rows.Next() {
		message := Message{}
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.RecipientID,
			&message.Body,
			&message.IsRead,
			&message.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_chat_repo_scan_failed: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_chat_repo_conversation_rows_failed: %w", err)
	}

	total := 0
	const countQuery = `
		SELECT COUNT(*)
		FROM social.message
		WHERE (senderid = $1 AND recipientid = $2)
		   OR (senderid = $2 AND recipientid = $1)`
	if err := repository.pool.QueryRow(context, countQuery, accountID, partnerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_chat_repo_count_failed: %w", err)
	}

	return messages, total, nil
}

/*
Contacts lists the caller's distinct conversation partners with unread
counts, most recent conversation first.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - []Contact: Distinct partners
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Contacts(context context.Context, accountID string) ([]Contact, error) {
	const query = `
		SELECT partner.id, partner.handle, partner.displayname,
		       MAX(m.createdat) AS lastmessageat,
		       COUNT(*) FILTER (WHERE m.recipientid = $1 AND m.isread = FALSE) AS unread
		FROM social.message m
		JOIN users.account partner
		  ON partner.id = CASE WHEN m.senderid = $1 THEN m.recipientid ELSE m.senderid END
		WHERE m.senderid = $1 OR m.recipientid = $1
		GROUP BY partner.id, partner.handle, partner.displayname
		ORDER BY lastmessageat DESC`

	rows, err := repository.pool.Query(context, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("postgres_chat_repo_contacts_failed: %w", err)
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		contact := Contact{}
		if err := rows.Scan(
			&contact.AccountID,
			&contact.Handle,
			&contact.DisplayName,
			&contact.LastMessageAt,
			&contact.UnreadCount,
		); err != nil {
			return nil, fmt.Errorf("postgres_chat_repo_contacts_scan_failed: %w", err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

/*
CountUnread returns the number of unread messages addressed to the account.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - int: Unread message count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) CountUnread(context context.Context, accountID string) (int, error) {
	const query = "SELECT COUNT(*) FROM social.message WHERE recipientid = $1 AND isread = FALSE"

	count := 0
	if err := repository.pool.QueryRow(context, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_chat_repo_count_unread_failed: %w", err)
	}

	return count, nil
}

/*
MarkRead flags every message from the partner to the account as read.

Parameters:
  - context: context.Context
  - accountID: string (The reader)
  - partnerID: string (The sender)

Returns:
  - error: Storage failures
*/
func (repository *PostgresRepository) MarkRead(context context.Context, accountID, partnerID string) error {
	const query = `
		UPDATE social.message
		SET isread = TRUE
		WHERE recipientid = $1 AND senderid = $2 AND isread = FALSE`

	if _, err := repository.pool.Exec(context, query, accountID, partnerID); err != nil {
		return dberr.Wrap(err, "message_mark_read")
	}

	return nil
}

/*
AccountExists reports whether the target account exists.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - bool: True for existing accounts
  - error: Retrieval failures
*/
func (repository *PostgresRepository) AccountExists(context context.Context, accountID string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM users.account WHERE id = $1)"

	exists := false
	if err := repository.pool.QueryRow(context, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_chat_repo_account_exists_failed: %w", err)
	}

	return exists, nil
}
