// Copyright (c) 2026 Fithub. All rights reserved.

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/pkg/pagination"
	"github.com/fithub/fithub/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for direct messaging.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Send delivers a direct message from the caller to another account.

Description: Rejects empty bodies, self-addressed messages, and unknown
recipients. Messages start unread.

Parameters:
  - context: context.Context
  - senderID: string
  - recipientID: string
  - body: string

Returns:
  - *Message: The persisted message
  - error: Validation or storage failures
*/
func (service *Service) Send(context context.Context, senderID, recipientID, body string) (*Message, error) {

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.ValidationError("Message body is required")
	}
	if len(body) > MaxBodyLength {
		return nil, apperr.ValidationError("Message body is too long")
	}

	// Business: Accounts cannot message themselves
	if senderID == recipientID {
		return nil, apperr.ValidationError("You cannot message yourself")
	}

	exists, err := service.repository.AccountExists(context, recipientID)
	if err != nil {
		return nil, fmt.Errorf("chat_service_recipient_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Recipient")
	}

	message := &Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}

	if err := service.repository.Create(context, message); err != nil {
		return nil, fmt.Errorf("chat_service_send_failed: %w", err)
	}

	service.logger.Info("message_sent",
		slog.String("message_id", message.ID),
		slog.String("sender_id", senderID),
		slog.String("recipient_id", recipientID),
	)

	return message, nil
}

/*
Conversation pages through the messages between the caller and a partner.

Description: Returns both directions interleaved in chronological order
and marks the partner's messages to the caller as read.

Parameters:
  - context: context.Context
  - accountID: string (The caller)
  - partnerID: string
  - params: pagination.Params

Returns:
  - []Message: Page of messages, oldest first
  - int: Total message count for the pair
  - error: Retrieval failures
*/
func (service *Service) Conversation(context context.Context, accountID, partnerID string, params pagination.Params) ([]Message, int, error) {

	messages, total, err := service.repository.Conversation(context, accountID, partnerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("chat_service_conversation_failed: %w", err)
	}

	// Reading a conversation clears its unread state. Best effort;
	// a failed flag update must not break the read path.
	if err := service.repository.MarkRead(context, accountID, partnerID); err != nil {
		service.logger.Warn("chat_mark_read_failed",
			slog.String("account_id", accountID),
			slog.String("partner_id", partnerID),
			slog.String("error", err.Error()),
		)
	}

	return messages, total, nil
}

/*
Contacts lists the caller's conversation partners with unread counts.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - []Contact: Distinct partners, most recent conversation first
  - error: Retrieval failures
*/
func (service *Service) Contacts(context context.Context, accountID string) ([]Contact, error) {
	contacts, err := service.repository.Contacts(context, accountID)
	if err != nil {
		return nil, fmt.Errorf("chat_service_contacts_failed: %w", err)
	}
	return contacts, nil
}

/*
UnreadCount returns the number of unread messages addressed to the caller.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - int: Unread message count
  - error: Retrieval failures
*/
func (service *Service) UnreadCount(context context.Context, accountID string) (int, error) {
	count, err := service.repository.CountUnread(context, accountID)
	if err != nil {
		return 0, fmt.Errorf("chat_service_unread_count_failed: %w", err)
	}
	return count, nil
}

/*
MarkRead flags every message from the partner to the caller as read.

Parameters:
  - context: context.Context
  - accountID: string (The reader)
  - partnerID: string (The sender)

Returns:
  - error: Storage failures
*/
func (service *Service) MarkRead(context context.Context, accountID, partnerID string) error {
	if err := service.repository.MarkRead(context, accountID, partnerID); err != nil {
		return fmt.Errorf("chat_service_mark_read_failed: %w", err)
	}
	return nil
}
