// Copyright (c) 2026 Fithub. All rights reserved.

/*
Package chat implements direct messaging between accounts.

Trainers and clients exchange one-to-one messages. Conversations are
derived from the message log rather than stored as separate entities,
and read state is tracked per message.
*/
package chat

import (
	"context"
	"time"

	"github.com/fithub/fithub/pkg/pagination"
)

// # Domain Entities

// Message represents a single direct message between two accounts.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Contact is a conversation partner in the contact list.
type Contact struct {
	AccountID     string    `json:"account_id"`
	Handle        string    `json:"handle"`
	DisplayName   string    `json:"display_name"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}

// MaxBodyLength bounds a single message body.
const MaxBodyLength = 2000

// # Repository Contract

// Repository defines the persistence contract for direct messages.
type Repository interface {
	/*
		Create persists a new message row.

		Parameters:
		  - context: context.Context
		  - message: *Message

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, message *Message) error

	/*
		Conversation pages through the messages exchanged between two
		accounts in both directions, oldest first.

		Parameters:
		  - context: context.Context
		  - accountID: string (The caller)
		  - partnerID: string
		  - params: pagination.Params

		Returns:
		  - []Message: Page of messages in chronological order
		  - int: Total message count for the pair
		  - error: Retrieval failures
	*/
	Conversation(context context.Context, accountID, partnerID string, params pagination.Params) ([]Message, int, error)

	/*
		Contacts lists the caller's distinct conversation partners with
		their unread counts, most recent conversation first.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - []Contact: Distinct partners
		  - error: Retrieval failures
	*/
	Contacts(context context.Context, accountID string) ([]Contact, error)

	/*
		CountUnread returns the number of unread messages addressed to
		the account.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - int: Unread message count
		  - error: Retrieval failures
	*/
	CountUnread(context context.Context, accountID string) (int, error)

	/*
		MarkRead flags every message from the partner to the account as
		read.

		Parameters:
		  - context: context.Context
		  - accountID: string (The reader)
		  - partnerID: string (The sender)

		Returns:
		  - error: Storage failures
	*/
	MarkRead(context context.Context, accountID, partnerID string) error

	/*
		AccountExists reports whether the target account exists.

		Parameters:
		  - context: context.Context
		  - accountID: string

		Returns:
		  - bool: True for existing accounts
		  - error: Retrieval failures
	*/
	AccountExists(context context.Context, accountID string) (bool, error)
}
