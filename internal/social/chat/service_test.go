// Copyright (c) 2026 Fithub. All rights reserved.

package chat

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/pkg/pagination"
)

// # Test Doubles

// fakeRepository keeps the message log in memory.
type fakeRepository struct {
	messages []Message
	accounts map[string]bool
	clock    time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		accounts: map[string]bool{"user-1": true, "user-2": true, "trainer-1": true},
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepository) Create(_ context.Context, m *Message) error {
	clone := *m
	// Monotonic timestamps keep ordering assertions deterministic.
	f.clock = f.clock.Add(time.Second)
	clone.CreatedAt = f.clock
	f.messages = append(f.messages, clone)
	return nil
}

func (f *fakeRepository) Conversation(_ context.Context, accountID, partnerID string, _ pagination.Params) ([]Message, int, error) {
	matches := []Message{}
	for _, m := range f.messages {
		if (m.SenderID == accountID && m.RecipientID == partnerID) ||
			(m.SenderID == partnerID && m.RecipientID == accountID) {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	return matches, len(matches), nil
}

func (f *fakeRepository) Contacts(_ context.Context, accountID string) ([]Contact, error) {
	seen := map[string]*Contact{}
	for _, m := range f.messages {
		partner := ""
		switch accountID {
		case m.SenderID:
			partner = m.RecipientID
		case m.RecipientID:
			partner = m.SenderID
		default:
			continue
		}
		contact, ok := seen[partner]
		if !ok {
			contact = &Contact{AccountID: partner}
			seen[partner] = contact
		}
		if m.CreatedAt.After(contact.LastMessageAt) {
			contact.LastMessageAt = m.CreatedAt
		}
		if m.RecipientID == accountID && !m.IsRead {
			contact.UnreadCount++
		}
	}

	contacts := []Contact{}
	for _, c := range seen {
		contacts = append(contacts, *c)
	}
	return contacts, nil
}

func (f *fakeRepository) CountUnread(_ context.Context, accountID string) (int, error) {
	count := 0
	for _, m := range f.messages {
		if m.RecipientID == accountID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) MarkRead(_ context.Context, accountID, partnerID string) error {
	for i := range f.messages {
		if f.messages[i].RecipientID == accountID && f.messages[i].SenderID == partnerID {
			f.messages[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeRepository) AccountExists(_ context.Context, accountID string) (bool, error) {
	return f.accounts[accountID], nil
}

func newTestService() (*Service, *fakeRepository) {
	repository := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, logger), repository
}

// # Tests

/*
TestSend_Success verifies message delivery and initial unread state.
*/
func TestSend_Success(t *testing.T) {
	service, _ := newTestService()

	message, err := service.Send(context.Background(), "user-1", "trainer-1", "  When should I deload?  ")
	require.NoError(t, err)

	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "When should I deload?", message.Body)
	assert.False(t, message.IsRead)
}

/*
TestSend_Validation verifies the send-side input gates.
*/
func TestSend_Validation(t *testing.T) {
	service, _ := newTestService()

	testCases := []struct {
		name        string
		senderID    string
		recipientID string
		body        string
		wantCode    string
	}{
		{name: "empty body", senderID: "user-1", recipientID: "trainer-1", body: "   ", wantCode: "VALIDATION_ERROR"},
		{name: "oversized body", senderID: "user-1", recipientID: "trainer-1", body: strings.Repeat("a", MaxBodyLength+1), wantCode: "VALIDATION_ERROR"},
		{name: "self message", senderID: "user-1", recipientID: "user-1", body: "hi", wantCode: "VALIDATION_ERROR"},
		{name: "unknown recipient", senderID: "user-1", recipientID: "ghost", body: "hi", wantCode: "NOT_FOUND"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Send(context.Background(), tc.senderID, tc.recipientID, tc.body)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tc.wantCode, appError.Code)
		})
	}
}

/*
TestConversation_BothDirectionsChronological verifies the interleaved
conversation ordering and the read side effect.
*/
func TestConversation_BothDirectionsChronological(t *testing.T) {
	service, repository := newTestService()

	_, err := service.Send(context.Background(), "user-1", "trainer-1", "Question about week 3")
	require.NoError(t, err)
	_, err = service.Send(context.Background(), "trainer-1", "user-1", "Swap squats for front squats")
	require.NoError(t, err)
	_, err = service.Send(context.Background(), "user-1", "trainer-1", "Got it, thanks")
	require.NoError(t, err)

	messages, total, err := service.Conversation(context.Background(), "user-1", "trainer-1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, 3, total)

	// 1. Both directions, oldest first
	assert.Equal(t, "Question about week 3", messages[0].Body)
	assert.Equal(t, "Swap squats for front squats", messages[1].Body)
	assert.Equal(t, "Got it, thanks", messages[2].Body)

	// 2. Reading cleared the trainer's message to the user
	unread, err := repository.CountUnread(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	// 3. The user's own messages stay unread for the trainer
	unread, err = repository.CountUnread(context.Background(), "trainer-1")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)
}

/*
TestContacts_DistinctPartnersWithUnread verifies the contact roll-up.
*/
func TestContacts_DistinctPartnersWithUnread(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Send(context.Background(), "user-1", "trainer-1", "hello coach")
	require.NoError(t, err)
	_, err = service.Send(context.Background(), "user-2", "trainer-1", "form check?")
	require.NoError(t, err)
	_, err = service.Send(context.Background(), "user-2", "trainer-1", "second message")
	require.NoError(t, err)

	contacts, err := service.Contacts(context.Background(), "trainer-1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	byPartner := map[string]Contact{}
	for _, c := range contacts {
		byPartner[c.AccountID] = c
	}
	assert.Equal(t, 1, byPartner["user-1"].UnreadCount)
	assert.Equal(t, 2, byPartner["user-2"].UnreadCount)
}

/*
TestMarkRead verifies the explicit read-flag operation.
*/
func TestMarkRead(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Send(context.Background(), "user-1", "trainer-1", "ping")
	require.NoError(t, err)

	count, err := service.UnreadCount(context.Background(), "trainer-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, service.MarkRead(context.Background(), "trainer-1", "user-1"))

	count, err = service.UnreadCount(context.Background(), "trainer-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
