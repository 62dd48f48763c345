// Copyright (c) 2026 Fithub. All rights reserved.

package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fithub/fithub/internal/platform/apperr"
	"github.com/fithub/fithub/internal/platform/middleware"
	requestutil "github.com/fithub/fithub/internal/platform/request"
	"github.com/fithub/fithub/internal/platform/respond"
	"github.com/fithub/fithub/internal/platform/validate"
	"github.com/fithub/fithub/pkg/pagination"
)

// Handler implements the HTTP layer for direct messaging.
type Handler struct {
	chatService *Service
}

// NewHandler constructs a new chat [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{chatService: service}
}

// Routes returns a [chi.Router] configured with the messaging endpoints.
// All endpoints require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.send)
	router.Get("/contacts", handler.contacts)
	router.Get("/unread-count", handler.unreadCount)
	router.Get("/conversations/{partnerID}", handler.conversation)
	router.Post("/conversations/{partnerID}/read", handler.markRead)

	return router
}

// sendMessageRequest defines the expected JSON payload for sending a message.
type sendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

/*
POST /api/v1/messages.

Description: Sends a direct message from the authenticated account.

Request:
  - body: sendMessageRequest

Response:
  - 201: Message: The persisted message
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Recipient not found
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input sendMessageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("recipient_id", input.RecipientID).
		UUID("recipient_id", input.RecipientID).
		Required("body", input.Body).
		MaxLen("body", input.Body, MaxBodyLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.chatService.Send(request.Context(), accountID, input.RecipientID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}

/*
GET /api/v1/messages/conversations/{partnerID}.

Description: Pages through the conversation with a partner, oldest
first, and clears its unread state.

Request:
  - partnerID: string (UUID)

Response:
  - 200: []Message: Paginated conversation
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) conversation(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	partnerID := requestutil.Param(request, "partnerID")
	if partnerID == "" {
		respond.Error(writer, request, apperr.NotFound("Conversation"))
		return
	}

	params := pagination.FromRequest(request)

	messages, total, err := handler.chatService.Conversation(request.Context(), accountID, partnerID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/messages/contacts.

Description: Lists the authenticated account's conversation partners
with unread counts, most recent conversation first.

Response:
  - 200: []Contact: Distinct partners
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) contacts(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contacts, err := handler.chatService.Contacts(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contacts)
}

// unreadCountResponse carries the unread-count payload.
type unreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

/*
GET /api/v1/messages/unread-count.

Description: Returns the number of unread messages addressed to the
authenticated account.

Response:
  - 200: unreadCountResponse: Current unread count
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) unreadCount(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.chatService.UnreadCount(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, unreadCountResponse{UnreadCount: count})
}

/*
POST /api/v1/messages/conversations/{partnerID}/read.

Description: Flags every message from the partner to the authenticated
account as read.

Request:
  - partnerID: string (UUID)

Response:
  - 204: No Content: Conversation marked read
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	partnerID := requestutil.Param(request, "partnerID")
	if partnerID == "" {
		respond.Error(writer, request, apperr.NotFound("Conversation"))
		return
	}

	if err := handler.chatService.MarkRead(request.Context(), accountID, partnerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
