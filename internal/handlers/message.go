package handlers

import (
	"encoding/json"
	"net/http"

	"neocomm-backend/internal/middleware"
	"neocomm-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles message-related HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// SendMessage handles POST /messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.messageService.Send(ctx, identity.UserID, req.ReceiverID, req.Content)
	if err != nil {
		log.Error().
			Err(err).
			Str("sender_id", identity.UserID).
			Str("receiver_id", req.ReceiverID).
			Msg("Failed to send message")
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("message_id", msg.ID).
		Str("sender_id", msg.SenderID).
		Str("receiver_id", msg.ReceiverID).
		Msg("Message sent")

	respondJSON(w, http.StatusCreated, msg)
}

// GetConversation handles GET /messages/{friend_id}
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)
	friendID := chi.URLParam(r, "friend_id")

	if friendID == "" {
		respondError(w, "friend_id is required", http.StatusBadRequest)
		return
	}

	messages, err := h.messageService.Conversation(ctx, identity.UserID, friendID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Str("friend_id", friendID).
			Msg("Failed to fetch conversation")
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, messages)
}
