package handlers

import (
	"encoding/json"
	"net/http"

	"neocomm-backend/internal/middleware"
	"neocomm-backend/internal/models"
	"neocomm-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FriendHandler handles friendship-related HTTP requests
type FriendHandler struct {
	friendService *services.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// AddFriendRequest represents the request body for adding a friend.
// The target is resolved by email when given, otherwise by id.
type AddFriendRequest struct {
	Email    string `json:"email,omitempty"`
	FriendID string `json:"friend_id,omitempty"`
}

// AddFriendResponse represents the response body for adding a friend
type AddFriendResponse struct {
	Message    string             `json:"message"`
	Friendship *models.Friendship `json:"friendship"`
}

// AddFriend handles POST /friends/add
func (h *FriendHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	friendship, err := h.friendService.AddFriend(ctx, identity.UserID, req.Email, req.FriendID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Str("email", req.Email).
			Msg("Failed to add friend")
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("friend_id", friendship.FriendID).
		Msg("Friend added")

	respondJSON(w, http.StatusCreated, AddFriendResponse{
		Message:    "Friend added successfully",
		Friendship: friendship,
	})
}

// ListFriends handles GET /friends/{user_id}
func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")

	if userID == "" {
		respondError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	friends, err := h.friendService.ListFriends(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list friends")
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, friends)
}
