package handlers

import (
	"encoding/json"
	"net/http"

	"neocomm-backend/internal/middleware"
	"neocomm-backend/internal/models"
	"neocomm-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles auth and profile HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse represents the response body for signup
type SignupResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// Signup handles POST /auth/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up user")
		respondAppError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User created")
	respondJSON(w, http.StatusCreated, SignupResponse{Message: "User created", User: user})
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the response body for login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to log in user")
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}

// GetProfile handles GET /profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	profile, err := h.userService.Profile(ctx, identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to fetch profile")
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// UpdateProfile handles PUT /profile/update
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.userService.UpdateProfile(ctx, identity.UserID, req.Username, req.Status)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to update profile")
		respondAppError(w, err)
		return
	}

	log.Info().Str("user_id", identity.UserID).Msg("Profile updated")
	respondJSON(w, http.StatusOK, profile)
}
