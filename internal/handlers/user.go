package handlers

import (
	"encoding/json"
	"net/http"

	"weight-tracker-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// CreateUserRequest is the payload for POST /api/users
type CreateUserRequest struct {
	Name string `json:"name"`
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("name", user.Name).
		Msg("User created")

	respondJSON(w, http.StatusCreated, user)
}

// DeleteUser handles DELETE /api/users/{user_id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("User deleted")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "user deleted"})
}
