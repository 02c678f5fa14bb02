package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"weight-tracker-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain confirmation response
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to the right status code.
// Validation and duplicate errors are client faults; unknown errors are
// reported without their internals.
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *services.ValidationError
		duplicateErr  *services.DuplicateError
		notFoundErr   *services.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &duplicateErr):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		respondError(w, err.Error(), http.StatusNotFound)
	default:
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}

// idParam parses a numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
