package handlers

import (
	"encoding/json"
	"net/http"

	"weight-tracker-backend/internal/services"
)

// WeightHandler handles weight-record HTTP requests
type WeightHandler struct {
	weightService *services.WeightService
}

// NewWeightHandler creates a new weight record handler
func NewWeightHandler(weightService *services.WeightService) *WeightHandler {
	return &WeightHandler{
		weightService: weightService,
	}
}

// ListRecords handles GET /api/users/{user_id}/weight?time_range=
func (h *WeightHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = "all"
	}

	records, err := h.weightService.ListRecords(r.Context(), userID, timeRange)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// AddRecordRequest is the payload for POST /api/users/{user_id}/weight.
// Weight is a pointer so a missing field is distinguishable from zero.
type AddRecordRequest struct {
	Weight *float64 `json:"weight"`
	Date   string   `json:"date"`
}

// AddRecord handles POST /api/users/{user_id}/weight
func (h *WeightHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.weightService.AddRecord(r.Context(), userID, req.Weight, req.Date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// UpdateRecordRequest is the payload for PUT /api/users/{user_id}/weight/{record_id}.
// Both fields are optional; omitted fields are left unchanged.
type UpdateRecordRequest struct {
	Weight *float64 `json:"weight"`
	Date   *string  `json:"date"`
}

// UpdateRecord handles PUT /api/users/{user_id}/weight/{record_id}
func (h *WeightHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	recordID, err := idParam(r, "record_id")
	if err != nil {
		respondError(w, "invalid record id", http.StatusBadRequest)
		return
	}

	var req UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.weightService.UpdateRecord(r.Context(), userID, recordID, req.Weight, req.Date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// DeleteRecord handles DELETE /api/users/{user_id}/weight/{record_id}
func (h *WeightHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	recordID, err := idParam(r, "record_id")
	if err != nil {
		respondError(w, "invalid record id", http.StatusBadRequest)
		return
	}

	if err := h.weightService.DeleteRecord(r.Context(), userID, recordID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "record deleted"})
}
