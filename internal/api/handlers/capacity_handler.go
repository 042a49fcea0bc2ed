package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// StaffEmailHeader carries the caller's staff identity. Auth flows proper are
// out of scope; assignment checks happen in the service.
const StaffEmailHeader = "X-Staff-Email"

// CapacityWriter defines the interface for staff capacity operations
type CapacityWriter interface {
	AdjustCapacity(ctx context.Context, staffEmail, venueKey string, delta int) (int, error)
	SetOpen(ctx context.Context, staffEmail, venueKey string, isOpen bool) error
}

// CapacityHandler handles staff capacity and open/close requests
type CapacityHandler struct {
	service CapacityWriter
}

// NewCapacityHandler creates a new capacity handler
func NewCapacityHandler(service CapacityWriter) *CapacityHandler {
	return &CapacityHandler{
		service: service,
	}
}

type adjustCapacityRequest struct {
	Delta int `json:"delta"`
}

type setStatusRequest struct {
	Open bool `json:"open"`
}

// AdjustCapacity handles POST /api/venues/{key}/capacity
func (h *CapacityHandler) AdjustCapacity(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "venue key is required")
		return
	}

	var req adjustCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	capacity, err := h.service.AdjustCapacity(r.Context(), r.Header.Get(StaffEmailHeader), key, req.Delta)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venue_key": key,
		"capacity":  capacity,
	})
}

// SetStatus handles POST /api/venues/{key}/status
func (h *CapacityHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "venue key is required")
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.SetOpen(r.Context(), r.Header.Get(StaffEmailHeader), key, req.Open); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venue_key": key,
		"open":      req.Open,
	})
}
