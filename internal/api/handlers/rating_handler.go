package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/howbusy/backend/internal/domain/entities"
)

// RatingWriter defines the interface for rating operations
type RatingWriter interface {
	SubmitRating(ctx context.Context, venueKey, userID string, stars float64) (float64, error)
	UserRating(ctx context.Context, venueKey, userID string) (*entities.Rating, error)
}

// RatingHandler handles rating submission and lookup requests
type RatingHandler struct {
	service RatingWriter
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(service RatingWriter) *RatingHandler {
	return &RatingHandler{
		service: service,
	}
}

type submitRatingRequest struct {
	Stars float64 `json:"stars"`
}

// SubmitRating handles PUT /api/venues/{key}/ratings/{userID}
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	userID := r.PathValue("userID")
	if key == "" || userID == "" {
		respondWithError(w, http.StatusBadRequest, "venue key and user ID are required")
		return
	}

	var req submitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	average, err := h.service.SubmitRating(r.Context(), key, userID, req.Stars)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venue_key":      key,
		"user_id":        userID,
		"stars":          req.Stars,
		"average_rating": average,
	})
}

// GetUserRating handles GET /api/venues/{key}/ratings/{userID}
func (h *RatingHandler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	userID := r.PathValue("userID")
	if key == "" || userID == "" {
		respondWithError(w, http.StatusBadRequest, "venue key and user ID are required")
		return
	}

	rating, err := h.service.UserRating(r.Context(), key, userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}
