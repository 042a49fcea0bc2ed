package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/howbusy/backend/internal/domain/entities"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// VenueReader is the read surface of the venue mirror.
type VenueReader interface {
	GetAll() []entities.Venue
	GetByKey(key string) (entities.Venue, error)
}

// VenueHandler handles venue listing and detail requests
type VenueHandler struct {
	store VenueReader
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(store VenueReader) *VenueHandler {
	return &VenueHandler{
		store: store,
	}
}

// ListVenues handles GET /api/venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues := h.store.GetAll()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venues": venues,
		"count":  len(venues),
	})
}

// GetVenue handles GET /api/venues/{key}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "venue key is required")
		return
	}

	venue, err := h.store.GetByKey(key)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, venue)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps typed service errors onto HTTP statuses.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeInvalidInput:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeOutOfRange:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusForbidden, appErr.Message)
		case apperrors.ErrorTypeBackendUnavailable, apperrors.ErrorTypeImageFetch:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
