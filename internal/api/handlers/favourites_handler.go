package handlers

import (
	"context"
	"net/http"

	"github.com/howbusy/backend/internal/domain/entities"
)

// FavouritesManager defines the interface for favourites operations
type FavouritesManager interface {
	Add(ctx context.Context, userID, venueKey string) error
	Remove(ctx context.Context, userID, venueKey string) error
	List(ctx context.Context, userID string) ([]entities.Favourite, error)
	IsFavourite(ctx context.Context, userID, venueKey string) (bool, error)
}

// FavouritesHandler handles per-user favourites requests
type FavouritesHandler struct {
	service FavouritesManager
}

// NewFavouritesHandler creates a new favourites handler
func NewFavouritesHandler(service FavouritesManager) *FavouritesHandler {
	return &FavouritesHandler{
		service: service,
	}
}

// ListFavourites handles GET /api/users/{userID}/favourites
func (h *FavouritesHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	favourites, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"favourites": favourites,
		"count":      len(favourites),
	})
}

// GetFavourite handles GET /api/users/{userID}/favourites/{venueKey}
func (h *FavouritesHandler) GetFavourite(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	venueKey := r.PathValue("venueKey")
	if userID == "" || venueKey == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and venue key are required")
		return
	}

	favourite, err := h.service.IsFavourite(r.Context(), userID, venueKey)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   userID,
		"venue_key": venueKey,
		"favourite": favourite,
	})
}

// AddFavourite handles PUT /api/users/{userID}/favourites/{venueKey}
func (h *FavouritesHandler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	venueKey := r.PathValue("venueKey")
	if userID == "" || venueKey == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and venue key are required")
		return
	}

	if err := h.service.Add(r.Context(), userID, venueKey); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavourite handles DELETE /api/users/{userID}/favourites/{venueKey}
func (h *FavouritesHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	venueKey := r.PathValue("venueKey")
	if userID == "" || venueKey == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and venue key are required")
		return
	}

	if err := h.service.Remove(r.Context(), userID, venueKey); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
