package handlers

import (
	"net/http"

	"github.com/howbusy/backend/internal/domain/providers"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// ImageHandler serves venue images fetched from the blob store
type ImageHandler struct {
	store VenueReader
	blobs providers.BlobProvider
}

// NewImageHandler creates a new image handler
func NewImageHandler(store VenueReader, blobs providers.BlobProvider) *ImageHandler {
	return &ImageHandler{
		store: store,
		blobs: blobs,
	}
}

// GetVenueImage handles GET /api/venues/{key}/image
func (h *ImageHandler) GetVenueImage(w http.ResponseWriter, r *http.Request) {
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
	if venue.ImageURL == "" {
		respondWithAppError(w, apperrors.NewNotFoundError("venue has no image"))
		return
	}

	data, err := h.blobs.Fetch(r.Context(), venue.ImageURL)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}
