package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/howbusy/backend/internal/adapters/directory"
	"github.com/howbusy/backend/internal/api/handlers"
	"github.com/howbusy/backend/internal/application/services"
	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavouritesHandler(t *testing.T) *handlers.FavouritesHandler {
	t.Helper()
	adapter := directory.NewMemoryAdapter()
	adapter.SeedVenue(sampleVenue("cafe-1", "First Cafe"))
	adapter.SeedVenue(sampleVenue("cafe-2", "Second Cafe"))
	return handlers.NewFavouritesHandler(services.NewFavouritesService(adapter))
}

func favouriteRequest(handler *handlers.FavouritesHandler, method, userID, venueKey string) *httptest.ResponseRecorder {
	path := "/api/users/" + userID + "/favourites"
	if venueKey != "" {
		path += "/" + venueKey
	}
	req := httptest.NewRequest(method, path, nil)
	req.SetPathValue("userID", userID)
	if venueKey != "" {
		req.SetPathValue("venueKey", venueKey)
	}
	rec := httptest.NewRecorder()

	switch {
	case method == "PUT":
		handler.AddFavourite(rec, req)
	case method == "DELETE":
		handler.RemoveFavourite(rec, req)
	case venueKey != "":
		handler.GetFavourite(rec, req)
	default:
		handler.ListFavourites(rec, req)
	}
	return rec
}

type listFavouritesResponse struct {
	Favourites []entities.Favourite `json:"favourites"`
	Count      int                  `json:"count"`
}

func TestFavouritesHandler_AddAndList(t *testing.T) {
	handler := newFavouritesHandler(t)

	rec := favouriteRequest(handler, "PUT", "user-1", "cafe-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = favouriteRequest(handler, "GET", "user-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp listFavouritesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Favourites, 1)
	assert.Equal(t, "cafe-1", resp.Favourites[0].VenueKey)
	assert.Equal(t, "First Cafe", resp.Favourites[0].Title)
}

func TestFavouritesHandler_AddUnknownVenue(t *testing.T) {
	handler := newFavouritesHandler(t)

	rec := favouriteRequest(handler, "PUT", "user-1", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavouritesHandler_GetFavourite(t *testing.T) {
	handler := newFavouritesHandler(t)

	rec := favouriteRequest(handler, "PUT", "user-1", "cafe-1")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = favouriteRequest(handler, "GET", "user-1", "cafe-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["favourite"])

	rec = favouriteRequest(handler, "GET", "user-1", "cafe-2")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, false, resp["favourite"])
}

func TestFavouritesHandler_Remove(t *testing.T) {
	handler := newFavouritesHandler(t)

	rec := favouriteRequest(handler, "PUT", "user-1", "cafe-1")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = favouriteRequest(handler, "DELETE", "user-1", "cafe-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Removing again is still a success.
	rec = favouriteRequest(handler, "DELETE", "user-1", "cafe-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = favouriteRequest(handler, "GET", "user-1", "")
	var resp listFavouritesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Count)
}

func TestFavouritesHandler_ReservedVenueKey(t *testing.T) {
	handler := newFavouritesHandler(t)

	rec := favouriteRequest(handler, "PUT", "user-1", entities.DecoyVenueKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
