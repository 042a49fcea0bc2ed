package routes

import (
	"net/http"

	"github.com/howbusy/backend/internal/api/handlers"
	"github.com/howbusy/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	venueHandler      *handlers.VenueHandler
	capacityHandler   *handlers.CapacityHandler
	ratingHandler     *handlers.RatingHandler
	favouritesHandler *handlers.FavouritesHandler
	imageHandler      *handlers.ImageHandler
	sseHandler        *handlers.SSEHandler
}

// NewRouter creates a new router
func NewRouter(
	venueHandler *handlers.VenueHandler,
	capacityHandler *handlers.CapacityHandler,
	ratingHandler *handlers.RatingHandler,
	favouritesHandler *handlers.FavouritesHandler,
	imageHandler *handlers.ImageHandler,
	sseHandler *handlers.SSEHandler,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		venueHandler:      venueHandler,
		capacityHandler:   capacityHandler,
		ratingHandler:     ratingHandler,
		favouritesHandler: favouritesHandler,
		imageHandler:      imageHandler,
		sseHandler:        sseHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Venue endpoints
	r.mux.HandleFunc("GET /api/venues", r.venueHandler.ListVenues)
	r.mux.HandleFunc("GET /api/venues/{key}", r.venueHandler.GetVenue)
	r.mux.HandleFunc("GET /api/venues/{key}/image", r.imageHandler.GetVenueImage)

	// Staff endpoints
	r.mux.HandleFunc("POST /api/venues/{key}/capacity", r.capacityHandler.AdjustCapacity)
	r.mux.HandleFunc("POST /api/venues/{key}/status", r.capacityHandler.SetStatus)

	// Rating endpoints
	r.mux.HandleFunc("PUT /api/venues/{key}/ratings/{userID}", r.ratingHandler.SubmitRating)
	r.mux.HandleFunc("GET /api/venues/{key}/ratings/{userID}", r.ratingHandler.GetUserRating)

	// Favourites endpoints
	r.mux.HandleFunc("GET /api/users/{userID}/favourites", r.favouritesHandler.ListFavourites)
	r.mux.HandleFunc("GET /api/users/{userID}/favourites/{venueKey}", r.favouritesHandler.GetFavourite)
	r.mux.HandleFunc("PUT /api/users/{userID}/favourites/{venueKey}", r.favouritesHandler.AddFavourite)
	r.mux.HandleFunc("DELETE /api/users/{userID}/favourites/{venueKey}", r.favouritesHandler.RemoveFavourite)

	// Streaming endpoints
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/venues", r.sseHandler.StreamAllUpdates)
		r.mux.HandleFunc("GET /api/stream/venues/{key}", r.sseHandler.StreamVenueUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// CORS wraps everything so preflights never reach the mux
	handler = middleware.CORSMiddleware(handler)

	return handler
}
