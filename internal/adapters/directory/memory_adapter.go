package directory

import (
	"context"
	"fmt"
	"sync"

	"github.com/howbusy/backend/internal/domain/entities"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// MemoryAdapter is an in-memory VenueDirectory for tests and local
// development. It keeps insertion order for listings, like the backends it
// stands in for.
type MemoryAdapter struct {
	mu         sync.RWMutex
	order      []string
	venues     map[string]*entities.Venue
	ratings    map[string]map[string]entities.Rating   // venueKey -> userID -> rating
	staff      map[string]string                       // email -> venueKey
	favourites map[string]map[string]entities.Favourite // userID -> venueKey -> favourite
	favOrder   map[string][]string

	// FailWrites makes every mutation fail, for exercising backend outages.
	FailWrites bool
}

// NewMemoryAdapter creates an empty in-memory venue directory.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		venues:     make(map[string]*entities.Venue),
		ratings:    make(map[string]map[string]entities.Rating),
		staff:      make(map[string]string),
		favourites: make(map[string]map[string]entities.Favourite),
		favOrder:   make(map[string][]string),
	}
}

// SeedVenue inserts or replaces a venue record.
func (a *MemoryAdapter) SeedVenue(venue *entities.Venue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.venues[venue.Key]; !exists {
		a.order = append(a.order, venue.Key)
	}
	copied := *venue
	a.venues[venue.Key] = &copied
}

// SeedStaff assigns a staff email to a venue key.
func (a *MemoryAdapter) SeedStaff(email, venueKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.staff[email] = venueKey
}

func (a *MemoryAdapter) writeErr() error {
	if a.FailWrites {
		return apperrors.NewBackendUnavailableError("directory write failed", fmt.Errorf("simulated outage"))
	}
	return nil
}

// ListVenues returns venues in insertion order.
func (a *MemoryAdapter) ListVenues(ctx context.Context) ([]*entities.Venue, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	venues := make([]*entities.Venue, 0, len(a.order))
	for _, key := range a.order {
		copied := *a.venues[key]
		venues = append(venues, &copied)
	}
	return venues, nil
}

// GetVenue returns a copy of the stored venue record.
func (a *MemoryAdapter) GetVenue(ctx context.Context, key string) (*entities.Venue, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	venue, ok := a.venues[key]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}
	copied := *venue
	return &copied, nil
}

// SetCapacity writes a venue's current occupancy.
func (a *MemoryAdapter) SetCapacity(ctx context.Context, key string, capacity int) error {
	if err := a.writeErr(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	venue, ok := a.venues[key]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}
	venue.Capacity = capacity
	return nil
}

// SetOpenState writes the open flag and capacity together.
func (a *MemoryAdapter) SetOpenState(ctx context.Context, key string, open bool, capacity int) error {
	if err := a.writeErr(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	venue, ok := a.venues[key]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}
	venue.Open = open
	venue.Capacity = capacity
	return nil
}

// SetAverageRating publishes a recomputed average onto the venue record.
func (a *MemoryAdapter) SetAverageRating(ctx context.Context, key string, average float64) error {
	if err := a.writeErr(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	venue, ok := a.venues[key]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}
	venue.AverageRating = average
	return nil
}

// PutRating upserts one user's rating of one venue.
func (a *MemoryAdapter) PutRating(ctx context.Context, rating *entities.Rating) error {
	if err := a.writeErr(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.venues[rating.VenueKey]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", rating.VenueKey))
	}
	byUser, ok := a.ratings[rating.VenueKey]
	if !ok {
		byUser = make(map[string]entities.Rating)
		a.ratings[rating.VenueKey] = byUser
	}
	byUser[rating.UserID] = *rating
	return nil
}

// ListRatings reads every rating on record for a venue, decoys included.
func (a *MemoryAdapter) ListRatings(ctx context.Context, venueKey string) ([]entities.Rating, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	byUser := a.ratings[venueKey]
	ratings := make([]entities.Rating, 0, len(byUser))
	for _, r := range byUser {
		ratings = append(ratings, r)
	}
	return ratings, nil
}

// VenueKeyForStaff resolves a staff email to its assigned venue key.
func (a *MemoryAdapter) VenueKeyForStaff(ctx context.Context, email string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	venueKey, ok := a.staff[email]
	if !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("no staff assignment for %s", email))
	}
	return venueKey, nil
}

// AddFavourite records a favourite; adding an existing member is a no-op.
func (a *MemoryAdapter) AddFavourite(ctx context.Context, favourite *entities.Favourite) error {
	if err := a.writeErr(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	byVenue, ok := a.favourites[favourite.UserID]
	if !ok {
		byVenue = make(map[string]entities.Favourite)
		a.favourites[favourite.UserID] = byVenue
	}
	if _, exists := byVenue[favourite.VenueKey]; exists {
		return nil
	}
	byVenue[favourite.VenueKey] = *favourite
	a.favOrder[favourite.UserID] = append(a.favOrder[favourite.UserID], favourite.VenueKey)
	return nil
}

// RemoveFavourite deletes a favourite; removing a non-member is a no-op.
func (a *MemoryAdapter) RemoveFavourite(ctx context.Context, userID, venueKey string) error {
	if err := a.writeErr(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	byVenue, ok := a.favourites[userID]
	if !ok {
		return nil
	}
	if _, exists := byVenue[venueKey]; !exists {
		return nil
	}
	delete(byVenue, venueKey)
	order := a.favOrder[userID]
	for i, key := range order {
		if key == venueKey {
			a.favOrder[userID] = append(order[:i], order[i+1:]...)
			break
		}
	}
	return nil
}

// ListFavourites reads a user's favourites, decoys included.
func (a *MemoryAdapter) ListFavourites(ctx context.Context, userID string) ([]entities.Favourite, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	order := a.favOrder[userID]
	favourites := make([]entities.Favourite, 0, len(order))
	for _, key := range order {
		favourites = append(favourites, a.favourites[userID][key])
	}
	return favourites, nil
}

// HasFavourite checks a single membership.
func (a *MemoryAdapter) HasFavourite(ctx context.Context, userID, venueKey string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.favourites[userID][venueKey]
	return ok, nil
}
