package services

import (
	"context"
	"log"
	"time"

	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/domain/providers"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// FavouritesService maintains each user's set of favourited venues. Add and
// remove are idempotent; listings never include the reserved decoy entry.
type FavouritesService struct {
	directory providers.VenueDirectory
	eventBus  providers.EventBus
}

// NewFavouritesService creates a new favourites service.
func NewFavouritesService(directory providers.VenueDirectory) *FavouritesService {
	return &FavouritesService{directory: directory}
}

// SetEventBus enables publishing of favourite events.
func (s *FavouritesService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

func validateMembership(userID, venueKey string) error {
	if userID == "" {
		return apperrors.NewInvalidInputError("user id is required")
	}
	if venueKey == "" {
		return apperrors.NewInvalidInputError("venue key is required")
	}
	if venueKey == entities.DecoyVenueKey {
		return apperrors.NewInvalidInputError("venue key is reserved")
	}
	return nil
}

// Add favourites a venue for a user. Adding an existing member succeeds
// without effect.
func (s *FavouritesService) Add(ctx context.Context, userID, venueKey string) error {
	if err := validateMembership(userID, venueKey); err != nil {
		return err
	}

	// Denormalize the title for display, and reject unknown venues.
	venue, err := s.directory.GetVenue(ctx, venueKey)
	if err != nil {
		return err
	}

	favourite := &entities.Favourite{
		UserID:    userID,
		VenueKey:  venueKey,
		Title:     venue.Title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.directory.AddFavourite(ctx, favourite); err != nil {
		return err
	}

	s.publish(ctx, entities.NewVenueEvent(venueKey, entities.VenueEventTypeFavouriteUpdate, map[string]interface{}{
		"user_id":   userID,
		"favourite": true,
	}))

	return nil
}

// Remove unfavourites a venue for a user. Removing a non-member succeeds
// without effect.
func (s *FavouritesService) Remove(ctx context.Context, userID, venueKey string) error {
	if err := validateMembership(userID, venueKey); err != nil {
		return err
	}

	if err := s.directory.RemoveFavourite(ctx, userID, venueKey); err != nil {
		return err
	}

	s.publish(ctx, entities.NewVenueEvent(venueKey, entities.VenueEventTypeFavouriteUpdate, map[string]interface{}{
		"user_id":   userID,
		"favourite": false,
	}))

	return nil
}

// List returns a user's favourites with the reserved decoy entry filtered
// out, regardless of what the backend holds.
func (s *FavouritesService) List(ctx context.Context, userID string) ([]entities.Favourite, error) {
	if userID == "" {
		return nil, apperrors.NewInvalidInputError("user id is required")
	}

	all, err := s.directory.ListFavourites(ctx, userID)
	if err != nil {
		return nil, err
	}

	favourites := make([]entities.Favourite, 0, len(all))
	for _, f := range all {
		if f.VenueKey == entities.DecoyVenueKey {
			continue
		}
		favourites = append(favourites, f)
	}
	return favourites, nil
}

// IsFavourite checks one membership. The decoy entry is never a favourite.
func (s *FavouritesService) IsFavourite(ctx context.Context, userID, venueKey string) (bool, error) {
	if userID == "" || venueKey == "" || venueKey == entities.DecoyVenueKey {
		return false, nil
	}
	return s.directory.HasFavourite(ctx, userID, venueKey)
}

func (s *FavouritesService) publish(ctx context.Context, event *entities.VenueEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.GetVenueChannel(event.VenueKey), event); err != nil {
		log.Printf("Warning: failed to publish %s event for venue %s: %v", event.EventType, event.VenueKey, err)
	}
}
