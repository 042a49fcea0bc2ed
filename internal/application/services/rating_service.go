package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/domain/providers"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// RatingService merges per-user star submissions into a venue's published
// average. One rating exists per (venue, user); resubmission overwrites.
type RatingService struct {
	directory providers.VenueDirectory
	eventBus  providers.EventBus

	// Serializes submit/recompute so a recomputation always reads the rating
	// set at a single point in time relative to this client's own writes.
	mu sync.Mutex
}

// NewRatingService creates a new rating service.
func NewRatingService(directory providers.VenueDirectory) *RatingService {
	return &RatingService{directory: directory}
}

// SetEventBus enables publishing of rating events.
func (s *RatingService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SubmitRating upserts one user's rating and returns the recomputed average.
func (s *RatingService) SubmitRating(ctx context.Context, venueKey, userID string, stars float64) (float64, error) {
	if userID == "" {
		return 0, apperrors.NewInvalidInputError("user id is required")
	}
	if userID == entities.DecoyRatingKey {
		return 0, apperrors.NewInvalidInputError("user id is reserved")
	}
	if !entities.ValidStars(stars) {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf(
			"stars must be a whole number between %d and %d, got %v", entities.MinStars, entities.MaxStars, stars))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rating := &entities.Rating{
		VenueKey:  venueKey,
		UserID:    userID,
		Stars:     stars,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.directory.PutRating(ctx, rating); err != nil {
		return 0, err
	}

	average, err := s.recomputeLocked(ctx, venueKey)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, entities.NewVenueEvent(venueKey, entities.VenueEventTypeRatingUpdate, map[string]interface{}{
		"user_id":        userID,
		"stars":          stars,
		"average_rating": average,
	}))

	return average, nil
}

// Recompute re-reads the venue's full rating set and publishes the rounded
// mean onto the venue record. With no non-decoy ratings on record the unrated
// sentinel 0.0 is written; display layers render that as "unrated".
func (s *RatingService) Recompute(ctx context.Context, venueKey string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeLocked(ctx, venueKey)
}

func (s *RatingService) recomputeLocked(ctx context.Context, venueKey string) (float64, error) {
	// Single consistent read of the whole rating set; the mean is computed
	// from this snapshot only.
	ratings, err := s.directory.ListRatings(ctx, venueKey)
	if err != nil {
		return 0, err
	}

	average := entities.AverageStars(ratings)
	if err := s.directory.SetAverageRating(ctx, venueKey, average); err != nil {
		return 0, err
	}

	return average, nil
}

// UserRating returns the caller's own rating of a venue, if any. Display
// layers use it to pre-light the star row.
func (s *RatingService) UserRating(ctx context.Context, venueKey, userID string) (*entities.Rating, error) {
	ratings, err := s.directory.ListRatings(ctx, venueKey)
	if err != nil {
		return nil, err
	}
	for i := range ratings {
		if ratings[i].UserID == userID {
			return &ratings[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no rating by %s for venue %s", userID, venueKey))
}

func (s *RatingService) publish(ctx context.Context, event *entities.VenueEvent) {
	if s.eventBus == nil {
		return
	}
	for _, channel := range []string{providers.EventChannelVenueUpdates, providers.GetVenueChannel(event.VenueKey)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Printf("Warning: failed to publish %s event for venue %s: %v", event.EventType, event.VenueKey, err)
		}
	}
}
