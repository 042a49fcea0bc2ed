package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/domain/providers"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// CapacityService applies validated occupancy and open/close mutations for
// venue staff and writes them through to the directory. Validation and
// authorization happen locally before any backend write; the directory remains
// the final arbiter under concurrent writers (last write wins).
type CapacityService struct {
	directory providers.VenueDirectory
	eventBus  providers.EventBus

	// Serializes this client's writes so the directory observes them in
	// submission order.
	mu sync.Mutex
}

// NewCapacityService creates a new capacity service.
func NewCapacityService(directory providers.VenueDirectory) *CapacityService {
	return &CapacityService{directory: directory}
}

// SetEventBus enables publishing of capacity and status events.
func (s *CapacityService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// authorize resolves the caller's staff assignment and requires it to match
// the target venue exactly.
func (s *CapacityService) authorize(ctx context.Context, staffEmail, venueKey string) error {
	if staffEmail == "" {
		return apperrors.NewUnauthorizedError("staff email is required")
	}
	assigned, err := s.directory.VenueKeyForStaff(ctx, staffEmail)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return apperrors.NewUnauthorizedError(fmt.Sprintf("%s has no staff assignment", staffEmail))
		}
		return err
	}
	if assigned != venueKey {
		return apperrors.NewUnauthorizedError(fmt.Sprintf("%s is not assigned to venue %s", staffEmail, venueKey))
	}
	return nil
}

// AdjustCapacity applies a bounded occupancy delta to an open venue and
// returns the new capacity. A delta whose unclamped result would land outside
// [0, maxCapacity] is rejected whole with OutOfRange: the staff UI pre-disables
// over- and underflowing actions, so a silently clamped write would hide a
// client bug.
func (s *CapacityService) AdjustCapacity(ctx context.Context, staffEmail, venueKey string, delta int) (int, error) {
	if delta == 0 {
		return 0, apperrors.NewInvalidInputError("capacity delta must be non-zero")
	}
	if err := s.authorize(ctx, staffEmail, venueKey); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	venue, err := s.directory.GetVenue(ctx, venueKey)
	if err != nil {
		return 0, err
	}
	if !venue.Open {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("venue %s is closed", venueKey))
	}

	newCapacity := venue.Capacity + delta
	if newCapacity < 0 || newCapacity > venue.MaxCapacity {
		return 0, apperrors.NewOutOfRangeError(fmt.Sprintf(
			"capacity %d%+d outside [0, %d]", venue.Capacity, delta, venue.MaxCapacity))
	}

	if err := s.directory.SetCapacity(ctx, venueKey, newCapacity); err != nil {
		return 0, err
	}

	s.publish(ctx, entities.NewVenueEvent(venueKey, entities.VenueEventTypeCapacityUpdate, map[string]interface{}{
		"capacity": newCapacity,
	}))

	return newCapacity, nil
}

// SetOpen transitions a venue between open and closed. Closing forces
// capacity to zero in the same write; opening leaves capacity at zero for
// staff to re-populate.
func (s *CapacityService) SetOpen(ctx context.Context, staffEmail, venueKey string, isOpen bool) error {
	if err := s.authorize(ctx, staffEmail, venueKey); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	venue, err := s.directory.GetVenue(ctx, venueKey)
	if err != nil {
		return err
	}
	if venue.Open == isOpen {
		return nil
	}

	if err := s.directory.SetOpenState(ctx, venueKey, isOpen, 0); err != nil {
		return err
	}

	s.publish(ctx, entities.NewVenueEvent(venueKey, entities.VenueEventTypeStatusUpdate, map[string]interface{}{
		"open":     isOpen,
		"capacity": 0,
	}))

	return nil
}

func (s *CapacityService) publish(ctx context.Context, event *entities.VenueEvent) {
	if s.eventBus == nil {
		return
	}
	for _, channel := range []string{providers.EventChannelVenueUpdates, providers.GetVenueChannel(event.VenueKey)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Printf("Warning: failed to publish %s event for venue %s: %v", event.EventType, event.VenueKey, err)
		}
	}
}
