package providers

import (
	"context"

	"github.com/howbusy/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to venue events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.VenueEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.VenueEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelVenueUpdates is the broadcast channel for all venue updates
	EventChannelVenueUpdates = "venue:updates"

	// EventChannelVenuePrefix is the prefix for venue-specific channels
	EventChannelVenuePrefix = "venue:"
)

// GetVenueChannel returns the channel name for a specific venue
func GetVenueChannel(venueKey string) string {
	return EventChannelVenuePrefix + venueKey
}
