package entities

import (
	"time"

	"github.com/google/uuid"
)

// VenueEventType represents the type of venue event
type VenueEventType string

const (
	VenueEventTypeCapacityUpdate  VenueEventType = "capacity_update"
	VenueEventTypeStatusUpdate    VenueEventType = "status_update"
	VenueEventTypeRatingUpdate    VenueEventType = "rating_update"
	VenueEventTypeFavouriteUpdate VenueEventType = "favourite_update"
)

// VenueEvent represents a real-time update event for a venue. Consumers react
// to delivered events instead of waiting a fixed duration for remote state to
// settle.
type VenueEvent struct {
	ID            string                 `json:"id"`
	VenueKey      string                 `json:"venue_key"`
	EventType     VenueEventType         `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields"`
}

// NewVenueEvent creates a new venue event
func NewVenueEvent(venueKey string, eventType VenueEventType, changedFields map[string]interface{}) *VenueEvent {
	return &VenueEvent{
		ID:            uuid.NewString(),
		VenueKey:      venueKey,
		EventType:     eventType,
		Timestamp:     time.Now().UTC(),
		ChangedFields: changedFields,
	}
}
