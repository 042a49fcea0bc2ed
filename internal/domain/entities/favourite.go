package entities

import "time"

// DecoyVenueKey is the reserved per-user favourites placeholder some deployed
// directories still hold to keep the collection from emptying out. It never
// appears in listings.
const DecoyVenueKey = "decoyVenueKey"

// Favourite records one user's favourited venue. Title is denormalized from
// the venue record purely for display.
type Favourite struct {
	UserID    string    `json:"user_id" db:"user_id"`
	VenueKey  string    `json:"venue_key" db:"venue_key"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
