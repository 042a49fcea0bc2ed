package entities

import (
	"fmt"
	"math"
	"time"

	apperrors "github.com/howbusy/backend/pkg/errors"
)

// Weekdays lists opening-hours keys in display order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Venue represents a single venue record mirrored from the directory backend.
type Venue struct {
	Key           string            `json:"key" db:"key"`
	Title         string            `json:"title" db:"title"`
	Description   string            `json:"description" db:"description"`
	Address       string            `json:"address" db:"address"`
	Phone         string            `json:"phone" db:"phone"`
	Email         string            `json:"email" db:"email"`
	Location      Location          `json:"location" db:"-"`
	OpeningHours  map[string]string `json:"opening_hours" db:"-"`
	Open          bool              `json:"open" db:"open"`
	Capacity      int               `json:"capacity" db:"capacity"`
	MaxCapacity   int               `json:"max_capacity" db:"max_capacity"`
	AverageRating float64           `json:"average_rating" db:"average_rating"`
	ImageURL      string            `json:"image_url" db:"image_url"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Validate checks the fields every venue record must carry before it may enter
// the local mirror. Partially populated remote documents fail here and are
// skipped by the ingestion boundary instead of crashing consumers.
func (v *Venue) Validate() error {
	if v.Key == "" {
		return errMissingField("key")
	}
	if v.Title == "" {
		return errMissingField("title")
	}
	if v.MaxCapacity <= 0 {
		return errMissingField("max_capacity")
	}
	if v.Capacity < 0 || v.Capacity > v.MaxCapacity {
		return errCapacityBounds(v.Capacity, v.MaxCapacity)
	}
	if !v.Open && v.Capacity != 0 {
		return errClosedNonZero(v.Capacity)
	}
	return nil
}

func errMissingField(field string) error {
	return apperrors.NewInvalidInputError(fmt.Sprintf("venue record is missing required field %q", field))
}

func errCapacityBounds(capacity, maxCapacity int) error {
	return apperrors.NewInvalidInputError(fmt.Sprintf("capacity %d outside [0, %d]", capacity, maxCapacity))
}

func errClosedNonZero(capacity int) error {
	return apperrors.NewInvalidInputError(fmt.Sprintf("closed venue reports capacity %d, want 0", capacity))
}

// CapacityPercent returns current occupancy as a whole percentage of the
// venue's ceiling. Closed venues report zero.
func (v *Venue) CapacityPercent() int {
	if !v.Open || v.MaxCapacity <= 0 {
		return 0
	}
	return int(math.Round(float64(v.Capacity*100) / float64(v.MaxCapacity)))
}

// Unrated reports whether the venue carries the unrated sentinel. Display
// layers render this as "unrated" rather than "0.0".
func (v *Venue) Unrated() bool {
	return v.AverageRating == 0.0
}
