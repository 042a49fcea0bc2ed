package entities

import (
	"math"
	"time"
)

const (
	// MinStars and MaxStars bound a single rating submission.
	MinStars = 1
	MaxStars = 5

	// DecoyRatingKey is the reserved per-venue placeholder some deployed
	// directories keep so the ratings collection never empties out. It
	// carries no user opinion and is excluded from every aggregation.
	DecoyRatingKey = "decoyRatingKey"

	// UnratedSentinel is the average published for a venue with no ratings.
	UnratedSentinel = 0.0
)

// Rating is one user's star rating of one venue. Resubmitting overwrites the
// previous value for the same (venue, user) pair.
type Rating struct {
	VenueKey  string    `json:"venue_key" db:"venue_key"`
	UserID    string    `json:"user_id" db:"user_id"`
	Stars     float64   `json:"stars" db:"stars"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidStars reports whether stars is an integral value within [MinStars, MaxStars].
func ValidStars(stars float64) bool {
	return stars == math.Trunc(stars) && stars >= MinStars && stars <= MaxStars
}

// RoundAverage rounds a raw mean to one decimal place, half away from zero:
// multiply by ten, round, divide by ten. The directory stores exactly this
// value, so the rule must not drift to banker's rounding.
func RoundAverage(raw float64) float64 {
	return math.Round(raw*10) / 10
}

// AverageStars computes the published average over a rating set. Decoy entries
// are skipped; an empty (or decoy-only) set yields UnratedSentinel.
func AverageStars(ratings []Rating) float64 {
	var total float64
	var count int
	for _, r := range ratings {
		if r.UserID == DecoyRatingKey {
			continue
		}
		total += r.Stars
		count++
	}
	if count == 0 {
		return UnratedSentinel
	}
	return RoundAverage(total / float64(count))
}
