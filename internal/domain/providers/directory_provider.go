package providers

import (
	"context"

	"github.com/howbusy/backend/internal/domain/entities"
)

// VenueDirectory is the external venue directory backend: the authoritative,
// eventually-consistent store of venue records, ratings, staff assignments and
// per-user favourites. The aggregation core issues validated writes against it
// and mirrors whatever it reports back; it never assumes read-after-write
// consistency across clients.
type VenueDirectory interface {
	// ListVenues reads the full venue collection in backend order.
	ListVenues(ctx context.Context) ([]*entities.Venue, error)

	// GetVenue reads a single venue record.
	GetVenue(ctx context.Context, key string) (*entities.Venue, error)

	// SetCapacity writes a venue's current occupancy.
	SetCapacity(ctx context.Context, key string, capacity int) error

	// SetOpenState writes a venue's open flag and capacity together, so a
	// close is observed as open=false, capacity=0 in one write.
	SetOpenState(ctx context.Context, key string, open bool, capacity int) error

	// SetAverageRating publishes a recomputed average onto the venue record.
	SetAverageRating(ctx context.Context, key string, average float64) error

	// PutRating upserts one user's rating of one venue.
	PutRating(ctx context.Context, rating *entities.Rating) error

	// ListRatings reads every rating on record for a venue, decoys included.
	ListRatings(ctx context.Context, venueKey string) ([]entities.Rating, error)

	// VenueKeyForStaff resolves a staff email to its assigned venue key.
	VenueKeyForStaff(ctx context.Context, email string) (string, error)

	// AddFavourite records a favourite; adding an existing member is a no-op.
	AddFavourite(ctx context.Context, favourite *entities.Favourite) error

	// RemoveFavourite deletes a favourite; removing a non-member is a no-op.
	RemoveFavourite(ctx context.Context, userID, venueKey string) error

	// ListFavourites reads a user's favourites, decoys included.
	ListFavourites(ctx context.Context, userID string) ([]entities.Favourite, error)

	// HasFavourite checks a single membership.
	HasFavourite(ctx context.Context, userID, venueKey string) (bool, error)
}
