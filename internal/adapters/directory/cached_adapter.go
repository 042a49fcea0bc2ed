package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/domain/providers"
)

// CachedAdapter wraps a VenueDirectory with a read-through cache on venue
// reads. Every venue write invalidates, so cached state never outlives a local
// mutation; remote writers are covered by the TTL.
type CachedAdapter struct {
	directory providers.VenueDirectory
	cache     providers.CacheProvider
}

// NewCachedAdapter creates a new cached venue directory adapter.
func NewCachedAdapter(directory providers.VenueDirectory, cache providers.CacheProvider) providers.VenueDirectory {
	return &CachedAdapter{
		directory: directory,
		cache:     cache,
	}
}

// Cache TTLs (in seconds)
const (
	venueByKeyTTL = 60
	venueListTTL  = 30
)

const venueListCacheKey = "venues:list"

func venueCacheKey(key string) string {
	return fmt.Sprintf("venue:%s", key)
}

// GetVenue reads a venue through the cache.
func (a *CachedAdapter) GetVenue(ctx context.Context, key string) (*entities.Venue, error) {
	cacheKey := venueCacheKey(key)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var venue entities.Venue
		if err := json.Unmarshal(cached, &venue); err == nil {
			return &venue, nil
		}
		log.Printf("Failed to unmarshal cached venue %s: %v", key, err)
	}

	venue, err := a.directory.GetVenue(ctx, key)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(venue); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, venueByKeyTTL); err != nil {
			log.Printf("Failed to cache venue %s: %v", key, err)
		}
	}

	return venue, nil
}

// ListVenues reads the venue collection through the cache.
func (a *CachedAdapter) ListVenues(ctx context.Context) ([]*entities.Venue, error) {
	if cached, err := a.cache.Get(ctx, venueListCacheKey); err == nil {
		var venues []*entities.Venue
		if err := json.Unmarshal(cached, &venues); err == nil {
			return venues, nil
		}
		log.Printf("Failed to unmarshal cached venue list: %v", err)
	}

	venues, err := a.directory.ListVenues(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(venues); err == nil {
		if err := a.cache.Set(ctx, venueListCacheKey, data, venueListTTL); err != nil {
			log.Printf("Failed to cache venue list: %v", err)
		}
	}

	return venues, nil
}

func (a *CachedAdapter) invalidateVenue(ctx context.Context, key string) {
	if err := a.cache.Delete(ctx, venueCacheKey(key)); err != nil {
		log.Printf("Failed to invalidate cached venue %s: %v", key, err)
	}
	if err := a.cache.Delete(ctx, venueListCacheKey); err != nil {
		log.Printf("Failed to invalidate cached venue list: %v", err)
	}
}

// SetCapacity writes through and invalidates.
func (a *CachedAdapter) SetCapacity(ctx context.Context, key string, capacity int) error {
	if err := a.directory.SetCapacity(ctx, key, capacity); err != nil {
		return err
	}
	a.invalidateVenue(ctx, key)
	return nil
}

// SetOpenState writes through and invalidates.
func (a *CachedAdapter) SetOpenState(ctx context.Context, key string, open bool, capacity int) error {
	if err := a.directory.SetOpenState(ctx, key, open, capacity); err != nil {
		return err
	}
	a.invalidateVenue(ctx, key)
	return nil
}

// SetAverageRating writes through and invalidates.
func (a *CachedAdapter) SetAverageRating(ctx context.Context, key string, average float64) error {
	if err := a.directory.SetAverageRating(ctx, key, average); err != nil {
		return err
	}
	a.invalidateVenue(ctx, key)
	return nil
}

// PutRating is uncached; ratings feed aggregation, not display reads.
func (a *CachedAdapter) PutRating(ctx context.Context, rating *entities.Rating) error {
	return a.directory.PutRating(ctx, rating)
}

// ListRatings is uncached so recomputation always sees a fresh snapshot.
func (a *CachedAdapter) ListRatings(ctx context.Context, venueKey string) ([]entities.Rating, error) {
	return a.directory.ListRatings(ctx, venueKey)
}

// VenueKeyForStaff passes through; assignments are static reference data.
func (a *CachedAdapter) VenueKeyForStaff(ctx context.Context, email string) (string, error) {
	return a.directory.VenueKeyForStaff(ctx, email)
}

// AddFavourite passes through.
func (a *CachedAdapter) AddFavourite(ctx context.Context, favourite *entities.Favourite) error {
	return a.directory.AddFavourite(ctx, favourite)
}

// RemoveFavourite passes through.
func (a *CachedAdapter) RemoveFavourite(ctx context.Context, userID, venueKey string) error {
	return a.directory.RemoveFavourite(ctx, userID, venueKey)
}

// ListFavourites passes through.
func (a *CachedAdapter) ListFavourites(ctx context.Context, userID string) ([]entities.Favourite, error) {
	return a.directory.ListFavourites(ctx, userID)
}

// HasFavourite passes through.
func (a *CachedAdapter) HasFavourite(ctx context.Context, userID, venueKey string) (bool, error) {
	return a.directory.HasFavourite(ctx, userID, venueKey)
}
