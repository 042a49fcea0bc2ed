package directory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/howbusy/backend/internal/adapters/directory"
	"github.com/howbusy/backend/internal/domain/entities"
	apperrors "github.com/howbusy/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-memory CacheProvider; TTLs are ignored.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("cache miss for %s", key))
	}
	return data, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *mapCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func seedVenue(key, title string, capacity int) *entities.Venue {
	return &entities.Venue{
		Key:         key,
		Title:       title,
		Open:        true,
		Capacity:    capacity,
		MaxCapacity: 50,
	}
}

func TestCachedAdapter_GetVenue_ServesFromCache(t *testing.T) {
	backing := directory.NewMemoryAdapter()
	backing.SeedVenue(seedVenue("cafe-1", "First Cafe", 10))
	cached := directory.NewCachedAdapter(backing, newMapCache())
	ctx := context.Background()

	venue, err := cached.GetVenue(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Equal(t, 10, venue.Capacity)

	// Mutate behind the cache's back; the cached copy is served until
	// invalidation or TTL.
	require.NoError(t, backing.SetCapacity(ctx, "cafe-1", 25))
	venue, err = cached.GetVenue(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Equal(t, 10, venue.Capacity)
}

func TestCachedAdapter_SetCapacity_Invalidates(t *testing.T) {
	backing := directory.NewMemoryAdapter()
	backing.SeedVenue(seedVenue("cafe-1", "First Cafe", 10))
	cached := directory.NewCachedAdapter(backing, newMapCache())
	ctx := context.Background()

	_, err := cached.GetVenue(ctx, "cafe-1")
	require.NoError(t, err)
	_, err = cached.ListVenues(ctx)
	require.NoError(t, err)

	require.NoError(t, cached.SetCapacity(ctx, "cafe-1", 25))

	venue, err := cached.GetVenue(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Equal(t, 25, venue.Capacity)

	venues, err := cached.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, 25, venues[0].Capacity)
}

func TestCachedAdapter_SetOpenState_Invalidates(t *testing.T) {
	backing := directory.NewMemoryAdapter()
	backing.SeedVenue(seedVenue("cafe-1", "First Cafe", 10))
	cached := directory.NewCachedAdapter(backing, newMapCache())
	ctx := context.Background()

	_, err := cached.GetVenue(ctx, "cafe-1")
	require.NoError(t, err)

	require.NoError(t, cached.SetOpenState(ctx, "cafe-1", false, 0))

	venue, err := cached.GetVenue(ctx, "cafe-1")
	require.NoError(t, err)
	assert.False(t, venue.Open)
	assert.Equal(t, 0, venue.Capacity)
}

func TestCachedAdapter_GetVenue_MissPassesThrough(t *testing.T) {
	backing := directory.NewMemoryAdapter()
	cached := directory.NewCachedAdapter(backing, newMapCache())

	_, err := cached.GetVenue(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCachedAdapter_RatingsBypassCache(t *testing.T) {
	backing := directory.NewMemoryAdapter()
	backing.SeedVenue(seedVenue("cafe-1", "First Cafe", 10))
	cached := directory.NewCachedAdapter(backing, newMapCache())
	ctx := context.Background()

	require.NoError(t, cached.PutRating(ctx, &entities.Rating{
		VenueKey: "cafe-1", UserID: "user-1", Stars: 4,
	}))
	ratings, err := cached.ListRatings(ctx, "cafe-1")
	require.NoError(t, err)
	require.Len(t, ratings, 1)

	// A second write is visible immediately; there is no cached snapshot.
	require.NoError(t, cached.PutRating(ctx, &entities.Rating{
		VenueKey: "cafe-1", UserID: "user-2", Stars: 2,
	}))
	ratings, err = cached.ListRatings(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}
