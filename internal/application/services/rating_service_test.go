package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/howbusy/backend/internal/adapters/directory"
	"github.com/howbusy/backend/internal/application/services"
	"github.com/howbusy/backend/internal/domain/entities"
	apperrors "github.com/howbusy/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingFixture(t *testing.T) (*services.RatingService, *directory.MemoryAdapter) {
	t.Helper()
	adapter := directory.NewMemoryAdapter()
	adapter.SeedVenue(testVenue("cafe-1", "First Cafe"))
	return services.NewRatingService(adapter), adapter
}

func storedAverage(t *testing.T, adapter *directory.MemoryAdapter, key string) float64 {
	t.Helper()
	venue, err := adapter.GetVenue(context.Background(), key)
	require.NoError(t, err)
	return venue.AverageRating
}

func TestRatingService_SubmitRating(t *testing.T) {
	svc, adapter := newRatingFixture(t)
	ctx := context.Background()

	average, err := svc.SubmitRating(ctx, "cafe-1", "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, average)

	average, err = svc.SubmitRating(ctx, "cafe-1", "user-2", 4)
	require.NoError(t, err)
	assert.Equal(t, 3.5, average)

	average, err = svc.SubmitRating(ctx, "cafe-1", "user-3", 5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, average)

	assert.Equal(t, 4.0, storedAverage(t, adapter, "cafe-1"))
}

func TestRatingService_SubmitRating_RoundsToOneDecimal(t *testing.T) {
	svc, _ := newRatingFixture(t)
	ctx := context.Background()

	// 5+4+5 = 14 over 3 users: 4.666... rounds to 4.7.
	stars := []float64{5, 4, 5}
	var average float64
	for i, s := range stars {
		var err error
		average, err = svc.SubmitRating(ctx, "cafe-1", userID(i), s)
		require.NoError(t, err)
	}
	assert.Equal(t, 4.7, average)
}

func userID(i int) string {
	return string(rune('a'+i)) + "-user"
}

func TestRatingService_SubmitRating_ResubmissionOverwrites(t *testing.T) {
	svc, adapter := newRatingFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "cafe-1", "user-1", 2)
	require.NoError(t, err)
	average, err := svc.SubmitRating(ctx, "cafe-1", "user-1", 5)
	require.NoError(t, err)

	assert.Equal(t, 5.0, average)
	ratings, err := adapter.ListRatings(ctx, "cafe-1")
	require.NoError(t, err)
	require.Len(t, ratings, 1, "one user keeps exactly one rating")
	assert.Equal(t, 5.0, ratings[0].Stars)
}

func TestRatingService_SubmitRating_InvalidStars(t *testing.T) {
	svc, adapter := newRatingFixture(t)
	ctx := context.Background()

	for _, stars := range []float64{0, 6, 2.5, -1} {
		_, err := svc.SubmitRating(ctx, "cafe-1", "user-1", stars)
		require.Error(t, err, "stars=%v", stars)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidInput))
	}

	ratings, err := adapter.ListRatings(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Empty(t, ratings, "rejected submissions must not reach the directory")
}

func TestRatingService_SubmitRating_RejectsReservedUser(t *testing.T) {
	svc, _ := newRatingFixture(t)

	for _, id := range []string{"", entities.DecoyRatingKey} {
		_, err := svc.SubmitRating(context.Background(), "cafe-1", id, 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidInput))
	}
}

func TestRatingService_SubmitRating_UnknownVenue(t *testing.T) {
	svc, _ := newRatingFixture(t)

	_, err := svc.SubmitRating(context.Background(), "nope", "user-1", 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestRatingService_Recompute_ExcludesDecoy(t *testing.T) {
	svc, adapter := newRatingFixture(t)
	ctx := context.Background()

	require.NoError(t, adapter.PutRating(ctx, &entities.Rating{
		VenueKey: "cafe-1", UserID: "user-1", Stars: 2, UpdatedAt: time.Now().UTC(),
	}))
	require.NoError(t, adapter.PutRating(ctx, &entities.Rating{
		VenueKey: "cafe-1", UserID: "user-2", Stars: 4, UpdatedAt: time.Now().UTC(),
	}))
	require.NoError(t, adapter.PutRating(ctx, &entities.Rating{
		VenueKey: "cafe-1", UserID: entities.DecoyRatingKey, Stars: 999, UpdatedAt: time.Now().UTC(),
	}))

	average, err := svc.Recompute(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, average)
	assert.Equal(t, 3.0, storedAverage(t, adapter, "cafe-1"))
}

func TestRatingService_Recompute_NoRatingsWritesSentinel(t *testing.T) {
	svc, adapter := newRatingFixture(t)

	average, err := svc.Recompute(context.Background(), "cafe-1")
	require.NoError(t, err)
	assert.Equal(t, entities.UnratedSentinel, average)
	assert.Equal(t, entities.UnratedSentinel, storedAverage(t, adapter, "cafe-1"))
}

func TestRatingService_SubmitRating_Concurrent(t *testing.T) {
	svc, adapter := newRatingFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, sub := range []struct {
		userID string
		stars  float64
	}{
		{"user-1", 2},
		{"user-2", 4},
	} {
		wg.Add(1)
		go func(userID string, stars float64) {
			defer wg.Done()
			_, err := svc.SubmitRating(ctx, "cafe-1", userID, stars)
			assert.NoError(t, err)
		}(sub.userID, sub.stars)
	}
	wg.Wait()

	ratings, err := adapter.ListRatings(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Len(t, ratings, 2, "concurrent submissions by different users must both land")

	average, err := svc.Recompute(ctx, "cafe-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, average)
}

func TestRatingService_UserRating(t *testing.T) {
	svc, _ := newRatingFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, "cafe-1", "user-1", 4)
	require.NoError(t, err)

	rating, err := svc.UserRating(ctx, "cafe-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating.Stars)

	_, err = svc.UserRating(ctx, "cafe-1", "user-2")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
