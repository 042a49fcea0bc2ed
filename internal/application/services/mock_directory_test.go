package services_test

import (
	"context"

	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

// MockDirectory is a testify mock of the VenueDirectory provider, for tests
// that assert on exactly which backend calls a service issues.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ListVenues(ctx context.Context) ([]*entities.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Venue), args.Error(1)
}

func (m *MockDirectory) GetVenue(ctx context.Context, key string) (*entities.Venue, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Venue), args.Error(1)
}

func (m *MockDirectory) SetCapacity(ctx context.Context, key string, capacity int) error {
	args := m.Called(ctx, key, capacity)
	return args.Error(0)
}

func (m *MockDirectory) SetOpenState(ctx context.Context, key string, open bool, capacity int) error {
	args := m.Called(ctx, key, open, capacity)
	return args.Error(0)
}

func (m *MockDirectory) SetAverageRating(ctx context.Context, key string, average float64) error {
	args := m.Called(ctx, key, average)
	return args.Error(0)
}

func (m *MockDirectory) PutRating(ctx context.Context, rating *entities.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockDirectory) ListRatings(ctx context.Context, venueKey string) ([]entities.Rating, error) {
	args := m.Called(ctx, venueKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Rating), args.Error(1)
}

func (m *MockDirectory) VenueKeyForStaff(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) AddFavourite(ctx context.Context, favourite *entities.Favourite) error {
	args := m.Called(ctx, favourite)
	return args.Error(0)
}

func (m *MockDirectory) RemoveFavourite(ctx context.Context, userID, venueKey string) error {
	args := m.Called(ctx, userID, venueKey)
	return args.Error(0)
}

func (m *MockDirectory) ListFavourites(ctx context.Context, userID string) ([]entities.Favourite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Favourite), args.Error(1)
}

func (m *MockDirectory) HasFavourite(ctx context.Context, userID, venueKey string) (bool, error) {
	args := m.Called(ctx, userID, venueKey)
	return args.Bool(0), args.Error(1)
}
