package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/howbusy/backend/internal/domain/entities"
)

func TestValidStars(t *testing.T) {
	valid := []float64{1, 2, 3, 4, 5}
	for _, s := range valid {
		assert.True(t, entities.ValidStars(s), "stars %v should be valid", s)
	}

	invalid := []float64{0, 6, -1, 2.5, 4.9}
	for _, s := range invalid {
		assert.False(t, entities.ValidStars(s), "stars %v should be invalid", s)
	}
}

func TestRoundAverage(t *testing.T) {
	cases := []struct {
		name string
		raw  float64
		want float64
	}{
		{"exact integer", 4.0, 4.0},
		{"one decimal untouched", 3.5, 3.5},
		{"rounds down", 4.64, 4.6},
		{"rounds up", 4.66, 4.7},
		{"half rounds away from zero", 1.25, 1.3},
		{"two thirds", 14.0 / 3.0, 4.7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, entities.RoundAverage(tc.raw), 1e-9)
		})
	}
}

func TestAverageStars(t *testing.T) {
	t.Run("averages non-decoy ratings", func(t *testing.T) {
		ratings := []entities.Rating{
			{VenueKey: "v1", UserID: "u1", Stars: 3},
			{VenueKey: "v1", UserID: "u2", Stars: 4},
			{VenueKey: "v1", UserID: "u3", Stars: 5},
		}
		assert.InDelta(t, 4.0, entities.AverageStars(ratings), 1e-9)
	})

	t.Run("rounds half totals to one decimal", func(t *testing.T) {
		ratings := []entities.Rating{
			{VenueKey: "v1", UserID: "u1", Stars: 3},
			{VenueKey: "v1", UserID: "u2", Stars: 4},
		}
		assert.InDelta(t, 3.5, entities.AverageStars(ratings), 1e-9)
	})

	t.Run("excludes the decoy entry", func(t *testing.T) {
		ratings := []entities.Rating{
			{VenueKey: "v1", UserID: "u1", Stars: 2},
			{VenueKey: "v1", UserID: "u2", Stars: 4},
			{VenueKey: "v1", UserID: entities.DecoyRatingKey, Stars: 999},
		}
		assert.InDelta(t, 3.0, entities.AverageStars(ratings), 1e-9)
	})

	t.Run("empty set yields the unrated sentinel", func(t *testing.T) {
		assert.Equal(t, entities.UnratedSentinel, entities.AverageStars(nil))
	})

	t.Run("decoy-only set yields the unrated sentinel", func(t *testing.T) {
		ratings := []entities.Rating{
			{VenueKey: "v1", UserID: entities.DecoyRatingKey, Stars: 5},
		}
		assert.Equal(t, entities.UnratedSentinel, entities.AverageStars(ratings))
	})
}
