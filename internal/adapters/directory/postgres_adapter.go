package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/domain/providers"
	"github.com/howbusy/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/howbusy/backend/pkg/errors"
)

// PostgresAdapter implements the VenueDirectory interface on PostgreSQL.
type PostgresAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresAdapter creates a new Postgres venue directory adapter.
func NewPostgresAdapter(client *postgres.Client) providers.VenueDirectory {
	return &PostgresAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var venueColumns = []interface{}{
	"key", "title", "description", "address", "phone", "email",
	"latitude", "longitude", "opening_hours", "open",
	"capacity", "max_capacity", "average_rating", "image_url", "updated_at",
}

func scanVenue(scan func(dest ...interface{}) error) (*entities.Venue, error) {
	venue := &entities.Venue{}
	var openingHours []byte
	err := scan(
		&venue.Key,
		&venue.Title,
		&venue.Description,
		&venue.Address,
		&venue.Phone,
		&venue.Email,
		&venue.Location.Latitude,
		&venue.Location.Longitude,
		&openingHours,
		&venue.Open,
		&venue.Capacity,
		&venue.MaxCapacity,
		&venue.AverageRating,
		&venue.ImageURL,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(openingHours) > 0 {
		if err := json.Unmarshal(openingHours, &venue.OpeningHours); err != nil {
			// A venue with unreadable hours is still a venue; hours are text.
			log.Printf("Failed to decode opening hours for venue %s: %v", venue.Key, err)
			venue.OpeningHours = nil
		}
	}
	return venue, nil
}

// ListVenues reads the full venue collection in backend order.
func (a *PostgresAdapter) ListVenues(ctx context.Context) ([]*entities.Venue, error) {
	query, args, err := a.db.From("venues").Select(venueColumns...).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to list venues", err)
	}
	defer rows.Close()

	var venues []*entities.Venue
	for rows.Next() {
		venue, err := scanVenue(rows.Scan)
		if err != nil {
			return nil, apperrors.NewBackendUnavailableError("failed to scan venue row", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to iterate venue rows", err)
	}

	return venues, nil
}

// GetVenue reads a single venue record.
func (a *PostgresAdapter) GetVenue(ctx context.Context, key string) (*entities.Venue, error) {
	query, args, err := a.db.From("venues").Select(venueColumns...).
		Where(goqu.C("key").Eq(key)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	venue, err := scanVenue(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}
	if err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to get venue", err)
	}

	return venue, nil
}

func (a *PostgresAdapter) updateVenue(ctx context.Context, key string, record goqu.Record) error {
	record["updated_at"] = goqu.L("now()")
	query, args, err := a.db.Update("venues").Set(record).
		Where(goqu.C("key").Eq(key)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build venue update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewBackendUnavailableError("failed to update venue", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewBackendUnavailableError("failed to read update result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("venue %s not found", key))
	}

	return nil
}

// SetCapacity writes a venue's current occupancy.
func (a *PostgresAdapter) SetCapacity(ctx context.Context, key string, capacity int) error {
	return a.updateVenue(ctx, key, goqu.Record{"capacity": capacity})
}

// SetOpenState writes the open flag and capacity in one statement so a close
// is never observed as open=false with stale capacity.
func (a *PostgresAdapter) SetOpenState(ctx context.Context, key string, open bool, capacity int) error {
	return a.updateVenue(ctx, key, goqu.Record{"open": open, "capacity": capacity})
}

// SetAverageRating publishes a recomputed average onto the venue record.
func (a *PostgresAdapter) SetAverageRating(ctx context.Context, key string, average float64) error {
	return a.updateVenue(ctx, key, goqu.Record{"average_rating": average})
}

// PutRating upserts one user's rating of one venue.
func (a *PostgresAdapter) PutRating(ctx context.Context, rating *entities.Rating) error {
	record := goqu.Record{
		"venue_key":  rating.VenueKey,
		"user_id":    rating.UserID,
		"stars":      rating.Stars,
		"updated_at": rating.UpdatedAt,
	}

	query, args, err := a.db.Insert("venue_ratings").Rows(record).
		OnConflict(goqu.DoUpdate("venue_key, user_id", goqu.Record{
			"stars":      rating.Stars,
			"updated_at": rating.UpdatedAt,
		})).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rating upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewBackendUnavailableError("failed to put rating", err)
	}

	return nil
}

// ListRatings reads every rating on record for a venue, decoys included.
func (a *PostgresAdapter) ListRatings(ctx context.Context, venueKey string) ([]entities.Rating, error) {
	query, args, err := a.db.From("venue_ratings").
		Select("venue_key", "user_id", "stars", "updated_at").
		Where(goqu.C("venue_key").Eq(venueKey)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rating list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to list ratings", err)
	}
	defer rows.Close()

	var ratings []entities.Rating
	for rows.Next() {
		var r entities.Rating
		if err := rows.Scan(&r.VenueKey, &r.UserID, &r.Stars, &r.UpdatedAt); err != nil {
			return nil, apperrors.NewBackendUnavailableError("failed to scan rating row", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to iterate rating rows", err)
	}

	return ratings, nil
}

// VenueKeyForStaff resolves a staff email to its assigned venue key.
func (a *PostgresAdapter) VenueKeyForStaff(ctx context.Context, email string) (string, error) {
	query, args, err := a.db.From("staff_assignments").Select("venue_key").
		Where(goqu.C("email").Eq(email)).ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build staff assignment query", err)
	}

	var venueKey string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&venueKey)
	if err == sql.ErrNoRows {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("no staff assignment for %s", email))
	}
	if err != nil {
		return "", apperrors.NewBackendUnavailableError("failed to resolve staff assignment", err)
	}

	return venueKey, nil
}

// AddFavourite records a favourite; adding an existing member is a no-op.
func (a *PostgresAdapter) AddFavourite(ctx context.Context, favourite *entities.Favourite) error {
	record := goqu.Record{
		"user_id":    favourite.UserID,
		"venue_key":  favourite.VenueKey,
		"title":      favourite.Title,
		"created_at": favourite.CreatedAt,
	}

	query, args, err := a.db.Insert("user_favourites").Rows(record).
		OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favourite insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewBackendUnavailableError("failed to add favourite", err)
	}

	return nil
}

// RemoveFavourite deletes a favourite; removing a non-member is a no-op.
func (a *PostgresAdapter) RemoveFavourite(ctx context.Context, userID, venueKey string) error {
	query, args, err := a.db.Delete("user_favourites").
		Where(goqu.C("user_id").Eq(userID), goqu.C("venue_key").Eq(venueKey)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favourite delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewBackendUnavailableError("failed to remove favourite", err)
	}

	return nil
}

// ListFavourites reads a user's favourites, decoys included.
func (a *PostgresAdapter) ListFavourites(ctx context.Context, userID string) ([]entities.Favourite, error) {
	query, args, err := a.db.From("user_favourites").
		Select("user_id", "venue_key", "title", "created_at").
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("created_at").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build favourite list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to list favourites", err)
	}
	defer rows.Close()

	var favourites []entities.Favourite
	for rows.Next() {
		var f entities.Favourite
		if err := rows.Scan(&f.UserID, &f.VenueKey, &f.Title, &f.CreatedAt); err != nil {
			return nil, apperrors.NewBackendUnavailableError("failed to scan favourite row", err)
		}
		favourites = append(favourites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewBackendUnavailableError("failed to iterate favourite rows", err)
	}

	return favourites, nil
}

// HasFavourite checks a single membership.
func (a *PostgresAdapter) HasFavourite(ctx context.Context, userID, venueKey string) (bool, error) {
	query, args, err := a.db.From("user_favourites").Select(goqu.L("1")).
		Where(goqu.C("user_id").Eq(userID), goqu.C("venue_key").Eq(venueKey)).ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build favourite check query", err)
	}

	var one int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewBackendUnavailableError("failed to check favourite", err)
	}

	return true, nil
}
