package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/howbusy/backend/internal/adapters/directory"
	"github.com/howbusy/backend/internal/application/services"
	"github.com/howbusy/backend/internal/domain/entities"
	"github.com/howbusy/backend/internal/infrastructure/clients/postgres"
	"github.com/howbusy/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS venues (
	key            TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	address        TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	latitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude      DOUBLE PRECISION NOT NULL DEFAULT 0,
	opening_hours  JSONB,
	open           BOOLEAN NOT NULL DEFAULT FALSE,
	capacity       INTEGER NOT NULL DEFAULT 0,
	max_capacity   INTEGER NOT NULL,
	average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	image_url      TEXT NOT NULL DEFAULT '',
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS venue_ratings (
	venue_key  TEXT NOT NULL REFERENCES venues(key) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	stars      DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (venue_key, user_id)
);

CREATE TABLE IF NOT EXISTS staff_assignments (
	email     TEXT PRIMARY KEY,
	venue_key TEXT NOT NULL REFERENCES venues(key) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS user_favourites (
	user_id    TEXT NOT NULL,
	venue_key  TEXT NOT NULL REFERENCES venues(key) ON DELETE CASCADE,
	title      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, venue_key)
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			DROP TABLE IF EXISTS
				user_favourites,
				staff_assignments,
				venue_ratings,
				venues
			CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	db := goqu.New("postgres", pgClient.DB())

	// 1. Seed venues
	hours := map[string]string{
		"Monday": "09:00-22:00", "Tuesday": "09:00-22:00", "Wednesday": "09:00-22:00",
		"Thursday": "09:00-23:00", "Friday": "09:00-01:00", "Saturday": "10:00-01:00",
		"Sunday": "10:00-20:00",
	}
	venues := []*entities.Venue{
		{
			Key: "river-tap", Title: "The River Tap", Description: "Craft beer hall by the water",
			Address: "12 Quay Street", Phone: "020 7000 1111", Email: "hello@rivertap.example",
			Location:     entities.Location{Latitude: 51.5081, Longitude: -0.0759},
			OpeningHours: hours, Open: true, Capacity: 34, MaxCapacity: 120,
		},
		{
			Key: "beanhouse", Title: "Beanhouse Coffee", Description: "Small-batch roastery and cafe",
			Address: "4 Market Lane", Phone: "020 7000 2222", Email: "team@beanhouse.example",
			Location:     entities.Location{Latitude: 51.5155, Longitude: -0.0922},
			OpeningHours: hours, Open: true, Capacity: 11, MaxCapacity: 30,
		},
		{
			Key: "vault-club", Title: "The Vault", Description: "Basement club, weekend queues likely",
			Address: "77 Old Street", Phone: "020 7000 3333", Email: "door@vault.example",
			Location:     entities.Location{Latitude: 51.5265, Longitude: -0.0876},
			OpeningHours: hours, Open: false, Capacity: 0, MaxCapacity: 250,
		},
	}

	for _, v := range venues {
		if err := v.Validate(); err != nil {
			log.Fatalf("Invalid seed venue %s: %v", v.Key, err)
		}
		hoursJSON, err := json.Marshal(v.OpeningHours)
		if err != nil {
			log.Fatalf("Failed to encode opening hours for %s: %v", v.Key, err)
		}
		query, args, err := db.Insert("venues").Rows(goqu.Record{
			"key":            v.Key,
			"title":          v.Title,
			"description":    v.Description,
			"address":        v.Address,
			"phone":          v.Phone,
			"email":          v.Email,
			"latitude":       v.Location.Latitude,
			"longitude":      v.Location.Longitude,
			"opening_hours":  string(hoursJSON),
			"open":           v.Open,
			"capacity":       v.Capacity,
			"max_capacity":   v.MaxCapacity,
			"average_rating": 0,
			"image_url":      v.ImageURL,
			"updated_at":     time.Now().UTC(),
		}).OnConflict(goqu.DoNothing()).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build venue insert for %s: %v", v.Key, err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to insert venue %s: %v", v.Key, err)
		}
	}
	log.Printf("Seeded %d venues", len(venues))

	// 2. Seed staff assignments
	staff := map[string]string{
		"manager@rivertap.example":  "river-tap",
		"barista@beanhouse.example": "beanhouse",
		"door@vault.example":        "vault-club",
	}
	for email, venueKey := range staff {
		query, args, err := db.Insert("staff_assignments").Rows(goqu.Record{
			"email":     email,
			"venue_key": venueKey,
		}).OnConflict(goqu.DoNothing()).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build staff insert for %s: %v", email, err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to insert staff assignment %s: %v", email, err)
		}
	}
	log.Printf("Seeded %d staff assignments", len(staff))

	// 3. Seed a few ratings and publish the averages through the service
	ratingService := services.NewRatingService(directory.NewPostgresAdapter(pgClient))
	seedRatings := []struct {
		venueKey string
		userID   string
		stars    float64
	}{
		{"river-tap", "seed-user-1", 5},
		{"river-tap", "seed-user-2", 4},
		{"river-tap", "seed-user-3", 5},
		{"beanhouse", "seed-user-1", 4},
		{"beanhouse", "seed-user-2", 3},
	}
	for _, r := range seedRatings {
		if _, err := ratingService.SubmitRating(ctx, r.venueKey, r.userID, r.stars); err != nil {
			log.Printf("Failed to seed rating for %s: %v", r.venueKey, err)
		}
	}
	log.Printf("Seeded %d ratings", len(seedRatings))

	log.Println("Seeding complete")
}
