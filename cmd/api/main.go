package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/howbusy/backend/internal/adapters/blob"
	"github.com/howbusy/backend/internal/adapters/cache"
	"github.com/howbusy/backend/internal/adapters/directory"
	"github.com/howbusy/backend/internal/adapters/events"
	"github.com/howbusy/backend/internal/api/handlers"
	"github.com/howbusy/backend/internal/api/routes"
	"github.com/howbusy/backend/internal/application/services"
	"github.com/howbusy/backend/internal/domain/providers"
	"github.com/howbusy/backend/internal/infrastructure/clients/postgres"
	"github.com/howbusy/backend/internal/infrastructure/clients/redis"
	"github.com/howbusy/backend/internal/infrastructure/observability"
	"github.com/howbusy/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("howbusy-api", cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - caching and cross-process events degrade
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Create base venue directory adapter
	baseDirectory := directory.NewPostgresAdapter(pgClient)

	// Wrap with caching if Redis is available
	var venueDirectory providers.VenueDirectory
	if cacheProvider != nil {
		venueDirectory = directory.NewCachedAdapter(baseDirectory, cacheProvider)
		log.Println("Venue directory wrapped with caching layer")
	} else {
		venueDirectory = baseDirectory
		log.Println("Venue directory running without cache (Redis unavailable)")
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		eventBus = events.NewMemoryEventBus()
		log.Println("Event bus running in-process (Redis not available)")
	}

	// Initialize services
	capacityService := services.NewCapacityService(venueDirectory)
	capacityService.SetEventBus(eventBus)

	ratingService := services.NewRatingService(venueDirectory)
	ratingService.SetEventBus(eventBus)

	favouritesService := services.NewFavouritesService(venueDirectory)
	favouritesService.SetEventBus(eventBus)

	// Start the venue mirror; it follows the broadcast channel
	venueStore := services.NewVenueStore(venueDirectory)
	go func() {
		if err := venueStore.Run(ctx, eventBus); err != nil && ctx.Err() == nil {
			log.Printf("Venue mirror stopped: %v", err)
		}
	}()

	blobProvider := blob.NewHTTPAdapter(&cfg.Blob)

	// Initialize handlers
	venueHandler := handlers.NewVenueHandler(venueStore)
	capacityHandler := handlers.NewCapacityHandler(capacityService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	favouritesHandler := handlers.NewFavouritesHandler(favouritesService)
	imageHandler := handlers.NewImageHandler(venueStore, blobProvider)
	sseHandler := handlers.NewSSEHandler(eventBus)

	// Set up router
	router := routes.NewRouter(
		venueHandler,
		capacityHandler,
		ratingHandler,
		favouritesHandler,
		imageHandler,
		sseHandler,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Stop the mirror before tearing down its event source
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if err := eventBus.Close(); err != nil {
		log.Printf("Error closing event bus: %v", err)
	}

	log.Println("Server stopped")
}
