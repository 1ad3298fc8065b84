package main

import (
	"context"
	"log"

	gcs "cloud.google.com/go/storage"
	"github.com/bsm/redislock"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"go-roadwatch/boundary"
	"go-roadwatch/config"
	"go-roadwatch/cronjobs"
	"go-roadwatch/db"
	"go-roadwatch/detection"
	"go-roadwatch/geocode"
	"go-roadwatch/routes"
	"go-roadwatch/stats"
	"go-roadwatch/storage"
)

func main() {
	// Load .env file; in Cloud Run the env comes from the service config.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	logg := config.NewLogger()
	ctx := context.Background()

	// Firestore holds the road_damages collection.
	firestoreClient, err := db.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()

	// Boundary reference data is read once at startup and immutable after.
	boundaries, err := boundary.Load(cfg.RegencyFile, cfg.DistrictFile)
	if err != nil {
		log.Fatalf("Failed to load boundary data: %v", err)
	}

	// Redis backs the aggregate cache and the cron lock. Optional: without it
	// every stats read recomputes from Firestore.
	var redisClient *redis.Client
	var locker *redislock.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logg.WithError(err).Warn("redis unreachable, running without stats cache")
			redisClient = nil
		} else {
			locker = redislock.New(redisClient)
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Optional collaborators: image storage and reverse geocoding degrade to
	// reports without image/address fields when unconfigured.
	var imageStore *storage.ImageStore
	if gcsClient, err := gcs.NewClient(ctx); err != nil {
		logg.WithError(err).Warn("image storage unavailable, reports will be saved without images")
	} else {
		defer gcsClient.Close()
		imageStore = storage.NewImageStore(gcsClient, cfg.ImageBucket)
	}

	mapsClient, err := geocode.NewMapsClient(cfg.MapsKey)
	if err != nil {
		logg.WithError(err).Warn("maps client unavailable, reports will be saved without addresses")
	}

	var openaiClient *openai.Client
	if cfg.OpenAIKey != "" {
		openaiClient = openai.NewClient(cfg.OpenAIKey)
	}

	reportStore := &db.ReportStore{Client: firestoreClient}
	engine := stats.NewEngine(reportStore, boundaries, redisClient, logg)

	// Periodic materialization of kabupaten_stats.
	scheduler := cronjobs.InitCronJobs(firestoreClient, engine, locker, logg)
	defer scheduler.Stop()

	r := routes.SetupRouter(routes.Deps{
		Firestore:  firestoreClient,
		Engine:     engine,
		Boundaries: boundaries,
		Images:     imageStore,
		Maps:       mapsClient,
		Classifier: detection.NewClient(cfg.ClassifierURL),
		OpenAI:     openaiClient,
		Bounds:     cfg.Bounds,
		Log:        logg,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
