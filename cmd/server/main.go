package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/breakshot/backend/internal/api"
	"github.com/breakshot/backend/internal/config"
	"github.com/breakshot/backend/internal/database"
	"github.com/breakshot/backend/internal/game"
	"github.com/breakshot/backend/internal/migrations"
	"github.com/breakshot/backend/internal/redis"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database. The simulation runs without it; only persistence
	// and the leaderboard fallback are lost.
	var db *sqlx.DB
	if conn, err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Printf("[DB] Unavailable, continuing without persistence: %v", err)
	} else {
		db = conn
		defer db.Close()
	}

	// Run migrations on start if requested
	if db != nil && os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis (optional, same as the database)
	var rdb *goredis.Client
	if client, err := redis.Connect(cfg.RedisURL); err != nil {
		log.Printf("[REDIS] Unavailable, continuing without snapshots/leaderboard: %v", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	// Initialize the session manager
	game.InitializeManager(db, rdb, cfg)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, db, rdb, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Breakshot server on port %s (tick rate %d Hz)", port, cfg.TickRate)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
