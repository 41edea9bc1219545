package main

import (
	"context"       // context package is needed for Redis operations
	"log"           // log package is needed for logging
	"os"            // Media directory creation
	"path/filepath" // Media path handling
	"time"          // Session TTL

	"employee_management/internal/api"     // Custom package for API handlers
	"employee_management/internal/config"  // Custom package for configuration
	database "employee_management/internal/db"
	"employee_management/internal/session" // Session store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client for the session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Ensure the media directory for profile photos exists
	if err := os.MkdirAll(filepath.Join(cfg.MediaRoot, "profiles"), 0755); err != nil {
		logrus.Fatalf("failed to create media directory: %v", err)
	}

	// Bootstrap the first admin account from config
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Errorf("failed to seed admin: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Sessions live in Redis; tokens expire after the configured TTL
	sessions := session.NewRedisStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)

	r := api.NewRouter(db, sessions, cfg) // Build the router

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
