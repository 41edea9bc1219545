package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string // Application port
	DBUser          string // Database user
	DBPassword      string // Database password
	DBHost          string // Database host
	DBPort          string // Database port
	DBName          string // Database name
	RedisAddr       string // Redis server address
	RedisPass       string // Redis password
	RedisDB         int    // Redis database number
	SessionTTLHours int    // Session lifetime in hours
	MediaRoot       string // Directory for uploaded profile photos
	MediaURL        string // URL prefix media files are served under
	AdminUsername   string // Bootstrap admin username
	AdminEmail      string // Bootstrap admin email
	AdminPassword   string // Bootstrap admin password
	IsProd          bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	sessionTTL, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS"))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 24 * 14 // Two weeks by default
	}
	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media" // Relative to the working directory
	}
	mediaURL := os.Getenv("MEDIA_URL")
	if mediaURL == "" {
		mediaURL = "/media/"
	}
	return &Config{
		AppPort:         os.Getenv("APP_PORT"),          // Application port
		DBUser:          os.Getenv("DB_USER"),           // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:          os.Getenv("DB_HOST"),           // Database host
		DBPort:          os.Getenv("DB_PORT"),           // Database port
		DBName:          os.Getenv("DB_NAME"),           // Database name
		RedisAddr:       os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:         redisDB,                        // Redis database number
		SessionTTLHours: sessionTTL,                     // Session lifetime
		MediaRoot:       mediaRoot,                      // Media storage directory
		MediaURL:        mediaURL,                       // Media URL prefix
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),    // Bootstrap admin username
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),       // Bootstrap admin email
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),    // Bootstrap admin password
		IsProd:          os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
