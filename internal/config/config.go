package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	ServerPort      string
	ServerHost      string
	ShutdownTimeout time.Duration

	// Viewer
	CurrentUserID int

	// Uploads
	UploadDelay      time.Duration
	PlaceholderImage string

	// App settings
	SiteName   string
	DevMode    bool
	StaticPath string
}

// Load reads an optional .env file and builds the configuration from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: failed to read .env file: %v", err)
	}

	return &Config{
		// Server
		ServerPort:      getEnv("SERVER_PORT", ":8080"),
		ServerHost:      getEnv("SERVER_HOST", "localhost"),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SEC", 5)) * time.Second,

		// Viewer
		CurrentUserID: getEnvInt("CURRENT_USER_ID", 3),

		// Uploads
		UploadDelay:      time.Duration(getEnvInt("UPLOAD_DELAY_MS", 1500)) * time.Millisecond,
		PlaceholderImage: getEnv("PLACEHOLDER_IMAGE", "/api/placeholder/600/400"),

		// App
		SiteName:   getEnv("SITE_NAME", "ConnectMe"),
		DevMode:    getEnv("DEV_MODE", "true") == "true",
		StaticPath: getEnv("STATIC_PATH", "./static/"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
