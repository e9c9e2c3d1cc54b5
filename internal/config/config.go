package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	ImageDir   string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is picked up when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	return &Config{
		ServerPort: getEnv("PORT", "8080"),
		MongoURI:   getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGODB_DB", "blog"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),
		ImageDir:   getEnv("IMAGE_DIR", "images"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
