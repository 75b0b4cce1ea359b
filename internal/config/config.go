package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port   string
	DBPath string
}

// Load reads configuration from the environment, after a best-effort load of
// a local .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:   getenv("PORT", "3001"),
		DBPath: getenv("DB_PATH", "./app.db"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
