// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBPath      string
	CatalogPath string
	Server      ServerConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServerConfig holds local API server settings
type ServerConfig struct {
	Addr string
	// RateLimit is the number of requests allowed per IP per minute.
	RateLimit int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:      os.Getenv("BITLAB_DB"),
		CatalogPath: os.Getenv("BITLAB_CATALOG"),
	}

	cfg.Server.Addr = os.Getenv("BITLAB_ADDR")
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8080" // local-only by default
	}

	rateStr := os.Getenv("BITLAB_RATE_LIMIT")
	if rateStr == "" {
		rateStr = "100"
	}
	rate, err := strconv.Atoi(rateStr)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid BITLAB_RATE_LIMIT %q: must be a positive integer", rateStr)
	}
	cfg.Server.RateLimit = rate

	cfg.Logging.Level = os.Getenv("LOG_LEVEL")
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// parseOrigins splits a comma-separated origin list, defaulting to "*".
func parseOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
