package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// PlaceholderAPIKey is the sentinel shipped in sample configs. A key equal to
// it means lookups are not configured; the server still starts.
const PlaceholderAPIKey = "YOUR_OMDB_API_KEY_FALLBACK"

// DefaultOMDbURL is the public OMDb endpoint.
const DefaultOMDbURL = "http://www.omdbapi.com/"

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port             string
	DBURL            string
	OMDbURL          string
	OMDbAPIKey       string
	OMDbTimeoutSecs  int
	ReadTimeoutSecs  int
	WriteTimeoutSecs int
	IdleTimeoutSecs  int
	DBMaxConns       int
	DBMinConns       int
	DBMaxIdleSecs    int
	DBMaxLifeSecs    int
	DBConnTimeout    int
}

// Load reads configuration from the environment, applying defaults and
// validation. An optional .env file is merged in first without overriding
// variables already set in the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DBURL:            os.Getenv("DB_URL"),
		OMDbURL:          getEnv("OMDB_URL", DefaultOMDbURL),
		OMDbAPIKey:       getEnv("OMDB_API_KEY", PlaceholderAPIKey),
		OMDbTimeoutSecs:  getEnvInt("OMDB_TIMEOUT_SECS", 10),
		ReadTimeoutSecs:  getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 20),
		DBMinConns:       getEnvInt("DB_MIN_CONNS", 2),
		DBMaxIdleSecs:    getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:    getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeout:    getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
	}

	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if cfg.OMDbURL == "" {
		return Config{}, fmt.Errorf("OMDB_URL cannot be empty")
	}
	if cfg.OMDbTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("OMDB_TIMEOUT_SECS must be positive")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}

	return cfg, nil
}

// LookupConfigured reports whether a real OMDb API key is present.
func (c Config) LookupConfigured() bool {
	return c.OMDbAPIKey != "" && c.OMDbAPIKey != PlaceholderAPIKey
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
