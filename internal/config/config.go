package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the route API
type Config struct {
	// HTTP
	Port           string   `validate:"required,numeric"`
	AllowedOrigins []string `validate:"min=1,dive,required"`
	StaticDir      string

	// Network source
	NetworkSource string `validate:"oneof=embedded sqlite postgres"`
	DatabasePath  string `validate:"required_if=NetworkSource sqlite"`
	DatabaseURL   string `validate:"required_if=NetworkSource postgres"`

	// Route search
	SearchMode        string `validate:"oneof=approximate exact"`
	LineChangePenalty int    `validate:"gte=0"`

	// Itinerary cache
	CacheBackend string        `validate:"oneof=none memory redis"`
	CacheSize    int           `validate:"gt=0"`
	CacheTTL     time.Duration `validate:"gte=0"`
	RedisURL     string        `validate:"required_if=CacheBackend redis"`
}

// Load reads .env files from dir (if present) and then the environment.
// Values already set in the environment win over .env; .env.local overrides both.
func Load(dir string) (*Config, error) {
	_ = godotenv.Load(dir + "/.env")
	_ = godotenv.Overload(dir + "/.env.local")

	cfg := &Config{
		// HTTP
		Port:           getEnv("PORT", "8081"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		StaticDir:      getEnv("STATIC_DIR", ""),

		// Network source
		NetworkSource: getEnv("NETWORK_SOURCE", "embedded"),
		DatabasePath:  getEnv("SQLITE_DATABASE", "../../data/metro.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		// Route search
		SearchMode:        getEnv("ROUTE_SEARCH", "approximate"),
		LineChangePenalty: getEnvInt("LINE_CHANGE_PENALTY", 8),

		// Itinerary cache
		CacheBackend: getEnv("ROUTE_CACHE", "memory"),
		CacheSize:    getEnvInt("ROUTE_CACHE_SIZE", 1024),
		CacheTTL:     time.Duration(getEnvInt("ROUTE_CACHE_TTL_MINUTES", 60)) * time.Minute,
		RedisURL:     getEnv("REDIS_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ExactSearch reports whether routes use the (station, line) state search by default
func (c *Config) ExactSearch() bool {
	return c.SearchMode == "exact"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
