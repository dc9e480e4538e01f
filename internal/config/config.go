package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration of the engine.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Triage classifier (external AI service). Empty URL falls back to the
	// built-in keyword classifier.
	TriageURL     string        `env:"TRIAGE_URL"`
	TriageTimeout time.Duration `env:"TRIAGE_TIMEOUT" envDefault:"10s"`

	// Routing collaborator. Empty URL degrades the matcher to straight-line
	// distance.
	RoutingURL     string        `env:"ROUTING_URL"`
	RoutingTimeout time.Duration `env:"ROUTING_TIMEOUT" envDefault:"5s"`

	// Matcher policy. Weights are operator-tunable, not hardcoded.
	SearchRadiusMeters float64 `env:"MATCH_SEARCH_RADIUS_M" envDefault:"15000"`
	DistanceWeight     float64 `env:"MATCH_DISTANCE_WEIGHT" envDefault:"0.4"`
	CapacityWeight     float64 `env:"MATCH_CAPACITY_WEIGHT" envDefault:"0.25"`
	SpecialtyWeight    float64 `env:"MATCH_SPECIALTY_WEIGHT" envDefault:"0.2"`
	RatingWeight       float64 `env:"MATCH_RATING_WEIGHT" envDefault:"0.15"`

	// Match retry policy when no candidate is available.
	MatchMaxAttempts int           `env:"MATCH_MAX_ATTEMPTS" envDefault:"5"`
	MatchBaseDelay   time.Duration `env:"MATCH_BASE_DELAY" envDefault:"2s"`
	MatchWorkers     int           `env:"MATCH_WORKERS" envDefault:"4"`

	// Notification delivery gateway.
	DeliveryURL        string        `env:"DELIVERY_URL"`
	DeliverySecret     string        `env:"DELIVERY_SECRET"`
	DeliveryTimeout    time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"5s"`
	DeliveryMaxRetries int           `env:"DELIVERY_MAX_RETRIES" envDefault:"3"`
	DeliveryBaseDelay  time.Duration `env:"DELIVERY_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig reads configuration from the environment and an optional .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		TriageURL:          os.Getenv("TRIAGE_URL"),
		TriageTimeout:      getEnvAsDuration("TRIAGE_TIMEOUT", 10*time.Second),
		RoutingURL:         os.Getenv("ROUTING_URL"),
		RoutingTimeout:     getEnvAsDuration("ROUTING_TIMEOUT", 5*time.Second),
		SearchRadiusMeters: getEnvAsFloat("MATCH_SEARCH_RADIUS_M", 15000),
		DistanceWeight:     getEnvAsFloat("MATCH_DISTANCE_WEIGHT", 0.4),
		CapacityWeight:     getEnvAsFloat("MATCH_CAPACITY_WEIGHT", 0.25),
		SpecialtyWeight:    getEnvAsFloat("MATCH_SPECIALTY_WEIGHT", 0.2),
		RatingWeight:       getEnvAsFloat("MATCH_RATING_WEIGHT", 0.15),
		MatchMaxAttempts:   getEnvAsInt("MATCH_MAX_ATTEMPTS", 5),
		MatchBaseDelay:     getEnvAsDuration("MATCH_BASE_DELAY", 2*time.Second),
		MatchWorkers:       getEnvAsInt("MATCH_WORKERS", 4),
		DeliveryURL:        os.Getenv("DELIVERY_URL"),
		DeliverySecret:     os.Getenv("DELIVERY_SECRET"),
		DeliveryTimeout:    getEnvAsDuration("DELIVERY_TIMEOUT", 5*time.Second),
		DeliveryMaxRetries: getEnvAsInt("DELIVERY_MAX_RETRIES", 3),
		DeliveryBaseDelay:  getEnvAsDuration("DELIVERY_BASE_DELAY", time.Second),
	}

	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns an environment variable parsed as int or a default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat returns an environment variable parsed as float64 or a default.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns an environment variable parsed as time.Duration or a default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
