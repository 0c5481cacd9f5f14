// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"heurekafeed/internal/catalog"
	"heurekafeed/internal/database"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `validate:"required"`
	Port string `validate:"required,numeric"`
	Env  string `validate:"oneof=development production testing"`

	// PostgreSQL connection
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string `validate:"required"`
	ValkeyPort     string `validate:"required,numeric"`
	ValkeyPassword string

	// Heureka feed settings
	CategoryFeedURL string        `validate:"required,http_url"`
	FeedPath        string        `validate:"required,startswith=/"`
	FeedCacheTTL    time.Duration `validate:"gte=0"`

	// S3 publishing (optional)
	S3Endpoint  string `validate:"omitempty,http_url"`
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string `validate:"required_with=S3Endpoint"`
	S3FeedKey   string `validate:"required"`
	S3PublicURL string `validate:"omitempty,http_url"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	ttl, err := durationOrDefault("HEUREKA_FEED_CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "heurekafeed"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "heurekafeed"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		CategoryFeedURL: envOrDefault("HEUREKA_CATEGORY_FEED_URL", catalog.DefaultFeedURL),
		FeedPath:        envOrDefault("HEUREKA_FEED_PATH", "/xml/heureka-feed.xml"),
		FeedCacheTTL:    ttl,

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3FeedKey:   envOrDefault("S3_FEED_KEY", "heureka-feed.xml"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return database.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// S3Enabled reports whether feed publishing to object storage is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationOrDefault parses a duration such as "15m". A bare integer is
// read as seconds.
func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
