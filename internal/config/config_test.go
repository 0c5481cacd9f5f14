// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"

	"heurekafeed/internal/catalog"
)

var envVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"HEUREKA_CATEGORY_FEED_URL", "HEUREKA_FEED_PATH", "HEUREKA_FEED_CACHE_TTL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"S3_BUCKET", "S3_FEED_KEY", "S3_PUBLIC_URL",
}

// clearEnv sets every variable Load reads to empty, which envOrDefault
// treats the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	defaults := map[string][2]string{
		"Host":            {cfg.Host, "0.0.0.0"},
		"Port":            {cfg.Port, "8080"},
		"Env":             {cfg.Env, "development"},
		"DBHost":          {cfg.DBHost, "localhost"},
		"DBPort":          {cfg.DBPort, "5432"},
		"DBUser":          {cfg.DBUser, "heurekafeed"},
		"DBPassword":      {cfg.DBPassword, "changeme"},
		"DBName":          {cfg.DBName, "heurekafeed"},
		"ValkeyHost":      {cfg.ValkeyHost, "localhost"},
		"ValkeyPort":      {cfg.ValkeyPort, "6379"},
		"CategoryFeedURL": {cfg.CategoryFeedURL, catalog.DefaultFeedURL},
		"FeedPath":        {cfg.FeedPath, "/xml/heureka-feed.xml"},
		"S3Region":        {cfg.S3Region, "fsn1"},
		"S3FeedKey":       {cfg.S3FeedKey, "heureka-feed.xml"},
	}
	for field, v := range defaults {
		if v[0] != v[1] {
			t.Errorf("%s: got %q, want %q", field, v[0], v[1])
		}
	}
	if cfg.FeedCacheTTL != 0 {
		t.Errorf("FeedCacheTTL: got %v, want 0", cfg.FeedCacheTTL)
	}
	if cfg.S3Enabled() {
		t.Error("S3Enabled: got true without credentials")
	}
	if !cfg.IsDev() {
		t.Error("IsDev: got false in development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HEUREKA_FEED_PATH", "/feeds/heureka.xml")
	t.Setenv("HEUREKA_FEED_CACHE_TTL", "15m")
	t.Setenv("S3_ENDPOINT", "https://fsn1.your-objectstorage.com")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")
	t.Setenv("S3_BUCKET", "feeds")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.FeedPath != "/feeds/heureka.xml" {
		t.Errorf("FeedPath = %q", cfg.FeedPath)
	}
	if cfg.FeedCacheTTL != 15*time.Minute {
		t.Errorf("FeedCacheTTL = %v", cfg.FeedCacheTTL)
	}
	if !cfg.S3Enabled() {
		t.Error("S3Enabled: got false with credentials")
	}
}

func TestLoad_CacheTTLSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEUREKA_FEED_CACHE_TTL", "300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedCacheTTL != 5*time.Minute {
		t.Errorf("FeedCacheTTL = %v, want 5m", cfg.FeedCacheTTL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"non-numeric port", "APP_PORT", "http", "Port"},
		{"unknown env", "APP_ENV", "staging", "Env"},
		{"category feed url", "HEUREKA_CATEGORY_FEED_URL", "not a url", "CategoryFeedURL"},
		{"relative feed path", "HEUREKA_FEED_PATH", "feed.xml", "FeedPath"},
		{"bad ttl", "HEUREKA_FEED_CACHE_TTL", "soon", "HEUREKA_FEED_CACHE_TTL"},
		{"negative ttl", "HEUREKA_FEED_CACHE_TTL", "-5m", "FeedCacheTTL"},
		{"bucket missing", "S3_ENDPOINT", "https://s3.example.com", "S3Bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default password in production")
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev: got true in production")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d"}
	if got := cfg.DSN(); got != "postgres://u:p@h:1/d?sslmode=disable" {
		t.Errorf("DSN = %q", got)
	}
}
