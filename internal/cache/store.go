// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store.go provides the Valkey-backed TTL store shared by the category
// manager (raw category export, select list) and the feed handler
// (rendered XML).
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the feed service.
const DefaultPrefix = "heureka:"

// Store is a byte-valued key/value cache with per-entry expiration.
// Errors are logged and reported as misses so a cache outage never fails
// a request.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a store writing keys under prefix. An empty prefix
// uses DefaultPrefix.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Load returns the cached value for key and whether it was found.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		slog.Debug("cache miss", "key", key)
		return nil, false
	}
	if err != nil {
		slog.Warn("cache load error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("cache hit", "key", key)
	return val, true
}

// Save stores value under key for ttl. A zero ttl keeps the entry until
// it is deleted.
func (s *Store) Save(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		slog.Warn("cache save error", "key", key, "error", err)
	}
}

// Delete removes key from the cache.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		slog.Warn("cache delete error", "key", key, "error", err)
	}
}
