// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"heurekafeed/internal/cache"
	"heurekafeed/internal/catalog"
	"heurekafeed/internal/feed"
)

// FeedCacheKey is the cache key of the rendered product feed.
const FeedCacheKey = "shop-feed"

const feedContentType = "text/xml; charset=utf-8"

// Feed serves the rendered Heureka product feed. When a cache store and a
// positive TTL are configured, the rendered document is kept in Valkey.
type Feed struct {
	renderer *feed.Renderer
	cache    *cache.Store
	ttl      time.Duration
}

// NewFeed creates the feed handler. cache may be nil.
func NewFeed(renderer *feed.Renderer, cache *cache.Store, ttl time.Duration) *Feed {
	return &Feed{renderer: renderer, cache: cache, ttl: ttl}
}

// Serve writes the complete feed document.
func (f *Feed) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if f.cacheEnabled() {
		if cached, ok := f.cache.Load(ctx, FeedCacheKey); ok {
			writeFeed(w, cached, "HIT")
			return
		}
	}

	var buf bytes.Buffer
	if err := f.renderer.Render(ctx, &buf); err != nil {
		status := feedErrorStatus(err)
		slog.Error("render product feed failed", "error", err, "status", status)
		http.Error(w, http.StatusText(status), status)
		return
	}

	if f.cacheEnabled() {
		f.cache.Save(ctx, FeedCacheKey, buf.Bytes(), f.ttl)
	}
	writeFeed(w, buf.Bytes(), "MISS")
}

func (f *Feed) cacheEnabled() bool {
	return f.cache != nil && f.ttl > 0
}

func writeFeed(w http.ResponseWriter, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", feedContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// feedErrorStatus maps render failures to HTTP statuses. Missing setup and
// an unreachable category export are temporary; anything else is a bug in
// the exported data.
func feedErrorStatus(err error) int {
	var fetchErr *catalog.FetchError
	switch {
	case errors.Is(err, feed.ErrNoProductSource), errors.As(err, &fetchErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
