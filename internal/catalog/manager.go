// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"heurekafeed/internal/models"
)

// DefaultFeedURL is Heureka's public export of the category taxonomy.
const DefaultFeedURL = "https://www.heureka.cz/direct/xml-export/shops/heureka-sekce.xml"

const (
	feedCacheKey      = "feed"
	feedTTL           = 8 * time.Hour
	selectboxCacheKey = "selectbox-tree"
	selectboxTTL      = time.Hour
)

// Cache is the TTL key-value store the manager keeps downloaded data in.
// Load reports a miss with false; failures are treated as misses.
type Cache interface {
	Load(ctx context.Context, key string) ([]byte, bool)
	Save(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// UnknownCategoryError is returned for ids missing from the taxonomy.
type UnknownCategoryError struct {
	ID int
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %d does not exist", e.ID)
}

// SelectableCategory is an id/name pair offered to users picking a category.
type SelectableCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Manager is the long-lived owner of the category taxonomy. It is built
// once by main and shared by all callers. The category index is loaded on
// first use and kept for the life of the process; a failed load is retried
// on the next call.
type Manager struct {
	cache     Cache
	fetcher   Fetcher
	assembler TreeAssembler

	mu      sync.RWMutex
	feedURL string

	indexMu sync.Mutex
	index   *models.CategoryIndex
}

// NewManager creates a manager reading from DefaultFeedURL. cache may be
// nil to disable caching; assembler defaults to IndentedAssembler.
func NewManager(cache Cache, fetcher Fetcher, assembler TreeAssembler) *Manager {
	if assembler == nil {
		assembler = IndentedAssembler{}
	}
	return &Manager{
		cache:     cache,
		fetcher:   fetcher,
		assembler: assembler,
		feedURL:   DefaultFeedURL,
	}
}

// FeedURL returns the endpoint used for the next download.
func (m *Manager) FeedURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.feedURL
}

// SetFeedURL replaces the download endpoint. An already cached document
// stays in use until it expires.
func (m *Manager) SetFeedURL(url string) error {
	if !models.IsURL(url) {
		return &models.ValidationError{Field: "feed url", Value: url, Reason: "must be a valid absolute URL"}
	}
	m.mu.Lock()
	m.feedURL = url
	m.mu.Unlock()
	return nil
}

// Feed returns the raw category export, downloading it when the cached
// copy is missing or older than eight hours.
func (m *Manager) Feed(ctx context.Context) ([]byte, error) {
	if raw, ok := m.load(ctx, feedCacheKey); ok {
		return raw, nil
	}

	url := m.FeedURL()
	start := time.Now()
	raw, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	slog.Info("category feed downloaded", "url", url, "bytes", len(raw), "duration", time.Since(start).String())

	m.save(ctx, feedCacheKey, raw, feedTTL)
	return raw, nil
}

// FeedNodes returns the parsed top-level categories of the export.
func (m *Manager) FeedNodes(ctx context.Context) ([]Node, error) {
	raw, err := m.Feed(ctx)
	if err != nil {
		return nil, err
	}
	return ParseDocument(raw)
}

// Categories returns the category index, building it on first use.
func (m *Manager) Categories(ctx context.Context) (*models.CategoryIndex, error) {
	m.indexMu.Lock()
	defer m.indexMu.Unlock()

	if m.index != nil {
		return m.index, nil
	}

	nodes, err := m.FeedNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	m.index = BuildCategoryIndex(nodes)
	slog.Info("category index built", "categories", m.index.Len())
	return m.index, nil
}

// Category looks a category up by its Heureka id.
func (m *Manager) Category(ctx context.Context, id int) (*models.Category, error) {
	idx, err := m.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := idx.Get(id)
	if !ok {
		return nil, &UnknownCategoryError{ID: id}
	}
	return c, nil
}

// SelectableCategories lists every category that can be assigned to a
// product, in taxonomy order.
func (m *Manager) SelectableCategories(ctx context.Context) ([]SelectableCategory, error) {
	idx, err := m.Categories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, idx.Len())
	var out []SelectableCategory
	for _, c := range idx.All() {
		if seen[c.ID()] || c.CategoryText() == "" {
			continue
		}
		// Later duplicates of an id win in the index; report that one.
		latest, _ := idx.Get(c.ID())
		seen[c.ID()] = true
		out = append(out, SelectableCategory{ID: latest.ID(), Name: latest.Name()})
	}
	return out, nil
}

// CategoriesSelectbox returns the assembled select list. The result is
// cached for an hour and rebuilt from the export afterwards.
func (m *Manager) CategoriesSelectbox(ctx context.Context) ([]SelectboxOption, error) {
	if raw, ok := m.load(ctx, selectboxCacheKey); ok {
		var cached []SelectboxOption
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		slog.Warn("discarding unreadable selectbox cache entry")
	}

	nodes, err := m.FeedNodes(ctx)
	if err != nil {
		return nil, err
	}
	options := m.assembler.Assemble(BuildCategorySelectboxList(nodes))

	if encoded, err := json.Marshal(options); err == nil {
		m.save(ctx, selectboxCacheKey, encoded, selectboxTTL)
	}
	return options, nil
}

func (m *Manager) load(ctx context.Context, key string) ([]byte, bool) {
	if m.cache == nil {
		return nil, false
	}
	return m.cache.Load(ctx, key)
}

func (m *Manager) save(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if m.cache != nil {
		m.cache.Save(ctx, key, value, ttl)
	}
}
