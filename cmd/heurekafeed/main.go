// Package main is the entry point for the Heureka feed server. It loads
// configuration, connects to services, and serves the feed over HTTP with
// graceful shutdown. With -publish it uploads the feed to object storage
// once and exits; with -product it runs one product maintenance action.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"heurekafeed/internal/cache"
	"heurekafeed/internal/catalog"
	"heurekafeed/internal/config"
	"heurekafeed/internal/database"
	"heurekafeed/internal/feed"
	"heurekafeed/internal/handlers"
	"heurekafeed/internal/markdown"
	"heurekafeed/internal/middleware"
	"heurekafeed/internal/router"
	"heurekafeed/internal/storage"
	"heurekafeed/internal/store"
)

// Feed requests per client IP and minute.
const feedRateLimit = 30

func main() {
	publish := flag.Bool("publish", false, "render the feed once, upload it to S3 and exit")
	productAction := flag.String("product", "", "run a product action (show, enable, disable, delete) and exit")
	itemID := flag.String("item", "", "item id for -product")
	flag.Parse()

	// Load .env file if it exists (development only).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"feed_path", cfg.FeedPath,
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()
	cacheStore := cache.NewStore(valkeyClient, cache.DefaultPrefix)

	// The category manager is shared by the product store and the API.
	manager := catalog.NewManager(cacheStore, catalog.NewHTTPFetcher(time.Minute), catalog.IndentedAssembler{})
	if err := manager.SetFeedURL(cfg.CategoryFeedURL); err != nil {
		slog.Error("invalid category feed url", "error", err)
		os.Exit(1)
	}

	if cfg.IsDev() {
		seedDevelopment(db, manager)
	}

	products := store.NewProductStore(db, manager)
	renderer := feed.NewRenderer(products, markdown.PlainText{})

	if *productAction != "" {
		if err := manageProduct(products, *productAction, *itemID); err != nil {
			slog.Error("product action failed", "action", *productAction, "item_id", *itemID, "error", err)
			os.Exit(1)
		}
		return
	}

	if *publish {
		if err := publishFeed(cfg, renderer); err != nil {
			slog.Error("publish feed failed", "error", err)
			os.Exit(1)
		}
		return
	}

	r := router.New(cfg.FeedPath,
		handlers.NewFeed(renderer, cacheStore, cfg.FeedCacheTTL),
		handlers.NewCategories(manager),
		middleware.NewRateLimiter(valkeyClient, cache.DefaultPrefix, feedRateLimit, time.Minute),
	)

	// WriteTimeout covers a cold start that downloads the category export
	// before rendering the feed.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// publishFeed renders the feed and uploads it to the configured bucket.
func publishFeed(cfg *config.Config, renderer *feed.Renderer) error {
	if !cfg.S3Enabled() {
		slog.Warn("s3 storage not configured, nothing to publish")
		return nil
	}
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	url, err := client.Publish(ctx, cfg.S3FeedKey, func(w io.Writer) error {
		return renderer.Render(ctx, w)
	})
	if err != nil {
		return err
	}
	slog.Info("feed published", "bucket", client.Bucket(), "key", cfg.S3FeedKey, "url", url)
	return nil
}
