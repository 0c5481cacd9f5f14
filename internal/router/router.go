// Package router sets up all HTTP routes and middleware chains for the
// feed server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"heurekafeed/internal/handlers"
	"heurekafeed/internal/middleware"
)

// New creates and returns the configured Chi router. The product feed is
// served at feedPath; limiter may be nil to disable rate limiting.
func New(feedPath string, feed *handlers.Feed, categories *handlers.Categories, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(chimw.Compress(5, "text/xml", "application/json"))

	r.Get("/health", healthHandler)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.Get(feedPath, feed.Serve)

		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Get("/selectbox", categories.Selectbox)
			r.Get("/{id}", categories.Show)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
