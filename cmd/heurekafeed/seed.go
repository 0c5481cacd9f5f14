package main

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"heurekafeed/internal/catalog"
	"heurekafeed/internal/database"
)

// seedDevelopment inserts a demo product into the first selectable
// category. Failures are logged; the server starts regardless.
func seedDevelopment(db *sql.DB, manager *catalog.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	categories, err := manager.SelectableCategories(ctx)
	if err != nil || len(categories) == 0 {
		slog.Warn("skipping development seed, no categories available", "error", err)
		return
	}
	if err := database.Seed(db, categories[0].ID); err != nil {
		slog.Warn("failed to seed database", "error", err)
	}
}
