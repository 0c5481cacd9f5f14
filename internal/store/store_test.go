// store_test.go provides a shared test database helper for the store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"heurekafeed/internal/catalog"
	"heurekafeed/internal/database"
	"heurekafeed/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	return database.DSN(
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_USER", "heurekafeed"),
		envOr("POSTGRES_PASSWORD", "changeme"),
		envOr("POSTGRES_DB", "heurekafeed"),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanProducts removes test products by item id. Call in t.Cleanup().
func cleanProducts(t *testing.T, db *sql.DB, itemIDs ...string) {
	t.Helper()
	for _, id := range itemIDs {
		db.Exec("DELETE FROM products WHERE item_id = $1", id)
	}
}

// staticCategories resolves categories from a fixed map.
type staticCategories map[int]*models.Category

func (c staticCategories) Category(_ context.Context, id int) (*models.Category, error) {
	if cat, ok := c[id]; ok {
		return cat, nil
	}
	return nil, &catalog.UnknownCategoryError{ID: id}
}
