package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed inserts a demo product for local development when the products
// table is empty. categoryID must be a Heureka category id.
func Seed(db *sql.DB, categoryID int) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("seed check products: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO products (item_id, product, product_name, description, url,
		                      img_url, price_vat, vat, manufacturer, category_id,
		                      params, deliveries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, "demo-1", "Demo produkt", "Demo produkt",
		"**Ukázkový** produkt pro lokální vývoj.",
		"https://shop.example.com/demo-1", "https://shop.example.com/img/demo-1.jpg",
		"199.00", "21", "Demo", categoryID,
		`[{"name":"barva","value":"modrá"}]`,
		`[{"id":"CESKA_POSTA","price":"89"}]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert product: %w", err)
	}

	slog.Info("database seeded with demo product", "item_id", "demo-1", "category_id", categoryID)
	return nil
}
