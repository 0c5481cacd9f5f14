package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heurekafeed/internal/store"
)

// manageProduct runs one maintenance action on a stored product:
// show, enable, disable or delete.
func manageProduct(products *store.ProductStore, action, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("-item is required for -product %s", action)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch action {
	case "show":
		p, err := products.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if p == nil {
			return store.ErrProductNotFound
		}
		slog.Info("product",
			"item_id", p.ItemID(),
			"product_name", p.ProductName(),
			"category", p.Category().CategoryText(),
			"price_vat", p.PriceVATFormatted(),
			"delivery_date", p.DeliveryDate(),
		)
		return nil
	case "enable", "disable":
		if err := products.SetActive(ctx, itemID, action == "enable"); err != nil {
			return err
		}
	case "delete":
		if err := products.Delete(ctx, itemID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown product action %q", action)
	}

	slog.Info("product updated", "action", action, "item_id", itemID)
	return nil
}
