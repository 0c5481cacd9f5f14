// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"heurekafeed/internal/models"
)

// ErrNoProductSource is returned when a feed is requested before a
// product source has been configured.
var ErrNoProductSource = errors.New("product source is not configured")

// DuplicateItemError reports two products sharing one ITEM_ID.
type DuplicateItemError struct {
	ItemID string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("duplicate item id %q", e.ItemID)
}

// Renderer assembles the Heureka product feed. Configure it before
// serving; the setters are not safe to call concurrently with Items or
// Render.
type Renderer struct {
	source       ProductSource
	descriptions DescriptionRenderer
}

// NewRenderer creates a renderer. Either argument may be nil and set
// later.
func NewRenderer(source ProductSource, descriptions DescriptionRenderer) *Renderer {
	return &Renderer{source: source, descriptions: descriptions}
}

// SetProductSource replaces the product source.
func (r *Renderer) SetProductSource(source ProductSource) {
	r.source = source
}

// SetDescriptionRenderer replaces the description renderer. With nil,
// descriptions are exported as stored.
func (r *Renderer) SetDescriptionRenderer(descriptions DescriptionRenderer) {
	r.descriptions = descriptions
}

// Items builds one record per product in source order. It fails on the
// first duplicate item id and returns no partial result.
func (r *Renderer) Items(ctx context.Context) ([]Record, error) {
	if r.source == nil {
		return nil, ErrNoProductSource
	}
	products, err := r.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	seen := make(map[string]struct{}, len(products))
	items := make([]Record, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, dup := seen[p.ItemID()]; dup {
			return nil, &DuplicateItemError{ItemID: p.ItemID()}
		}
		seen[p.ItemID()] = struct{}{}
		items = append(items, r.item(p))
	}
	return items, nil
}

func (r *Renderer) item(p *models.Product) Record {
	return ItemRecord(p, describe(r.descriptions, p.ItemID(), p.Description()))
}

// Render writes the complete feed document to w. Nothing is written
// when assembling the items fails.
func (r *Renderer) Render(ctx context.Context, w io.Writer) error {
	items, err := r.Items(ctx)
	if err != nil {
		return err
	}
	return WriteXML(w, items)
}
