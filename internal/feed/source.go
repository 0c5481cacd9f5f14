// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"context"

	"heurekafeed/internal/models"
)

// ProductSource supplies the products to export.
type ProductSource interface {
	Products(ctx context.Context) ([]*models.Product, error)
}

// StaticSource serves a fixed product list.
type StaticSource []*models.Product

// Products returns the list as is.
func (s StaticSource) Products(context.Context) ([]*models.Product, error) {
	return s, nil
}

// SourceFunc adapts a function to ProductSource.
type SourceFunc func(ctx context.Context) ([]*models.Product, error)

// Products calls f.
func (f SourceFunc) Products(ctx context.Context) ([]*models.Product, error) {
	return f(ctx)
}
