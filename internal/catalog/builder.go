// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "heurekafeed/internal/models"

// SelectboxItem is the lightweight form of a category used to build
// select widgets. ParentID is nil for roots.
type SelectboxItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id"`
}

// BuildCategoryIndex walks the nodes depth-first and registers one
// category per node. A parent is always created before its children so
// every child is linked at construction time.
func BuildCategoryIndex(nodes []Node) *models.CategoryIndex {
	idx := models.NewCategoryIndex()
	addCategories(idx, nodes, nil)
	return idx
}

// BuildCategoryList returns the flattened categories in pre-order: every
// node precedes its descendants and siblings keep their source order.
func BuildCategoryList(nodes []Node) []*models.Category {
	return BuildCategoryIndex(nodes).All()
}

func addCategories(idx *models.CategoryIndex, nodes []Node, parentID *int) {
	for _, n := range nodes {
		c := idx.Add(n.ID, n.Name, n.FullName, parentID)
		id := c.ID()
		addCategories(idx, n.Children, &id)
	}
}

// BuildCategorySelectboxList flattens the nodes in the same order as
// BuildCategoryList but carries the parent as a plain id.
func BuildCategorySelectboxList(nodes []Node) []SelectboxItem {
	return appendSelectboxItems(nil, nodes, nil)
}

func appendSelectboxItems(items []SelectboxItem, nodes []Node, parentID *int) []SelectboxItem {
	for _, n := range nodes {
		items = append(items, SelectboxItem{ID: n.ID, Name: n.Name, ParentID: parentID})
		id := n.ID
		items = appendSelectboxItems(items, n.Children, &id)
	}
	return items
}
