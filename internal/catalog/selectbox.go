// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import "strings"

// depthMarker indents one tree level in a select option label.
const depthMarker = "— "

// SelectboxOption is one entry of an assembled select list.
type SelectboxOption struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// TreeAssembler turns the flat select list into the shape a form widget
// needs. Implementations must not modify items.
type TreeAssembler interface {
	Assemble(items []SelectboxItem) []SelectboxOption
}

// IndentedAssembler lays the tree out depth-first and prefixes each name
// with one marker per level, e.g. "— — Notebooky".
type IndentedAssembler struct{}

func (IndentedAssembler) Assemble(items []SelectboxItem) []SelectboxOption {
	known := make(map[int]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}

	children := make(map[int][]SelectboxItem)
	var roots []SelectboxItem
	for _, it := range items {
		if it.ParentID == nil || !known[*it.ParentID] || *it.ParentID == it.ID {
			roots = append(roots, it)
			continue
		}
		children[*it.ParentID] = append(children[*it.ParentID], it)
	}

	out := make([]SelectboxOption, 0, len(items))
	visited := make(map[int]bool, len(items))
	var walk func(level []SelectboxItem, depth int)
	walk = func(level []SelectboxItem, depth int) {
		for _, it := range level {
			if visited[it.ID] {
				continue
			}
			visited[it.ID] = true
			out = append(out, SelectboxOption{
				ID:    it.ID,
				Name:  strings.Repeat(depthMarker, depth) + it.Name,
				Depth: depth,
			})
			walk(children[it.ID], depth+1)
		}
	}
	walk(roots, 0)
	return out
}
