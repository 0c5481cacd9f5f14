// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog downloads the Heureka category taxonomy, flattens it into
// parent-linked categories and serves lookups and select-list views of it.
package catalog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Node is one CATEGORY element of the vendor's category export. Children
// holds the nested CATEGORY elements; a single child and a list of
// siblings decode the same way.
type Node struct {
	ID       int
	Name     string
	FullName *string
	Children []Node
}

// rawNode is a CATEGORY element as it appears in the export.
type rawNode struct {
	ID       string    `xml:"CATEGORY_ID"`
	Name     string    `xml:"CATEGORY_NAME"`
	FullName *string   `xml:"CATEGORY_FULLNAME"`
	Children []rawNode `xml:"CATEGORY"`
}

// document matches any root element and keeps its top-level categories.
type document struct {
	Categories []rawNode `xml:"CATEGORY"`
}

// ParseDocument decodes the raw category export. A well-formed document
// without CATEGORY elements yields an empty slice. A category whose id is
// not an integer is dropped together with its subtree.
func ParseDocument(raw []byte) ([]Node, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var doc document
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse category document: %w", err)
	}
	return toNodes(doc.Categories), nil
}

func toNodes(raw []rawNode) []Node {
	var nodes []Node
	for _, r := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(r.ID))
		if err != nil {
			slog.Warn("skipping category with invalid id", "id", r.ID, "name", r.Name)
			continue
		}
		nodes = append(nodes, Node{
			ID:       id,
			Name:     r.Name,
			FullName: r.FullName,
			Children: toNodes(r.Children),
		})
	}
	return nodes
}
