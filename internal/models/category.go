// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// categoryTextPrefix is prepended to the category name when the vendor did
// not publish a full breadcrumb.
const categoryTextPrefix = "Heureka.cz | "

// Category is one node of the vendor's category taxonomy. A category does
// not point at its parent directly: it stores the parent's id and resolves
// it through the CategoryIndex that owns the whole tree.
type Category struct {
	id       int
	name     string
	fullName *string
	parentID *int
	index    *CategoryIndex
}

// PathEntry is one step of a category's breadcrumb.
type PathEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewCategory creates a detached category. Categories built from the
// vendor feed are created through CategoryIndex.Add instead.
func NewCategory(id int, name string, fullName *string) *Category {
	return &Category{id: id, name: name, fullName: fullName}
}

func (c *Category) ID() int { return c.id }

func (c *Category) Name() string { return c.name }

// FullName returns the vendor breadcrumb, or "" when none was published.
func (c *Category) FullName() string {
	if c.fullName == nil {
		return ""
	}
	return *c.fullName
}

// ParentID returns the parent's id, or nil for a root category.
func (c *Category) ParentID() *int {
	if c.parentID == nil {
		return nil
	}
	id := *c.parentID
	return &id
}

// Parent resolves the parent through the owning index. It returns nil for
// roots and for parents the index does not know.
func (c *Category) Parent() *Category {
	if c.parentID == nil || c.index == nil {
		return nil
	}
	p, _ := c.index.Get(*c.parentID)
	return p
}

// SetParent links c under parent so that Parent resolves to it through
// c's index. A nil parent makes c a root.
func (c *Category) SetParent(parent *Category) {
	if parent == nil {
		c.parentID = nil
		return
	}
	switch {
	case c.index == nil && parent.index == nil:
		idx := NewCategoryIndex()
		idx.insert(parent)
		idx.insert(c)
	case c.index == nil:
		parent.index.insert(c)
	case parent.index == nil:
		c.index.insert(parent)
	case c.index != parent.index:
		// parent keeps its own index for resolving its ancestors.
		c.index.byID[parent.id] = parent
	}
	id := parent.id
	c.parentID = &id
}

// CategoryText is the value exported as CATEGORYTEXT, e.g.
// "Heureka.cz | Elektronika | Počítače a kancelář".
func (c *Category) CategoryText() string {
	if c.fullName != nil {
		return *c.fullName
	}
	return categoryTextPrefix + c.name
}

func (c *Category) String() string {
	return c.CategoryText()
}

// ParentsPath returns the chain of categories from the root down to c.
func (c *Category) ParentsPath() []PathEntry {
	var path []PathEntry
	limit := 1
	if c.index != nil {
		limit += c.index.Len()
	}
	for cur := c; cur != nil && len(path) < limit; cur = cur.Parent() {
		path = append(path, PathEntry{ID: cur.id, Name: cur.name})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CategoryIndex owns a category tree. It is filled once by the tree
// builder and read concurrently afterwards.
type CategoryIndex struct {
	byID  map[int]*Category
	order []*Category
}

// NewCategoryIndex returns an empty index.
func NewCategoryIndex() *CategoryIndex {
	return &CategoryIndex{byID: make(map[int]*Category)}
}

// Add creates a category owned by the index. parentID may be nil for roots.
// A later category with an already used id shadows the earlier one in
// lookups but both stay in All.
func (x *CategoryIndex) Add(id int, name string, fullName *string, parentID *int) *Category {
	c := &Category{id: id, name: name, fullName: fullName}
	if parentID != nil {
		pid := *parentID
		c.parentID = &pid
	}
	x.insert(c)
	return c
}

func (x *CategoryIndex) insert(c *Category) {
	c.index = x
	x.byID[c.id] = c
	x.order = append(x.order, c)
}

// Get looks a category up by id.
func (x *CategoryIndex) Get(id int) (*Category, bool) {
	c, ok := x.byID[id]
	return c, ok
}

// All returns the categories in build order.
func (x *CategoryIndex) All() []*Category {
	out := make([]*Category, len(x.order))
	copy(out, x.order)
	return out
}

// Len returns the number of categories in the index.
func (x *CategoryIndex) Len() int {
	return len(x.order)
}
