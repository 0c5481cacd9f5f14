// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"heurekafeed/internal/catalog"
	"heurekafeed/internal/models"
)

// Categories exposes the Heureka taxonomy as JSON for shop back offices.
type Categories struct {
	manager *catalog.Manager
}

// NewCategories creates the category handler group.
func NewCategories(manager *catalog.Manager) *Categories {
	return &Categories{manager: manager}
}

// categoryResponse is the JSON shape of a single category.
type categoryResponse struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	FullName     string             `json:"full_name,omitempty"`
	CategoryText string             `json:"category_text"`
	ParentID     *int               `json:"parent_id"`
	Path         []models.PathEntry `json:"path"`
}

// List returns every selectable category as id/name pairs.
func (c *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.manager.SelectableCategories(r.Context())
	if err != nil {
		c.fail(w, "list categories failed", err)
		return
	}
	if items == nil {
		items = []catalog.SelectableCategory{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Selectbox returns the indented option list for category pickers.
func (c *Categories) Selectbox(w http.ResponseWriter, r *http.Request) {
	options, err := c.manager.CategoriesSelectbox(r.Context())
	if err != nil {
		c.fail(w, "build category selectbox failed", err)
		return
	}
	if options == nil {
		options = []catalog.SelectboxOption{}
	}
	writeJSON(w, http.StatusOK, options)
}

// Show returns one category with its breadcrumb path.
func (c *Categories) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "category id must be an integer")
		return
	}

	cat, err := c.manager.Category(r.Context(), id)
	var unknown *catalog.UnknownCategoryError
	if errors.As(err, &unknown) {
		writeJSONError(w, http.StatusNotFound, unknown.Error())
		return
	}
	if err != nil {
		c.fail(w, "find category failed", err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		ID:           cat.ID(),
		Name:         cat.Name(),
		FullName:     cat.FullName(),
		CategoryText: cat.CategoryText(),
		ParentID:     cat.ParentID(),
		Path:         cat.ParentsPath(),
	})
}

func (c *Categories) fail(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	var fetchErr *catalog.FetchError
	if errors.As(err, &fetchErr) {
		writeJSONError(w, http.StatusServiceUnavailable, "category export unavailable")
		return
	}
	writeJSONError(w, http.StatusInternalServerError, "internal server error")
}
