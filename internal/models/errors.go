// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the catalog entities exported to the Heureka
// product feed: categories, delivery options and products, together with
// the field-level validation each of them enforces on assignment.
package models

import (
	"errors"
	"fmt"
)

// ErrNoImage is returned by Product.ImgURL when neither a primary nor an
// alternative image has been set.
var ErrNoImage = errors.New("main image URL does not exist")

// ValidationError reports a field that violates its contract. It is
// returned by the setter that received the value; nothing is stored.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

// invalid builds a *ValidationError with a formatted reason.
func invalid(field string, value any, format string, args ...any) error {
	return &ValidationError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
