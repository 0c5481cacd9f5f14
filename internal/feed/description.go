// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"fmt"
	"log/slog"
)

// DescriptionRenderer turns a raw product description (markup) into the
// plain text written to DESCRIPTION.
type DescriptionRenderer interface {
	Render(source string) (string, error)
}

// Description is the outcome of rendering one description. When Err is
// set, Text holds the raw description unchanged.
type Description struct {
	Text string
	Err  error
}

// Degraded reports whether rendering failed and the raw text was kept.
func (d Description) Degraded() bool { return d.Err != nil }

// Describe renders raw with r. A nil renderer or an empty description
// passes through unchanged; a failing or panicking renderer yields the
// raw text together with the error.
func Describe(r DescriptionRenderer, raw string) (d Description) {
	if r == nil || raw == "" {
		return Description{Text: raw}
	}
	defer func() {
		if rec := recover(); rec != nil {
			d = Description{Text: raw, Err: fmt.Errorf("description renderer panicked: %v", rec)}
		}
	}()
	text, err := r.Render(raw)
	if err != nil {
		return Description{Text: raw, Err: err}
	}
	return Description{Text: text}
}

// describe is Describe plus a warning for degraded results.
func describe(r DescriptionRenderer, itemID, raw string) string {
	d := Describe(r, raw)
	if d.Degraded() {
		slog.Warn("description rendering failed, using raw text", "item_id", itemID, "error", d.Err)
	}
	return d.Text
}
