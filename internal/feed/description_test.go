// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"errors"
	"strings"
	"testing"
)

type renderFunc func(string) (string, error)

func (f renderFunc) Render(s string) (string, error) { return f(s) }

func TestDescribe(t *testing.T) {
	upper := renderFunc(func(s string) (string, error) { return strings.ToUpper(s), nil })
	failing := renderFunc(func(string) (string, error) { return "", errors.New("bad markup") })
	panicking := renderFunc(func(string) (string, error) { panic("boom") })

	tests := []struct {
		name     string
		renderer DescriptionRenderer
		raw      string
		want     string
		degraded bool
	}{
		{"nil renderer", nil, "**raw**", "**raw**", false},
		{"rendered", upper, "text", "TEXT", false},
		{"empty skips renderer", failing, "", "", false},
		{"error keeps raw", failing, "**raw**", "**raw**", true},
		{"panic keeps raw", panicking, "**raw**", "**raw**", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Describe(tt.renderer, tt.raw)
			if d.Text != tt.want {
				t.Errorf("Text = %q, want %q", d.Text, tt.want)
			}
			if d.Degraded() != tt.degraded {
				t.Errorf("Degraded = %v, want %v (err %v)", d.Degraded(), tt.degraded, d.Err)
			}
		})
	}
}
