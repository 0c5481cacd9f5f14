// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts product descriptions written in Markdown into
// the plain text the Heureka feed expects in DESCRIPTION. Markup, link
// targets, images and raw HTML are dropped; the visible text is kept.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, autolinks, task lists
	),
)

// ToText parses source as Markdown and returns its text content, one line
// per block.
func ToText(source string) (string, error) {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var out []byte
	endBlock := func() {
		out = bytes.TrimRight(out, " \t")
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				endBlock()
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			out = append(out, textValue(node, src)...)
			if node.HardLineBreak() {
				out = append(out, '\n')
			} else if node.SoftLineBreak() {
				out = append(out, ' ')
			}
		case *ast.String:
			out = append(out, node.Value...)
		case *ast.AutoLink:
			out = append(out, node.Label(src)...)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				out = append(out, seg.Value(src)...)
			}
		case *ast.Image, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// textValue returns the visible text of a segment with backslash escapes
// and character references resolved. Code span content is kept verbatim.
func textValue(node *ast.Text, src []byte) []byte {
	v := node.Segment.Value(src)
	if _, code := node.Parent().(*ast.CodeSpan); code || node.IsRaw() {
		return v
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

// PlainText renders Markdown descriptions for the feed.
type PlainText struct{}

// Render implements the feed's description renderer.
func (PlainText) Render(source string) (string, error) {
	return ToText(source)
}
