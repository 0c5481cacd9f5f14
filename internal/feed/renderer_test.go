// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"heurekafeed/internal/models"
)

func TestRendererWithoutSource(t *testing.T) {
	r := NewRenderer(nil, nil)

	var buf bytes.Buffer
	err := r.Render(context.Background(), &buf)
	if !errors.Is(err, ErrNoProductSource) {
		t.Fatalf("err = %v, want ErrNoProductSource", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on failure", buf.Len())
	}
}

func TestRendererMinimalDocument(t *testing.T) {
	r := NewRenderer(StaticSource{newTestProduct(t, "sku-1")}, nil)

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := `<?xml version="1.0" encoding="utf-8"?>` + "\n" +
		`<SHOP><SHOPITEM>` +
		`<ITEM_ID>sku-1</ITEM_ID>` +
		`<PRODUCT>Canon PowerShot SX100</PRODUCT>` +
		`<PRODUCTNAME>Canon PowerShot SX100 červený</PRODUCTNAME>` +
		`<DESCRIPTION></DESCRIPTION>` +
		`<URL>https://shop.example.com/canon-sx100</URL>` +
		`<IMGURL></IMGURL>` +
		`<PRICE_VAT>4990</PRICE_VAT>` +
		`<VAT>21</VAT>` +
		`<MANUFACTURER>Canon</MANUFACTURER>` +
		`<CATEGORYTEXT>Heureka.cz | Fotoaparáty</CATEGORYTEXT>` +
		`</SHOPITEM></SHOP>`
	if got := buf.String(); got != want {
		t.Errorf("document mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRendererEmptySource(t *testing.T) {
	r := NewRenderer(StaticSource{}, nil)

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "<SHOP></SHOP>") {
		t.Errorf("got %q", buf.String())
	}
}

func TestRendererDuplicateItemID(t *testing.T) {
	r := NewRenderer(StaticSource{
		newTestProduct(t, "sku-1"),
		newTestProduct(t, "sku-2"),
		newTestProduct(t, "sku-1"),
	}, nil)

	var buf bytes.Buffer
	err := r.Render(context.Background(), &buf)

	var dup *DuplicateItemError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateItemError", err)
	}
	if dup.ItemID != "sku-1" {
		t.Errorf("ItemID = %q, want sku-1", dup.ItemID)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on failure", buf.Len())
	}
}

func TestRendererSourceError(t *testing.T) {
	boom := errors.New("db down")
	r := NewRenderer(SourceFunc(func(context.Context) ([]*models.Product, error) {
		return nil, boom
	}), nil)

	if _, err := r.Items(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
}

func TestRendererDescriptions(t *testing.T) {
	p := newTestProduct(t, "sku-1")
	p.SetDescription("krásný fotoaparát")
	r := NewRenderer(StaticSource{p}, nil)
	r.SetDescriptionRenderer(renderFunc(func(s string) (string, error) {
		return strings.ToUpper(s), nil
	}))

	items, err := r.Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := items[0].Get(ElemDescription); v != "KRÁSNÝ FOTOAPARÁT" {
		t.Errorf("DESCRIPTION = %v", v)
	}

	r.SetDescriptionRenderer(renderFunc(func(string) (string, error) {
		return "", errors.New("bad markup")
	}))
	items, err = r.Items(context.Background())
	if err != nil {
		t.Fatalf("degraded description must not fail the feed: %v", err)
	}
	if v, _ := items[0].Get(ElemDescription); v != "Krásný fotoaparát" {
		t.Errorf("DESCRIPTION = %v, want raw text", v)
	}
}

func TestRendererSetProductSource(t *testing.T) {
	r := NewRenderer(nil, nil)
	r.SetProductSource(StaticSource{newTestProduct(t, "a"), newTestProduct(t, "b")})

	items, err := r.Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if v, _ := items[1].Get(ElemItemID); v != "b" {
		t.Errorf("second item = %v, want b", v)
	}
}

func TestWriteXMLNestedAndEscaped(t *testing.T) {
	items := []Record{{
		{Name: ElemItemID, Value: "a&b"},
		{Name: ElemParam, Value: []Record{
			{{Name: ElemParamName, Value: "barva"}, {Name: ElemParamValue, Value: "<red>"}},
			{{Name: ElemParamName, Value: "váha"}, {Name: ElemParamValue, Value: "2 kg"}},
		}},
		{Name: ElemAccessory, Value: []string{"x", "y"}},
		{Name: "STOCK", Value: 12},
		{Name: "NEW", Value: true},
		{Name: "RATIO", Value: 0.5},
	}}

	var buf bytes.Buffer
	if err := WriteXML(&buf, items); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Items []struct {
			ItemID string `xml:"ITEM_ID"`
			Params []struct {
				Name  string `xml:"PARAM_NAME"`
				Value string `xml:"VAL"`
			} `xml:"PARAM"`
			Accessories []string `xml:"ACCESSORY"`
			Stock       string   `xml:"STOCK"`
			New         string   `xml:"NEW"`
			Ratio       string   `xml:"RATIO"`
		} `xml:"SHOPITEM"`
	}
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not well-formed: %v\n%s", err, buf.String())
	}
	if len(doc.Items) != 1 {
		t.Fatalf("items = %d", len(doc.Items))
	}
	it := doc.Items[0]
	if it.ItemID != "a&b" {
		t.Errorf("ITEM_ID = %q", it.ItemID)
	}
	if len(it.Params) != 2 || it.Params[0].Value != "<red>" || it.Params[1].Name != "váha" {
		t.Errorf("PARAM = %+v", it.Params)
	}
	if len(it.Accessories) != 2 {
		t.Errorf("ACCESSORY = %v", it.Accessories)
	}
	if it.Stock != "12" || it.New != "1" || it.Ratio != "0.5" {
		t.Errorf("scalars = %q %q %q", it.Stock, it.New, it.Ratio)
	}
	if !strings.Contains(buf.String(), "a&amp;b") {
		t.Errorf("ampersand not escaped: %s", buf.String())
	}
}
