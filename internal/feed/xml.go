// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Root and item element names of the feed document.
const (
	ElemShop     = "SHOP"
	ElemShopItem = "SHOPITEM"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// WriteXML writes a SHOP document with one SHOPITEM per record.
func WriteXML(w io.Writer, items []Record) error {
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	shop := xml.StartElement{Name: xml.Name{Local: ElemShop}}
	if err := enc.EncodeToken(shop); err != nil {
		return err
	}
	for _, item := range items {
		if err := encodeRecord(enc, ElemShopItem, item); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(shop.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeRecord(enc *xml.Encoder, name string, r Record) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range r {
		if err := encodeField(enc, f.Name, f.Value); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeField(enc *xml.Encoder, name string, value any) error {
	switch v := value.(type) {
	case Record:
		return encodeRecord(enc, name, v)
	case []Record:
		for _, r := range v {
			if err := encodeRecord(enc, name, r); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, s := range v {
			if err := encodeText(enc, name, s); err != nil {
				return err
			}
		}
		return nil
	default:
		return encodeText(enc, name, scalarText(v))
	}
}

func encodeText(enc *xml.Encoder, name, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func scalarText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
