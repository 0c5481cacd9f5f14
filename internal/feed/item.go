// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import "heurekafeed/internal/models"

// Element names of a SHOPITEM.
const (
	ElemItemID            = "ITEM_ID"
	ElemProduct           = "PRODUCT"
	ElemProductName       = "PRODUCTNAME"
	ElemDescription       = "DESCRIPTION"
	ElemURL               = "URL"
	ElemImgURL            = "IMGURL"
	ElemPriceVAT          = "PRICE_VAT"
	ElemVAT               = "VAT"
	ElemManufacturer      = "MANUFACTURER"
	ElemCategoryText      = "CATEGORYTEXT"
	ElemDeliveryDate      = "DELIVERY_DATE"
	ElemItemType          = "ITEM_TYPE"
	ElemImgURLAlternative = "IMGURL_ALTERNATIVE"
	ElemVideoURL          = "VIDEO_URL"
	ElemEAN               = "EAN"
	ElemISBN              = "ISBN"
	ElemProductNo         = "PRODUCTNO"
	ElemParam             = "PARAM"
	ElemParamName         = "PARAM_NAME"
	ElemParamValue        = "VAL"
	ElemHeurekaCPC        = "HEUREKA_CPC"
	ElemDelivery          = "DELIVERY"
	ElemDeliveryID        = "DELIVERY_ID"
	ElemDeliveryPrice     = "DELIVERY_PRICE"
	ElemDeliveryPriceCOD  = "DELIVERY_PRICE_COD"
	ElemAccessory         = "ACCESSORY"
)

// ItemRecord serializes a product into SHOPITEM children. description is
// the already rendered DESCRIPTION text. Optional elements are written
// only when set, and custom tags come last in the order they were added.
func ItemRecord(p *models.Product, description string) Record {
	r := Record{
		{Name: ElemItemID, Value: p.ItemID()},
		{Name: ElemProduct, Value: p.Product()},
		{Name: ElemProductName, Value: p.ProductName()},
		{Name: ElemDescription, Value: description},
		{Name: ElemURL, Value: p.URL()},
		{Name: ElemImgURL, Value: p.PrimaryImgURL()},
		{Name: ElemPriceVAT, Value: p.PriceVATFormatted()},
		{Name: ElemVAT, Value: p.VATFormatted()},
		{Name: ElemManufacturer, Value: p.Manufacturer()},
		{Name: ElemCategoryText, Value: p.Category().CategoryText()},
	}

	if v := p.DeliveryDate(); v != "" {
		r = append(r, Field{Name: ElemDeliveryDate, Value: v})
	}
	if v := p.ItemType(); v != "" {
		r = append(r, Field{Name: ElemItemType, Value: v})
	}
	if v := p.ImgURLAlternatives(); len(v) > 0 {
		r = append(r, Field{Name: ElemImgURLAlternative, Value: v})
	}
	if v := p.VideoURL(); v != "" {
		r = append(r, Field{Name: ElemVideoURL, Value: v})
	}
	if v := p.EAN(); v != "" {
		r = append(r, Field{Name: ElemEAN, Value: v})
	}
	if v := p.ISBN(); v != "" {
		r = append(r, Field{Name: ElemISBN, Value: v})
	}
	if v := p.ProductNo(); v != "" {
		r = append(r, Field{Name: ElemProductNo, Value: v})
	}
	if params := p.Params(); len(params) > 0 {
		out := make([]Record, 0, len(params))
		for _, param := range params {
			out = append(out, Record{
				{Name: ElemParamName, Value: param.Name},
				{Name: ElemParamValue, Value: param.Value},
			})
		}
		r = append(r, Field{Name: ElemParam, Value: out})
	}
	if v, ok := p.HeurekaCPCFormatted(); ok {
		r = append(r, Field{Name: ElemHeurekaCPC, Value: v})
	}
	if deliveries := p.Deliveries(); len(deliveries) > 0 {
		out := make([]Record, 0, len(deliveries))
		for _, d := range deliveries {
			item := Record{
				{Name: ElemDeliveryID, Value: d.ID()},
				{Name: ElemDeliveryPrice, Value: d.PriceFormatted()},
			}
			if cod, ok := d.PriceCODFormatted(); ok {
				item = append(item, Field{Name: ElemDeliveryPriceCOD, Value: cod})
			}
			out = append(out, item)
		}
		r = append(r, Field{Name: ElemDelivery, Value: out})
	}
	if v := p.Accessories(); len(v) > 0 {
		r = append(r, Field{Name: ElemAccessory, Value: v})
	}

	for _, tag := range p.CustomTags() {
		r.Set(tag.Name, tag.Value)
	}
	return r
}
