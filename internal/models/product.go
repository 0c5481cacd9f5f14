// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field limits imposed by the Heureka feed format.
const (
	maxItemIDLen     = 36
	maxProductLen    = 200
	maxURLLen        = 300
	maxImageURLLen   = 255
	maxHeurekaCPC    = 1000.0
	cpcZeroTolerance = 1e-10
	defaultVAT       = 21.0
	paramValueTrue   = "ano"
	paramValueFalse  = "ne"
)

var (
	itemIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
	videoURLPattern = regexp.MustCompile(`^https?://(?:www\.)?(youtube\.com|yt\.be)/`)
	tagNamePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)
)

// Param is a product parameter. Values passed to SetParams may be strings
// or bools; stored values are always strings.
type Param struct {
	Name  string
	Value any
}

// CustomTag is an extra element appended to the exported item.
type CustomTag struct {
	Name  string
	Value any
}

// Product is one SHOPITEM of the feed. Required fields are set by
// NewProduct; every setter validates its input and leaves the product
// unchanged when it returns an error.
type Product struct {
	itemID       string
	product      string
	productName  string
	url          string
	priceVAT     float64
	category     *Category
	manufacturer string

	description    string
	imgURL         string
	imgAlternative []string
	videoURL       string
	vat            float64
	itemType       string
	deliveryDate   string
	ean            string
	isbn           string
	productNo      string
	params         []Param
	heurekaCPC     *float64
	deliveries     []*Delivery
	accessories    []string
	customTags     []CustomTag
}

// NewProduct builds a product from its required fields.
func NewProduct(itemID, product, productName, url string, priceVAT float64, category *Category, manufacturer string) (*Product, error) {
	p := &Product{vat: defaultVAT}
	if err := p.SetItemID(itemID); err != nil {
		return nil, err
	}
	if err := p.SetProduct(product); err != nil {
		return nil, err
	}
	if err := p.SetProductName(productName); err != nil {
		return nil, err
	}
	if err := p.SetURL(url); err != nil {
		return nil, err
	}
	if err := p.SetPriceVAT(priceVAT); err != nil {
		return nil, err
	}
	if err := p.SetCategory(category); err != nil {
		return nil, err
	}
	p.SetManufacturer(manufacturer)
	return p, nil
}

func (p *Product) ItemID() string { return p.itemID }

// SetItemID sets the merchant's unique item identifier: at most 36
// characters from [a-zA-Z0-9-_].
func (p *Product) SetItemID(id string) error {
	if utf8.RuneCountInString(id) > maxItemIDLen {
		return invalid("item id", id, "maximum length is %d characters", maxItemIDLen)
	}
	if !itemIDPattern.MatchString(id) {
		return invalid("item id", id, "must match [a-zA-Z0-9-_]+")
	}
	p.itemID = id
	return nil
}

func (p *Product) Product() string { return p.product }

func (p *Product) SetProduct(product string) error {
	if utf8.RuneCountInString(product) > maxProductLen {
		return invalid("product", product, "maximum length is %d characters", maxProductLen)
	}
	p.product = product
	return nil
}

func (p *Product) ProductName() string { return p.productName }

// SetProductName sets the exact product name. It must not carry anything
// else, such as a free gift or accessories.
func (p *Product) SetProductName(name string) error {
	if utf8.RuneCountInString(name) > maxProductLen {
		return invalid("product name", name, "maximum length is %d characters", maxProductLen)
	}
	p.productName = name
	return nil
}

func (p *Product) Description() string { return p.description }

// SetDescription trims the text and upper-cases its first letter. An empty
// description unsets the field.
func (p *Product) SetDescription(description string) {
	p.description = firstUpper(strings.TrimSpace(description))
}

func (p *Product) URL() string { return p.url }

func (p *Product) SetURL(url string) error {
	if err := checkURL("url", url, maxURLLen); err != nil {
		return err
	}
	p.url = url
	return nil
}

// ImgURL returns the primary image, falling back to the first alternative.
func (p *Product) ImgURL() (string, error) {
	if p.imgURL != "" {
		return p.imgURL, nil
	}
	if len(p.imgAlternative) > 0 {
		return p.imgAlternative[0], nil
	}
	return "", ErrNoImage
}

// PrimaryImgURL returns the primary image exactly as set, "" when unset.
func (p *Product) PrimaryImgURL() string { return p.imgURL }

// SetImgURL sets the primary image. Heureka recommends at least 175×175px
// and accepts up to 4096×4096px (2 MB).
func (p *Product) SetImgURL(url string) error {
	if err := checkURL("image url", url, maxImageURLLen); err != nil {
		return err
	}
	p.imgURL = url
	return nil
}

func (p *Product) ImgURLAlternatives() []string {
	out := make([]string, len(p.imgAlternative))
	copy(out, p.imgAlternative)
	return out
}

// AddImgURLAlternative appends an alternative image unless it is already
// the primary image or one of the alternatives.
func (p *Product) AddImgURLAlternative(url string) error {
	if err := checkURL("alternative image url", url, maxImageURLLen); err != nil {
		return err
	}
	if url == p.imgURL {
		return nil
	}
	for _, existing := range p.imgAlternative {
		if existing == url {
			return nil
		}
	}
	p.imgAlternative = append(p.imgAlternative, url)
	return nil
}

func (p *Product) VideoURL() string { return p.videoURL }

// SetVideoURL accepts YouTube links only (youtube.com or yt.be).
func (p *Product) SetVideoURL(url string) error {
	if err := checkURL("video url", url, maxImageURLLen); err != nil {
		return err
	}
	if !videoURLPattern.MatchString(url) {
		return invalid("video url", url, "must be a YouTube video (youtube.com or yt.be)")
	}
	p.videoURL = url
	return nil
}

func (p *Product) PriceVAT() float64 { return p.priceVAT }

func (p *Product) SetPriceVAT(price float64) error {
	if price < 0 {
		return invalid("price vat", price, "can not be negative")
	}
	p.priceVAT = price
	return nil
}

func (p *Product) PriceVATFormatted() string { return FormatPrice(p.priceVAT) }

func (p *Product) VAT() float64 { return p.vat }

func (p *Product) SetVAT(vat float64) error {
	if vat < 0 {
		return invalid("vat", vat, "can not be negative")
	}
	p.vat = vat
	return nil
}

func (p *Product) VATFormatted() string { return FormatPrice(p.vat) }

func (p *Product) ItemType() string { return p.itemType }

func (p *Product) SetItemType(itemType string) { p.itemType = itemType }

// Params returns the normalized parameters in insertion order.
func (p *Product) Params() []Param {
	out := make([]Param, len(p.params))
	copy(out, p.params)
	return out
}

// SetParams replaces all parameters. Strings are trimmed and bools become
// "ano"/"ne". Numbers are rejected because a parameter value must carry
// its unit ("15 kg", not 15).
func (p *Product) SetParams(params ...Param) error {
	var out []Param
	for _, param := range params {
		value, err := normalizeParam(param)
		if err != nil {
			return err
		}
		out = setParam(out, param.Name, value)
	}
	p.params = out
	return nil
}

// AddParam adds or replaces a single parameter.
func (p *Product) AddParam(name string, value any) error {
	v, err := normalizeParam(Param{Name: name, Value: value})
	if err != nil {
		return err
	}
	p.params = setParam(p.params, name, v)
	return nil
}

func setParam(params []Param, name, value string) []Param {
	for i := range params {
		if params[i].Name == name {
			params[i].Value = value
			return params
		}
	}
	return append(params, Param{Name: name, Value: value})
}

func normalizeParam(param Param) (string, error) {
	if strings.TrimSpace(param.Name) == "" {
		return "", invalid("parameter name", param.Name, "must be a non-empty string")
	}
	switch v := param.Value.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case bool:
		if v {
			return paramValueTrue, nil
		}
		return paramValueFalse, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "", invalid("parameter "+param.Name, v, "numeric parameter must contain unit")
	default:
		return "", invalid("parameter "+param.Name, fmt.Sprintf("%T", v), "value must be a string or bool")
	}
}

func (p *Product) Manufacturer() string { return p.manufacturer }

func (p *Product) SetManufacturer(manufacturer string) {
	p.manufacturer = firstUpper(manufacturer)
}

func (p *Product) Category() *Category { return p.category }

func (p *Product) SetCategory(category *Category) error {
	if category == nil {
		return invalid("category", "<nil>", "is required")
	}
	p.category = category
	return nil
}

func (p *Product) EAN() string { return p.ean }

func (p *Product) SetEAN(ean string) error {
	if !ValidateEAN13(ean) {
		return invalid("ean", ean, "not a valid EAN-13 code")
	}
	p.ean = ean
	return nil
}

func (p *Product) ISBN() string { return p.isbn }

// SetISBN stores the ISBN without hyphens. Both ISBN-10 and ISBN-13 are accepted.
func (p *Product) SetISBN(isbn string) error {
	isbn = strings.ReplaceAll(isbn, "-", "")
	if !IsValidISBN10(isbn) && !IsValidISBN13(isbn) {
		return invalid("isbn", isbn, "not a valid ISBN-10 or ISBN-13")
	}
	p.isbn = isbn
	return nil
}

// HeurekaCPC returns the click bid and whether one is set.
func (p *Product) HeurekaCPC() (float64, bool) {
	if p.heurekaCPC == nil {
		return 0, false
	}
	return *p.heurekaCPC, true
}

// SetHeurekaCPC sets the maximum price per click. Zero unsets the bid.
// Bids above 1000 are clamped to 1000 and a warning is logged.
func (p *Product) SetHeurekaCPC(cpc float64) error {
	if math.Abs(cpc) < cpcZeroTolerance {
		p.heurekaCPC = nil
		return nil
	}
	if cpc < 0 {
		return invalid("heureka cpc", cpc, "can not be negative")
	}
	if cpc > maxHeurekaCPC {
		slog.Warn("heureka cpc clamped", "item_id", p.itemID, "given", cpc, "max", maxHeurekaCPC)
		cpc = maxHeurekaCPC
	}
	p.heurekaCPC = &cpc
	return nil
}

// HeurekaCPCFormatted returns the formatted bid and whether one is set.
func (p *Product) HeurekaCPCFormatted() (string, bool) {
	if p.heurekaCPC == nil {
		return "", false
	}
	return FormatPrice(*p.heurekaCPC), true
}

func (p *Product) DeliveryDate() string { return p.deliveryDate }

// SetDeliveryDate sets the time from payment to dispatch, either as a day
// count or as the date the product becomes available. Dates in the past
// are rejected; nil clears the field.
func (p *Product) SetDeliveryDate(d DeliveryDate) error {
	if d == nil {
		p.deliveryDate = ""
		return nil
	}
	v, err := resolveDeliveryDate(d)
	if err != nil {
		return err
	}
	p.deliveryDate = v
	return nil
}

func (p *Product) Deliveries() []*Delivery {
	out := make([]*Delivery, len(p.deliveries))
	copy(out, p.deliveries)
	return out
}

func (p *Product) AddDelivery(d *Delivery) {
	if d != nil {
		p.deliveries = append(p.deliveries, d)
	}
}

func (p *Product) SetDeliveries(deliveries []*Delivery) {
	for _, d := range deliveries {
		p.AddDelivery(d)
	}
}

func (p *Product) Accessories() []string {
	out := make([]string, len(p.accessories))
	copy(out, p.accessories)
	return out
}

// AddAccessory references another item of the feed by its item id.
func (p *Product) AddAccessory(itemID string) {
	p.accessories = append(p.accessories, itemID)
}

func (p *Product) ProductNo() string { return p.productNo }

func (p *Product) SetProductNo(productNo string) { p.productNo = productNo }

func (p *Product) CustomTags() []CustomTag {
	out := make([]CustomTag, len(p.customTags))
	copy(out, p.customTags)
	return out
}

// AddCustomTag appends an extra element to the exported item. Re-adding a
// tag replaces its value in place. Values are strings, booleans, numbers
// or a []string that repeats the element once per entry.
func (p *Product) AddCustomTag(name string, value any) error {
	if !tagNamePattern.MatchString(name) {
		return invalid("custom tag", name, "not a valid element name")
	}
	switch v := value.(type) {
	case string, bool, int, int32, int64, uint, uint32, uint64, float32, float64:
	case []string:
		value = append([]string(nil), v...)
	default:
		return invalid("custom tag", name, "unsupported value type %T", value)
	}
	for i := range p.customTags {
		if p.customTags[i].Name == name {
			p.customTags[i].Value = value
			return nil
		}
	}
	p.customTags = append(p.customTags, CustomTag{Name: name, Value: value})
	return nil
}

func checkURL(field, url string, maxLen int) error {
	if !IsURL(url) {
		return invalid(field, url, "not a valid absolute URL")
	}
	if utf8.RuneCountInString(url) > maxLen {
		return invalid(field, url, "maximum length is %d characters", maxLen)
	}
	return nil
}

func firstUpper(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
