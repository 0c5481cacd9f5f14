// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"heurekafeed/internal/catalog"
	"heurekafeed/internal/models"
)

// ErrProductNotFound is returned when an item id has no stored row.
var ErrProductNotFound = errors.New("product not found")

// CategoryResolver looks up Heureka categories by id.
type CategoryResolver interface {
	Category(ctx context.Context, id int) (*models.Category, error)
}

// ProductStore reads and writes exported products in PostgreSQL and
// serves them as a feed product source.
type ProductStore struct {
	db         *sql.DB
	categories CategoryResolver
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB, categories CategoryResolver) *ProductStore {
	return &ProductStore{db: db, categories: categories}
}

const productColumns = `item_id, product, product_name, description, url, img_url,
	img_url_alternatives, video_url, price_vat, vat, item_type, manufacturer,
	category_id, ean, isbn, product_no, heureka_cpc, delivery_date,
	params, deliveries, accessories, custom_tags`

// productRow is the raw column set of one products row.
type productRow struct {
	itemID, product, productName, description, url, imgURL string
	imgAlternatives                                        []byte
	videoURL                                               string
	priceVAT, vat                                          decimal.Decimal
	itemType, manufacturer                                 string
	categoryID                                             int
	ean, isbn, productNo                                   string
	heurekaCPC                                             decimal.NullDecimal
	deliveryDate                                           string
	params, deliveries, accessories, customTags            []byte
}

type paramJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type deliveryJSON struct {
	ID       string           `json:"id"`
	Price    decimal.Decimal  `json:"price"`
	PriceCOD *decimal.Decimal `json:"price_cod,omitempty"`
}

type customTagJSON struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func scanProductRow(scanner interface{ Scan(...any) error }) (*productRow, error) {
	var r productRow
	err := scanner.Scan(
		&r.itemID, &r.product, &r.productName, &r.description, &r.url, &r.imgURL,
		&r.imgAlternatives, &r.videoURL, &r.priceVAT, &r.vat, &r.itemType, &r.manufacturer,
		&r.categoryID, &r.ean, &r.isbn, &r.productNo, &r.heurekaCPC, &r.deliveryDate,
		&r.params, &r.deliveries, &r.accessories, &r.customTags,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Products returns all active products in export order. Rows that no
// longer pass product validation, or whose category is unknown to
// Heureka, are skipped with a warning.
func (s *ProductStore) Products(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE active
		ORDER BY sort_order, item_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var raw []*productRow
	for rows.Next() {
		r, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*models.Product, 0, len(raw))
	for _, r := range raw {
		p, err := s.toProduct(ctx, r)
		if err != nil {
			if skippable(err) {
				slog.Warn("skipping product", "item_id", r.itemID, "error", err)
				continue
			}
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// FindByID returns one product by item id. Returns nil if not found.
func (s *ProductStore) FindByID(ctx context.Context, itemID string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE item_id = $1`, itemID)
	r, err := scanProductRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return s.toProduct(ctx, r)
}

// Save inserts or replaces a product.
func (s *ProductStore) Save(ctx context.Context, p *models.Product) error {
	alternatives, err := json.Marshal(nonNil(p.ImgURLAlternatives()))
	if err != nil {
		return fmt.Errorf("encode image alternatives: %w", err)
	}
	params := make([]paramJSON, 0, len(p.Params()))
	for _, param := range p.Params() {
		params = append(params, paramJSON{Name: param.Name, Value: fmt.Sprint(param.Value)})
	}
	deliveries := make([]deliveryJSON, 0, len(p.Deliveries()))
	for _, d := range p.Deliveries() {
		dj := deliveryJSON{ID: d.ID(), Price: decimal.NewFromFloat(d.Price())}
		if cod := d.PriceCOD(); cod != nil {
			v := decimal.NewFromFloat(*cod)
			dj.PriceCOD = &v
		}
		deliveries = append(deliveries, dj)
	}
	tags := make([]customTagJSON, 0, len(p.CustomTags()))
	for _, tag := range p.CustomTags() {
		tags = append(tags, customTagJSON{Name: tag.Name, Value: tag.Value})
	}

	encoded := make([][]byte, 0, 4)
	for _, v := range []any{params, deliveries, nonNil(p.Accessories()), tags} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", p.ItemID(), err)
		}
		encoded = append(encoded, b)
	}

	var cpc decimal.NullDecimal
	if v, ok := p.HeurekaCPC(); ok {
		cpc = decimal.NewNullDecimal(decimal.NewFromFloat(v))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (item_id) DO UPDATE SET
			product = EXCLUDED.product,
			product_name = EXCLUDED.product_name,
			description = EXCLUDED.description,
			url = EXCLUDED.url,
			img_url = EXCLUDED.img_url,
			img_url_alternatives = EXCLUDED.img_url_alternatives,
			video_url = EXCLUDED.video_url,
			price_vat = EXCLUDED.price_vat,
			vat = EXCLUDED.vat,
			item_type = EXCLUDED.item_type,
			manufacturer = EXCLUDED.manufacturer,
			category_id = EXCLUDED.category_id,
			ean = EXCLUDED.ean,
			isbn = EXCLUDED.isbn,
			product_no = EXCLUDED.product_no,
			heureka_cpc = EXCLUDED.heureka_cpc,
			delivery_date = EXCLUDED.delivery_date,
			params = EXCLUDED.params,
			deliveries = EXCLUDED.deliveries,
			accessories = EXCLUDED.accessories,
			custom_tags = EXCLUDED.custom_tags,
			updated_at = NOW()
	`,
		p.ItemID(), p.Product(), p.ProductName(), p.Description(), p.URL(), p.PrimaryImgURL(),
		alternatives, p.VideoURL(), decimal.NewFromFloat(p.PriceVAT()), decimal.NewFromFloat(p.VAT()),
		p.ItemType(), p.Manufacturer(), p.Category().ID(), p.EAN(), p.ISBN(), p.ProductNo(),
		cpc, p.DeliveryDate(), encoded[0], encoded[1], encoded[2], encoded[3],
	)
	if err != nil {
		return fmt.Errorf("save product %s: %w", p.ItemID(), err)
	}
	return nil
}

// SetActive includes or excludes a product from the feed.
func (s *ProductStore) SetActive(ctx context.Context, itemID string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET active = $2, updated_at = NOW() WHERE item_id = $1`, itemID, active)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return expectRow(res)
}

// Delete removes a product by item id.
func (s *ProductStore) Delete(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// toProduct validates a row through the product setters.
func (s *ProductStore) toProduct(ctx context.Context, r *productRow) (*models.Product, error) {
	category, err := s.categories.Category(ctx, r.categoryID)
	if err != nil {
		return nil, err
	}

	p, err := models.NewProduct(r.itemID, r.product, r.productName, r.url,
		r.priceVAT.InexactFloat64(), category, r.manufacturer)
	if err != nil {
		return nil, err
	}
	p.SetDescription(r.description)
	p.SetItemType(r.itemType)
	p.SetProductNo(r.productNo)
	if err := p.SetVAT(r.vat.InexactFloat64()); err != nil {
		return nil, err
	}
	if r.imgURL != "" {
		if err := p.SetImgURL(r.imgURL); err != nil {
			return nil, err
		}
	}
	if r.videoURL != "" {
		if err := p.SetVideoURL(r.videoURL); err != nil {
			return nil, err
		}
	}
	if r.ean != "" {
		if err := p.SetEAN(r.ean); err != nil {
			return nil, err
		}
	}
	if r.isbn != "" {
		if err := p.SetISBN(r.isbn); err != nil {
			return nil, err
		}
	}
	if r.heurekaCPC.Valid {
		if err := p.SetHeurekaCPC(r.heurekaCPC.Decimal.InexactFloat64()); err != nil {
			return nil, err
		}
	}
	switch {
	case r.deliveryDate == "":
	case models.DeliveryDateElapsed(r.deliveryDate):
		slog.Warn("delivery date has passed, exporting without it",
			"item_id", r.itemID, "delivery_date", r.deliveryDate)
	default:
		if err := p.SetDeliveryDate(models.DeliveryDateText(r.deliveryDate)); err != nil {
			return nil, err
		}
	}

	var alternatives, accessories []string
	var params []paramJSON
	var deliveries []deliveryJSON
	var tags []customTagJSON
	for _, col := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"img_url_alternatives", r.imgAlternatives, &alternatives},
		{"params", r.params, &params},
		{"deliveries", r.deliveries, &deliveries},
		{"accessories", r.accessories, &accessories},
		{"custom_tags", r.customTags, &tags},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, &rowError{column: col.name, err: err}
		}
	}

	for _, u := range alternatives {
		if err := p.AddImgURLAlternative(u); err != nil {
			return nil, err
		}
	}
	for _, param := range params {
		if err := p.AddParam(param.Name, param.Value); err != nil {
			return nil, err
		}
	}
	for _, dj := range deliveries {
		var cod *float64
		if dj.PriceCOD != nil {
			v := dj.PriceCOD.InexactFloat64()
			cod = &v
		}
		d, err := models.NewDelivery(dj.ID, dj.Price.InexactFloat64(), cod)
		if err != nil {
			return nil, &rowError{column: "deliveries", err: err}
		}
		p.AddDelivery(d)
	}
	for _, a := range accessories {
		p.AddAccessory(a)
	}
	for _, tag := range tags {
		if err := p.AddCustomTag(tag.Name, customTagValue(tag.Value)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// customTagValue restores a []string tag value, which JSON decodes as
// []any.
func customTagValue(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return v
		}
		out = append(out, s)
	}
	return out
}

// rowError reports a column that cannot be decoded.
type rowError struct {
	column string
	err    error
}

func (e *rowError) Error() string { return fmt.Sprintf("column %s: %v", e.column, e.err) }

func (e *rowError) Unwrap() error { return e.err }

// skippable reports whether err concerns a single row rather than the
// database or the category feed.
func skippable(err error) bool {
	var validation *models.ValidationError
	var unknown *catalog.UnknownCategoryError
	var row *rowError
	return errors.As(err, &validation) || errors.As(err, &unknown) || errors.As(err, &row)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
