// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"reflect"
	"testing"

	"heurekafeed/internal/models"
)

func newTestProduct(t *testing.T, itemID string) *models.Product {
	t.Helper()
	p, err := models.NewProduct(itemID, "Canon PowerShot SX100", "Canon PowerShot SX100 červený",
		"https://shop.example.com/canon-sx100", 4990, models.NewCategory(1, "Fotoaparáty", nil), "canon")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestItemRecordRequiredOnly(t *testing.T) {
	r := ItemRecord(newTestProduct(t, "sku-1"), "")

	want := []string{
		ElemItemID, ElemProduct, ElemProductName, ElemDescription, ElemURL,
		ElemImgURL, ElemPriceVAT, ElemVAT, ElemManufacturer, ElemCategoryText,
	}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	if v, _ := r.Get(ElemCategoryText); v != "Heureka.cz | Fotoaparáty" {
		t.Errorf("CATEGORYTEXT = %v", v)
	}
	if v, _ := r.Get(ElemVAT); v != "21" {
		t.Errorf("VAT = %v, want 21", v)
	}
}

func TestItemRecordAllFields(t *testing.T) {
	p := newTestProduct(t, "sku-1")
	must(t, p.SetDeliveryDate(models.DeliveryInDays(2)))
	p.SetItemType("bazar")
	must(t, p.SetImgURL("https://shop.example.com/img/1.jpg"))
	must(t, p.AddImgURLAlternative("https://shop.example.com/img/2.jpg"))
	must(t, p.SetVideoURL("https://www.youtube.com/watch?v=abc"))
	must(t, p.SetEAN("4006381333931"))
	must(t, p.SetISBN("978-0-306-40615-7"))
	p.SetProductNo("SX100-RED")
	must(t, p.AddParam("barva", "červená"))
	must(t, p.SetHeurekaCPC(5.8))
	cod := 129.0
	d, err := models.NewDelivery(models.PPL, 99, &cod)
	must(t, err)
	p.AddDelivery(d)
	p.AddAccessory("sku-2")
	must(t, p.AddCustomTag("GIFT", "Brašna"))

	r := ItemRecord(p, "Popis")

	want := []string{
		ElemItemID, ElemProduct, ElemProductName, ElemDescription, ElemURL,
		ElemImgURL, ElemPriceVAT, ElemVAT, ElemManufacturer, ElemCategoryText,
		ElemDeliveryDate, ElemItemType, ElemImgURLAlternative, ElemVideoURL,
		ElemEAN, ElemISBN, ElemProductNo, ElemParam, ElemHeurekaCPC,
		ElemDelivery, ElemAccessory, "GIFT",
	}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}

	checks := map[string]any{
		ElemDescription:       "Popis",
		ElemDeliveryDate:      "2",
		ElemISBN:              "9780306406157",
		ElemHeurekaCPC:        "5,80",
		ElemImgURLAlternative: []string{"https://shop.example.com/img/2.jpg"},
		ElemAccessory:         []string{"sku-2"},
		ElemParam:             []Record{{{Name: ElemParamName, Value: "barva"}, {Name: ElemParamValue, Value: "červená"}}},
		ElemDelivery: []Record{{
			{Name: ElemDeliveryID, Value: models.PPL},
			{Name: ElemDeliveryPrice, Value: "99"},
			{Name: ElemDeliveryPriceCOD, Value: "129"},
		}},
	}
	for name, want := range checks {
		got, _ := r.Get(name)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s = %#v, want %#v", name, got, want)
		}
	}
}

func TestItemRecordCustomTagOverridesStandardField(t *testing.T) {
	p := newTestProduct(t, "sku-1")
	must(t, p.AddCustomTag(ElemManufacturer, "Override"))

	r := ItemRecord(p, "")

	if len(r) != 10 {
		t.Fatalf("len = %d, want 10 (override in place)", len(r))
	}
	if r[8].Name != ElemManufacturer || r[8].Value != "Override" {
		t.Errorf("field 8 = %+v", r[8])
	}
}

func TestItemRecordDeliveryWithoutCOD(t *testing.T) {
	p := newTestProduct(t, "sku-1")
	d, err := models.NewDelivery(models.CeskaPosta, 0, nil)
	must(t, err)
	p.AddDelivery(d)

	v, _ := ItemRecord(p, "").Get(ElemDelivery)
	deliveries := v.([]Record)
	if got := deliveries[0].Names(); !reflect.DeepEqual(got, []string{ElemDeliveryID, ElemDeliveryPrice}) {
		t.Errorf("DELIVERY children = %v", got)
	}
}
