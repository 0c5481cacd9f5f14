// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// Carrier identifiers accepted by Heureka in DELIVERY_ID.
const (
	CeskaPosta                  = "CESKA_POSTA"                    // Česká pošta, Balík Do ruky
	CeskaPostaNapostuDepotapi   = "CESKA_POSTA_NAPOSTU_DEPOTAPI"   // Česká pošta, Balík Na poštu
	CeskaPostaDoporucenaZasilka = "CESKA_POSTA_DOPORUCENA_ZASILKA" // Česká pošta, Doporučená zásilka
	CsadLogistikOstrava         = "CSAD_LOGISTIK_OSTRAVA"
	DPD                         = "DPD" // not DPD ParcelShop
	DHL                         = "DHL"
	DSV                         = "DSV"
	FOFR                        = "FOFR"
	GebruderWeiss               = "GEBRUDER_WEISS"
	Geis                        = "GEIS" // not Geis Point
	GLS                         = "GLS"
	HDS                         = "HDS"
	PPL                         = "PPL"
	Seegmuller                  = "SEEGMULLER"
	TNT                         = "TNT"
	Toptrans                    = "TOPTRANS"
	UPS                         = "UPS"
	FedEx                       = "FEDEX"
	RabenLogistics              = "RABEN_LOGISTICS"
	Zasilkovna                  = "ZASILKOVNA"
	DPDPickup                   = "DPD_PICKUP"
	BalikovnaDepotapi           = "BALIKOVNA_DEPOTAPI"
	VlastniPreprava             = "VLASTNI_PREPRAVA"
	WeDo                        = "WEDO" // IN TIME & Uloženka
)

// SupportedCarriers lists every carrier id in the order Heureka documents them.
var SupportedCarriers = []string{
	CeskaPosta, CeskaPostaNapostuDepotapi, CeskaPostaDoporucenaZasilka,
	CsadLogistikOstrava, DPD, DHL, DSV, FOFR, GebruderWeiss, Geis, GLS, HDS,
	PPL, Seegmuller, TNT, Toptrans, UPS, FedEx, RabenLogistics, Zasilkovna,
	DPDPickup, BalikovnaDepotapi, VlastniPreprava, WeDo,
}

// Delivery is one shipping option of a product. It is immutable once built.
type Delivery struct {
	id       string
	price    float64
	priceCOD *float64
}

// NewDelivery validates the carrier id and prices. priceCOD may be nil when
// the carrier offers no cash-on-delivery.
func NewDelivery(id string, price float64, priceCOD *float64) (*Delivery, error) {
	if !isSupportedCarrier(id) {
		return nil, invalid("delivery id", id,
			"unsupported carrier, did you mean %q?", strings.Join(SupportedCarriers, `", "`))
	}
	if price < 0 {
		return nil, invalid("delivery price", price, "can not be negative")
	}
	d := &Delivery{id: id, price: price}
	if priceCOD != nil {
		if *priceCOD < 0 {
			return nil, invalid("delivery COD price", *priceCOD, "can not be negative")
		}
		cod := *priceCOD
		d.priceCOD = &cod
	}
	return d, nil
}

func isSupportedCarrier(id string) bool {
	for _, c := range SupportedCarriers {
		if c == id {
			return true
		}
	}
	return false
}

func (d *Delivery) ID() string { return d.id }

func (d *Delivery) Price() float64 { return d.price }

// PriceFormatted returns the price in export format.
func (d *Delivery) PriceFormatted() string { return FormatPrice(d.price) }

// PriceCOD returns the cash-on-delivery surcharge, or nil when not offered.
func (d *Delivery) PriceCOD() *float64 {
	if d.priceCOD == nil {
		return nil
	}
	v := *d.priceCOD
	return &v
}

// PriceCODFormatted returns the formatted COD surcharge and whether it is set.
func (d *Delivery) PriceCODFormatted() (string, bool) {
	if d.priceCOD == nil {
		return "", false
	}
	return FormatPrice(*d.priceCOD), true
}

func (d *Delivery) String() string {
	return fmt.Sprintf("%s (%s)", d.id, d.PriceFormatted())
}
