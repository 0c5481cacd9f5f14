// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxDeliveryDays is the exclusive upper bound for a relative delivery time.
// Larger numbers are treated as dates.
const maxDeliveryDays = 1000

// DeliveryDate is the value accepted by Product.SetDeliveryDate. It is one of
// DeliveryInDays, DeliveryOn or DeliveryDateText; a nil DeliveryDate clears
// the field.
type DeliveryDate interface {
	deliveryDate()
}

// DeliveryInDays is the number of days between payment and dispatch.
type DeliveryInDays int

// DeliveryOn is the calendar day the goods will be available.
type DeliveryOn time.Time

// DeliveryDateText is user input that is either a day count ("5") or a
// date ("2026-11-02", "02.11.2026", RFC 3339).
type DeliveryDateText string

func (DeliveryInDays) deliveryDate()   {}
func (DeliveryOn) deliveryDate()       {}
func (DeliveryDateText) deliveryDate() {}

// nowFunc is replaced in tests.
var nowFunc = time.Now

var digitsOnly = regexp.MustCompile(`^\d+$`)

var deliveryDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
	"2.1.2006",
}

// resolveDeliveryDate turns a DeliveryDate variant into the value exported
// as DELIVERY_DATE: a decimal day count or a YYYY-MM-DD date.
func resolveDeliveryDate(d DeliveryDate) (string, error) {
	switch v := d.(type) {
	case DeliveryInDays:
		if v < 0 {
			return "", invalid("delivery date", int(v), "can not be negative")
		}
		if v >= maxDeliveryDays {
			return "", invalid("delivery date", int(v), "day count must be lower than %d", maxDeliveryDays)
		}
		return strconv.Itoa(int(v)), nil

	case DeliveryOn:
		t := time.Time(v)
		if nowFunc().After(t) {
			return "", invalid("delivery date", t.Format(time.RFC3339), "can not be in past")
		}
		return t.Format("2006-01-02"), nil

	case DeliveryDateText:
		s := strings.TrimSpace(string(v))
		if digitsOnly.MatchString(s) {
			if n, err := strconv.Atoi(s); err == nil && n < maxDeliveryDays {
				return resolveDeliveryDate(DeliveryInDays(n))
			}
		}
		t, err := parseDeliveryDate(s)
		if err != nil {
			return "", invalid("delivery date", s, "%v", err)
		}
		return resolveDeliveryDate(DeliveryOn(t))
	}
	return "", invalid("delivery date", fmt.Sprintf("%T", d), "unsupported delivery date type")
}

// DeliveryDateElapsed reports whether a resolved DELIVERY_DATE value is a
// calendar date that has already arrived. Day counts never elapse.
func DeliveryDateElapsed(value string) bool {
	s := strings.TrimSpace(value)
	if s == "" || digitsOnly.MatchString(s) {
		return false
	}
	t, err := parseDeliveryDate(s)
	if err != nil {
		return false
	}
	return nowFunc().After(t)
}

func parseDeliveryDate(s string) (time.Time, error) {
	for _, layout := range deliveryDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
