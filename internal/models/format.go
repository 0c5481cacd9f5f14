// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validate is the shared validator instance used for URL checks.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// IsURL reports whether s is a well-formed absolute http(s) URL.
func IsURL(s string) bool {
	return Validate.Var(s, "required,http_url") == nil
}

// FormatPrice renders an amount with two decimals, a comma separator and no
// thousands grouping. A zero fraction is dropped: 10.00 → "10", 10.5 → "10,50".
func FormatPrice(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	s = strings.Replace(s, ".", ",", 1)
	return strings.ReplaceAll(s, ",00", "")
}

var ean13Pattern = regexp.MustCompile(`^\d{13}$`)

// ValidateEAN13 reports whether barcode is a 13-digit EAN with a correct
// check digit.
func ValidateEAN13(barcode string) bool {
	if !ean13Pattern.MatchString(barcode) {
		return false
	}
	digit := func(i int) int { return int(barcode[i] - '0') }

	evenSum := digit(1) + digit(3) + digit(5) + digit(7) + digit(9) + digit(11)
	oddSum := digit(0) + digit(2) + digit(4) + digit(6) + digit(8) + digit(10)
	total := oddSum + 3*evenSum

	nextTen := (total + 9) / 10 * 10
	return nextTen-total == digit(12)
}

// IsValidISBN10 checks the ISBN-10 weighted checksum. Hyphens are ignored
// and an x/X counts as ten.
func IsValidISBN10(isbn string) bool {
	isbn = strings.ReplaceAll(isbn, "-", "")
	if len(isbn) != 10 {
		return false
	}
	check := 0
	for i := 0; i < 10; i++ {
		c := isbn[i]
		switch {
		case c == 'x' || c == 'X':
			check += 10 * (10 - i)
		case c >= '0' && c <= '9':
			check += int(c-'0') * (10 - i)
		default:
			return false
		}
	}
	return check%11 == 0
}

// IsValidISBN13 checks the ISBN-13 checksum (weights 1 and 3). Hyphens are
// ignored.
func IsValidISBN13(isbn string) bool {
	isbn = strings.ReplaceAll(isbn, "-", "")
	if len(isbn) != 13 {
		return false
	}
	check := 0
	for i := 0; i < 13; i++ {
		c := isbn[i]
		if c < '0' || c > '9' {
			return false
		}
		if i%2 == 0 {
			check += int(c - '0')
		} else {
			check += 3 * int(c-'0')
		}
	}
	return check%10 == 0
}
