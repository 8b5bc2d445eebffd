// Package money converts between user-entered amounts and the int64 cents
// stored everywhere else.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Parse reads an amount into cents. Both "1.234,56" (comma decimal) and
// "1234.56" (dot decimal) are accepted; a value containing a comma is always
// read with the comma as the decimal separator.
func Parse(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(clean, " ", "")

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}

// ParseQuantity reads a whole-unit quantity written with either decimal
// convention ("3", "3,000", "3.0").
func ParseQuantity(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}

	return d.IntPart(), nil
}

// Format renders cents as a plain decimal ("15.00").
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatBRL renders cents as Brazilian currency ("R$ 1.234,56").
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)

	var b strings.Builder

	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(r)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), frac)
}
