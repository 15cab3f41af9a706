// Package format renders money and dates for people.
package format

import (
	"math"
	"strings"
	"time"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/shopspring/decimal"
)

// Currency renders v as Mexican pesos, e.g. $1,234.50. A nil, NaN or
// infinite value renders as $0.00.
func Currency(v *float64) string {
	if v == nil {
		return Money(0)
	}
	return Money(*v)
}

// Money is Currency for a plain value.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	var b strings.Builder
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date turns YYYY-MM-DD into DD/MM/YYYY. Empty input gives an empty string
// and input that is not a calendar date is returned as is.
func Date(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// Percent renders a rate as 16% or 12.5%.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String() + "%"
}
