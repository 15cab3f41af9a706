package services

import (
	"math"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/validation"
)

// LineSubtotal is price*quantity less the line's percentage discount.
// Nothing is clamped: a negative quantity or a discount above 100 gives a
// negative or inverted amount, and range checks belong to validation.
func LineSubtotal(item models.LineItem) float64 {
	gross := item.Price.Float() * item.Quantity.Float()
	return gross - (gross*item.Discount.Float())/100
}

// ComputeTotals folds the line subtotals, applies the global discount and
// then the tax on the discounted amount. It never fails; non-finite rates
// count as 0.
func ComputeTotals(items []models.LineItem, globalDiscountPct, taxRatePct float64) models.Totals {
	var t models.Totals
	for _, item := range items {
		t.Subtotal += LineSubtotal(item)
	}
	t.DiscountAmount = (t.Subtotal * finite(globalDiscountPct)) / 100
	t.AfterDiscount = t.Subtotal - t.DiscountAmount
	t.TaxAmount = (t.AfterDiscount * finite(taxRatePct)) / 100
	t.Total = t.AfterDiscount + t.TaxAmount
	return t
}

// QuotationTotals computes the totals block for q from its own fields.
func QuotationTotals(q *models.Quotation) models.Totals {
	return ComputeTotals(q.Items, q.GlobalDiscount.Float(), q.TaxRate.Float())
}

// CheckTotals rejects totals that overflowed to an infinity or NaN, which
// happens when prices and quantities are huge enough.
func CheckTotals(t models.Totals) error {
	for _, f := range []float64{t.Subtotal, t.DiscountAmount, t.AfterDiscount, t.TaxAmount, t.Total} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return validation.Violations{"items": "out_of_range"}.Err()
		}
	}
	return nil
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
