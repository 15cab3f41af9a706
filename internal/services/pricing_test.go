package services

import (
	"math"
	"testing"

	"github.com/diewo77/go-cotizaciones/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		name string
		item models.LineItem
		want float64
	}{
		{"plain", models.LineItem{Price: 100, Quantity: 2}, 200},
		{"ten percent off", models.LineItem{Price: 100, Quantity: 2, Discount: 10}, 180},
		{"half off", models.LineItem{Price: 200, Quantity: 3, Discount: 50}, 300},
		{"zero price", models.LineItem{Price: 0, Quantity: 5, Discount: 20}, 0},
		{"missing fields", models.LineItem{}, 0},
		{"fractional quantity", models.LineItem{Price: 350, Quantity: 1.5}, 525},
		// no clamping: range checks are left to validation
		{"negative quantity", models.LineItem{Price: 10, Quantity: -2}, -20},
		{"discount above 100", models.LineItem{Price: 10, Quantity: 1, Discount: 150}, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineSubtotal(tt.item); !almostEqual(got, tt.want) {
				t.Errorf("LineSubtotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineSubtotal_MatchesClosedForm(t *testing.T) {
	for _, price := range []float64{0, 1, 19.99, 250} {
		for _, qty := range []float64{1, 2, 7.5} {
			for _, disc := range []float64{0, 5, 12.5, 100} {
				item := models.LineItem{Price: models.Number(price), Quantity: models.Number(qty), Discount: models.Number(disc)}
				want := price * qty * (1 - disc/100)
				if got := LineSubtotal(item); !almostEqual(got, want) {
					t.Errorf("LineSubtotal(%v,%v,%v) = %v, want %v", price, qty, disc, got, want)
				}
			}
		}
	}
}

func TestComputeTotals_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
		gd    float64
		tax   float64
		want  models.Totals
	}{
		{
			name:  "single discounted line",
			items: []models.LineItem{{Price: 100, Quantity: 2, Discount: 10}},
			gd:    0,
			tax:   16,
			want:  models.Totals{Subtotal: 180, DiscountAmount: 0, AfterDiscount: 180, TaxAmount: 28.8, Total: 208.8},
		},
		{
			name: "global discount before tax",
			items: []models.LineItem{
				{Price: 50, Quantity: 1},
				{Price: 200, Quantity: 3, Discount: 50},
			},
			gd:   10,
			tax:  16,
			want: models.Totals{Subtotal: 350, DiscountAmount: 35, AfterDiscount: 315, TaxAmount: 50.4, Total: 365.4},
		},
		{
			name: "no items",
			gd:   10,
			tax:  16,
			want: models.Totals{},
		},
		{
			name:  "non finite rates count as zero",
			items: []models.LineItem{{Price: 10, Quantity: 1}},
			gd:    math.NaN(),
			tax:   math.Inf(1),
			want:  models.Totals{Subtotal: 10, AfterDiscount: 10, Total: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.gd, tt.tax)
			checks := []struct {
				field     string
				got, want float64
			}{
				{"Subtotal", got.Subtotal, tt.want.Subtotal},
				{"DiscountAmount", got.DiscountAmount, tt.want.DiscountAmount},
				{"AfterDiscount", got.AfterDiscount, tt.want.AfterDiscount},
				{"TaxAmount", got.TaxAmount, tt.want.TaxAmount},
				{"Total", got.Total, tt.want.Total},
			}
			for _, c := range checks {
				if !almostEqual(c.got, c.want) {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestComputeTotals_Properties(t *testing.T) {
	items := []models.LineItem{
		{Price: 19.99, Quantity: 3, Discount: 7},
		{Price: 1234.56, Quantity: 1.25, Discount: 0},
		{Price: 0.1, Quantity: 10, Discount: 33.3},
	}
	a := ComputeTotals(items, 12.5, 16)
	b := ComputeTotals(items, 12.5, 16)
	if a != b {
		t.Fatalf("ComputeTotals is not deterministic: %+v vs %+v", a, b)
	}
	if a.Total != a.AfterDiscount+a.TaxAmount {
		t.Errorf("Total %v != AfterDiscount+TaxAmount %v", a.Total, a.AfterDiscount+a.TaxAmount)
	}
	if a.AfterDiscount != a.Subtotal-a.DiscountAmount {
		t.Errorf("AfterDiscount %v != Subtotal-DiscountAmount", a.AfterDiscount)
	}

	reversed := []models.LineItem{items[2], items[1], items[0]}
	if r := ComputeTotals(reversed, 12.5, 16); !almostEqual(r.Total, a.Total) {
		t.Errorf("order changed the total: %v vs %v", r.Total, a.Total)
	}
}

func TestQuotationTotals_UsesLenientFields(t *testing.T) {
	q := &models.Quotation{
		TaxRate:        16,
		GlobalDiscount: 0,
		Items:          []models.LineItem{{Price: 100, Quantity: 2, Discount: 10}},
	}
	if got := QuotationTotals(q); !almostEqual(got.Total, 208.8) {
		t.Errorf("Total = %v, want 208.8", got.Total)
	}
}

func TestCheckTotals(t *testing.T) {
	if err := CheckTotals(ComputeTotals([]models.LineItem{{Price: 100, Quantity: 2}}, 0, 16)); err != nil {
		t.Errorf("finite totals rejected: %v", err)
	}
	huge := []models.LineItem{{Price: 1e200, Quantity: 1e200}}
	if err := CheckTotals(ComputeTotals(huge, 0, 16)); err == nil {
		t.Error("overflowing totals should be rejected")
	}
	if err := CheckTotals(models.Totals{Total: math.NaN()}); err == nil {
		t.Error("NaN total should be rejected")
	}
}
