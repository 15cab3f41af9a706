package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{" 3.5 ", 3.5},
		{"12abc", 12},
		{"-4", -4},
		{".5", 0.5},
		{"1e2", 100},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseNumber(tt.in); got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var item LineItem
	data := `{"cantidad":"3","precio":"100.5x","descuento":null}`
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Quantity != 3 || item.Price != 100.5 || item.Discount != 0 {
		t.Fatalf("unexpected item: %+v", item)
	}

	var odd struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":true,"b":{"x":1}}`), &odd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if odd.A != 0 || odd.B != 0 {
		t.Fatalf("non numeric values should decode as 0: %+v", odd)
	}

	out, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if back["precio"] != 100.5 {
		t.Fatalf("precio should encode as a number, got %#v", back["precio"])
	}
}

func TestStatus_LabelAndColor(t *testing.T) {
	tests := []struct {
		status Status
		label  string
		color  string
	}{
		{StatusDraft, "Borrador", "#94a3b8"},
		{StatusSent, "Enviada", "#3b82f6"},
		{StatusApproved, "Aprobada", "#22c55e"},
		{StatusRejected, "Rechazada", "#ef4444"},
		{StatusExpired, "Vencida", "#f97316"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if !tt.status.Valid() {
				t.Errorf("%q should be valid", tt.status)
			}
			if got := tt.status.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.status.Color(); got != tt.color {
				t.Errorf("Color() = %q, want %q", got, tt.color)
			}
		})
	}
	if Status("otro").Valid() {
		t.Error("unknown status should not be valid")
	}
	if got := Status("otro").Label(); got != "otro" {
		t.Errorf("unknown Label() = %q", got)
	}
}

func TestQuotation_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status Status
		until  string
		want   Status
	}{
		{"open before expiry", StatusSent, "2025-03-20", StatusSent},
		{"expiry day still valid", StatusDraft, "2025-03-10", StatusDraft},
		{"draft past expiry", StatusDraft, "2025-03-09", StatusExpired},
		{"sent past expiry", StatusSent, "2025-01-01", StatusExpired},
		{"approved keeps status", StatusApproved, "2025-01-01", StatusApproved},
		{"rejected keeps status", StatusRejected, "2025-01-01", StatusRejected},
		{"no vigencia", StatusSent, "", StatusSent},
		{"bad vigencia", StatusSent, "mañana", StatusSent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Quotation{Status: tt.status, ValidUntil: tt.until}
			if got := q.EffectiveStatus(now); got != tt.want {
				t.Errorf("EffectiveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuotation_TotalsFlattenedInJSON(t *testing.T) {
	q := Quotation{Number: "COT-2025-0001", Totals: Totals{Subtotal: 180, TaxAmount: 28.8, AfterDiscount: 180, Total: 208.8}}
	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for key, want := range map[string]float64{"subtotal": 180, "descuentoMonto": 0, "subtotalConDescuento": 180, "ivaMonto": 28.8, "total": 208.8} {
		if m[key] != want {
			t.Errorf("%s = %v, want %v", key, m[key], want)
		}
	}
}

func TestQuotation_UnmarshalDefaultsIVA(t *testing.T) {
	tests := []struct {
		name string
		base Quotation
		data string
		want Number
	}{
		{"absent", Quotation{}, `{"numero":"COT-2025-0001"}`, DefaultTaxRate},
		{"explicit zero", Quotation{}, `{"iva":0}`, 0},
		{"string", Quotation{}, `{"iva":"8"}`, 8},
		{"absent keeps prefilled rate", Quotation{TaxRate: 8}, `{}`, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.base
			if err := json.Unmarshal([]byte(tt.data), &q); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if q.TaxRate != tt.want {
				t.Errorf("iva = %v, want %v", q.TaxRate, tt.want)
			}
		})
	}

	var qs []Quotation
	if err := json.Unmarshal([]byte(`[{"id":"a"},{"id":"b","iva":4}]`), &qs); err != nil {
		t.Fatal(err)
	}
	if qs[0].TaxRate != DefaultTaxRate || qs[1].TaxRate != 4 {
		t.Errorf("slice elements = %+v", qs)
	}
}

func TestCatalog_LineItem(t *testing.T) {
	p := Product{ID: "p1", Name: "Cable", Price: 12.5, Unit: "m"}
	if li := p.LineItem(); li.Unit != "m" || li.Kind != ItemKindProduct || li.RefID != "p1" || li.Quantity != 1 || li.Price != 12.5 {
		t.Errorf("product line item = %+v", li)
	}
	if li := (Product{Name: "Caja"}).LineItem(); li.Unit != UnitPiece {
		t.Errorf("product without unit should default to %q, got %q", UnitPiece, li.Unit)
	}
	if li := (Service{Name: "Soporte", Mode: PricingHourly}).LineItem(); li.Unit != UnitHour || li.Kind != ItemKindService {
		t.Errorf("hourly service line item = %+v", li)
	}
	if li := (Service{Name: "Instalación", Mode: PricingFixed}).LineItem(); li.Unit != UnitPiece {
		t.Errorf("fixed service unit = %q", li.Unit)
	}
}

func TestCompanyPatch(t *testing.T) {
	logo := "data:image/png;base64,AAA"
	base := DefaultCompany()
	base.Logo = &logo

	var p CompanyPatch
	if err := json.Unmarshal([]byte(`{"nombre":"Acme","telefono":"555"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := p.Apply(base)
	if got.Name != "Acme" || got.Phone != "555" {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if got.RFC != base.RFC || got.Email != base.Email || got.Logo == nil {
		t.Errorf("absent fields must be untouched: %+v", got)
	}

	var clear CompanyPatch
	if err := json.Unmarshal([]byte(`{"logo":null}`), &clear); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := clear.Apply(base); got.Logo != nil {
		t.Errorf("explicit null logo should clear it")
	}
}

func TestDecodeSnapshot(t *testing.T) {
	t.Run("partial keys keep defaults", func(t *testing.T) {
		snap, err := DecodeSnapshot([]byte(`{"clientes":[{"id":"c1","nombre":"Ana"}]}`))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(snap.Clients) != 1 || snap.Clients[0].Name != "Ana" {
			t.Fatalf("clients = %+v", snap.Clients)
		}
		if snap.Products == nil || len(snap.Products) != 0 {
			t.Errorf("products should default to empty")
		}
		if snap.Company != DefaultCompany() {
			t.Errorf("company should default, got %+v", snap.Company)
		}
	})
	t.Run("empresa replaced wholesale", func(t *testing.T) {
		snap, err := DecodeSnapshot([]byte(`{"empresa":{"nombre":"Otra"}}`))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if snap.Company.Name != "Otra" || snap.Company.RFC != "" {
			t.Errorf("company = %+v", snap.Company)
		}
	})
	t.Run("malformed", func(t *testing.T) {
		snap, err := DecodeSnapshot([]byte(`{not json`))
		if err == nil {
			t.Fatal("expected error")
		}
		if snap.Company != DefaultCompany() || len(snap.Quotations) != 0 {
			t.Errorf("malformed input should yield defaults")
		}
	})
	t.Run("encode has all keys", func(t *testing.T) {
		out, err := Snapshot{}.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		var m map[string]json.RawMessage
		_ = json.Unmarshal(out, &m)
		for _, k := range []string{"clientes", "productos", "servicios", "cotizaciones", "empresa"} {
			if _, ok := m[k]; !ok {
				t.Errorf("missing key %q", k)
			}
		}
		if string(m["clientes"]) != "[]" {
			t.Errorf("clientes = %s, want []", m["clientes"])
		}
	})
}
