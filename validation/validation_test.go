package validation

import (
	"errors"
	"testing"
)

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("nombre", "  ", v)
	Email("email", "no-es-correo", v)
	Email("email2", "", v)
	PositiveFloat("cantidad", 0, v)
	NonNegativeFloat("precio", -1, v)
	NonNegativeFloat("precio2", 0, v)
	RangeFloat("descuento", 101, 0, 100, v)
	OneOf("tipo", "mensual", []string{"fijo", "hora"}, v)

	want := map[string]string{
		"nombre":    "required",
		"email":     "invalid_email",
		"cantidad":  "must_be_positive",
		"precio":    "must_not_be_negative",
		"descuento": "out_of_range",
		"tipo":      "invalid_choice",
	}
	if len(v) != len(want) {
		t.Fatalf("got %d violations %v, want %d", len(v), v, len(want))
	}
	for field, code := range want {
		if v[field] != code {
			t.Errorf("%s = %q, want %q", field, v[field], code)
		}
	}
}

func TestEmailPattern(t *testing.T) {
	for _, ok := range []string{"ana@example.com", "a@b.mx"} {
		v := Violations{}
		Email("email", ok, v)
		if !v.Empty() {
			t.Errorf("%q should be accepted", ok)
		}
	}
	for _, bad := range []string{"ana@", "@example.com", "ana@example"} {
		v := Violations{}
		Email("email", bad, v)
		if v.Empty() {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestErr(t *testing.T) {
	if err := (Violations{}).Err(); err != nil {
		t.Fatalf("empty violations should give nil, got %v", err)
	}
	err := Violations{"nombre": "required", "email": "invalid_email"}.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if got := err.Error(); got != "validation failed: email: invalid_email, nombre: required" {
		t.Errorf("Error() = %q", got)
	}
	fields, ok := Fields(err)
	if !ok || fields["nombre"] != "required" {
		t.Errorf("Fields() = %v, %v", fields, ok)
	}
	if _, ok := Fields(errors.New("x")); ok {
		t.Error("plain error should not report fields")
	}
}
