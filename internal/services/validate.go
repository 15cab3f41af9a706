package services

import (
	"fmt"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/validation"
)

// ValidateClient requires a name and a well formed email when one is given.
func ValidateClient(c models.Client) error {
	v := validation.Violations{}
	validation.Required("nombre", c.Name, v)
	validation.Email("email", c.Email, v)
	return v.Err()
}

// ValidateProduct requires a name and a non-negative price.
func ValidateProduct(p models.Product) error {
	v := validation.Violations{}
	validation.Required("nombre", p.Name, v)
	validation.NonNegativeFloat("precio", p.Price.Float(), v)
	if p.Stock != nil {
		validation.NonNegativeFloat("stock", p.Stock.Float(), v)
	}
	return v.Err()
}

// ValidateService requires a name, a non-negative price and a known pricing mode.
func ValidateService(s models.Service) error {
	v := validation.Violations{}
	validation.Required("nombre", s.Name, v)
	validation.NonNegativeFloat("precio", s.Price.Float(), v)
	validation.OneOf("tipo", string(s.Mode), []string{string(models.PricingFixed), string(models.PricingHourly)}, v)
	return v.Err()
}

// ValidateQuotation checks what a quotation needs before it is saved. Only
// clienteId is required; an empty item list is allowed. Item violations are
// keyed as items.<index>.<field>.
func ValidateQuotation(q models.Quotation) error {
	v := validation.Violations{}
	validation.Required("clienteId", q.ClientID, v)
	if q.Status != "" && !q.Status.Valid() {
		v["estatus"] = "invalid_choice"
	}
	validation.RangeFloat("descuentoGlobal", q.GlobalDiscount.Float(), 0, 100, v)
	validation.NonNegativeFloat("iva", q.TaxRate.Float(), v)
	for i, item := range q.Items {
		prefix := fmt.Sprintf("items.%d.", i)
		validation.Required(prefix+"nombre", item.Name, v)
		validation.PositiveFloat(prefix+"cantidad", item.Quantity.Float(), v)
		validation.NonNegativeFloat(prefix+"precio", item.Price.Float(), v)
		validation.RangeFloat(prefix+"descuento", item.Discount.Float(), 0, 100, v)
	}
	return v.Err()
}
