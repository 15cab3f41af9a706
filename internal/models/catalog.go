package models

import "time"

// ItemKind identifies where a line item came from.
type ItemKind string

const (
	ItemKindProduct ItemKind = "producto"
	ItemKindService ItemKind = "servicio"
	ItemKindManual  ItemKind = "manual"
)

// PricingMode says how a service is billed.
type PricingMode string

const (
	PricingFixed  PricingMode = "fijo"
	PricingHourly PricingMode = "hora"
)

// Default units applied when a catalog item is copied into a quotation.
const (
	UnitPiece = "pza"
	UnitHour  = "hr"
)

// Product is a physical catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	SKU         string    `json:"sku"`
	Price       Number    `json:"precio"`
	Unit        string    `json:"unidad"`
	Category    string    `json:"categoria"`
	Stock       *Number   `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Product) RecordID() string { return p.ID }

func (p Product) Created() time.Time { return p.CreatedAt }

func (p Product) WithIdentity(id string, createdAt time.Time) Product {
	p.ID = id
	p.CreatedAt = createdAt
	return p
}

// LineItem copies the product into a new quotation line.
func (p Product) LineItem() LineItem {
	unit := p.Unit
	if unit == "" {
		unit = UnitPiece
	}
	return LineItem{
		Kind:        ItemKindProduct,
		RefID:       p.ID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    1,
		Price:       p.Price,
		Unit:        unit,
	}
}

// Service is a catalog item billed either as a flat fee or per hour.
type Service struct {
	ID          string      `json:"id"`
	Name        string      `json:"nombre"`
	Description string      `json:"descripcion"`
	Price       Number      `json:"precio"`
	Mode        PricingMode `json:"tipo"`
	Category    string      `json:"categoria"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (s Service) RecordID() string { return s.ID }

func (s Service) Created() time.Time { return s.CreatedAt }

func (s Service) WithIdentity(id string, createdAt time.Time) Service {
	s.ID = id
	s.CreatedAt = createdAt
	return s
}

// IsHourly reports whether the service is billed per hour.
func (s Service) IsHourly() bool {
	return s.Mode == PricingHourly
}

// LineItem copies the service into a new quotation line.
func (s Service) LineItem() LineItem {
	unit := UnitPiece
	if s.IsHourly() {
		unit = UnitHour
	}
	return LineItem{
		Kind:        ItemKindService,
		RefID:       s.ID,
		Name:        s.Name,
		Description: s.Description,
		Quantity:    1,
		Price:       s.Price,
		Unit:        unit,
	}
}
