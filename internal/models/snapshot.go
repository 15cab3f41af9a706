package models

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the whole application state as persisted in one blob.
type Snapshot struct {
	Clients    []Client    `json:"clientes"`
	Products   []Product   `json:"productos"`
	Services   []Service   `json:"servicios"`
	Quotations []Quotation `json:"cotizaciones"`
	Company    Company     `json:"empresa"`
}

// DefaultSnapshot returns empty collections and the default company.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Clients:    []Client{},
		Products:   []Product{},
		Services:   []Service{},
		Quotations: []Quotation{},
		Company:    DefaultCompany(),
	}
}

// DecodeSnapshot overlays the top-level keys present in data onto the
// default state. Missing or null keys keep their default; nested values are
// replaced, not merged.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	snap := DefaultSnapshot()
	var company *Company
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	fields := []struct {
		key string
		dst any
	}{
		{"clientes", &snap.Clients},
		{"productos", &snap.Products},
		{"servicios", &snap.Services},
		{"cotizaciones", &snap.Quotations},
		{"empresa", &company},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return DefaultSnapshot(), fmt.Errorf("decode snapshot %s: %w", f.key, err)
		}
	}
	if company != nil {
		snap.Company = *company
	}
	snap.normalize()
	return snap, nil
}

// Encode serialises the snapshot with all five keys present.
func (s Snapshot) Encode() ([]byte, error) {
	s.normalize()
	return json.Marshal(s)
}

func (s *Snapshot) normalize() {
	if s.Clients == nil {
		s.Clients = []Client{}
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Services == nil {
		s.Services = []Service{}
	}
	if s.Quotations == nil {
		s.Quotations = []Quotation{}
	}
	for i := range s.Quotations {
		if s.Quotations[i].Items == nil {
			s.Quotations[i].Items = []LineItem{}
		}
	}
}
