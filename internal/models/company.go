package models

import (
	"encoding/json"
	"fmt"
)

// Company is the issuing business printed on every quotation.
type Company struct {
	Name    string  `json:"nombre"`
	RFC     string  `json:"rfc"`
	Address string  `json:"direccion"`
	Phone   string  `json:"telefono"`
	Email   string  `json:"email"`
	Logo    *string `json:"logo"`
}

// DefaultCompany is the profile used until the user edits it.
func DefaultCompany() Company {
	return Company{
		Name:    "Mi Empresa S.A.",
		RFC:     "MEM000101AAA",
		Address: "Calle Principal #100, Ciudad",
		Phone:   "664-000-0000",
		Email:   "contacto@miempresa.com",
	}
}

// CompanyPatch holds the fields supplied in a partial company update.
// Nil fields are left untouched. ClearLogo is set when the patch carries
// an explicit null logo.
type CompanyPatch struct {
	Name      *string `json:"nombre,omitempty"`
	RFC       *string `json:"rfc,omitempty"`
	Address   *string `json:"direccion,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
	Logo      *string `json:"logo,omitempty"`
	ClearLogo bool    `json:"-"`
}

func (p *CompanyPatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("company patch: %w", err)
	}
	fields := map[string]**string{
		"nombre":    &p.Name,
		"rfc":       &p.RFC,
		"direccion": &p.Address,
		"telefono":  &p.Phone,
		"email":     &p.Email,
	}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("company patch %s: %w", key, err)
		}
		*dst = &s
	}
	if v, ok := raw["logo"]; ok {
		if string(v) == "null" {
			p.ClearLogo = true
		} else {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("company patch logo: %w", err)
			}
			p.Logo = &s
		}
	}
	return nil
}

// Apply returns c with the patch merged in.
func (p CompanyPatch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.RFC != nil {
		c.RFC = *p.RFC
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	switch {
	case p.ClearLogo:
		c.Logo = nil
	case p.Logo != nil:
		logo := *p.Logo
		c.Logo = &logo
	}
	return c
}
