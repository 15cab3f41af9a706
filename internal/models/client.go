package models

import (
	"strings"
	"time"
)

// Client is a customer quotations are addressed to.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Company   string    `json:"empresa"`
	RFC       string    `json:"rfc"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono"`
	Address   string    `json:"direccion"`
	City      string    `json:"ciudad"`
	Notes     string    `json:"notas"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Client) RecordID() string { return c.ID }

func (c Client) Created() time.Time { return c.CreatedAt }

func (c Client) WithIdentity(id string, createdAt time.Time) Client {
	c.ID = id
	c.CreatedAt = createdAt
	return c
}

// FullAddress joins street and city on separate lines, skipping blanks.
func (c Client) FullAddress() string {
	var parts []string
	if s := strings.TrimSpace(c.Address); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(c.City); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}
