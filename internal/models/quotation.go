package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used for fecha and vigencia.
const DateLayout = "2006-01-02"

// DefaultTaxRate is the IVA percentage a quotation carries when none was given.
const DefaultTaxRate Number = 16

// Status represents the lifecycle status of a quotation.
type Status string

const (
	StatusDraft    Status = "borrador"
	StatusSent     Status = "enviada"
	StatusApproved Status = "aprobada"
	StatusRejected Status = "rechazada"
	StatusExpired  Status = "vencida"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusSent, StatusApproved, StatusRejected, StatusExpired}

type statusStyle struct {
	label string
	color string
}

var statusStyles = map[Status]statusStyle{
	StatusDraft:    {"Borrador", "#94a3b8"},
	StatusSent:     {"Enviada", "#3b82f6"},
	StatusApproved: {"Aprobada", "#22c55e"},
	StatusRejected: {"Rechazada", "#ef4444"},
	StatusExpired:  {"Vencida", "#f97316"},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusStyles[s]
	return ok
}

// Label returns the display name, or the raw value for unknown statuses.
func (s Status) Label() string {
	if st, ok := statusStyles[s]; ok {
		return st.label
	}
	return string(s)
}

// Color returns the hex badge colour for the status.
func (s Status) Color() string {
	if st, ok := statusStyles[s]; ok {
		return st.color
	}
	return statusStyles[StatusDraft].color
}

// IsTerminal is true once the client has answered.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LineItem is a priced row inside a quotation. It is a frozen copy of the
// catalog entry it came from, if any.
type LineItem struct {
	ID          string   `json:"id"`
	Kind        ItemKind `json:"tipo"`
	RefID       string   `json:"refId,omitempty"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Quantity    Number   `json:"cantidad"`
	Price       Number   `json:"precio"`
	Unit        string   `json:"unidad"`
	Discount    Number   `json:"descuento"`
}

// Totals is the computed money block stored alongside a quotation.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"descuentoMonto"`
	AfterDiscount  float64 `json:"subtotalConDescuento"`
	TaxAmount      float64 `json:"ivaMonto"`
	Total          float64 `json:"total"`
}

// Quotation is a priced offer to a client.
type Quotation struct {
	ID             string     `json:"id"`
	Number         string     `json:"numero"`
	ClientID       string     `json:"clienteId"`
	Date           string     `json:"fecha"`
	ValidUntil     string     `json:"vigencia"`
	Status         Status     `json:"estatus"`
	TaxRate        Number     `json:"iva"`
	GlobalDiscount Number     `json:"descuentoGlobal"`
	Items          []LineItem `json:"items"`
	Notes          string     `json:"notas"`
	Totals
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON decodes over q. When the document has no iva and q has no
// rate yet, the rate reads as DefaultTaxRate; an explicit "iva":0 stays 0.
func (q *Quotation) UnmarshalJSON(data []byte) error {
	type plain Quotation
	if q.TaxRate == 0 {
		q.TaxRate = DefaultTaxRate
	}
	return json.Unmarshal(data, (*plain)(q))
}

func (q Quotation) RecordID() string { return q.ID }

func (q Quotation) Created() time.Time { return q.CreatedAt }

func (q Quotation) WithIdentity(id string, createdAt time.Time) Quotation {
	q.ID = id
	q.CreatedAt = createdAt
	return q
}

// IsDraft returns true if the quotation has not been sent yet.
func (q *Quotation) IsDraft() bool {
	return q.Status == StatusDraft
}

// IssueDate parses fecha. The zero time is returned when it is unset or malformed.
func (q *Quotation) IssueDate() time.Time {
	t, _ := time.Parse(DateLayout, q.Date)
	return t
}

// ExpiryDate parses vigencia. The zero time is returned when it is unset or malformed.
func (q *Quotation) ExpiryDate() time.Time {
	t, _ := time.Parse(DateLayout, q.ValidUntil)
	return t
}

// EffectiveStatus derives the status shown to users at now: a quotation that
// is still open past its vigencia day reads as expired. Answered quotations
// and those without a parsable vigencia keep their stored status.
func (q *Quotation) EffectiveStatus(now time.Time) Status {
	if q.Status.IsTerminal() || q.Status == StatusExpired {
		return q.Status
	}
	exp := q.ExpiryDate()
	if exp.IsZero() {
		return q.Status
	}
	today, _ := time.Parse(DateLayout, now.Format(DateLayout))
	if today.After(exp) {
		return StatusExpired
	}
	return q.Status
}
