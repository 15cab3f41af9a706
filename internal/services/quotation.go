package services

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/diewo77/go-cotizaciones/validation"
	"github.com/google/uuid"
)

// Options tunes the quotation workflow.
type Options struct {
	Numbering    Numbering
	DefaultTax   float64
	ValidityDays int
	Now          func() time.Time
	Logger       *slog.Logger
}

// QuotationService drives quotations through the store, keeping the stored
// totals in step with the items.
type QuotationService struct {
	store *store.Store
	opts  Options
}

func NewQuotationService(st *store.Store, opts Options) *QuotationService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Numbering == "" {
		opts.Numbering = NumberingCount
	}
	return &QuotationService{store: st, opts: opts}
}

// Now reads the service clock.
func (s *QuotationService) Now() time.Time { return s.opts.Now() }

// DefaultTax is the IVA percentage new quotations start with.
func (s *QuotationService) DefaultTax() float64 { return s.opts.DefaultTax }

// NextNumber previews the number the next new quotation will get.
func (s *QuotationService) NextNumber() string {
	return s.opts.Numbering.Next(s.store.Quotations.List(), s.opts.Now().Year())
}

// NewDraft returns an unsaved quotation filled with the defaults.
func (s *QuotationService) NewDraft() models.Quotation {
	today := s.opts.Now()
	return models.Quotation{
		Number:     s.NextNumber(),
		Date:       today.Format(models.DateLayout),
		ValidUntil: today.AddDate(0, 0, s.opts.ValidityDays).Format(models.DateLayout),
		Status:     models.StatusDraft,
		TaxRate:    models.Number(s.opts.DefaultTax),
		Items:      []models.LineItem{},
	}
}

// Save validates q, recomputes its totals and adds it when it has no id or
// replaces the stored record otherwise. Replacing an unknown id returns
// models.ErrNotFound.
func (s *QuotationService) Save(q models.Quotation) (models.Quotation, error) {
	if err := ValidateQuotation(q); err != nil {
		return q, err
	}
	q.Items = append([]models.LineItem{}, q.Items...)
	for i := range q.Items {
		if q.Items[i].ID == "" {
			q.Items[i].ID = uuid.NewString()
		}
		if q.Items[i].Kind == "" {
			q.Items[i].Kind = models.ItemKindManual
		}
	}
	if q.Status == "" {
		q.Status = models.StatusDraft
	}
	q.Totals = QuotationTotals(&q)
	if err := CheckTotals(q.Totals); err != nil {
		return q, err
	}

	if q.ID == "" {
		if q.Number == "" {
			q.Number = s.NextNumber()
		}
		q = s.store.Quotations.Add(q)
		s.opts.Logger.Info("quotation created", "id", q.ID, "numero", q.Number, "total", q.Total)
		return q, nil
	}
	if !s.store.Quotations.Update(q) {
		return q, models.ErrNotFound
	}
	return s.store.Quotations.Get(q.ID)
}

// SetStatus changes the status and refreshes the totals in the same write.
func (s *QuotationService) SetStatus(id string, status models.Status) (models.Quotation, error) {
	if !status.Valid() {
		return models.Quotation{}, validation.Violations{"estatus": "invalid_choice"}.Err()
	}
	q, err := s.store.Quotations.Get(id)
	if err != nil {
		return q, err
	}
	prev := q.Status
	q.Status = status
	q.Totals = QuotationTotals(&q)
	if err := CheckTotals(q.Totals); err != nil {
		return q, err
	}
	if !s.store.Quotations.Update(q) {
		return q, models.ErrNotFound
	}
	s.opts.Logger.Info("quotation status changed", "id", id, "from", prev, "to", status)
	return s.store.Quotations.Get(id)
}

// Duplicate copies an existing quotation into a new draft with fresh dates
// and number.
func (s *QuotationService) Duplicate(id string) (models.Quotation, error) {
	src, err := s.store.Quotations.Get(id)
	if err != nil {
		return src, err
	}
	q := s.NewDraft()
	q.ClientID = src.ClientID
	q.TaxRate = src.TaxRate
	q.GlobalDiscount = src.GlobalDiscount
	q.Notes = src.Notes
	for _, item := range src.Items {
		item.ID = ""
		q.Items = append(q.Items, item)
	}
	return s.Save(q)
}

// Delete removes the quotation. It reports false when the id was unknown.
func (s *QuotationService) Delete(id string) bool {
	return s.store.Quotations.Delete(id)
}

// CatalogItem snapshots a product or service into a line item.
func (s *QuotationService) CatalogItem(kind models.ItemKind, refID string) (models.LineItem, error) {
	var item models.LineItem
	switch kind {
	case models.ItemKindProduct:
		p, err := s.store.Products.Get(refID)
		if err != nil {
			return item, err
		}
		item = p.LineItem()
	case models.ItemKindService:
		sv, err := s.store.Services.Get(refID)
		if err != nil {
			return item, err
		}
		item = sv.LineItem()
	default:
		return item, validation.Violations{"tipo": "invalid_choice"}.Err()
	}
	item.ID = uuid.NewString()
	return item, nil
}

// AddCatalogItem appends a catalog snapshot to a stored quotation.
func (s *QuotationService) AddCatalogItem(id string, kind models.ItemKind, refID string) (models.Quotation, error) {
	q, err := s.store.Quotations.Get(id)
	if err != nil {
		return q, err
	}
	item, err := s.CatalogItem(kind, refID)
	if err != nil {
		return q, err
	}
	q.Items = append(append([]models.LineItem(nil), q.Items...), item)
	return s.Save(q)
}

// ClientName resolves a client reference, degrading to models.UnknownClientName.
func (s *QuotationService) ClientName(clientID string) string {
	c, err := s.store.Clients.Get(clientID)
	if err != nil {
		return models.UnknownClientName
	}
	return c.Name
}

// Detail bundles a quotation with what is needed to display it.
type Detail struct {
	Quotation       models.Quotation `json:"cotizacion"`
	Client          *models.Client   `json:"cliente"`
	EffectiveStatus models.Status    `json:"estatusEfectivo"`
}

// Detail looks up a quotation and its client. A deleted client gives a nil Client.
func (s *QuotationService) Detail(id string) (Detail, error) {
	q, err := s.store.Quotations.Get(id)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Quotation: q, EffectiveStatus: q.EffectiveStatus(s.opts.Now())}
	if c, err := s.store.Clients.Get(q.ClientID); err == nil {
		d.Client = &c
	}
	return d, nil
}

// Search filters quotations by status and by a case-insensitive match on
// number, client name or status label. Results are newest fecha first.
func (s *QuotationService) Search(query string, status models.Status) []models.Quotation {
	query = strings.ToLower(strings.TrimSpace(query))
	names := map[string]string{}
	for _, c := range s.store.Clients.List() {
		names[c.ID] = c.Name
	}

	var out []models.Quotation
	for _, q := range s.store.Quotations.List() {
		if status != "" && q.Status != status {
			continue
		}
		if query != "" {
			name, ok := names[q.ClientID]
			if !ok {
				name = models.UnknownClientName
			}
			hay := strings.ToLower(q.Number + " " + name + " " + string(q.Status) + " " + q.Status.Label())
			if !strings.Contains(hay, query) {
				continue
			}
		}
		out = append(out, q)
	}
	sortByDateDesc(out)
	return out
}

func sortByDateDesc(qs []models.Quotation) {
	sort.SliceStable(qs, func(i, j int) bool {
		return qs[i].Date > qs[j].Date
	})
}
