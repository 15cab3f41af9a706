package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/pdf"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/diewo77/go-cotizaciones/validation"
)

type QuotationHandler struct {
	svc   *services.QuotationService
	store *store.Store
	log   *slog.Logger
}

func NewQuotationHandler(svc *services.QuotationService, st *store.Store, log *slog.Logger) *QuotationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &QuotationHandler{svc: svc, store: st, log: log}
}

// quotationRow is a list entry: the stored quotation plus the values the
// list view shows next to it.
type quotationRow struct {
	models.Quotation
	ClientName      string        `json:"clienteNombre"`
	EffectiveStatus models.Status `json:"estatusEfectivo"`
}

// List filters by ?q= and ?estatus=, newest fecha first.
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.Status(r.URL.Query().Get("estatus"))
	if status != "" && !status.Valid() {
		writeError(w, r, h.log, validation.Violations{"estatus": "invalid_choice"}.Err())
		return
	}
	now := h.svc.Now()
	quotes := h.svc.Search(r.URL.Query().Get("q"), status)
	rows := make([]quotationRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, quotationRow{
			Quotation:       q,
			ClientName:      h.svc.ClientName(q.ClientID),
			EffectiveStatus: q.EffectiveStatus(now),
		})
	}
	httpx.JSON(w, http.StatusOK, paginate(r, rows))
}

// New returns an unsaved draft carrying the next number and the defaults.
func (h *QuotationHandler) New(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.NewDraft())
}

func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

// Create decodes the body over a fresh draft, so omitted fields keep the
// draft defaults.
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	q := h.svc.NewDraft()
	if err := httpx.DecodeJSON(r, &q); err != nil {
		badRequest(w, r, err)
		return
	}
	q.ID = ""
	saved, err := h.svc.Save(q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, saved)
}

// Update replaces the stored quotation. An omitted numero keeps the stored
// one and an omitted iva reads as the default rate.
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	current, err := h.store.Quotations.Get(id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var q models.Quotation
	if err := httpx.DecodeJSON(r, &q); err != nil {
		badRequest(w, r, err)
		return
	}
	q.ID = id
	if q.Number == "" {
		q.Number = current.Number
	}
	saved, err := h.svc.Save(q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Delete(r.PathValue("id")) {
		writeError(w, r, h.log, models.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status models.Status `json:"estatus"`
}

func (h *QuotationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	q, err := h.svc.SetStatus(r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *QuotationHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.Duplicate(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

type itemRequest struct {
	Kind  models.ItemKind `json:"tipo"`
	RefID string          `json:"refId"`
}

// AddItem appends a snapshot of a catalog product or service.
func (h *QuotationHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	q, err := h.svc.AddCatalogItem(r.PathValue("id"), req.Kind, req.RefID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

type previewRequest struct {
	Items          []models.LineItem `json:"items"`
	GlobalDiscount models.Number     `json:"descuentoGlobal"`
	TaxRate        models.Number     `json:"iva"`
}

type previewLine struct {
	ID       string  `json:"id,omitempty"`
	Subtotal float64 `json:"subtotal"`
}

type previewResponse struct {
	models.Totals
	Lines []previewLine `json:"lineas"`
}

// Preview computes totals for an unsaved editor state. Nothing is stored.
// An omitted iva uses the default rate.
func (h *QuotationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req := previewRequest{TaxRate: models.Number(h.svc.DefaultTax())}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	resp := previewResponse{
		Totals: services.ComputeTotals(req.Items, req.GlobalDiscount.Float(), req.TaxRate.Float()),
		Lines:  make([]previewLine, 0, len(req.Items)),
	}
	if err := services.CheckTotals(resp.Totals); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	for _, item := range req.Items {
		resp.Lines = append(resp.Lines, previewLine{ID: item.ID, Subtotal: services.LineSubtotal(item)})
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// PDF renders the quotation as an attachment named after its number.
func (h *QuotationHandler) PDF(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	body, err := pdf.QuotationPDF(pdf.Data{
		Quotation: d.Quotation,
		Client:    d.Client,
		Company:   h.store.Company(),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": pdf.Filename(d.Quotation)}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
