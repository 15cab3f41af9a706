package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/validation"
)

type StatsHandler struct {
	svc *services.QuotationService
	log *slog.Logger
}

func NewStatsHandler(svc *services.QuotationService, log *slog.Logger) *StatsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StatsHandler{svc: svc, log: log}
}

// Stats reports the yearly statistics; ?anio= selects another year.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := r.URL.Query().Get("anio"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, h.log, validation.Violations{"anio": "out_of_range"}.Err())
			return
		}
		year = n
	}
	httpx.JSON(w, http.StatusOK, h.svc.Stats(year))
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Dashboard())
}
