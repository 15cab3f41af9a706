package handlers

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/diewo77/go-cotizaciones/validation"
)

type CompanyHandler struct {
	store *store.Store
	log   *slog.Logger
}

func NewCompanyHandler(st *store.Store, log *slog.Logger) *CompanyHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CompanyHandler{store: st, log: log}
}

// Get returns the issuing company profile.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Company())
}

// Update merges the given fields into the profile. A null logo removes it.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.CompanyPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		badRequest(w, r, err)
		return
	}
	v := validation.Violations{}
	if patch.Name != nil {
		validation.Required("nombre", *patch.Name, v)
	}
	if patch.Email != nil {
		validation.Email("email", *patch.Email, v)
	}
	if err := v.Err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c := h.store.UpdateCompany(patch)
	h.log.Info("company profile updated")
	httpx.JSON(w, http.StatusOK, c)
}
