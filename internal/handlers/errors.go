package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/i18n"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/validation"
)

// writeError maps domain errors onto HTTP responses. Validation failures
// carry the translated field messages as details.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	lang := i18n.LangFromContext(r.Context())
	if fields, ok := validation.Fields(err); ok {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "validation_failed"), i18n.TranslateAll(lang, fields))
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "not_found"), nil)
		return
	}
	log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	lang := i18n.LangFromContext(r.Context())
	httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "bad_request"), err.Error())
}

// Page is the envelope of paginated list responses.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// paginate slices items using the limit and page query parameters. Without
// a limit every item is returned.
func paginate[T any](r *http.Request, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{Total: len(items), Limit: len(items)}
	v := r.URL.Query().Get("limit")
	if v == "" && r.URL.Query().Get("page") == "" {
		p.Items = items
		return p
	}
	p.Limit = defaultPageSize
	if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
		p.Limit = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 1 {
		// pages past the end clamp to len(items) so the product cannot overflow
		if n-1 > len(items)/p.Limit {
			p.Offset = len(items)
		} else {
			p.Offset = (n - 1) * p.Limit
		}
	}
	start := min(p.Offset, len(items))
	end := min(start+p.Limit, len(items))
	p.Items = items[start:end]
	return p
}
