package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/store"
)

// ResourceHandler serves the CRUD endpoints of one store collection.
type ResourceHandler[T store.Record[T]] struct {
	coll     *store.Collection[T]
	validate func(T) error
	// text returns the searchable text of a record for the q parameter.
	text func(T) string
	log  *slog.Logger
}

func NewResourceHandler[T store.Record[T]](coll *store.Collection[T], validate func(T) error, text func(T) string, log *slog.Logger) *ResourceHandler[T] {
	if log == nil {
		log = slog.Default()
	}
	return &ResourceHandler[T]{coll: coll, validate: validate, text: text, log: log}
}

func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items := h.coll.List()
	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" && h.text != nil {
		matched := make([]T, 0, len(items))
		for _, it := range items {
			if strings.Contains(strings.ToLower(h.text(it)), q) {
				matched = append(matched, it)
			}
		}
		items = matched
	}
	httpx.JSON(w, http.StatusOK, paginate(r, items))
}

func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.coll.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := httpx.DecodeJSON(r, &rec); err != nil {
		badRequest(w, r, err)
		return
	}
	if err := h.validate(rec); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	rec = h.coll.Add(rec)
	h.log.Info("record created", "collection", h.coll.Name(), "id", rec.RecordID())
	httpx.JSON(w, http.StatusCreated, rec)
}

// Update replaces the whole record; the id comes from the path.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var rec T
	if err := httpx.DecodeJSON(r, &rec); err != nil {
		badRequest(w, r, err)
		return
	}
	if err := h.validate(rec); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if !h.coll.Update(rec.WithIdentity(id, rec.Created())) {
		writeError(w, r, h.log, models.ErrNotFound)
		return
	}
	updated, err := h.coll.Get(id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.coll.Delete(r.PathValue("id")) {
		writeError(w, r, h.log, models.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
