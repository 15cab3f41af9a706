package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/store"
)

// SnapshotHandler exports and imports the whole application state.
type SnapshotHandler struct {
	store *store.Store
	log   *slog.Logger
}

func NewSnapshotHandler(st *store.Store, log *slog.Logger) *SnapshotHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SnapshotHandler{store: st, log: log}
}

func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.store.Snapshot())
}

// Import replaces the state. Missing or null keys fall back to their
// defaults; a body that does not decode is rejected and nothing changes.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, httpx.MaxBodyBytes))
	if err != nil {
		badRequest(w, r, err)
		return
	}
	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	h.store.Replace(snap)
	h.log.Info("snapshot imported",
		"clientes", len(snap.Clients),
		"productos", len(snap.Products),
		"servicios", len(snap.Services),
		"cotizaciones", len(snap.Quotations))
	httpx.JSON(w, http.StatusOK, h.store.Snapshot())
}
