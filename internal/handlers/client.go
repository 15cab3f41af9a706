package handlers

import (
	"log/slog"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/internal/store"
)

type ClientHandler = ResourceHandler[models.Client]

// NewClientHandler searches clients by name, company, RFC and email.
func NewClientHandler(st *store.Store, log *slog.Logger) *ClientHandler {
	return NewResourceHandler(st.Clients, services.ValidateClient, func(c models.Client) string {
		return c.Name + " " + c.Company + " " + c.RFC + " " + c.Email
	}, log)
}
