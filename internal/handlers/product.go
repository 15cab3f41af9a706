package handlers

import (
	"log/slog"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/internal/store"
)

type (
	ProductHandler = ResourceHandler[models.Product]
	ServiceHandler = ResourceHandler[models.Service]
)

func NewProductHandler(st *store.Store, log *slog.Logger) *ProductHandler {
	return NewResourceHandler(st.Products, services.ValidateProduct, func(p models.Product) string {
		return p.Name + " " + p.SKU + " " + p.Description + " " + p.Category
	}, log)
}

func NewServiceHandler(st *store.Store, log *slog.Logger) *ServiceHandler {
	return NewResourceHandler(st.Services, services.ValidateService, func(s models.Service) string {
		return s.Name + " " + s.Description + " " + s.Category
	}, log)
}
