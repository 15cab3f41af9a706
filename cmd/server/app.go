package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/diewo77/go-cotizaciones/httpx"
	"github.com/diewo77/go-cotizaciones/i18n"
	"github.com/diewo77/go-cotizaciones/internal/handlers"
	"github.com/diewo77/go-cotizaciones/internal/metrics"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	handler  http.Handler
	store    *store.Store
	svc      *services.QuotationService
	backend  store.Backend
	storeKey string
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewApp creates a new application with all routes configured. backend may
// be nil, in which case /health only reports that the process is up.
func NewApp(st *store.Store, svc *services.QuotationService, backend store.Backend, storeKey string, m *metrics.Metrics, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	if storeKey == "" {
		storeKey = store.DefaultKey
	}
	app := &App{
		mux:      http.NewServeMux(),
		store:    st,
		svc:      svc,
		backend:  backend,
		storeKey: storeKey,
		metrics:  m,
		log:      log,
	}
	app.setupRoutes()
	app.handler = app.middleware()
	return app
}

// middleware wraps the routes: recover outermost, then metrics, then language.
func (a *App) middleware() http.Handler {
	var handler http.Handler = withLanguage(a.mux)
	if a.metrics != nil {
		handler = a.metrics.Middleware(handler)
	}
	return withRecover(a.log, handler)
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	a.mux.HandleFunc("GET /health", a.health)
	if a.metrics != nil {
		a.mux.Handle("GET /metrics", a.metrics.Handler())
	}

	ch := handlers.NewClientHandler(a.store, a.log)
	a.mux.HandleFunc("GET /api/clientes", ch.List)
	a.mux.HandleFunc("POST /api/clientes", ch.Create)
	a.mux.HandleFunc("GET /api/clientes/{id}", ch.Get)
	a.mux.HandleFunc("PUT /api/clientes/{id}", ch.Update)
	a.mux.HandleFunc("DELETE /api/clientes/{id}", ch.Delete)

	ph := handlers.NewProductHandler(a.store, a.log)
	a.mux.HandleFunc("GET /api/productos", ph.List)
	a.mux.HandleFunc("POST /api/productos", ph.Create)
	a.mux.HandleFunc("GET /api/productos/{id}", ph.Get)
	a.mux.HandleFunc("PUT /api/productos/{id}", ph.Update)
	a.mux.HandleFunc("DELETE /api/productos/{id}", ph.Delete)

	sh := handlers.NewServiceHandler(a.store, a.log)
	a.mux.HandleFunc("GET /api/servicios", sh.List)
	a.mux.HandleFunc("POST /api/servicios", sh.Create)
	a.mux.HandleFunc("GET /api/servicios/{id}", sh.Get)
	a.mux.HandleFunc("PUT /api/servicios/{id}", sh.Update)
	a.mux.HandleFunc("DELETE /api/servicios/{id}", sh.Delete)

	qh := handlers.NewQuotationHandler(a.svc, a.store, a.log)
	a.mux.HandleFunc("GET /api/cotizaciones", qh.List)
	a.mux.HandleFunc("POST /api/cotizaciones", qh.Create)
	a.mux.HandleFunc("GET /api/cotizaciones/nueva", qh.New)
	a.mux.HandleFunc("POST /api/cotizaciones/preview", qh.Preview)
	a.mux.HandleFunc("GET /api/cotizaciones/{id}", qh.Get)
	a.mux.HandleFunc("PUT /api/cotizaciones/{id}", qh.Update)
	a.mux.HandleFunc("DELETE /api/cotizaciones/{id}", qh.Delete)
	a.mux.HandleFunc("POST /api/cotizaciones/{id}/estatus", qh.SetStatus)
	a.mux.HandleFunc("POST /api/cotizaciones/{id}/duplicar", qh.Duplicate)
	a.mux.HandleFunc("POST /api/cotizaciones/{id}/items", qh.AddItem)
	a.mux.HandleFunc("GET /api/cotizaciones/{id}/pdf", qh.PDF)

	eh := handlers.NewCompanyHandler(a.store, a.log)
	a.mux.HandleFunc("GET /api/empresa", eh.Get)
	a.mux.HandleFunc("PATCH /api/empresa", eh.Update)

	st := handlers.NewStatsHandler(a.svc, a.log)
	a.mux.HandleFunc("GET /api/estadisticas", st.Stats)
	a.mux.HandleFunc("GET /api/dashboard", st.Dashboard)

	snap := handlers.NewSnapshotHandler(a.store, a.log)
	a.mux.HandleFunc("GET /api/snapshot", snap.Export)
	a.mux.HandleFunc("PUT /api/snapshot", snap.Import)
}

// health reports whether the storage backend answers.
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	if a.backend != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := a.backend.Load(ctx, a.storeKey); err != nil && !errors.Is(err, store.ErrBlobNotFound) {
			a.log.Warn("health check failed", "error", err)
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withLanguage picks the response language from ?lang=, the lang cookie or
// Accept-Language, in that order.
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = i18n.DetectLanguage(c.Value)
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = i18n.DetectLanguage(q)
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

// withRecover turns a handler panic into a 500 response.
func withRecover(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic serving request", "method", r.Method, "path", r.URL.Path, "panic", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
