package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pratik-mahalle/streamvault/internal/api/handlers"
	"github.com/pratik-mahalle/streamvault/internal/api/middleware"
	"github.com/pratik-mahalle/streamvault/internal/config"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
	"github.com/pratik-mahalle/streamvault/internal/pkg/utils"
)

// Handlers groups the HTTP handlers mounted by New
type Handlers struct {
	Health   *handlers.HealthHandler
	Account  *handlers.AccountHandler
	Transfer *handlers.TransferHandler
}

// New builds the API router with the global middleware chain
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.CleanPath)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(metrics.Middleware)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.New(errors.ErrCodeNotFound, "Route not found", http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorMessage(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// Operational endpoints
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.Account.List)
			r.Post("/", h.Account.Create)
			r.Get("/statistics", h.Account.Statistics)
			r.Get("/options", h.Account.Options)
			r.Get("/export", h.Transfer.Export)
			r.Get("/export/{format}", h.Transfer.Export)
			r.Post("/import", h.Transfer.Import)
			r.Get("/{id}", h.Account.Get)
			r.Put("/{id}", h.Account.Update)
			r.Patch("/{id}", h.Account.Update)
			r.Delete("/{id}", h.Account.Delete)
		})
	})

	return r
}
