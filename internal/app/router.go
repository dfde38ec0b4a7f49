package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/merx-commerce/merx/internal/catalog"
	"github.com/merx-commerce/merx/internal/observability"
	"github.com/merx-commerce/merx/internal/platform/httpx"
	"github.com/merx-commerce/merx/internal/revenue"
	"github.com/merx-commerce/merx/jobs"
)

// RouterParams bundles everything NewRouter needs to assemble the HTTP
// surface of the service.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	CatalogHandler *catalog.Handler
	RevenueHandler *revenue.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter wires the middleware stack, health and metrics endpoints,
// and the versioned API routes.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Config, params.Metrics) {
		r.Use(mw)
	}
	if !params.Config.IsProduction() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		params.CatalogHandler.MountRoutes(api)
		params.RevenueHandler.MountRoutes(api)
		if params.JobHandler != nil {
			api.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
