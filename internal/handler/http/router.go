package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MiSArch/wishlist/internal/service"
	"github.com/MiSArch/wishlist/pkg/health"
	"github.com/MiSArch/wishlist/pkg/middleware"
)

const serviceName = "wishlist"

// NewRouter assembles the HTTP surface: API routes, health probes and the
// Prometheus scrape endpoint.
func NewRouter(svc *service.WishlistService, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	h := NewWishlistHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/wishlists", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/{id}", h.Get)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})

		r.Get("/users/{id}", h.ResolveUser)
	})

	return r
}
