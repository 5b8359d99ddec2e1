// Package router wires the HTTP surface: the action-dispatch endpoint, a
// health check, and the Prometheus scrape endpoint.
package router

import (
	"net/http"

	"gourmetgo/internal/handler"
	"gourmetgo/internal/metrics"
	"gourmetgo/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(apiHandler *handler.APIHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware in order: Recovery -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Handle("/metrics", metrics.Handler())

	r.Post("/api", apiHandler.Dispatch)

	return r
}
