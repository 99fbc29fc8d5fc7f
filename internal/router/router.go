package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enroll-dev/enroll/internal/middleware/metrics"
	"github.com/enroll-dev/enroll/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	// setup CORS for browser clients
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	h := deps.Handler

	r.Get("/", h.Health)
	r.Post("/register", h.Register)
	r.Post("/verify", h.Verify)
	r.Post("/login", h.Login)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
