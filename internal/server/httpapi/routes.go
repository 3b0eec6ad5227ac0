package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/server/response"
	"github.com/dmitrijs2005/storefront/internal/server/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the router. Every /api request passes through the two
// session stages before reaching its handler.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.accessLog)
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(session.Identity(s.jwtSecret, s.cookie, s.logger))
		r.Use(session.ResolveUser(s.finder, s.logger))

		r.Post("/signup", s.signup)
		r.Post("/signin", s.signin)
		r.Post("/signout", s.signout)
		r.Get("/me", s.me)
		r.Post("/request-reset", s.requestReset)
		r.Post("/reset-password", s.resetPassword)
		r.Get("/users", s.listUsers)
		r.Put("/users/{id}/permissions", s.updatePermissions)
	})

	return r
}
