package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/httputil"
)

// RouterConfig carries the routing knobs that come from configuration.
type RouterConfig struct {
	AllowedOrigins []string
	RateLimiter    *RateLimiter // nil disables throttling
}

// NewRouter builds the full route tree.
func NewRouter(h *Handlers, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Unmatched routes bypass the error taxonomy and report status "error",
	// unlike operational 404s which report "fail".
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httputil.Error(w, http.StatusNotFound, "Route "+req.URL.Path+" not found")
	})

	// Health lives at both paths so probes and the frontend proxy agree.
	r.Get("/health", h.HealthCheck)
	r.Get("/api/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Handler)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.With(h.requireAuth).Get("/me", h.Me)
			r.With(h.requireAuth).Post("/logout", h.Logout)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Post("/apply", h.Apply)
			r.Get("/status/{applicationId}", h.GetApplicationStatus)
			r.Get("/types", h.GetLoanTypes)
			r.Get("/eligibility", h.CheckEligibility)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAuth, h.requireManager)
				r.Get("/applications", h.ListApplications)
				r.Patch("/applications/{applicationId}/status", h.UpdateApplicationStatus)
				r.Get("/statistics", h.GetLoanStatistics)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", h.SubmitContact)
			r.Get("/info", h.GetContactInfo)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAuth, h.requireManager)
				r.Get("/messages", h.ListContactMessages)
				r.Patch("/messages/{messageId}/status", h.UpdateMessageStatus)
				r.Get("/statistics", h.GetContactStatistics)
			})
		})
	})

	return r
}
