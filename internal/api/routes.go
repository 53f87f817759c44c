package api

import (
	"net/http"
	"time"

	"finpulse/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures a Chi router with all routes
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second))
	r.Use(CORSMiddleware(cfg.HTTP.CORSAllowedOrigins))
	r.Use(MetricsMiddleware)

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", h.HandleHealth)

		// Chatbot
		r.Post("/chat", h.HandleChat)

		// Feed
		r.Route("/feed", func(r chi.Router) {
			r.Get("/status", h.HandleFeedStatus)
			r.Post("/subscribe", h.HandleSubscribe)
			r.Get("/ticks", h.HandleTicks)
			r.Get("/portfolio", h.HandlePortfolio)
		})

		// On-demand quotes
		r.Get("/quotes", h.HandleQuotes)

		// Preferences
		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", h.HandleListPreferences)
			r.Get("/{key}", h.HandleGetPreference)
			r.Put("/{key}", h.HandleSetPreference)
			r.Delete("/{key}", h.HandleDeletePreference)
		})

		// Saved articles
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.HandleGetSavedArticles)
			r.Post("/", h.HandleSaveArticle)
			r.Delete("/{id}", h.HandleDeleteSavedArticle)
		})

		// Alert preferences
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", h.HandleGetAlertPreferences)
			r.Put("/", h.HandleSetAlertPreferences)
		})
	})

	return r
}
