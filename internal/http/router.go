package httpapi

import (
	"net/http"
	"time"

	"restaurant-insights-service/internal/config"
	"restaurant-insights-service/internal/http/handlers"
	"restaurant-insights-service/internal/middleware"
	"restaurant-insights-service/internal/report"
	"restaurant-insights-service/internal/square"
	"restaurant-insights-service/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(client *square.Client, reports *report.Service, store *storage.ObjectStore, loc *time.Location, logger *zap.Logger, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	h := &handlers.Handler{
		Square:   client,
		Reports:  reports,
		Store:    store,
		Location: loc,
		Logger:   logger,
		Config:   cfg,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/locations", h.Locations)
		r.Get("/team-members", h.TeamMembers)
		r.Get("/reports/performance", h.Performance)
		r.Get("/reports/analytics", h.Analytics)
		r.Post("/reports/export", h.Export)
	})

	return r
}
