package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"SIPCompare/internal/api/handlers"
	custommiddleware "SIPCompare/internal/api/middleware"
	"SIPCompare/internal/compare"
	"SIPCompare/internal/config"
	"SIPCompare/internal/recorder"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(engine *compare.Engine, rec recorder.Recorder, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.NewCORS(cfg.Server.AllowedOrigins).Handler)

	slider := cfg.Slider()
	compareHandler := handlers.NewCompareHandler(engine, rec, slider, cfg.Plan.DefaultAmount, cfg.Plan.DefaultMonths)
	sessionHandler := handlers.NewSessionHandler(engine, rec, slider, cfg.Plan.DefaultAmount, cfg.Plan.DefaultMonths, handlers.DefaultMaxSessions)

	r.Route("/api", func(r chi.Router) {
		r.Get("/system/health", handlers.Health)
		r.Get("/instruments", compareHandler.Instruments)
		r.Get("/compare", compareHandler.Compare)
		r.Get("/history", compareHandler.History)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/{id}", sessionHandler.Get)
			r.Put("/{id}", sessionHandler.Update)
			r.Delete("/{id}", sessionHandler.Delete)
		})
	})

	return r
}
