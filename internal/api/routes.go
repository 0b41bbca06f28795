package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CatcatWinter/calendar-planner/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/dates/today
//	GET    /api/v1/dates/{date}
//	GET    /api/v1/dates?start=&end=
//	GET    /api/v1/calendar/{year}/{month}
//	GET    /api/v1/convert/solar/{date}
//	GET    /api/v1/convert/lunar?year=&month=&day=&leap=
//	GET    /api/v1/years/{year}
//	GET    /api/v1/solar-terms/{year}
//	POST   /api/v1/plans/generate
//
// Behind X-API-Key:
//
//	GET    /api/v1/plans
//	POST   /api/v1/plans
//	GET    /api/v1/plans/{id}
//	DELETE /api/v1/plans/{id}
//	POST   /api/v1/plans/{id}/tasks/{taskID}/toggle
//	GET    /api/v1/plans/{id}/export?format=
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(ChainMiddleware(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Public routes
		// ======================================================================
		r.Get("/dates/today", handlers.GetToday)
		r.Get("/dates/{date}", handlers.GetDate)
		r.Get("/dates", handlers.GetDateRange)
		r.Get("/calendar/{year}/{month}", handlers.GetMonth)
		r.Get("/convert/solar/{date}", handlers.ConvertSolar)
		r.Get("/convert/lunar", handlers.ConvertLunar)
		r.Get("/years/{year}", handlers.GetYear)
		r.Get("/solar-terms/{year}", handlers.GetSolarTerms)
		r.Post("/plans/generate", handlers.GeneratePlan)

		// ======================================================================
		// Plan storage (authenticated)
		// ======================================================================
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))

			r.Get("/plans", handlers.ListPlans)
			r.Post("/plans", handlers.CreatePlan)
			r.Get("/plans/{id}", handlers.GetPlan)
			r.Delete("/plans/{id}", handlers.DeletePlan)
			r.Post("/plans/{id}/tasks/{taskID}/toggle", handlers.ToggleTask)
			r.Get("/plans/{id}/export", handlers.ExportPlan)
		})
	})

	return r
}
