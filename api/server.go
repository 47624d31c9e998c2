/*
server.go - HTTP router and middleware setup

PURPOSE:
  Wires the API handlers into a chi router with request logging,
  panic recovery, and CORS. The returned http.Handler is served by
  cmd/server.

MIDDLEWARE STACK (outermost first):
  1. RequestID  - correlation id per request
  2. httplog    - structured request logging via slog
  3. Recoverer  - panics become 500s
  4. CORS       - permissive defaults for browser clients

SEE ALSO:
  - handlers.go: Endpoint implementations
  - scheduler.go: Background month recomputation
*/
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter builds the API routing table around the given handler.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetEmployee)
				r.Get("/attendance", h.GetAttendance)
				r.Post("/attendance", h.RecordPunch)
				r.Delete("/attendance/{year}/{month}/{day}", h.ClearPunch)
				r.Get("/compensation", h.GetCompensation)
				r.Post("/recompute", h.RecomputeMonth)
				r.Put("/compensation/{year}/{month}/{day}", h.OverrideCompensation)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		r.Route("/employment-types", func(r chi.Router) {
			r.Get("/", h.ListEmploymentTypes)
			r.Post("/", h.CreateEmploymentType)
		})
	})

	return r
}
