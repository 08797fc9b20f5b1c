/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/collaborators/*  Collaborator management + CSV import/export
  /api/records/*        HR record management + CSV import/export
  /api/dashboard        Headline KPIs and dashboard series
  /api/analysis         Impact analysis (turnover, absenteeism, correlation)
  /api/assistant        Natural-language data queries

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Collaborator routes
		r.Route("/collaborators", func(r chi.Router) {
			r.Get("/", h.ListCollaborators)
			r.Post("/", h.CreateCollaborator)
			r.Put("/{id}", h.UpdateCollaborator)
			r.Post("/delete", h.DeleteCollaborators)
			r.Post("/import", h.ImportCollaborators)
			r.Get("/export", h.ExportCollaborators)
		})

		// Record routes
		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Post("/", h.CreateRecord)
			r.Put("/{id}", h.UpdateRecord)
			r.Post("/delete", h.DeleteRecords)
			r.Post("/import", h.ImportRecords)
			r.Get("/export", h.ExportRecords)
		})

		// Analytics routes
		r.Get("/dashboard", h.Dashboard)
		r.Get("/analysis", h.Analysis)

		// Assistant routes
		r.Post("/assistant", h.Ask)
	})

	return r
}
