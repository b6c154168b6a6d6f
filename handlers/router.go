package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter wires the page, API and health routes behind the standard middleware stack.
func NewRouter(h *ExtractHandler, allowedOrigins []string, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/", h.ShowPage)
	r.Post("/", h.SubmitPage)
	r.Get("/healthz", Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(corsHandler.Handler)
		r.Post("/extract", h.ExtractAPI)
		r.Post("/analyze-text", h.AnalyzeTextAPI)
	})

	return r
}
