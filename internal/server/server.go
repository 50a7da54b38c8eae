// Package server exposes the enrichment pipeline and profile store over a
// REST API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/model"
	"github.com/regradar/compliance-cli/internal/store"
	"github.com/regradar/compliance-cli/internal/tokenstore"
)

// Enricher runs the enrichment pipeline for one company.
type Enricher interface {
	Enrich(ctx context.Context, req model.EnrichRequest) (*model.CompanyProfile, error)
	EnrichBatch(ctx context.Context, urls []string, concurrency int) *model.BatchResult
}

// Server holds the handler dependencies.
type Server struct {
	enricher    Enricher
	store       store.Store
	tokens      *tokenstore.Store
	tokenExpiry time.Duration
	concurrency int
}

// New constructs a Server. tokenExpiry is the default voice-call link
// lifetime; concurrency bounds batch scraping.
func New(enricher Enricher, st store.Store, tokens *tokenstore.Store, tokenExpiry time.Duration, concurrency int) *Server {
	return &Server{
		enricher:    enricher,
		store:       st,
		tokens:      tokens,
		tokenExpiry: tokenExpiry,
		concurrency: concurrency,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/companies", func(r chi.Router) {
		r.Post("/scrape", s.handleScrape)
		r.Post("/scrape-urls", s.handleScrapeURLs)
		r.Get("/", s.handleListCompanies)
		r.Get("/{companyName}", s.handleGetCompany)
		r.Delete("/{companyName}", s.handleDeleteCompany)
		r.Get("/{companyName}/regulatory-topics", s.handleRegulatoryTopics)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/user/{userID}", s.handleListContacts)
		r.Post("/user/{userID}", s.handleCreateContact)
		r.Get("/{contactID}", s.handleGetContact)
		r.Patch("/{contactID}", s.handleUpdateContact)
		r.Delete("/{contactID}", s.handleDeleteContact)
	})

	r.Route("/voice-calls", func(r chi.Router) {
		r.Post("/generate-link", s.handleGenerateLink)
		r.Get("/payload/{token}", s.handleGetPayload)
		r.Delete("/token/{token}", s.handleInvalidateToken)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}
