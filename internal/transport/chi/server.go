// Package chi is the HTTP transport: hand-wired chi routes over the
// ask, facets and health services.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/solistra/askdex/internal/domain"
	"github.com/solistra/askdex/internal/domain/document"
	"github.com/solistra/askdex/internal/domain/search/filter"
	askuc "github.com/solistra/askdex/internal/usecase/ask"
	facetsuc "github.com/solistra/askdex/internal/usecase/facets"
	healthuc "github.com/solistra/askdex/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the ask pipeline over HTTP.
type Server struct {
	ask           *askuc.Service
	facets        *facetsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ask *askuc.Service,
	facets *facetsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ask:    ask,
		facets: facets,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrRetrievalFailed, http.StatusBadGateway),
		sentinelHandler(domain.ErrGenerationFailed, http.StatusBadGateway),
	}
	return s
}

// Routes registers all handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/chat", s.Chat)
	r.Get("/filters", s.FilterValues)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type chatRequest struct {
	Query   string      `json:"query"`
	Filters filtersBody `json:"filters"`
}

// filtersBody carries the recognized filter keys; anything else in the
// filters object is dropped during decoding.
type filtersBody struct {
	Author   string `json:"author"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type documentBody struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type chatResponse struct {
	Answer    string         `json:"answer"`
	Documents []documentBody `json:"documents"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	query := strings.TrimSpace(req.Query)
	filters := filter.New(req.Filters.Author, req.Filters.Category, req.Filters.Date)

	res, err := s.ask.Ask(r.Context(), query, filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	docs := make([]documentBody, len(res.Documents))
	for i := range res.Documents {
		docs[i] = documentToBody(res.Documents[i])
	}
	writeJSON(w, http.StatusOK, chatResponse{Answer: res.Answer, Documents: docs})
}

// FilterValues handles GET /filters. Scan failures degrade to empty
// lists rather than an error status.
func (s *Server) FilterValues(w http.ResponseWriter, r *http.Request) {
	vals, err := s.facets.Values(r.Context())
	if err != nil {
		s.logger.Warn("Facet scan failed", zap.Error(err))
		writeJSON(w, http.StatusOK, facetsuc.Empty())
		return
	}
	writeJSON(w, http.StatusOK, vals)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// safeDomainMessage returns the failure text for known sentinels without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrRetrievalFailed,
		domain.ErrGenerationFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func documentToBody(d document.Document) documentBody {
	return documentBody{
		Title:    d.Title(),
		Content:  d.Content(),
		Author:   d.Author(),
		Category: d.Category(),
		Date:     d.Date(),
	}
}
