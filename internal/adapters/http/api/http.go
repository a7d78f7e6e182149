// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "github.com/okian/paragon/internal/adapters/repository"
	"github.com/okian/paragon/internal/domain/model"
)

// Default paging limits.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateCompany(ctx context.Context, c model.Company) (model.Company, error)
	GetCompany(ctx context.Context, id int64) (model.Company, error)
	ListCompanies(ctx context.Context, req repository.PageRequest) ([]model.Company, int, error)
	UpdateCompany(ctx context.Context, c model.Company) (model.Company, error)
	PatchCompany(ctx context.Context, id int64, patch model.Company) (model.Company, error)
	DeleteCompany(ctx context.Context, id int64) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	companiesHandler *CompaniesHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithPageSizes sets the default and maximum page size of listings.
func WithPageSizes(def, maxSize int) Option {
	return func(s *Server) {
		if maxSize > 0 {
			s.companiesHandler.maxPageSize = maxSize
		}
		if def > 0 {
			s.companiesHandler.defaultPageSize = min(def, s.companiesHandler.maxPageSize)
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		companiesHandler: NewCompaniesHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	c := s.companiesHandler
	mux.HandleFunc("GET /api/companies", MetricsMiddleware(c.HandleList, "companies"))
	mux.HandleFunc("POST /api/companies", MetricsMiddleware(c.HandleCreate, "companies"))
	mux.HandleFunc("GET /api/companies/{id}", MetricsMiddleware(c.HandleGet, "company"))
	mux.HandleFunc("PUT /api/companies/{id}", MetricsMiddleware(c.HandleUpdate, "company"))
	mux.HandleFunc("PATCH /api/companies/{id}", MetricsMiddleware(c.HandlePatch, "company"))
	mux.HandleFunc("DELETE /api/companies/{id}", MetricsMiddleware(c.HandleDelete, "company"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
