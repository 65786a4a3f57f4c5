// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shayanxjavid/Feedback-Hub/internal/domain/types"
	"github.com/shayanxjavid/Feedback-Hub/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze classifies a single text.
	Analyze(ctx context.Context, text string) (Result, error)

	// AnalyzeBatch classifies an ordered sequence of texts, isolating
	// per-item failures into error entries.
	AnalyzeBatch(ctx context.Context, texts []string) ([]BatchItem, error)
}

// Result and BatchItem mirror the wire shapes returned by analysis calls.
type (
	Result    = types.Result
	BatchItem = types.BatchItem
)

// Server wires HTTP routes for the business API.
type Server struct {
	infoHandler    *InfoHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	analyzeHandler *AnalyzeHandler
	batchHandler   *BatchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		infoHandler:    NewInfoHandler(),
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		analyzeHandler: NewAnalyzeHandler(deps),
		batchHandler:   NewBatchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/analyze/batch", MetricsMiddleware(s.batchHandler.HandleAnalyzeBatch, "analyze_batch"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/", MetricsMiddleware(s.infoHandler.HandleInfo, "info"))
}

// textInput mirrors the request schema for POST /analyze and batch items.
type textInput struct {
	Text string `json:"text"`
}

// batchResponse wraps the ordered batch results.
type batchResponse struct {
	Results []BatchItem `json:"results"`
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
