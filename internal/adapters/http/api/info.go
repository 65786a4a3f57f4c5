// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/shayanxjavid/Feedback-Hub/internal/config"
)

// infoResponse lists the service identity and its known paths.
type infoResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Health  string `json:"health"`
	Analyze string `json:"analyze"`
	Batch   string `json:"batch"`
	Stats   string `json:"stats"`
	Metrics string `json:"metrics"`
}

// InfoHandler handles service info requests.
type InfoHandler struct{}

// NewInfoHandler creates a new info handler.
func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

// HandleInfo handles GET / requests. The handler owns the mux catch-all
// route, so any unknown path lands here and turns into a 404.
func (h *InfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{
		Service: "Sentiment Analysis Microservice",
		Version: config.ServiceVersion,
		Health:  "/health",
		Analyze: "POST /analyze",
		Batch:   "POST /analyze/batch",
		Stats:   "/stats",
		Metrics: "/metrics",
	})
}
