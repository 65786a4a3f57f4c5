// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// BatchHandler handles batch analysis requests.
type BatchHandler struct {
	deps Dependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps Dependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// HandleAnalyzeBatch handles POST /analyze/batch requests. The request body
// is a JSON array of {text} objects; the response wraps one entry per input
// item in input order.
func (h *BatchHandler) HandleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req []textInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	texts := make([]string, len(req))
	for i, item := range req {
		texts[i] = item.Text
	}

	results, err := h.deps.AnalyzeBatch(r.Context(), texts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}
