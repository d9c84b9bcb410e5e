// Package handlers exposes the engine and its capabilities over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arogyalabs/clinicflow/internal/agent"
	"github.com/arogyalabs/clinicflow/internal/compliance"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

// Engine is the orchestration boundary the HTTP surface drives.
type Engine interface {
	ProcessRequest(ctx context.Context, text string, dryRun bool) *agent.Response
}

// Advisor produces an optional note for a completed request. May be nil.
type Advisor interface {
	Advise(ctx context.Context, instruction, summary string) (string, error)
}

// AgentHandler serves the orchestrator entry point.
type AgentHandler struct {
	engine     Engine
	advisor    Advisor
	disclaimer compliance.DisclaimerLevel
	logger     *logging.Logger
}

// NewAgentHandler creates an agent handler. advisor may be nil; its
// absence changes no behavior beyond the missing note.
func NewAgentHandler(engine Engine, advisor Advisor, disclaimer compliance.DisclaimerLevel, logger *logging.Logger) *AgentHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AgentHandler{
		engine:     engine,
		advisor:    advisor,
		disclaimer: disclaimer,
		logger:     logger,
	}
}

// ProcessRequestBody is the request payload for POST /v1/agent/requests.
type ProcessRequestBody struct {
	Request string `json:"request"`
	DryRun  bool   `json:"dry_run,omitempty"`
}

// ProcessResponse wraps the engine response with the HTTP-only fields.
type ProcessResponse struct {
	*agent.Response
	AdvisoryNote string `json:"advisory_note,omitempty"`
	Disclaimer   string `json:"disclaimer,omitempty"`
}

// ProcessRequest handles POST /v1/agent/requests.
func (h *AgentHandler) ProcessRequest(w http.ResponseWriter, r *http.Request) {
	var body ProcessRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Request) == "" {
		http.Error(w, "request text is required", http.StatusBadRequest)
		return
	}

	resp := h.engine.ProcessRequest(r.Context(), body.Request, body.DryRun)

	out := ProcessResponse{
		Response:   resp,
		Disclaimer: compliance.DisclaimerText(h.disclaimer),
	}
	if h.advisor != nil && resp.Success {
		note, err := h.advisor.Advise(r.Context(), body.Request, resp.Summary)
		if err != nil {
			h.logger.Warn("advisory note skipped", "request_id", resp.RequestID, "error", err)
		} else {
			out.AdvisoryNote = note
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
