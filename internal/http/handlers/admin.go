package handlers

import (
	"net/http"
	"strconv"

	"github.com/arogyalabs/clinicflow/internal/clinicdata"
	"github.com/arogyalabs/clinicflow/internal/compliance"
)

// AuditHandler serves the audit trail to operators.
type AuditHandler struct {
	recorder *compliance.Recorder
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(recorder *compliance.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// AuditResponse is the payload for GET /v1/audit.
type AuditResponse struct {
	Events []compliance.AuditEvent `json:"events"`
	Count  int                     `json:"count"`
}

// List handles GET /v1/audit. Events are returned newest first;
// supported query params: request_id, type, dry_run, limit.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := compliance.AuditFilter{
		RequestID: r.URL.Query().Get("request_id"),
		EventType: compliance.AuditEventType(r.URL.Query().Get("type")),
		Limit:     100,
	}
	if v := r.URL.Query().Get("dry_run"); v != "" {
		dryRun, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid dry_run value", http.StatusBadRequest)
			return
		}
		filter.DryRun = &dryRun
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > 1000 {
			http.Error(w, "invalid limit value", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	events := h.recorder.QueryEvents(r.Context(), filter)
	writeJSON(w, http.StatusOK, AuditResponse{Events: events, Count: len(events)})
}

// StatsHandler reports store contents for dashboards.
type StatsHandler struct {
	store *clinicdata.Store
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(store *clinicdata.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Get handles GET /v1/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
