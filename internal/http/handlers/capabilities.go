package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arogyalabs/clinicflow/internal/agent"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

// CapabilityHandler exposes the four capabilities as standalone
// endpoints so external tooling can call them without the orchestrator.
type CapabilityHandler struct {
	caps   agent.Capabilities
	logger *logging.Logger
}

// NewCapabilityHandler creates a capability handler.
func NewCapabilityHandler(caps agent.Capabilities, logger *logging.Logger) *CapabilityHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &CapabilityHandler{caps: caps, logger: logger}
}

// SearchPatientBody is the payload for POST /v1/capabilities/search-patient.
type SearchPatientBody struct {
	Name string `json:"name"`
}

// SearchPatient handles POST /v1/capabilities/search-patient.
func (h *CapabilityHandler) SearchPatient(w http.ResponseWriter, r *http.Request) {
	var body SearchPatientBody
	if !h.decode(w, r, &body) {
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.caps.SearchPatient(r.Context(), body.Name))
}

// EligibilityBody is the payload for POST /v1/capabilities/insurance-eligibility.
type EligibilityBody struct {
	PatientID string `json:"patient_id"`
}

// CheckInsuranceEligibility handles POST /v1/capabilities/insurance-eligibility.
func (h *CapabilityHandler) CheckInsuranceEligibility(w http.ResponseWriter, r *http.Request) {
	var body EligibilityBody
	if !h.decode(w, r, &body) {
		return
	}
	if body.PatientID == "" {
		http.Error(w, "patient_id is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.caps.CheckInsuranceEligibility(r.Context(), body.PatientID))
}

// SlotSearchBody is the payload for POST /v1/capabilities/slot-search.
type SlotSearchBody struct {
	Specialty string `json:"specialty"`
	StartDate string `json:"start_date,omitempty"`
	DaysAhead int    `json:"days_ahead,omitempty"`
}

// FindAvailableSlots handles POST /v1/capabilities/slot-search.
func (h *CapabilityHandler) FindAvailableSlots(w http.ResponseWriter, r *http.Request) {
	var body SlotSearchBody
	if !h.decode(w, r, &body) {
		return
	}
	if body.Specialty == "" {
		http.Error(w, "specialty is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.caps.FindAvailableSlots(r.Context(), body.Specialty, body.StartDate, body.DaysAhead))
}

// BookBody is the payload for POST /v1/capabilities/book.
type BookBody struct {
	PatientID string `json:"patient_id"`
	SlotID    string `json:"slot_id"`
	Specialty string `json:"specialty"`
	Reason    string `json:"reason,omitempty"`
}

// BookAppointment handles POST /v1/capabilities/book.
func (h *CapabilityHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var body BookBody
	if !h.decode(w, r, &body) {
		return
	}
	if body.PatientID == "" || body.SlotID == "" || body.Specialty == "" {
		http.Error(w, "patient_id, slot_id and specialty are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.caps.BookAppointment(r.Context(), body.PatientID, body.SlotID, body.Specialty, body.Reason))
}

func (h *CapabilityHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Error("failed to decode request", "path", r.URL.Path, "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
