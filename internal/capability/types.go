// Package capability exposes the four whitelisted clerical operations
// (patient search, insurance eligibility, slot search, booking) as
// request/response calls over the scheduling store. Results are tagged
// envelopes; a capability never raises a fault to its caller.
package capability

import "strings"

// Result is implemented by every capability outcome so callers can
// aggregate success across heterogeneous steps.
type Result interface {
	// Succeeded reports whether the capability call succeeded.
	Succeeded() bool
	// ErrorMessage returns the failure reason, empty on success.
	ErrorMessage() string
}

// Identifier is an external identifier attached to a patient record.
type Identifier struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

// HumanName is a structured personal name with given and family parts.
type HumanName struct {
	Family string   `json:"family"`
	Given  []string `json:"given"`
}

// ContactPoint is a single contact channel (phone, email).
type ContactPoint struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

// Address is a patient address rendered as display text.
type Address struct {
	Text string `json:"text"`
}

// PatientRecord is the structured interchange representation of a
// patient returned by SearchPatient. The shape is a boundary contract
// consumed by summary generation and external presentation layers.
type PatientRecord struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id"`
	Identifier   []Identifier   `json:"identifier"`
	Name         []HumanName    `json:"name"`
	Telecom      []ContactPoint `json:"telecom"`
	BirthDate    string         `json:"birthDate"`
	Address      []Address      `json:"address"`
}

// FullName joins the given and family name parts for display.
func (p *PatientRecord) FullName() string {
	if p == nil || len(p.Name) == 0 {
		return ""
	}
	n := p.Name[0]
	parts := append([]string{}, n.Given...)
	if n.Family != "" {
		parts = append(parts, n.Family)
	}
	return strings.Join(parts, " ")
}

// PatientSearchResult is the outcome of SearchPatient.
type PatientSearchResult struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Patient *PatientRecord `json:"patient"`
}

func (r *PatientSearchResult) Succeeded() bool      { return r.Success }
func (r *PatientSearchResult) ErrorMessage() string { return r.Error }

// Eligibility carries a patient's insurance coverage details plus the
// derived eligibility flag.
type Eligibility struct {
	PatientID    string `json:"patient_id"`
	Status       string `json:"status"`
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	CoverageType string `json:"coverage_type"`
	CopayAmount  int    `json:"copay_amount"`
	ValidUntil   string `json:"valid_until"`
	IsEligible   bool   `json:"is_eligible"`
}

// EligibilityResult is the outcome of CheckInsuranceEligibility.
type EligibilityResult struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	Eligibility *Eligibility `json:"eligibility"`
}

func (r *EligibilityResult) Succeeded() bool      { return r.Success }
func (r *EligibilityResult) ErrorMessage() string { return r.Error }

// SearchPeriod is the resolved date window of a slot search.
type SearchPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotSummary is one available slot as exposed by FindAvailableSlots.
type SlotSummary struct {
	SlotID          string `json:"slot_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Doctor          string `json:"doctor"`
	DurationMinutes int    `json:"duration_minutes"`
}

// SlotSearchResult is the outcome of FindAvailableSlots. An unknown
// specialty is not an error; it yields an empty slot list.
type SlotSearchResult struct {
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	Specialty      string        `json:"specialty"`
	SearchPeriod   SearchPeriod  `json:"search_period"`
	AvailableSlots []SlotSummary `json:"available_slots"`
	Count          int           `json:"count"`
}

func (r *SlotSearchResult) Succeeded() bool      { return r.Success }
func (r *SlotSearchResult) ErrorMessage() string { return r.Error }

// AppointmentRecord is the confirmed appointment returned by a booking.
type AppointmentRecord struct {
	AppointmentID   string `json:"appointment_id"`
	PatientID       string `json:"patient_id"`
	PatientName     string `json:"patient_name"`
	Specialty       string `json:"specialty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Doctor          string `json:"doctor"`
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// BookingResult is the outcome of BookAppointment. DryRun and Message
// are set when the booking was simulated rather than committed.
type BookingResult struct {
	Success     bool               `json:"success"`
	Error       string             `json:"error,omitempty"`
	Appointment *AppointmentRecord `json:"appointment"`
	DryRun      bool               `json:"dry_run,omitempty"`
	Message     string             `json:"message,omitempty"`
}

func (r *BookingResult) Succeeded() bool      { return r.Success }
func (r *BookingResult) ErrorMessage() string { return r.Error }
