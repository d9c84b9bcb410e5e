package capability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arogyalabs/clinicflow/internal/clinicdata"
	"github.com/arogyalabs/clinicflow/internal/observability/metrics"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

var tracer trace.Tracer = otel.Tracer("clinicflow.internal.capability")

// Store is the persistence surface the capability layer drives.
type Store interface {
	FindPatientByName(name string) (*clinicdata.Patient, error)
	FindPatientByID(id string) (*clinicdata.Patient, error)
	GetInsurance(patientID string) (*clinicdata.InsuranceRecord, error)
	ListAvailableSlots(specialty, startDate, endDate string) []clinicdata.Slot
	BookSlot(slotID string) (clinicdata.Slot, error)
	RestoreSlot(slot clinicdata.Slot)
	CreateAppointment(a clinicdata.Appointment) (*clinicdata.Appointment, error)
}

// DefaultReason is used when a booking request carries no reason.
const DefaultReason = "Follow-up appointment"

// Capability names as recorded in audit entries and metrics labels.
const (
	OpSearchPatient             = "search_patient"
	OpCheckInsuranceEligibility = "check_insurance_eligibility"
	OpFindAvailableSlots        = "find_available_slots"
	OpBookAppointment           = "book_appointment"
)

// Service implements the four capabilities over a Store.
type Service struct {
	store   Store
	logger  *logging.Logger
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService creates a capability service. logger and m may be nil.
func NewService(store Store, logger *logging.Logger, m *metrics.EngineMetrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// SearchPatient looks up a patient by full or partial name.
func (s *Service) SearchPatient(ctx context.Context, name string) (result *PatientSearchResult) {
	_, span := tracer.Start(ctx, "capability.search_patient")
	defer span.End()
	span.SetAttributes(attribute.String("clinicflow.patient_query", name))

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("capability panic", "capability", OpSearchPatient, "panic", fmt.Sprint(r))
			result = &PatientSearchResult{Success: false, Error: fmt.Sprintf("Internal error in %s", OpSearchPatient)}
		}
		s.observe(OpSearchPatient, result.Success)
	}()

	s.logger.Info("capability call", "capability", OpSearchPatient, "name", name)

	patient, err := s.store.FindPatientByName(name)
	if err != nil {
		return &PatientSearchResult{
			Success: false,
			Error:   fmt.Sprintf("Patient '%s' not found", name),
		}
	}

	return &PatientSearchResult{Success: true, Patient: fhirPatient(patient)}
}

// CheckInsuranceEligibility returns coverage details and the derived
// eligibility flag for a patient.
func (s *Service) CheckInsuranceEligibility(ctx context.Context, patientID string) (result *EligibilityResult) {
	_, span := tracer.Start(ctx, "capability.check_insurance_eligibility")
	defer span.End()
	span.SetAttributes(attribute.String("clinicflow.patient_id", patientID))

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("capability panic", "capability", OpCheckInsuranceEligibility, "panic", fmt.Sprint(r))
			result = &EligibilityResult{Success: false, Error: fmt.Sprintf("Internal error in %s", OpCheckInsuranceEligibility)}
		}
		s.observe(OpCheckInsuranceEligibility, result.Success)
	}()

	s.logger.Info("capability call", "capability", OpCheckInsuranceEligibility, "patient_id", patientID)

	rec, err := s.store.GetInsurance(patientID)
	if err != nil {
		return &EligibilityResult{
			Success: false,
			Error:   fmt.Sprintf("Insurance information not found for patient %s", patientID),
		}
	}

	return &EligibilityResult{
		Success: true,
		Eligibility: &Eligibility{
			PatientID:    patientID,
			Status:       rec.EligibilityStatus,
			Provider:     rec.Provider,
			PolicyNumber: rec.PolicyNumber,
			CoverageType: rec.CoverageType,
			CopayAmount:  rec.Copay,
			ValidUntil:   rec.ValidUntil,
			IsEligible:   rec.EligibilityStatus == "Active",
		},
	}
}

// FindAvailableSlots lists open slots for a specialty inside a resolved
// date window. startDate defaults to today; daysAhead defaults to 7.
func (s *Service) FindAvailableSlots(ctx context.Context, specialty, startDate string, daysAhead int) (result *SlotSearchResult) {
	_, span := tracer.Start(ctx, "capability.find_available_slots")
	defer span.End()
	span.SetAttributes(attribute.String("clinicflow.specialty", specialty))

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("capability panic", "capability", OpFindAvailableSlots, "panic", fmt.Sprint(r))
			result = &SlotSearchResult{Success: false, Error: fmt.Sprintf("Internal error in %s", OpFindAvailableSlots)}
		}
		s.observe(OpFindAvailableSlots, result.Success)
	}()

	s.logger.Info("capability call", "capability", OpFindAvailableSlots,
		"specialty", specialty, "start_date", startDate, "days_ahead", daysAhead)

	if daysAhead <= 0 {
		daysAhead = 7
	}
	if startDate == "" {
		startDate = s.now().Format("2006-01-02")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return &SlotSearchResult{
			Success:   false,
			Error:     fmt.Sprintf("Invalid start date '%s': expected YYYY-MM-DD", startDate),
			Specialty: specialty,
		}
	}
	endDate := start.AddDate(0, 0, daysAhead).Format("2006-01-02")

	slots := s.store.ListAvailableSlots(specialty, startDate, endDate)

	summaries := make([]SlotSummary, 0, len(slots))
	for _, slot := range slots {
		summaries = append(summaries, SlotSummary{
			SlotID:          slot.ID,
			Date:            slot.Date,
			Time:            slot.Time,
			Doctor:          slot.Doctor,
			DurationMinutes: slot.DurationMinutes,
		})
	}

	return &SlotSearchResult{
		Success:        true,
		Specialty:      specialty,
		SearchPeriod:   SearchPeriod{Start: startDate, End: endDate},
		AvailableSlots: summaries,
		Count:          len(summaries),
	}
}

// BookAppointment books a slot for a patient. The slot must be open
// under the given specialty. Slot removal and appointment creation are
// paired: if the appointment cannot be created after the slot was
// removed, the slot is restored.
func (s *Service) BookAppointment(ctx context.Context, patientID, slotID, specialty, reason string) (result *BookingResult) {
	_, span := tracer.Start(ctx, "capability.book_appointment")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinicflow.patient_id", patientID),
		attribute.String("clinicflow.slot_id", slotID),
		attribute.String("clinicflow.specialty", specialty),
	)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("capability panic", "capability", OpBookAppointment, "panic", fmt.Sprint(r))
			result = &BookingResult{Success: false, Error: fmt.Sprintf("Internal error in %s", OpBookAppointment)}
		}
		s.observe(OpBookAppointment, result.Success)
	}()

	s.logger.Info("capability call", "capability", OpBookAppointment,
		"patient_id", patientID, "slot_id", slotID, "specialty", specialty, "reason", reason)

	patient, err := s.store.FindPatientByID(patientID)
	if err != nil {
		return &BookingResult{
			Success: false,
			Error:   fmt.Sprintf("Patient %s not found", patientID),
		}
	}

	// The slot must currently be open under this specialty; a matching ID
	// parked under another specialty is a foreign slot, not a bookable one.
	open := false
	for _, slot := range s.store.ListAvailableSlots(specialty, "", "") {
		if slot.ID == slotID {
			open = true
			break
		}
	}
	if !open {
		return &BookingResult{
			Success: false,
			Error:   fmt.Sprintf("Slot %s not available for specialty %s", slotID, specialty),
		}
	}

	booked, err := s.store.BookSlot(slotID)
	if err != nil {
		return &BookingResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to book slot %s", slotID),
		}
	}

	if strings.TrimSpace(reason) == "" {
		reason = DefaultReason
	}

	appt, err := s.store.CreateAppointment(clinicdata.Appointment{
		PatientID:       patientID,
		PatientName:     patient.Name,
		SlotID:          booked.ID,
		Specialty:       specialty,
		Date:            booked.Date,
		Time:            booked.Time,
		Doctor:          booked.Doctor,
		DurationMinutes: booked.DurationMinutes,
		Reason:          reason,
		Status:          "Confirmed",
	})
	if err != nil {
		s.store.RestoreSlot(booked)
		s.logger.Error("appointment creation failed, slot restored",
			"slot_id", booked.ID, "patient_id", patientID, "error", err)
		span.RecordError(err)
		return &BookingResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to create appointment for slot %s", slotID),
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveBooking(specialty)
	}

	return &BookingResult{
		Success: true,
		Appointment: &AppointmentRecord{
			AppointmentID:   appt.ID,
			PatientID:       patientID,
			PatientName:     patient.Name,
			Specialty:       specialty,
			Date:            booked.Date,
			Time:            booked.Time,
			Doctor:          booked.Doctor,
			DurationMinutes: booked.DurationMinutes,
			Reason:          appt.Reason,
			Status:          appt.Status,
			CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		},
	}
}

func (s *Service) observe(capability string, success bool) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	s.metrics.ObserveCapabilityCall(capability, status)
}

// fhirPatient converts a stored patient into the structured interchange
// shape. The family name is the last whitespace-separated token; the
// rest are given names. A single-token name fills both parts.
func fhirPatient(p *clinicdata.Patient) *PatientRecord {
	tokens := strings.Fields(p.Name)

	var name HumanName
	switch {
	case len(tokens) > 1:
		name = HumanName{Family: tokens[len(tokens)-1], Given: tokens[:len(tokens)-1]}
	case len(tokens) == 1:
		name = HumanName{Family: tokens[0], Given: tokens}
	}

	return &PatientRecord{
		ResourceType: "Patient",
		ID:           p.ID,
		Identifier: []Identifier{
			{System: "http://hospital.example.org/patients", Value: p.MedicalRecordNumber},
		},
		Name: []HumanName{name},
		Telecom: []ContactPoint{
			{System: "phone", Value: p.Phone},
			{System: "email", Value: p.Email},
		},
		BirthDate: p.DateOfBirth,
		Address:   []Address{{Text: p.Address}},
	}
}
