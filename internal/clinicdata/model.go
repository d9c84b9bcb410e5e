package clinicdata

import "time"

// Patient represents a registered patient record
type Patient struct {
	ID                  string `json:"patient_id"`
	Name                string `json:"name"`
	DateOfBirth         string `json:"date_of_birth"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Address             string `json:"address"`
	MedicalRecordNumber string `json:"medical_record_number"`
}

// InsuranceRecord holds a patient's insurance policy details
type InsuranceRecord struct {
	PatientID         string `json:"patient_id"`
	Provider          string `json:"insurance_provider"`
	PolicyNumber      string `json:"policy_number"`
	CoverageType      string `json:"coverage_type"`
	EligibilityStatus string `json:"eligibility_status"`
	Copay             int    `json:"copay"`
	ValidUntil        string `json:"valid_until"`
}

// Slot is an open appointment slot for a specialty. Dates and times are
// plain strings (YYYY-MM-DD and HH:MM) so date-range filters reduce to
// lexicographic comparison.
type Slot struct {
	ID              string `json:"slot_id"`
	Specialty       string `json:"specialty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Doctor          string `json:"doctor"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Appointment is a confirmed booking created from a slot
type Appointment struct {
	ID              string    `json:"appointment_id"`
	PatientID       string    `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	SlotID          string    `json:"slot_id"`
	Specialty       string    `json:"specialty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Doctor          string    `json:"doctor"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Stats summarizes the current contents of the store
type Stats struct {
	Patients         int            `json:"patients"`
	Appointments     int            `json:"appointments"`
	AvailableSlots   int            `json:"available_slots"`
	ActiveInsurance  int            `json:"active_insurance"`
	SlotsBySpecialty map[string]int `json:"slots_by_specialty"`
}
