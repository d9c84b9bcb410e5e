package agent

import (
	"fmt"
	"strings"

	"github.com/arogyalabs/clinicflow/internal/capability"
)

// noActionsSummary is returned when no step produced a successful result.
const noActionsSummary = "No actions completed"

// GenerateSummary renders one clause per successful step, joined with
// " | ". Failed steps contribute nothing; their errors live in the step
// records.
func GenerateSummary(results []StepResult) string {
	var parts []string

	for _, step := range results {
		switch res := step.Result.(type) {
		case *capability.PatientSearchResult:
			if res.Success && res.Patient != nil {
				parts = append(parts, fmt.Sprintf("Found patient: %s (ID: %s)", res.Patient.FullName(), res.Patient.ID))
			}
		case *capability.EligibilityResult:
			if res.Success && res.Eligibility != nil {
				e := res.Eligibility
				parts = append(parts, fmt.Sprintf("Insurance status: %s - %s (Policy: %s)", e.Status, e.Provider, e.PolicyNumber))
			}
		case *capability.SlotSearchResult:
			if res.Success {
				parts = append(parts, fmt.Sprintf("Found %d available %s appointment slots", len(res.AvailableSlots), res.Specialty))
			}
		case *capability.BookingResult:
			if res.Success && res.Appointment != nil {
				a := res.Appointment
				parts = append(parts, fmt.Sprintf("Appointment booked: %s on %s at %s with %s", a.AppointmentID, a.Date, a.Time, a.Doctor))
			}
		}
	}

	if len(parts) == 0 {
		return noActionsSummary
	}
	return strings.Join(parts, " | ")
}
