package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/clinicflow/internal/capability"
	"github.com/arogyalabs/clinicflow/internal/clinicdata"
)

func newCapabilityHandler(t *testing.T) (*CapabilityHandler, *clinicdata.Store) {
	t.Helper()
	store := clinicdata.NewStore()
	require.NoError(t, store.AddPatient(clinicdata.Patient{
		ID:                  "PAT001",
		Name:                "Ravi Kumar",
		DateOfBirth:         "1985-03-15",
		MedicalRecordNumber: "MRN-001",
	}))
	store.SetInsurance(clinicdata.InsuranceRecord{
		PatientID:         "PAT001",
		Provider:          "Health Shield",
		PolicyNumber:      "POL-123456",
		CoverageType:      "Premium",
		EligibilityStatus: "Active",
		Copay:             300,
		ValidUntil:        "2028-01-01",
	})
	store.AddSlot(clinicdata.Slot{ID: "SLOT-0001", Specialty: "Cardiology", Date: "2099-01-04", Time: "09:00", Doctor: "Dr. Anil Reddy", DurationMinutes: 30})

	return NewCapabilityHandler(capability.NewService(store, nil, nil), nil), store
}

func TestCapabilityHandlerSearchPatient(t *testing.T) {
	h, _ := newCapabilityHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/capabilities/search-patient",
		strings.NewReader(`{"name":"ravi"}`))
	rec := httptest.NewRecorder()
	h.SearchPatient(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out capability.PatientSearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Patient)
	assert.Equal(t, "PAT001", out.Patient.ID)
	assert.Equal(t, "Patient", out.Patient.ResourceType)
}

func TestCapabilityHandlerSearchPatientNotFound(t *testing.T) {
	h, _ := newCapabilityHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/capabilities/search-patient",
		strings.NewReader(`{"name":"Nobody"}`))
	rec := httptest.NewRecorder()
	h.SearchPatient(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out capability.PatientSearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "not found")
}

func TestCapabilityHandlerEligibility(t *testing.T) {
	h, _ := newCapabilityHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/capabilities/insurance-eligibility",
		strings.NewReader(`{"patient_id":"PAT001"}`))
	rec := httptest.NewRecorder()
	h.CheckInsuranceEligibility(rec, req)

	var out capability.EligibilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Success)
	assert.True(t, out.Eligibility.IsEligible)
	assert.Equal(t, "Health Shield", out.Eligibility.Provider)
}

func TestCapabilityHandlerSlotSearch(t *testing.T) {
	h, _ := newCapabilityHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/capabilities/slot-search",
		strings.NewReader(`{"specialty":"Cardiology","start_date":"2099-01-01","days_ahead":7}`))
	rec := httptest.NewRecorder()
	h.FindAvailableSlots(rec, req)

	var out capability.SlotSearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Success)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "2099-01-01", out.SearchPeriod.Start)
}

func TestCapabilityHandlerBook(t *testing.T) {
	h, store := newCapabilityHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/capabilities/book",
		strings.NewReader(`{"patient_id":"PAT001","slot_id":"SLOT-0001","specialty":"Cardiology","reason":"Annual check"}`))
	rec := httptest.NewRecorder()
	h.BookAppointment(rec, req)

	var out capability.BookingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Success)
	assert.Equal(t, "APT-0001", out.Appointment.AppointmentID)
	assert.Equal(t, "Annual check", out.Appointment.Reason)
	assert.Empty(t, store.ListAvailableSlots("Cardiology", "", ""))
}

func TestCapabilityHandlerValidation(t *testing.T) {
	h, _ := newCapabilityHandler(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		body    string
	}{
		{"search missing name", h.SearchPatient, `{}`},
		{"eligibility missing patient", h.CheckInsuranceEligibility, `{}`},
		{"slot search missing specialty", h.FindAvailableSlots, `{}`},
		{"book missing fields", h.BookAppointment, `{"patient_id":"PAT001"}`},
		{"malformed json", h.SearchPatient, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			tt.handler(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
