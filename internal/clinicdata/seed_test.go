package clinicdata

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_FullRoster(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Seed(store, SeedOptions{Seed: 42, Now: now}))

	stats := store.Stats()
	assert.Equal(t, 35, stats.Patients)
	assert.Equal(t, 0, stats.Appointments)
	assert.Equal(t, 35, stats.ActiveInsurance)
	assert.Greater(t, stats.AvailableSlots, 0)

	for _, specialty := range []string{"Cardiology", "Neurology", "General Medicine", "Orthopedics", "Dermatology", "Pediatrics"} {
		assert.Greater(t, stats.SlotsBySpecialty[specialty], 0, specialty)
	}
}

func TestSeed_KnownPatients(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store, SeedOptions{Seed: 42, Now: time.Now()}))

	p, err := store.FindPatientByName("Ravi Kumar")
	require.NoError(t, err)
	assert.Equal(t, "PAT001", p.ID)
	assert.Equal(t, "1985-03-15", p.DateOfBirth)
	assert.Equal(t, "MRN-001", p.MedicalRecordNumber)
	assert.Equal(t, "ravi.kumar@example.com", p.Email)
	assert.True(t, strings.HasPrefix(p.Phone, "+91-"))
	assert.Contains(t, p.Address, "Bangalore")

	last, err := store.FindPatientByID("PAT035")
	require.NoError(t, err)
	assert.Equal(t, "Vivek Pandey", last.Name)
}

func TestSeed_InsuranceForEveryPatient(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(store, SeedOptions{Seed: 7, Now: now}))

	for i := 1; i <= 35; i++ {
		p, err := store.FindPatientByID(fmt.Sprintf("PAT%03d", i))
		require.NoError(t, err)

		rec, err := store.GetInsurance(p.ID)
		require.NoError(t, err, p.ID)
		assert.Equal(t, "Active", rec.EligibilityStatus)
		assert.True(t, strings.HasPrefix(rec.PolicyNumber, "POL-"))
		assert.Equal(t, seedCopayByCoverage[rec.CoverageType], rec.Copay)
		assert.GreaterOrEqual(t, rec.ValidUntil, now.AddDate(0, 0, 365).Format("2006-01-02"))
	}
}

func TestSeed_SlotCalendar(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(store, SeedOptions{Seed: 42, Now: now}))

	windowStart := now.AddDate(0, 0, 1).Format("2006-01-02")
	windowEnd := now.AddDate(0, 0, 28).Format("2006-01-02")

	for _, specialty := range []string{"Cardiology", "Neurology", "General Medicine", "Orthopedics", "Dermatology", "Pediatrics"} {
		for _, slot := range store.ListAvailableSlots(specialty, "", "") {
			assert.GreaterOrEqual(t, slot.Date, windowStart)
			assert.LessOrEqual(t, slot.Date, windowEnd)

			day, err := time.Parse("2006-01-02", slot.Date)
			require.NoError(t, err)
			assert.NotEqual(t, time.Saturday, day.Weekday(), slot.ID)
			assert.NotEqual(t, time.Sunday, day.Weekday(), slot.ID)

			assert.NotEmpty(t, slot.Doctor)
			assert.Greater(t, slot.DurationMinutes, 0)
			assert.True(t, strings.HasPrefix(slot.ID, "SLOT-"))
		}
	}
}

func TestSeed_Deterministic(t *testing.T) {
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	a := NewStore()
	require.NoError(t, Seed(a, SeedOptions{Seed: 42, Now: now}))
	b := NewStore()
	require.NoError(t, Seed(b, SeedOptions{Seed: 42, Now: now}))

	assert.Equal(t, a.Stats(), b.Stats())
	assert.Equal(t, a.ListAvailableSlots("Cardiology", "", ""), b.ListAvailableSlots("Cardiology", "", ""))

	recA, err := a.GetInsurance("PAT010")
	require.NoError(t, err)
	recB, err := b.GetInsurance("PAT010")
	require.NoError(t, err)
	assert.Equal(t, recA, recB)
}

func TestSeed_PatientCount(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store, SeedOptions{Seed: 1, PatientCount: 5, Now: time.Now()}))

	stats := store.Stats()
	assert.Equal(t, 5, stats.Patients)

	_, err := store.FindPatientByID("PAT006")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
