package clinicdata

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory system of record for patients, insurance,
// slots, and appointments. A single mutex serializes all access, so
// each exported operation is atomic with respect to the others.
type Store struct {
	mu                 sync.RWMutex
	patients           []*Patient
	patientIndex       map[string]*Patient
	insurance          map[string]*InsuranceRecord
	slots              map[string][]Slot
	slotOrder          map[string]int
	slotSeq            int
	appointments       map[string]*Appointment
	appointmentCounter int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		patientIndex: make(map[string]*Patient),
		insurance:    make(map[string]*InsuranceRecord),
		slots:        make(map[string][]Slot),
		slotOrder:    make(map[string]int),
		appointments: make(map[string]*Appointment),
	}
}

// AddPatient registers a patient. Lookup by name scans patients in the
// order they were added.
func (s *Store) AddPatient(p Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patientIndex[p.ID]; ok {
		return fmt.Errorf("patient %s: %w", p.ID, ErrDuplicateID)
	}

	stored := p
	s.patients = append(s.patients, &stored)
	s.patientIndex[p.ID] = &stored
	return nil
}

// SetInsurance stores the insurance record for a patient, replacing any
// existing record.
func (s *Store) SetInsurance(rec InsuranceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rec
	s.insurance[rec.PatientID] = &stored
}

// AddSlot appends an open slot under its specialty. Each slot is tagged
// with an insertion sequence number so a rollback can put it back where
// it was.
func (s *Store) AddSlot(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slotOrder[slot.ID] = s.slotSeq
	s.slotSeq++
	s.slots[slot.Specialty] = append(s.slots[slot.Specialty], slot)
}

// FindPatientByName returns the first patient, in insertion order, whose
// name contains the query (case-insensitive). Returns ErrPatientNotFound
// when nothing matches.
func (s *Store) FindPatientByName(name string) (*Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(name)
	for _, p := range s.patients {
		if strings.Contains(strings.ToLower(p.Name), query) {
			found := *p
			return &found, nil
		}
	}
	return nil, ErrPatientNotFound
}

// FindPatientByID returns the patient with the given ID
func (s *Store) FindPatientByID(id string) (*Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patientIndex[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	found := *p
	return &found, nil
}

// GetInsurance returns the insurance record for a patient
func (s *Store) GetInsurance(patientID string) (*InsuranceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.insurance[patientID]
	if !ok {
		return nil, ErrInsuranceNotFound
	}
	found := *rec
	return &found, nil
}

// ListAvailableSlots returns the open slots for a specialty, optionally
// bounded by an inclusive [startDate, endDate] range. Empty bounds are
// ignored. Dates are YYYY-MM-DD strings, so the comparison is
// lexicographic. An unknown specialty yields an empty list.
func (s *Store) ListAvailableSlots(specialty, startDate, endDate string) []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Slot
	for _, slot := range s.slots[specialty] {
		if startDate != "" && slot.Date < startDate {
			continue
		}
		if endDate != "" && slot.Date > endDate {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// BookSlot removes the slot with the given ID from the open pool and
// returns it. Returns ErrSlotUnavailable when no open slot has that ID,
// which also covers the case where a concurrent caller booked it first.
func (s *Store) BookSlot(slotID string) (Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for specialty, slots := range s.slots {
		for i, slot := range slots {
			if slot.ID == slotID {
				s.slots[specialty] = append(slots[:i:i], slots[i+1:]...)
				return slot, nil
			}
		}
	}
	return Slot{}, fmt.Errorf("slot %s: %w", slotID, ErrSlotUnavailable)
}

// RestoreSlot returns a previously removed slot to the open pool. Used
// to roll back a booking whose appointment could not be created. The
// slot goes back at its original insertion position, so first-match
// ranking over the open pool is unchanged by a rollback.
func (s *Store) RestoreSlot(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.slotOrder[slot.ID]
	if !ok {
		seq = s.slotSeq
		s.slotSeq++
		s.slotOrder[slot.ID] = seq
	}

	slots := s.slots[slot.Specialty]
	i := len(slots)
	for j, existing := range slots {
		if s.slotOrder[existing.ID] > seq {
			i = j
			break
		}
	}
	slots = append(slots, Slot{})
	copy(slots[i+1:], slots[i:])
	slots[i] = slot
	s.slots[slot.Specialty] = slots
}

// CreateAppointment assigns the next appointment ID, stamps the creation
// time, and stores the record. IDs are sequential per store instance
// (APT-0001, APT-0002, ...).
func (s *Store) CreateAppointment(a Appointment) (*Appointment, error) {
	if a.PatientID == "" || a.SlotID == "" {
		return nil, ErrInvalidAppointment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointmentCounter++
	a.ID = fmt.Sprintf("APT-%04d", s.appointmentCounter)
	a.CreatedAt = time.Now().UTC()

	stored := a
	s.appointments[a.ID] = &stored
	return &a, nil
}

// GetAppointment returns the appointment with the given ID
func (s *Store) GetAppointment(id string) (*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	found := *a
	return &found, nil
}

// Stats reports current record counts
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Patients:         len(s.patients),
		Appointments:     len(s.appointments),
		SlotsBySpecialty: make(map[string]int, len(s.slots)),
	}
	for specialty, slots := range s.slots {
		st.SlotsBySpecialty[specialty] = len(slots)
		st.AvailableSlots += len(slots)
	}
	for _, rec := range s.insurance {
		if rec.EligibilityStatus == "Active" {
			st.ActiveInsurance++
		}
	}
	return st
}
