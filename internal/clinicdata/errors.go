package clinicdata

import "errors"

var (
	// ErrPatientNotFound is returned when no patient matches a lookup
	ErrPatientNotFound = errors.New("patient not found")

	// ErrInsuranceNotFound is returned when a patient has no insurance record
	ErrInsuranceNotFound = errors.New("insurance record not found")

	// ErrSlotUnavailable is returned when a slot does not exist or is already booked
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrAppointmentNotFound is returned when an appointment is not found
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrDuplicateID is returned when inserting a record whose ID already exists
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidAppointment is returned when an appointment is missing required fields
	ErrInvalidAppointment = errors.New("appointment requires patient_id and slot_id")
)
