package appointment

import "errors"

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotAlreadyBooked       = errors.New("doctor already has a booked appointment at this time")
	ErrPatientTimeConflict     = errors.New("patient already has a booked appointment at this time")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
)
