package doctor

import "errors"

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidDay     = errors.New("invalid weekday label, want Mon..Sun")
	ErrInvalidSlot    = errors.New("invalid slot time, want HH:MM")
)
