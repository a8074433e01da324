package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new appointment. The store enforces slot exclusivity
	// with partial unique indexes scoped to booked status; a violation is
	// returned as ErrSlotAlreadyBooked or ErrPatientTimeConflict, which makes
	// two racing bookings for the same slot resolve to exactly one winner.
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound when the id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// UpdateStatus persists a status change made on the entity.
	UpdateStatus(ctx context.Context, a *Appointment) error

	List(ctx context.Context, q *ListAppointmentsQuery) ([]*Appointment, error)

	// ExistsBooked reports whether the doctor has a booked appointment at the
	// exact instant.
	ExistsBooked(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error)

	// ExistsPatientBooked reports whether the patient has a booked appointment
	// at the exact instant, with any doctor.
	ExistsPatientBooked(ctx context.Context, patientID uuid.UUID, at time.Time) (bool, error)

	// BookedTimes returns the instants of a doctor's booked appointments in
	// [from, to). Feeds the availability resolver.
	BookedTimes(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error)

	Count(ctx context.Context) (int64, error)
}
