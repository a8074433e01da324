package appointment

import (
	"time"

	"github.com/google/uuid"
)

// State transitions possibilities:
//
//	booked → cancelled (patient owner or admin)
//	booked → completed (set by an external visit-closing process)
//
// cancelled and completed are terminal; a cancelled slot is re-booked by
// creating a fresh appointment, never by reviving the old record.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`

	// Exact instant of the slot: calendar date + slot start time, minute
	// precision, stored in UTC.
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;index" json:"date"`

	Status Status `gorm:"column:status;type:varchar(30);not null;default:'booked';index" json:"status"`

	// Cancellation tracking
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CancelledBy *uuid.UUID `gorm:"column:cancelled_by;type:uuid" json:"cancelled_by,omitempty"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusBooked:    {StatusCancelled, StatusCompleted},
		StatusCancelled: {},
		StatusCompleted: {},
	}

	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (a *Appointment) Cancel(cancelledBy uuid.UUID) error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = StatusCancelled
	a.CancelledAt = &now
	a.CancelledBy = &cancelledBy
	return nil
}

func (a *Appointment) Complete() error {
	if !a.CanTransitionTo(StatusCompleted) {
		return ErrInvalidStatusTransition
	}
	a.Status = StatusCompleted
	return nil
}

type BookAppointmentCommand struct {
	DoctorID    uuid.UUID
	PatientID   uuid.UUID
	ScheduledAt time.Time
}

type ListAppointmentsQuery struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    *Status
}
