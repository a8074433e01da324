package repository

import (
	"context"
	"time"

	"clinicbook/internal/domain/appointment"
	"clinicbook/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if err == nil {
		return nil
	}
	// A racing booking may hit one of the slot-exclusivity indexes even
	// though the service-level conflict checks passed.
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case database.DoctorSlotConstraint:
			return appointment.ErrSlotAlreadyBooked
		case database.PatientSlotConstraint:
			return appointment.ErrPatientTimeConflict
		}
	}
	return err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	return r.db.WithContext(ctx).Model(a).
		Select("status", "cancelled_at", "cancelled_by").
		Updates(map[string]any{
			"status":       a.Status,
			"cancelled_at": a.CancelledAt,
			"cancelled_by": a.CancelledBy,
		}).Error
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).Model(&appointment.Appointment{})
	if q.DoctorID != nil {
		tx = tx.Where("doctor_id = ?", *q.DoctorID)
	}
	if q.PatientID != nil {
		tx = tx.Where("patient_id = ?", *q.PatientID)
	}
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}

	var out []*appointment.Appointment
	if err := tx.Order("scheduled_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentRepository) ExistsBooked(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND scheduled_at = ? AND status = ?", doctorID, at, appointment.StatusBooked).
		Count(&n).Error
	return n > 0, err
}

func (r *AppointmentRepository) ExistsPatientBooked(ctx context.Context, patientID uuid.UUID, at time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("patient_id = ? AND scheduled_at = ? AND status = ?", patientID, at, appointment.StatusBooked).
		Count(&n).Error
	return n > 0, err
}

func (r *AppointmentRepository) BookedTimes(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			doctorID, appointment.StatusBooked, from, to).
		Order("scheduled_at").
		Pluck("scheduled_at", &times).Error
	return times, err
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Count(&n).Error
	return n, err
}
