package service

import (
	"context"
	"fmt"
	"time"

	"clinicbook/internal/domain/appointment"
	"clinicbook/internal/domain/doctor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DoctorService struct {
	repo     doctor.Repository
	apptRepo appointment.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, apptRepo appointment.Repository, auditSvc *AuditService, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, apptRepo: apptRepo, auditSvc: auditSvc, log: log}
}

func (s *DoctorService) Create(ctx context.Context, cmd *doctor.CreateDoctorCommand, ip string) (*doctor.Doctor, error) {
	avail, err := doctor.NormalizeAvailability(cmd.Availability)
	if err != nil {
		return nil, err
	}

	d := &doctor.Doctor{
		Name:           cmd.Name,
		Specialization: cmd.Specialization,
		Availability:   avail,
		CreatedBy:      cmd.CreatedBy,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: cmd.CreatedBy, UserRole: "admin",
		Action: "create", ResourceType: "doctor", ResourceID: d.ID.String(), IPAddress: ip,
	})

	return d, nil
}

func (s *DoctorService) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand, ip string) (*doctor.Doctor, error) {
	if cmd.Availability != nil {
		avail, err := doctor.NormalizeAvailability(cmd.Availability)
		if err != nil {
			return nil, err
		}
		cmd.Availability = avail
	}

	d, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: cmd.UpdatedBy, UserRole: "admin",
		Action: "update", ResourceType: "doctor", ResourceID: id.String(), IPAddress: ip,
	})

	return d, nil
}

// Delete removes a doctor record. Existing appointments keep their doctor
// reference and are not touched.
func (s *DoctorService) Delete(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID, ip string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: deletedBy, UserRole: "admin",
		Action: "delete", ResourceType: "doctor", ResourceID: id.String(), IPAddress: ip,
	})

	return nil
}

func (s *DoctorService) Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx, q)
}

// OpenSlots resolves which of a doctor's template slots are still bookable on
// the given calendar date: the day's template minus slots already taken by a
// booked appointment.
func (s *DoctorService) OpenSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	ctx, span := tracer.Start(ctx, "doctor.open_slots")
	defer span.End()

	d, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := s.apptRepo.BookedTimes(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("loading booked times: %w", err)
	}

	return doctor.OpenSlots(d, date, booked), nil
}
