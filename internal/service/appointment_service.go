package service

import (
	"context"
	"fmt"
	"time"

	"clinicbook/internal/domain"
	"clinicbook/internal/domain/appointment"
	"clinicbook/internal/domain/doctor"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("clinicbook/service")

type DoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
}

type PatientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AppointmentView is an appointment with its doctor (and, for admin listings,
// patient) reference resolved for display. Doctor may be nil when the doctor
// record was deleted after booking.
type AppointmentView struct {
	Appointment *appointment.Appointment `json:"appointment"`
	Doctor      *DoctorSummary           `json:"doctor,omitempty"`
	Patient     *PatientSummary          `json:"patient,omitempty"`
}

type AppointmentService struct {
	repo       appointment.Repository
	doctorRepo doctor.Repository
	userRepo   UserRepository
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	doctorRepo doctor.Repository,
	userRepo UserRepository,
	auditSvc *AuditService,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, doctorRepo: doctorRepo, userRepo: userRepo, auditSvc: auditSvc, log: log}
}

// Book reserves a slot for a patient. Checks run in order, first failure
// wins: doctor exists, doctor slot free, patient free at that instant. The
// store's partial unique indexes backstop the two conflict checks, so a
// concurrent double-booking loses with the same typed errors instead of
// producing a second booked row.
func (s *AppointmentService) Book(ctx context.Context, cmd *appointment.BookAppointmentCommand, ip string) (*appointment.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment.book")
	defer span.End()
	span.SetAttributes(attribute.String("doctor_id", cmd.DoctorID.String()))

	at := cmd.ScheduledAt.UTC().Truncate(time.Minute)

	if _, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsBooked(ctx, cmd.DoctorID, at)
	if err != nil {
		return nil, fmt.Errorf("checking doctor conflict: %w", err)
	}
	if taken {
		return nil, appointment.ErrSlotAlreadyBooked
	}

	busy, err := s.repo.ExistsPatientBooked(ctx, cmd.PatientID, at)
	if err != nil {
		return nil, fmt.Errorf("checking patient conflict: %w", err)
	}
	if busy {
		return nil, appointment.ErrPatientTimeConflict
	}

	a := &appointment.Appointment{
		DoctorID:    cmd.DoctorID,
		PatientID:   cmd.PatientID,
		ScheduledAt: at,
		Status:      appointment.StatusBooked,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       cmd.PatientID,
		UserRole:     string(domain.RolePatient),
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
	})

	return a, nil
}

// Cancel sets a booked appointment to cancelled. Patients may only cancel
// their own appointments; admins may cancel any. Cancelled and completed
// appointments are terminal and cannot be cancelled again.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, caller *domain.Claims, ip string) (*appointment.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment.cancel")
	defer span.End()

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.Role == domain.RolePatient && a.PatientID != caller.UserID {
		return nil, ErrForbidden
	}

	if err := a.Cancel(caller.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: "update", ResourceType: "appointment", ResourceID: id.String(), IPAddress: ip,
		Changes: `{"status":"cancelled"}`,
	})

	return a, nil
}

// List returns the caller's appointment view: admins see every appointment
// with doctor and patient resolved; patients see their own booked
// appointments with the doctor resolved.
func (s *AppointmentService) List(ctx context.Context, caller *domain.Claims) ([]*AppointmentView, error) {
	q := &appointment.ListAppointmentsQuery{}
	if caller.Role != domain.RoleAdmin {
		booked := appointment.StatusBooked
		q.PatientID = &caller.UserID
		q.Status = &booked
	}

	appts, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, appts, caller.Role == domain.RoleAdmin)
}

// ListOwn returns all of the calling patient's appointments, any status,
// with the doctor resolved.
func (s *AppointmentService) ListOwn(ctx context.Context, caller *domain.Claims) ([]*AppointmentView, error) {
	q := &appointment.ListAppointmentsQuery{PatientID: &caller.UserID}
	appts, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, appts, false)
}

func (s *AppointmentService) expand(ctx context.Context, appts []*appointment.Appointment, withPatients bool) ([]*AppointmentView, error) {
	doctorIDs := make([]uuid.UUID, 0, len(appts))
	patientIDs := make([]uuid.UUID, 0, len(appts))
	for _, a := range appts {
		doctorIDs = append(doctorIDs, a.DoctorID)
		patientIDs = append(patientIDs, a.PatientID)
	}

	doctors, err := s.doctorRepo.GetByIDs(ctx, doctorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving doctors: %w", err)
	}

	var patients map[uuid.UUID]*domain.User
	if withPatients {
		patients, err = s.userRepo.GetByIDs(ctx, patientIDs)
		if err != nil {
			return nil, fmt.Errorf("resolving patients: %w", err)
		}
	}

	views := make([]*AppointmentView, len(appts))
	for i, a := range appts {
		v := &AppointmentView{Appointment: a}
		if d, ok := doctors[a.DoctorID]; ok {
			v.Doctor = &DoctorSummary{ID: d.ID, Name: d.Name, Specialization: d.Specialization}
		}
		if p, ok := patients[a.PatientID]; ok {
			v.Patient = &PatientSummary{ID: p.ID, Name: p.Name, Email: p.Email}
		}
		views[i] = v
	}
	return views, nil
}
