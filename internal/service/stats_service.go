package service

import (
	"context"
	"fmt"

	"clinicbook/internal/domain"
	"clinicbook/internal/domain/appointment"
	"clinicbook/internal/domain/doctor"
)

// Stats are the aggregate totals shown on the admin dashboard.
type Stats struct {
	TotalDoctors  int64 `json:"total_doctors"`
	TotalPatients int64 `json:"total_patients"`
	TotalBookings int64 `json:"total_bookings"`
}

type StatsService struct {
	doctorRepo doctor.Repository
	userRepo   UserRepository
	apptRepo   appointment.Repository
}

func NewStatsService(doctorRepo doctor.Repository, userRepo UserRepository, apptRepo appointment.Repository) *StatsService {
	return &StatsService{doctorRepo: doctorRepo, userRepo: userRepo, apptRepo: apptRepo}
}

func (s *StatsService) Totals(ctx context.Context) (*Stats, error) {
	doctors, err := s.doctorRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting doctors: %w", err)
	}
	patients, err := s.userRepo.CountByRole(ctx, domain.RolePatient)
	if err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}
	bookings, err := s.apptRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}
	return &Stats{TotalDoctors: doctors, TotalPatients: patients, TotalBookings: bookings}, nil
}
