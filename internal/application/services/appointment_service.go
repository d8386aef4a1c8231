package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// AppointmentService handles business logic for appointments
type AppointmentService struct {
	repo     repositories.AppointmentRepository
	patients repositories.PatientRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository, patients repositories.PatientRepository) *AppointmentService {
	return &AppointmentService{repo: repo, patients: patients}
}

// Create schedules a new appointment for an existing patient
func (s *AppointmentService) Create(ctx context.Context, appointment *entities.Appointment) error {
	if appointment.ScheduledAt.Before(time.Now()) {
		return apperrors.NewUnknownError("appointment must be scheduled in the future", nil)
	}

	if _, err := s.patients.GetByID(ctx, appointment.PatientID); err != nil {
		return err
	}

	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if appointment.Status == "" {
		appointment.Status = entities.AppointmentStatusPending
	}
	if appointment.DurationMin == 0 {
		appointment.DurationMin = 30
	}
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	return s.repo.Create(ctx, appointment)
}

// GetByID retrieves an appointment by ID
func (s *AppointmentService) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates an appointment
func (s *AppointmentService) Update(ctx context.Context, appointment *entities.Appointment) error {
	appointment.UpdatedAt = time.Now()
	return s.repo.Update(ctx, appointment)
}

// Cancel cancels an appointment
func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	return s.repo.Cancel(ctx, id)
}

// List retrieves appointments matching the filter
func (s *AppointmentService) List(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, error) {
	return s.repo.List(ctx, filter)
}
