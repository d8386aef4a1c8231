package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// PatientService handles business logic for patients
type PatientService struct {
	repo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(repo repositories.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// Create registers a new patient
func (s *PatientService) Create(ctx context.Context, patient *entities.Patient) error {
	if patient.FirstName == "" || patient.LastName == "" {
		return apperrors.NewUnknownError("patient name is required", nil)
	}

	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	if patient.Status == "" {
		patient.Status = entities.PatientStatusActive
	}
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	return s.repo.Create(ctx, patient)
}

// GetByID retrieves a patient by ID
func (s *PatientService) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a patient record
func (s *PatientService) Update(ctx context.Context, patient *entities.Patient) error {
	patient.UpdatedAt = time.Now()
	return s.repo.Update(ctx, patient)
}

// Delete removes a patient record
func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List retrieves patients matching the filter
func (s *PatientService) List(ctx context.Context, filter entities.PatientFilter) ([]*entities.Patient, error) {
	return s.repo.List(ctx, filter)
}

// Count returns the number of patients matching the filter
func (s *PatientService) Count(ctx context.Context, filter entities.PatientFilter) (int, error) {
	return s.repo.Count(ctx, filter)
}
