package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// BedService handles business logic for beds
type BedService struct {
	beds     repositories.BedRepository
	patients repositories.PatientRepository
}

// NewBedService creates a new bed service
func NewBedService(beds repositories.BedRepository, patients repositories.PatientRepository) *BedService {
	return &BedService{beds: beds, patients: patients}
}

// Create registers a new bed
func (s *BedService) Create(ctx context.Context, bed *entities.Bed) error {
	if bed.ID == "" {
		bed.ID = uuid.NewString()
	}
	if bed.Status == "" {
		bed.Status = entities.BedStatusAvailable
	}
	now := time.Now()
	bed.CreatedAt = now
	bed.UpdatedAt = now

	return s.beds.Create(ctx, bed)
}

// GetByID retrieves a bed by ID
func (s *BedService) GetByID(ctx context.Context, id string) (*entities.Bed, error) {
	return s.beds.GetByID(ctx, id)
}

// List retrieves beds matching the filter
func (s *BedService) List(ctx context.Context, filter entities.BedFilter) ([]*entities.Bed, error) {
	return s.beds.List(ctx, filter)
}

// Assign places a patient in a bed. The patient must exist and the bed
// must currently be available.
func (s *BedService) Assign(ctx context.Context, bedID, patientID string) error {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return err
	}

	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return err
	}
	if bed.Status != entities.BedStatusAvailable {
		return apperrors.NewUnknownError("bed is not available", nil)
	}

	return s.beds.Assign(ctx, bedID, patientID)
}

// Release frees a bed and marks it for cleaning
func (s *BedService) Release(ctx context.Context, bedID string) error {
	return s.beds.Release(ctx, bedID)
}

// Occupancy returns bed counts grouped by status
func (s *BedService) Occupancy(ctx context.Context) (map[entities.BedStatus]int, error) {
	return s.beds.CountByStatus(ctx)
}
