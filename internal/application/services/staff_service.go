package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
)

// StaffService handles business logic for staff members
type StaffService struct {
	repo repositories.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(repo repositories.StaffRepository) *StaffService {
	return &StaffService{repo: repo}
}

// Create registers a new staff member
func (s *StaffService) Create(ctx context.Context, staff *entities.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	if staff.Status == "" {
		staff.Status = entities.StaffStatusOffDuty
	}
	now := time.Now()
	staff.CreatedAt = now
	staff.UpdatedAt = now

	return s.repo.Create(ctx, staff)
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, id string) (*entities.Staff, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a staff record
func (s *StaffService) Update(ctx context.Context, staff *entities.Staff) error {
	staff.UpdatedAt = time.Now()
	return s.repo.Update(ctx, staff)
}

// Delete removes a staff record
func (s *StaffService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List retrieves staff matching the filter
func (s *StaffService) List(ctx context.Context, filter entities.StaffFilter) ([]*entities.Staff, error) {
	return s.repo.List(ctx, filter)
}
