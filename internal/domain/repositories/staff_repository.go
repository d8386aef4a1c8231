package repositories

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// StaffRepository defines data access for staff members
type StaffRepository interface {
	Create(ctx context.Context, staff *entities.Staff) error
	GetByID(ctx context.Context, id string) (*entities.Staff, error)
	Update(ctx context.Context, staff *entities.Staff) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter entities.StaffFilter) ([]*entities.Staff, error)
	CountOnDuty(ctx context.Context) (int, error)
}
