package repositories

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// BedRepository defines data access for beds
type BedRepository interface {
	Create(ctx context.Context, bed *entities.Bed) error
	GetByID(ctx context.Context, id string) (*entities.Bed, error)
	Update(ctx context.Context, bed *entities.Bed) error
	List(ctx context.Context, filter entities.BedFilter) ([]*entities.Bed, error)
	Assign(ctx context.Context, bedID, patientID string) error
	Release(ctx context.Context, bedID string) error
	CountByStatus(ctx context.Context) (map[entities.BedStatus]int, error)
}
