package repositories

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// PatientRepository defines data access for patients
type PatientRepository interface {
	Create(ctx context.Context, patient *entities.Patient) error
	GetByID(ctx context.Context, id string) (*entities.Patient, error)
	Update(ctx context.Context, patient *entities.Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter entities.PatientFilter) ([]*entities.Patient, error)
	Count(ctx context.Context, filter entities.PatientFilter) (int, error)
}
