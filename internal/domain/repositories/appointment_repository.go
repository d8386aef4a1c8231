package repositories

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// AppointmentRepository defines data access for appointments
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entities.Appointment) error
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)
	Update(ctx context.Context, appointment *entities.Appointment) error
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, error)
	CountToday(ctx context.Context) (int, error)
}
