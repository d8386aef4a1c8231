package repositories

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// AlertRepository defines data access for operational alerts
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.Alert) error
	GetByID(ctx context.Context, id string) (*entities.Alert, error)
	UpdateStatus(ctx context.Context, id string, status entities.AlertStatus) error
	List(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error)
	CountActive(ctx context.Context) (total int, critical int, err error)
}
