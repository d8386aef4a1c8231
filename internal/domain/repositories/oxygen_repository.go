package repositories

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// OxygenRepository defines data access for oxygen stations and their
// telemetry readings
type OxygenRepository interface {
	CreateStation(ctx context.Context, station *entities.OxygenStation) error
	GetStationByID(ctx context.Context, id string) (*entities.OxygenStation, error)
	UpdateStation(ctx context.Context, station *entities.OxygenStation) error
	DeleteStation(ctx context.Context, id string) error
	ListStations(ctx context.Context, filter entities.OxygenStationFilter) ([]*entities.OxygenStation, error)

	RecordReading(ctx context.Context, reading *entities.OxygenReading) error
	ListReadings(ctx context.Context, stationID string, limit int) ([]*entities.OxygenReading, error)

	StatusSummary(ctx context.Context) (*entities.OxygenStatusSummary, error)
}
