package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

var stationColumns = []any{
	"id", "station_name", "location", "capacity_liters",
	"current_level", "pressure_psi", "flow_rate", "status", "severity",
	"last_refill", "next_maintenance", "supplier", "alerts_enabled",
	"created_at", "updated_at",
}

// OxygenAdapter implements the OxygenRepository interface
type OxygenAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewOxygenAdapter creates a new oxygen adapter
func NewOxygenAdapter(client *postgres.Client) repositories.OxygenRepository {
	return &OxygenAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateStation inserts a new oxygen station
func (a *OxygenAdapter) CreateStation(ctx context.Context, station *entities.OxygenStation) error {
	record := goqu.Record{
		"id":               station.ID,
		"station_name":     station.StationName,
		"location":         station.Location,
		"capacity_liters":  station.CapacityLiters,
		"current_level":    station.CurrentLevel,
		"pressure_psi":     station.PressurePSI,
		"flow_rate":        station.FlowRate,
		"status":           station.Status,
		"severity":         station.Severity,
		"last_refill":      station.LastRefill,
		"next_maintenance": station.NextMaintenance,
		"supplier":         station.Supplier,
		"alerts_enabled":   station.AlertsEnabled,
		"created_at":       station.CreatedAt,
		"updated_at":       station.UpdatedAt,
	}

	query, args, err := a.db.Insert("oxygen_stations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create oxygen station", err)
	}

	return nil
}

// GetStationByID retrieves a station by ID
func (a *OxygenAdapter) GetStationByID(ctx context.Context, id string) (*entities.OxygenStation, error) {
	query, args, err := a.db.Select(stationColumns...).
		From("oxygen_stations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	station, err := scanStation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("oxygen station with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get oxygen station", err)
	}

	return station, nil
}

// UpdateStation updates a station
func (a *OxygenAdapter) UpdateStation(ctx context.Context, station *entities.OxygenStation) error {
	station.UpdatedAt = time.Now()

	record := goqu.Record{
		"station_name":     station.StationName,
		"location":         station.Location,
		"capacity_liters":  station.CapacityLiters,
		"current_level":    station.CurrentLevel,
		"pressure_psi":     station.PressurePSI,
		"flow_rate":        station.FlowRate,
		"status":           station.Status,
		"severity":         station.Severity,
		"last_refill":      station.LastRefill,
		"next_maintenance": station.NextMaintenance,
		"supplier":         station.Supplier,
		"alerts_enabled":   station.AlertsEnabled,
		"updated_at":       station.UpdatedAt,
	}

	query, args, err := a.db.Update("oxygen_stations").
		Set(record).
		Where(goqu.Ex{"id": station.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update oxygen station", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("oxygen station with id %s not found", station.ID))
	}

	return nil
}

// DeleteStation removes a station
func (a *OxygenAdapter) DeleteStation(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("oxygen_stations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete oxygen station", err)
	}

	return nil
}

// ListStations retrieves stations matching the filter
func (a *OxygenAdapter) ListStations(ctx context.Context, filter entities.OxygenStationFilter) ([]*entities.OxygenStation, error) {
	conds := []goqu.Expression{}
	if filter.Status != "" {
		conds = append(conds, goqu.Ex{"status": filter.Status})
	}
	if filter.Location != "" {
		conds = append(conds, goqu.I("location").ILike("%"+filter.Location+"%"))
	}
	if filter.LowLevelThreshold > 0 {
		conds = append(conds, goqu.L(
			"current_level / NULLIF(capacity_liters, 0) * 100 < ?",
			filter.LowLevelThreshold,
		))
	}

	ds := a.db.Select(stationColumns...).
		From("oxygen_stations").
		Where(goqu.And(conds...)).
		Order(goqu.I("station_name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list oxygen stations", err)
	}
	defer rows.Close()

	var stations []*entities.OxygenStation
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan oxygen station", err)
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate oxygen stations", err)
	}

	return stations, nil
}

// RecordReading stores a telemetry sample and rolls the station's
// current level forward.
func (a *OxygenAdapter) RecordReading(ctx context.Context, reading *entities.OxygenReading) error {
	record := goqu.Record{
		"id":           reading.ID,
		"station_id":   reading.StationID,
		"level_liters": reading.LevelLiters,
		"pressure_psi": reading.PressurePSI,
		"flow_rate":    reading.FlowRate,
		"temperature":  reading.Temperature,
		"timestamp":    reading.Timestamp,
	}

	query, args, err := a.db.Insert("oxygen_readings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record oxygen reading", err)
	}

	update, args, err := a.db.Update("oxygen_stations").
		Set(goqu.Record{
			"current_level": reading.LevelLiters,
			"pressure_psi":  reading.PressurePSI,
			"flow_rate":     reading.FlowRate,
			"updated_at":    reading.Timestamp,
		}).
		Where(goqu.Ex{"id": reading.StationID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build station update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, update, args...); err != nil {
		return apperrors.NewInternalError("failed to update station level", err)
	}

	return nil
}

// ListReadings retrieves the most recent readings for a station
func (a *OxygenAdapter) ListReadings(ctx context.Context, stationID string, limit int) ([]*entities.OxygenReading, error) {
	query, args, err := a.db.Select(
		"id", "station_id", "level_liters", "pressure_psi",
		"flow_rate", "temperature", "timestamp",
	).
		From("oxygen_readings").
		Where(goqu.Ex{"station_id": stationID}).
		Order(goqu.I("timestamp").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build readings query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list oxygen readings", err)
	}
	defer rows.Close()

	var readings []*entities.OxygenReading
	for rows.Next() {
		reading := &entities.OxygenReading{}
		var pressure, flow, temperature sql.NullFloat64
		err := rows.Scan(
			&reading.ID,
			&reading.StationID,
			&reading.LevelLiters,
			&pressure,
			&flow,
			&temperature,
			&reading.Timestamp,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan oxygen reading", err)
		}
		reading.PressurePSI = pressure.Float64
		reading.FlowRate = flow.Float64
		reading.Temperature = temperature.Float64
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate oxygen readings", err)
	}

	return readings, nil
}

// StatusSummary aggregates the oxygen supply picture in a single query
func (a *OxygenAdapter) StatusSummary(ctx context.Context) (*entities.OxygenStatusSummary, error) {
	query, _, err := a.db.Select(
		goqu.COUNT("*").As("total"),
		goqu.L("COUNT(*) FILTER (WHERE status = 'operational')").As("operational"),
		goqu.L("COUNT(*) FILTER (WHERE status = 'maintenance')").As("maintenance"),
		goqu.L("COUNT(*) FILTER (WHERE status = 'offline')").As("offline"),
		goqu.L("COALESCE(SUM(capacity_liters), 0)").As("total_capacity"),
		goqu.L("COALESCE(SUM(current_level), 0)").As("total_level"),
		goqu.L("COALESCE(AVG(current_level / NULLIF(capacity_liters, 0) * 100), 0)").As("avg_fill"),
		goqu.L("COUNT(*) FILTER (WHERE current_level / NULLIF(capacity_liters, 0) * 100 < 25)").As("low_level"),
	).From("oxygen_stations").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build summary query", err)
	}

	summary := &entities.OxygenStatusSummary{}
	err = a.client.DB().QueryRowContext(ctx, query).Scan(
		&summary.TotalStations,
		&summary.OperationalStations,
		&summary.MaintenanceStations,
		&summary.OfflineStations,
		&summary.TotalCapacity,
		&summary.TotalCurrentLevel,
		&summary.AverageFillPercentage,
		&summary.LowLevelAlerts,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get oxygen summary", err)
	}

	return summary, nil
}

func scanStation(row rowScanner) (*entities.OxygenStation, error) {
	station := &entities.OxygenStation{}
	var pressure, flow sql.NullFloat64
	var lastRefill, nextMaintenance sql.NullTime
	var supplier sql.NullString

	err := row.Scan(
		&station.ID,
		&station.StationName,
		&station.Location,
		&station.CapacityLiters,
		&station.CurrentLevel,
		&pressure,
		&flow,
		&station.Status,
		&station.Severity,
		&lastRefill,
		&nextMaintenance,
		&supplier,
		&station.AlertsEnabled,
		&station.CreatedAt,
		&station.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	station.PressurePSI = pressure.Float64
	station.FlowRate = flow.Float64
	station.Supplier = supplier.String
	if lastRefill.Valid {
		station.LastRefill = &lastRefill.Time
	}
	if nextMaintenance.Valid {
		station.NextMaintenance = &nextMaintenance.Time
	}
	if station.CapacityLiters > 0 {
		station.FillPercentage = station.CurrentLevel / station.CapacityLiters * 100
	}

	return station, nil
}
