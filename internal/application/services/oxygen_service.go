package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
)

// LowLevelThreshold is the fill percentage below which a reading
// raises a low-level alert.
const LowLevelThreshold = 25.0

// OxygenService handles business logic for oxygen supply stations
type OxygenService struct {
	repo   repositories.OxygenRepository
	alerts *AlertService
	logger zerolog.Logger
}

// NewOxygenService creates a new oxygen service. alerts may be nil
// when alerting is disabled.
func NewOxygenService(repo repositories.OxygenRepository, alerts *AlertService, logger zerolog.Logger) *OxygenService {
	return &OxygenService{
		repo:   repo,
		alerts: alerts,
		logger: logger.With().Str("component", "oxygen_service").Logger(),
	}
}

// CreateStation registers a new oxygen station
func (s *OxygenService) CreateStation(ctx context.Context, station *entities.OxygenStation) error {
	if station.ID == "" {
		station.ID = uuid.NewString()
	}
	if station.Status == "" {
		station.Status = entities.OxygenStationOperational
	}
	if station.Severity == "" {
		station.Severity = entities.OxygenSeverityNormal
	}
	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now

	return s.repo.CreateStation(ctx, station)
}

// GetStation retrieves a station by ID
func (s *OxygenService) GetStation(ctx context.Context, id string) (*entities.OxygenStation, error) {
	return s.repo.GetStationByID(ctx, id)
}

// UpdateStation updates a station
func (s *OxygenService) UpdateStation(ctx context.Context, station *entities.OxygenStation) error {
	station.UpdatedAt = time.Now()
	return s.repo.UpdateStation(ctx, station)
}

// DeleteStation removes a station
func (s *OxygenService) DeleteStation(ctx context.Context, id string) error {
	return s.repo.DeleteStation(ctx, id)
}

// ListStations retrieves stations matching the filter
func (s *OxygenService) ListStations(ctx context.Context, filter entities.OxygenStationFilter) ([]*entities.OxygenStation, error) {
	return s.repo.ListStations(ctx, filter)
}

// RecordReading stores a telemetry sample and raises a low-level alert
// when the station has dropped below the threshold. Alert publication
// failures are logged, not propagated (eventual consistency).
func (s *OxygenService) RecordReading(ctx context.Context, reading *entities.OxygenReading) error {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now()
	}

	if err := s.repo.RecordReading(ctx, reading); err != nil {
		return err
	}

	station, err := s.repo.GetStationByID(ctx, reading.StationID)
	if err != nil {
		s.logger.Warn().Err(err).Str("station_id", reading.StationID).Msg("failed to load station for alert check")
		return nil
	}

	if station.AlertsEnabled && station.CapacityLiters > 0 && s.alerts != nil {
		fill := reading.LevelLiters / station.CapacityLiters * 100
		if fill < LowLevelThreshold {
			alert := &entities.Alert{
				Source:   "oxygen",
				Severity: entities.AlertSeverityCritical,
				Title:    fmt.Sprintf("Low oxygen level at %s", station.StationName),
				Message:  fmt.Sprintf("Fill level at %.1f%%, below the %.0f%% threshold", fill, LowLevelThreshold),
				EntityID: station.ID,
			}
			if err := s.alerts.Raise(ctx, alert); err != nil {
				s.logger.Warn().Err(err).Str("station_id", station.ID).Msg("failed to raise low-level alert")
			}
		}
	}

	return nil
}

// ListReadings retrieves the most recent readings for a station
func (s *OxygenService) ListReadings(ctx context.Context, stationID string, limit int) ([]*entities.OxygenReading, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListReadings(ctx, stationID, limit)
}

// StatusSummary returns the aggregate oxygen supply picture
func (s *OxygenService) StatusSummary(ctx context.Context) (*entities.OxygenStatusSummary, error) {
	return s.repo.StatusSummary(ctx)
}
