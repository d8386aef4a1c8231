package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/providers"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
)

// AlertService handles business logic for operational alerts
type AlertService struct {
	repo   repositories.AlertRepository
	bus    providers.EventBus
	logger zerolog.Logger
}

// NewAlertService creates a new alert service. bus may be nil when
// event streaming is disabled.
func NewAlertService(repo repositories.AlertRepository, bus providers.EventBus, logger zerolog.Logger) *AlertService {
	return &AlertService{
		repo:   repo,
		bus:    bus,
		logger: logger.With().Str("component", "alert_service").Logger(),
	}
}

// Raise stores a new alert and publishes it on the event bus
func (s *AlertService) Raise(ctx context.Context, alert *entities.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Status == "" {
		alert.Status = entities.AlertStatusActive
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		return err
	}

	s.publish(ctx, entities.AlertEventCreated, alert)
	return nil
}

// Acknowledge marks an alert as acknowledged
func (s *AlertService) Acknowledge(ctx context.Context, id string) error {
	if err := s.repo.UpdateStatus(ctx, id, entities.AlertStatusAcknowledged); err != nil {
		return err
	}

	if alert, err := s.repo.GetByID(ctx, id); err == nil {
		s.publish(ctx, entities.AlertEventAcknowledged, alert)
	}
	return nil
}

// Resolve marks an alert as resolved
func (s *AlertService) Resolve(ctx context.Context, id string) error {
	if err := s.repo.UpdateStatus(ctx, id, entities.AlertStatusResolved); err != nil {
		return err
	}

	if alert, err := s.repo.GetByID(ctx, id); err == nil {
		s.publish(ctx, entities.AlertEventResolved, alert)
	}
	return nil
}

// List retrieves alerts matching the filter
func (s *AlertService) List(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error) {
	return s.repo.List(ctx, filter)
}

// publish sends the event; failures are logged and swallowed so alert
// persistence never depends on the bus.
func (s *AlertService) publish(ctx context.Context, eventType entities.AlertEventType, alert *entities.Alert) {
	if s.bus == nil {
		return
	}

	event := &entities.AlertEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Alert:     alert,
		Timestamp: time.Now(),
	}
	if err := s.bus.Publish(ctx, providers.AlertsChannel, event); err != nil {
		s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("failed to publish alert event")
	}
}
