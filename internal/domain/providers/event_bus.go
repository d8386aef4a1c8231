package providers

import (
	"context"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// AlertsChannel is the pub/sub channel carrying alert events.
const AlertsChannel = "hospital:alerts"

// EventBus defines publish/subscribe for alert events
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.AlertEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan *entities.AlertEvent, error)
	Close() error
}
