package entities

import (
	"time"
)

// AlertSeverity represents how urgent an alert is
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// AlertStatus represents the lifecycle state of an alert
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// Alert represents an operational alert shown on the dashboard
type Alert struct {
	ID         string        `json:"id" db:"id"`
	Source     string        `json:"source" db:"source"`
	Severity   AlertSeverity `json:"severity" db:"severity"`
	Status     AlertStatus   `json:"status" db:"status"`
	Title      string        `json:"title" db:"title"`
	Message    string        `json:"message" db:"message"`
	EntityID   string        `json:"entity_id,omitempty" db:"entity_id"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty" db:"resolved_at"`
}

// AlertEventType identifies the kind of alert event on the bus
type AlertEventType string

const (
	AlertEventCreated      AlertEventType = "alert_created"
	AlertEventAcknowledged AlertEventType = "alert_acknowledged"
	AlertEventResolved     AlertEventType = "alert_resolved"
)

// AlertEvent is published on the event bus when an alert changes
type AlertEvent struct {
	ID        string         `json:"id"`
	EventType AlertEventType `json:"event_type"`
	Alert     *Alert         `json:"alert"`
	Timestamp time.Time      `json:"timestamp"`
}

// AlertFilter narrows alert list queries
type AlertFilter struct {
	Severity AlertSeverity
	Status   AlertStatus
	Source   string
	Limit    int
	Offset   int
}
