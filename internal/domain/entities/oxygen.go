package entities

import (
	"time"
)

// OxygenStationStatus represents the operational state of a station
type OxygenStationStatus string

const (
	OxygenStationOperational OxygenStationStatus = "operational"
	OxygenStationMaintenance OxygenStationStatus = "maintenance"
	OxygenStationOffline     OxygenStationStatus = "offline"
)

// OxygenSeverity classifies how urgently a station needs attention.
// Critical stations fluctuate more in synthetic telemetry.
type OxygenSeverity string

const (
	OxygenSeverityNormal   OxygenSeverity = "normal"
	OxygenSeverityWarning  OxygenSeverity = "warning"
	OxygenSeverityCritical OxygenSeverity = "critical"
)

// OxygenStation represents an oxygen supply station
type OxygenStation struct {
	ID              string              `json:"id" db:"id"`
	StationName     string              `json:"station_name" db:"station_name"`
	Location        string              `json:"location" db:"location"`
	CapacityLiters  float64             `json:"capacity_liters" db:"capacity_liters"`
	CurrentLevel    float64             `json:"current_level" db:"current_level"`
	FillPercentage  float64             `json:"fill_percentage" db:"fill_percentage"`
	PressurePSI     float64             `json:"pressure_psi,omitempty" db:"pressure_psi"`
	FlowRate        float64             `json:"flow_rate,omitempty" db:"flow_rate"`
	Status          OxygenStationStatus `json:"status" db:"status"`
	Severity        OxygenSeverity      `json:"severity" db:"severity"`
	LastRefill      *time.Time          `json:"last_refill,omitempty" db:"last_refill"`
	NextMaintenance *time.Time          `json:"next_maintenance,omitempty" db:"next_maintenance"`
	Supplier        string              `json:"supplier,omitempty" db:"supplier"`
	AlertsEnabled   bool                `json:"alerts_enabled" db:"alerts_enabled"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// OxygenReading represents a single telemetry sample from a station
type OxygenReading struct {
	ID          string    `json:"id" db:"id"`
	StationID   string    `json:"station_id" db:"station_id"`
	LevelLiters float64   `json:"level_liters" db:"level_liters"`
	PressurePSI float64   `json:"pressure_psi,omitempty" db:"pressure_psi"`
	FlowRate    float64   `json:"flow_rate,omitempty" db:"flow_rate"`
	Temperature float64   `json:"temperature,omitempty" db:"temperature"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
}

// OxygenStationFilter narrows station list queries
type OxygenStationFilter struct {
	Status            OxygenStationStatus
	Location          string
	LowLevelThreshold float64
	Limit             int
	Offset            int
}

// OxygenStatusSummary aggregates the oxygen supply picture
type OxygenStatusSummary struct {
	TotalStations         int     `json:"total_stations"`
	OperationalStations   int     `json:"operational_stations"`
	MaintenanceStations   int     `json:"maintenance_stations"`
	OfflineStations       int     `json:"offline_stations"`
	TotalCapacity         float64 `json:"total_capacity"`
	TotalCurrentLevel     float64 `json:"total_current_level"`
	AverageFillPercentage float64 `json:"average_fill_percentage"`
	LowLevelAlerts        int     `json:"low_level_alerts"`
}
