package entities

import (
	"time"
)

// BedStatus represents the occupancy state of a bed
type BedStatus string

const (
	BedStatusAvailable   BedStatus = "available"
	BedStatusOccupied    BedStatus = "occupied"
	BedStatusCleaning    BedStatus = "cleaning"
	BedStatusMaintenance BedStatus = "maintenance"
)

// Bed represents a hospital bed
type Bed struct {
	ID        string    `json:"id" db:"id"`
	BedNumber string    `json:"bed_number" db:"bed_number"`
	Ward      string    `json:"ward" db:"ward"`
	Floor     int       `json:"floor" db:"floor"`
	BedType   string    `json:"bed_type" db:"bed_type"`
	Status    BedStatus `json:"status" db:"status"`
	PatientID *string   `json:"patient_id,omitempty" db:"patient_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BedFilter narrows bed list queries
type BedFilter struct {
	Ward   string
	Status BedStatus
	Limit  int
	Offset int
}
