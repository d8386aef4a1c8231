package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a scheduled appointment
type Appointment struct {
	ID          string            `json:"id" db:"id"`
	PatientID   string            `json:"patient_id" db:"patient_id"`
	StaffID     string            `json:"staff_id" db:"staff_id"`
	Department  string            `json:"department" db:"department"`
	ScheduledAt time.Time         `json:"scheduled_at" db:"scheduled_at"`
	DurationMin int               `json:"duration_min" db:"duration_min"`
	Status      AppointmentStatus `json:"status" db:"status"`
	Reason      string            `json:"reason,omitempty" db:"reason"`
	Notes       string            `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

// AppointmentFilter narrows appointment list queries
type AppointmentFilter struct {
	PatientID  string
	StaffID    string
	Department string
	Status     AppointmentStatus
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
