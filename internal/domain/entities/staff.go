package entities

import (
	"time"
)

// StaffRole represents the function of a staff member
type StaffRole string

const (
	StaffRoleDoctor     StaffRole = "doctor"
	StaffRoleNurse      StaffRole = "nurse"
	StaffRoleTechnician StaffRole = "technician"
	StaffRoleAdmin      StaffRole = "admin"
)

// StaffStatus represents a staff member's duty state
type StaffStatus string

const (
	StaffStatusOnDuty  StaffStatus = "on_duty"
	StaffStatusOffDuty StaffStatus = "off_duty"
	StaffStatusOnLeave StaffStatus = "on_leave"
)

// Staff represents a hospital staff member
type Staff struct {
	ID          string      `json:"id" db:"id"`
	StaffNumber string      `json:"staff_number" db:"staff_number"`
	FirstName   string      `json:"first_name" db:"first_name"`
	LastName    string      `json:"last_name" db:"last_name"`
	Role        StaffRole   `json:"role" db:"role"`
	Department  string      `json:"department" db:"department"`
	Phone       string      `json:"phone,omitempty" db:"phone"`
	Email       string      `json:"email,omitempty" db:"email"`
	Status      StaffStatus `json:"status" db:"status"`
	ShiftStart  time.Time   `json:"shift_start,omitempty" db:"shift_start"`
	ShiftEnd    time.Time   `json:"shift_end,omitempty" db:"shift_end"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// StaffFilter narrows staff list queries
type StaffFilter struct {
	Role       StaffRole
	Department string
	Status     StaffStatus
	Search     string
	Limit      int
	Offset     int
}
