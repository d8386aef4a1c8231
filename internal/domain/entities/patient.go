package entities

import (
	"time"
)

// PatientStatus represents the admission status of a patient
type PatientStatus string

const (
	PatientStatusActive     PatientStatus = "active"
	PatientStatusDischarged PatientStatus = "discharged"
	PatientStatusDeceased   PatientStatus = "deceased"
)

// Patient represents a registered patient
type Patient struct {
	ID                    string        `json:"id" db:"id"`
	PatientNumber         string        `json:"patient_number" db:"patient_number"`
	FirstName             string        `json:"first_name" db:"first_name"`
	LastName              string        `json:"last_name" db:"last_name"`
	DateOfBirth           time.Time     `json:"date_of_birth" db:"date_of_birth"`
	Gender                string        `json:"gender" db:"gender"`
	Phone                 string        `json:"phone,omitempty" db:"phone"`
	Email                 string        `json:"email,omitempty" db:"email"`
	Address               string        `json:"address,omitempty" db:"address"`
	EmergencyContactName  string        `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone string        `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`
	BloodType             string        `json:"blood_type,omitempty" db:"blood_type"`
	Allergies             string        `json:"allergies,omitempty" db:"allergies"`
	MedicalHistory        string        `json:"medical_history,omitempty" db:"medical_history"`
	Status                PatientStatus `json:"status" db:"status"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at" db:"updated_at"`
}

// PatientFilter narrows patient list queries
type PatientFilter struct {
	Status    PatientStatus
	Gender    string
	BloodType string
	Search    string
	Limit     int
	Offset    int
}
