package entities

import (
	"time"
)

// DashboardSummary aggregates the headline numbers for the overview page
type DashboardSummary struct {
	TotalPatients        int       `json:"total_patients"`
	ActivePatients       int       `json:"active_patients"`
	TotalBeds            int       `json:"total_beds"`
	OccupiedBeds         int       `json:"occupied_beds"`
	AvailableBeds        int       `json:"available_beds"`
	StaffOnDuty          int       `json:"staff_on_duty"`
	AppointmentsToday    int       `json:"appointments_today"`
	ActiveAlerts         int       `json:"active_alerts"`
	CriticalAlerts       int       `json:"critical_alerts"`
	OxygenStationsOnline int       `json:"oxygen_stations_online"`
	AverageOxygenLevel   float64   `json:"average_oxygen_level"`
	GeneratedAt          time.Time `json:"generated_at"`
}
