package services

import (
	"context"
	"time"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
)

// SummaryService computes the live dashboard overview from the
// individual repositories.
type SummaryService struct {
	patients     repositories.PatientRepository
	staff        repositories.StaffRepository
	beds         repositories.BedRepository
	oxygen       repositories.OxygenRepository
	appointments repositories.AppointmentRepository
	alerts       repositories.AlertRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	patients repositories.PatientRepository,
	staff repositories.StaffRepository,
	beds repositories.BedRepository,
	oxygen repositories.OxygenRepository,
	appointments repositories.AppointmentRepository,
	alerts repositories.AlertRepository,
) *SummaryService {
	return &SummaryService{
		patients:     patients,
		staff:        staff,
		beds:         beds,
		oxygen:       oxygen,
		appointments: appointments,
		alerts:       alerts,
	}
}

// Build assembles the overview. Every query must succeed; the caller
// (the resilient facade) handles partial backend failure by falling
// back wholesale rather than rendering a half-filled summary.
func (s *SummaryService) Build(ctx context.Context) (*entities.DashboardSummary, error) {
	totalPatients, err := s.patients.Count(ctx, entities.PatientFilter{})
	if err != nil {
		return nil, err
	}
	activePatients, err := s.patients.Count(ctx, entities.PatientFilter{Status: entities.PatientStatusActive})
	if err != nil {
		return nil, err
	}

	onDuty, err := s.staff.CountOnDuty(ctx)
	if err != nil {
		return nil, err
	}

	bedCounts, err := s.beds.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalBeds := 0
	for _, n := range bedCounts {
		totalBeds += n
	}

	appointmentsToday, err := s.appointments.CountToday(ctx)
	if err != nil {
		return nil, err
	}

	activeAlerts, criticalAlerts, err := s.alerts.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	oxygenSummary, err := s.oxygen.StatusSummary(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.DashboardSummary{
		TotalPatients:        totalPatients,
		ActivePatients:       activePatients,
		TotalBeds:            totalBeds,
		OccupiedBeds:         bedCounts[entities.BedStatusOccupied],
		AvailableBeds:        bedCounts[entities.BedStatusAvailable],
		StaffOnDuty:          onDuty,
		AppointmentsToday:    appointmentsToday,
		ActiveAlerts:         activeAlerts,
		CriticalAlerts:       criticalAlerts,
		OxygenStationsOnline: oxygenSummary.OperationalStations,
		AverageOxygenLevel:   oxygenSummary.AverageFillPercentage,
		GeneratedAt:          time.Now(),
	}, nil
}
