package fallback_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/fallback"
)

func TestGenerator_SummaryStableWithinTTL(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Second, true, 42)

	first := gen.DashboardSummary()
	second := gen.DashboardSummary()

	assert.Same(t, first, second)
}

func TestGenerator_SummaryRegeneratedAfterTTL(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(10*time.Millisecond, time.Second, true, 42)

	first := gen.DashboardSummary()
	time.Sleep(20 * time.Millisecond)
	second := gen.DashboardSummary()

	assert.NotSame(t, first, second)
}

func TestGenerator_SummaryRegeneratedAfterReset(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Second, true, 42)

	first := gen.DashboardSummary()
	gen.Reset()
	second := gen.DashboardSummary()

	assert.NotSame(t, first, second)
}

func TestGenerator_SummaryInvariants(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Millisecond, time.Millisecond, true, 7)

	for i := 0; i < 50; i++ {
		gen.Reset()
		summary := gen.DashboardSummary()

		assert.GreaterOrEqual(t, summary.ActiveAlerts, 0)
		assert.GreaterOrEqual(t, summary.CriticalAlerts, 0)
		assert.LessOrEqual(t, summary.OccupiedBeds, summary.TotalBeds)
		assert.Equal(t, summary.TotalBeds, summary.OccupiedBeds+summary.AvailableBeds)
		assert.GreaterOrEqual(t, summary.AverageOxygenLevel, 5.0)
		assert.LessOrEqual(t, summary.AverageOxygenLevel, 100.0)
		assert.False(t, summary.GeneratedAt.IsZero())
	}
}

func TestGenerator_DeterministicWithoutRandomization(t *testing.T) {
	a := fallback.NewGeneratorWithSeed(time.Minute, time.Second, false, 1)
	b := fallback.NewGeneratorWithSeed(time.Minute, time.Second, false, 2)

	// With randomization off the base figures are fixed regardless of seed
	assert.Equal(t, a.DashboardSummary().TotalPatients, b.DashboardSummary().TotalPatients)
	assert.Equal(t, a.DashboardSummary().OccupiedBeds, b.DashboardSummary().OccupiedBeds)
}

func TestGenerator_OxygenStations(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Minute, true, 42)

	stations := gen.OxygenStations("dashboard", 12)
	require.Len(t, stations, 12)

	seen := make(map[string]bool)
	for _, s := range stations {
		assert.False(t, seen[s.ID], "duplicate station id %s", s.ID)
		seen[s.ID] = true

		assert.GreaterOrEqual(t, s.FillPercentage, 5.0)
		assert.LessOrEqual(t, s.FillPercentage, 100.0)
		assert.InDelta(t, s.CapacityLiters*s.FillPercentage/100, s.CurrentLevel, 0.001)
		assert.NotEmpty(t, s.Location)
		assert.NotEmpty(t, s.Supplier)
		require.NotNil(t, s.LastRefill)
		require.NotNil(t, s.NextMaintenance)
	}
}

func TestGenerator_TelemetrySnapshotPerKey(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Minute, true, 42)

	first := gen.OxygenStations("dashboard", 6)
	// Same key inside the refresh window returns the cached snapshot
	again := gen.OxygenStations("dashboard", 6)
	require.NotEmpty(t, again)
	assert.Same(t, first[0], again[0])

	// A different key gets its own snapshot
	other := gen.OxygenStations("detail", 6)
	assert.NotSame(t, first[0], other[0])
}

func TestGenerator_TelemetryRefreshesAfterInterval(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, 10*time.Millisecond, true, 42)

	first := gen.OxygenStations("dashboard", 6)
	time.Sleep(20 * time.Millisecond)
	second := gen.OxygenStations("dashboard", 6)

	require.NotEmpty(t, second)
	assert.NotSame(t, first[0], second[0])
}

func TestGenerator_OxygenSummaryAggregates(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Minute, true, 42)

	summary := gen.OxygenSummary("dashboard", 12)
	require.NotNil(t, summary)

	assert.Equal(t, 12, summary.TotalStations)
	assert.Equal(t, 12, summary.OperationalStations+summary.MaintenanceStations+summary.OfflineStations)
	assert.GreaterOrEqual(t, summary.AverageFillPercentage, 5.0)
	assert.LessOrEqual(t, summary.AverageFillPercentage, 100.0)
	assert.Greater(t, summary.TotalCapacity, 0.0)
	assert.LessOrEqual(t, summary.TotalCurrentLevel, summary.TotalCapacity)
}

func TestGenerator_PatientsSequentialIDs(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Second, true, 42)

	patients := gen.Patients(10)
	require.Len(t, patients, 10)

	for i, p := range patients {
		assert.Equal(t, fmt.Sprintf("demo-patient-%04d", i+1), p.ID)
		assert.Equal(t, fmt.Sprintf("PAT-%04d", i+1), p.PatientNumber)
		assert.NotEmpty(t, p.FirstName)
		assert.NotEmpty(t, p.LastName)
		assert.NotEmpty(t, p.BloodType)
	}
}

func TestGenerator_StaffShifts(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Second, true, 42)

	staff := gen.Staff(8)
	require.Len(t, staff, 8)

	for _, s := range staff {
		assert.Equal(t, 8*time.Hour, s.ShiftEnd.Sub(s.ShiftStart))
		assert.NotEmpty(t, s.Department)
	}
}

func TestGenerator_BedsAndAppointments(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Second, true, 42)

	beds := gen.Beds(20)
	require.Len(t, beds, 20)
	for _, b := range beds {
		assert.NotEmpty(t, b.Ward)
		assert.GreaterOrEqual(t, b.Floor, 1)
	}

	appointments := gen.Appointments(10)
	require.Len(t, appointments, 10)
	for _, a := range appointments {
		assert.NotEmpty(t, a.PatientID)
		assert.NotEmpty(t, a.StaffID)
		assert.Contains(t, []int{15, 30, 45, 60}, a.DurationMin)
	}
}

func TestGenerator_Alerts(t *testing.T) {
	gen := fallback.NewGeneratorWithSeed(time.Minute, time.Second, true, 42)

	alerts := gen.Alerts(5)
	require.Len(t, alerts, 5)
	for _, a := range alerts {
		assert.Equal(t, "oxygen", a.Source)
		assert.NotEmpty(t, a.Title)
		assert.False(t, a.CreatedAt.After(time.Now()))
	}
}
