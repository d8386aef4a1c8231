package fallback

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// Vocabularies the generator draws from. Fixed so synthetic records
// stay plausible and reviewable.
var (
	firstNames = []string{
		"Adaeze", "Chinedu", "Emeka", "Funke", "Ibrahim", "Kemi",
		"Ngozi", "Olumide", "Sade", "Tunde", "Yusuf", "Zainab",
	}
	lastNames = []string{
		"Adebayo", "Balogun", "Eze", "Ibrahim", "Mohammed", "Nwosu",
		"Obi", "Okafor", "Okonkwo", "Olawale", "Sanni", "Umar",
	}
	departments = []string{
		"Emergency", "ICU", "Pediatrics", "Surgery", "Cardiology",
		"Radiology", "Maternity", "General Medicine",
	}
	bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	wards      = []string{"Ward A", "Ward B", "Ward C", "ICU", "Maternity"}
	suppliers  = []string{"MedGas Ltd", "OxySupply Co", "AirLiquide West"}
	locations  = []string{
		"Block A - Floor 1", "Block A - Floor 2", "Block B - ICU",
		"Block B - Theatre", "Block C - Emergency", "Block C - Maternity",
	}
)

// Fill percentage bounds for synthetic telemetry.
const (
	minFillPercent = 5.0
	maxFillPercent = 100.0
)

type telemetrySnapshot struct {
	stations    []*entities.OxygenStation
	generatedAt time.Time
}

type summarySnapshot struct {
	summary     *entities.DashboardSummary
	generatedAt time.Time
}

// Generator produces domain-shaped synthetic data for use when live
// data is unreachable. Generation depends only on the seed and the
// configured windows, never on network state, so it is safe to call
// fully offline.
//
// Dashboard summaries are snapshotted for summaryTTL: repeated calls
// inside the window return the identical value. Oxygen telemetry
// refreshes on its own shorter interval to model faster-moving data.
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	randomize  bool
	summaryTTL time.Duration
	refresh    time.Duration

	summary   *summarySnapshot
	telemetry map[string]*telemetrySnapshot
}

// NewGenerator creates a generator seeded from the clock.
func NewGenerator(summaryTTL, telemetryRefresh time.Duration, randomize bool) *Generator {
	return NewGeneratorWithSeed(summaryTTL, telemetryRefresh, randomize, time.Now().UnixNano())
}

// NewGeneratorWithSeed creates a generator with a fixed seed so a
// scripted draw sequence is reproducible.
func NewGeneratorWithSeed(summaryTTL, telemetryRefresh time.Duration, randomize bool, seed int64) *Generator {
	if summaryTTL <= 0 {
		summaryTTL = 5 * time.Minute
	}
	if telemetryRefresh <= 0 {
		telemetryRefresh = 5 * time.Second
	}
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		randomize:  randomize,
		summaryTTL: summaryTTL,
		refresh:    telemetryRefresh,
		telemetry:  make(map[string]*telemetrySnapshot),
	}
}

// vary returns base plus a bounded integer variation in [-spread, spread].
func (g *Generator) vary(base, spread int) int {
	if !g.randomize || spread <= 0 {
		return base
	}
	return base + g.rng.Intn(2*spread+1) - spread
}

// varyFloat returns base plus a bounded variation in [-spread, spread).
func (g *Generator) varyFloat(base, spread float64) float64 {
	if !g.randomize || spread <= 0 {
		return base
	}
	return base + (g.rng.Float64()*2-1)*spread
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

// DashboardSummary returns the synthetic overview numbers. The value
// is regenerated at most once per summary TTL window.
func (g *Generator) DashboardSummary() *entities.DashboardSummary {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.summary != nil && time.Since(g.summary.generatedAt) <= g.summaryTTL {
		return g.summary.summary
	}

	summary := &entities.DashboardSummary{
		TotalPatients:        g.vary(248, 12),
		ActivePatients:       g.vary(176, 10),
		TotalBeds:            300,
		OccupiedBeds:         g.vary(214, 15),
		StaffOnDuty:          g.vary(84, 6),
		AppointmentsToday:    g.vary(57, 8),
		ActiveAlerts:         g.vary(4, 2),
		CriticalAlerts:       g.vary(1, 1),
		OxygenStationsOnline: g.vary(11, 1),
		AverageOxygenLevel:   clampFill(g.varyFloat(78, 6)),
		GeneratedAt:          time.Now(),
	}
	if summary.ActiveAlerts < 0 {
		summary.ActiveAlerts = 0
	}
	if summary.CriticalAlerts < 0 {
		summary.CriticalAlerts = 0
	}
	if summary.OccupiedBeds > summary.TotalBeds {
		summary.OccupiedBeds = summary.TotalBeds
	}
	summary.AvailableBeds = summary.TotalBeds - summary.OccupiedBeds

	g.summary = &summarySnapshot{summary: summary, generatedAt: time.Now()}
	return summary
}

// OxygenStations returns synthetic station telemetry under the given
// snapshot key. Values are regenerated when the refresh interval has
// elapsed since the last generation for that key; inside the interval
// the prior snapshot is returned unchanged.
func (g *Generator) OxygenStations(key string, count int) []*entities.OxygenStation {
	g.mu.Lock()
	defer g.mu.Unlock()

	if snap, ok := g.telemetry[key]; ok && time.Since(snap.generatedAt) <= g.refresh {
		return snap.stations
	}

	now := time.Now()
	stations := make([]*entities.OxygenStation, 0, count)
	for i := 0; i < count; i++ {
		severity := severityFor(i)
		baseFill := baseFillFor(severity)
		fill := clampFill(g.varyFloat(baseFill, spreadFor(severity)))

		capacity := 2000.0
		refill := now.Add(-time.Duration(12+i*3) * time.Hour)
		maintenance := now.Add(time.Duration(7+i) * 24 * time.Hour)

		stations = append(stations, &entities.OxygenStation{
			ID:              fmt.Sprintf("%s-station-%03d", key, i+1),
			StationName:     fmt.Sprintf("Oxygen Station %d", i+1),
			Location:        locations[i%len(locations)],
			CapacityLiters:  capacity,
			CurrentLevel:    capacity * fill / 100,
			FillPercentage:  fill,
			PressurePSI:     clamp(g.varyFloat(2100, 120), 1500, 2400),
			FlowRate:        clamp(g.varyFloat(14, 4), 2, 30),
			Status:          statusFor(severity),
			Severity:        severity,
			LastRefill:      &refill,
			NextMaintenance: &maintenance,
			Supplier:        suppliers[i%len(suppliers)],
			AlertsEnabled:   true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	g.telemetry[key] = &telemetrySnapshot{stations: stations, generatedAt: now}
	return stations
}

// OxygenSummary derives the aggregate picture from a fresh telemetry
// snapshot.
func (g *Generator) OxygenSummary(key string, count int) *entities.OxygenStatusSummary {
	stations := g.OxygenStations(key, count)

	summary := &entities.OxygenStatusSummary{TotalStations: len(stations)}
	for _, s := range stations {
		summary.TotalCapacity += s.CapacityLiters
		summary.TotalCurrentLevel += s.CurrentLevel
		summary.AverageFillPercentage += s.FillPercentage

		switch s.Status {
		case entities.OxygenStationOperational:
			summary.OperationalStations++
		case entities.OxygenStationMaintenance:
			summary.MaintenanceStations++
		case entities.OxygenStationOffline:
			summary.OfflineStations++
		}
		if s.FillPercentage < 25 {
			summary.LowLevelAlerts++
		}
	}
	if len(stations) > 0 {
		summary.AverageFillPercentage /= float64(len(stations))
	}
	return summary
}

// Patients returns count synthetic patients with sequential unique IDs.
func (g *Generator) Patients(count int) []*entities.Patient {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	patients := make([]*entities.Patient, 0, count)
	for i := 0; i < count; i++ {
		first := g.pick(firstNames)
		last := g.pick(lastNames)
		age := 18 + g.rng.Intn(70)

		patients = append(patients, &entities.Patient{
			ID:            fmt.Sprintf("demo-patient-%04d", i+1),
			PatientNumber: fmt.Sprintf("PAT-%04d", i+1),
			FirstName:     first,
			LastName:      last,
			DateOfBirth:   now.AddDate(-age, 0, -g.rng.Intn(365)),
			Gender:        []string{"female", "male"}[g.rng.Intn(2)],
			Phone:         fmt.Sprintf("+234-80%d-%07d", g.rng.Intn(10), g.rng.Intn(10000000)),
			BloodType:     g.pick(bloodTypes),
			Status:        entities.PatientStatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return patients
}

// Staff returns count synthetic staff members.
func (g *Generator) Staff(count int) []*entities.Staff {
	g.mu.Lock()
	defer g.mu.Unlock()

	roles := []entities.StaffRole{
		entities.StaffRoleDoctor, entities.StaffRoleNurse,
		entities.StaffRoleNurse, entities.StaffRoleTechnician,
	}

	now := time.Now()
	staff := make([]*entities.Staff, 0, count)
	for i := 0; i < count; i++ {
		shiftStart := now.Truncate(time.Hour).Add(-time.Duration(g.rng.Intn(6)) * time.Hour)
		staff = append(staff, &entities.Staff{
			ID:          fmt.Sprintf("demo-staff-%04d", i+1),
			StaffNumber: fmt.Sprintf("STF-%04d", i+1),
			FirstName:   g.pick(firstNames),
			LastName:    g.pick(lastNames),
			Role:        roles[i%len(roles)],
			Department:  g.pick(departments),
			Status:      entities.StaffStatusOnDuty,
			ShiftStart:  shiftStart,
			ShiftEnd:    shiftStart.Add(8 * time.Hour),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return staff
}

// Beds returns count synthetic beds with a plausible occupancy mix.
func (g *Generator) Beds(count int) []*entities.Bed {
	g.mu.Lock()
	defer g.mu.Unlock()

	statuses := []entities.BedStatus{
		entities.BedStatusOccupied, entities.BedStatusOccupied,
		entities.BedStatusOccupied, entities.BedStatusAvailable,
		entities.BedStatusCleaning,
	}

	now := time.Now()
	beds := make([]*entities.Bed, 0, count)
	for i := 0; i < count; i++ {
		beds = append(beds, &entities.Bed{
			ID:        fmt.Sprintf("demo-bed-%04d", i+1),
			BedNumber: fmt.Sprintf("%s-%02d", wards[i%len(wards)], i%20+1),
			Ward:      wards[i%len(wards)],
			Floor:     i%4 + 1,
			BedType:   []string{"standard", "icu", "pediatric"}[i%3],
			Status:    statuses[g.rng.Intn(len(statuses))],
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return beds
}

// Appointments returns count synthetic appointments spread over the
// coming days.
func (g *Generator) Appointments(count int) []*entities.Appointment {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	appointments := make([]*entities.Appointment, 0, count)
	for i := 0; i < count; i++ {
		appointments = append(appointments, &entities.Appointment{
			ID:          fmt.Sprintf("demo-appt-%04d", i+1),
			PatientID:   fmt.Sprintf("demo-patient-%04d", g.rng.Intn(count)+1),
			StaffID:     fmt.Sprintf("demo-staff-%04d", g.rng.Intn(count)+1),
			Department:  g.pick(departments),
			ScheduledAt: now.Add(time.Duration(g.rng.Intn(72)) * time.Hour),
			DurationMin: []int{15, 30, 45, 60}[g.rng.Intn(4)],
			Status:      entities.AppointmentStatusConfirmed,
			Reason:      "Consultation",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return appointments
}

// Alerts returns count synthetic active alerts.
func (g *Generator) Alerts(count int) []*entities.Alert {
	g.mu.Lock()
	defer g.mu.Unlock()

	severities := []entities.AlertSeverity{
		entities.AlertSeverityInfo, entities.AlertSeverityInfo,
		entities.AlertSeverityWarning, entities.AlertSeverityCritical,
	}

	now := time.Now()
	alerts := make([]*entities.Alert, 0, count)
	for i := 0; i < count; i++ {
		severity := severities[g.rng.Intn(len(severities))]
		alerts = append(alerts, &entities.Alert{
			ID:        fmt.Sprintf("demo-alert-%04d", i+1),
			Source:    "oxygen",
			Severity:  severity,
			Status:    entities.AlertStatusActive,
			Title:     fmt.Sprintf("Station %d level %s", i+1, severity),
			Message:   "Synthetic alert generated while the backend is unreachable",
			CreatedAt: now.Add(-time.Duration(g.rng.Intn(120)) * time.Minute),
		})
	}
	return alerts
}

// Reset drops every cached snapshot. Intended for tests and refresh.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.summary = nil
	g.telemetry = make(map[string]*telemetrySnapshot)
}

func severityFor(i int) entities.OxygenSeverity {
	switch i % 6 {
	case 0:
		return entities.OxygenSeverityCritical
	case 1, 2:
		return entities.OxygenSeverityWarning
	default:
		return entities.OxygenSeverityNormal
	}
}

func baseFillFor(severity entities.OxygenSeverity) float64 {
	switch severity {
	case entities.OxygenSeverityCritical:
		return 22
	case entities.OxygenSeverityWarning:
		return 48
	default:
		return 82
	}
}

// Critical stations fluctuate more than normal ones.
func spreadFor(severity entities.OxygenSeverity) float64 {
	switch severity {
	case entities.OxygenSeverityCritical:
		return 15
	case entities.OxygenSeverityWarning:
		return 8
	default:
		return 3
	}
}

func statusFor(severity entities.OxygenSeverity) entities.OxygenStationStatus {
	if severity == entities.OxygenSeverityCritical {
		return entities.OxygenStationMaintenance
	}
	return entities.OxygenStationOperational
}

func clampFill(v float64) float64 {
	return clamp(v, minFillPercent, maxFillPercent)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
