package routes

import (
	"net/http"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/api/handlers"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/api/middleware"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	dashboardHandler   *handlers.DashboardHandler
	patientHandler     *handlers.PatientHandler
	staffHandler       *handlers.StaffHandler
	bedHandler         *handlers.BedHandler
	oxygenHandler      *handlers.OxygenHandler
	appointmentHandler *handlers.AppointmentHandler
	alertHandler       *handlers.AlertHandler
	sseHandler         *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	dashboardHandler *handlers.DashboardHandler,
	patientHandler *handlers.PatientHandler,
	staffHandler *handlers.StaffHandler,
	bedHandler *handlers.BedHandler,
	oxygenHandler *handlers.OxygenHandler,
	appointmentHandler *handlers.AppointmentHandler,
	alertHandler *handlers.AlertHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		dashboardHandler:   dashboardHandler,
		patientHandler:     patientHandler,
		staffHandler:       staffHandler,
		bedHandler:         bedHandler,
		oxygenHandler:      oxygenHandler,
		appointmentHandler: appointmentHandler,
		alertHandler:       alertHandler,
		sseHandler:         sseHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Dashboard endpoints
	r.mux.HandleFunc("GET /api/dashboard/summary", r.dashboardHandler.GetSummary)
	r.mux.HandleFunc("POST /api/dashboard/refresh", r.dashboardHandler.Refresh)

	// Network and system status endpoints
	r.mux.HandleFunc("GET /api/network/status", r.dashboardHandler.GetNetworkStatus)
	r.mux.HandleFunc("POST /api/network/check", r.dashboardHandler.CheckNetwork)
	r.mux.HandleFunc("GET /api/system/health", r.dashboardHandler.GetHealth)
	r.mux.HandleFunc("GET /api/system/cache", r.dashboardHandler.GetCacheStats)
	r.mux.HandleFunc("POST /api/system/cache/cleanup", r.dashboardHandler.CleanupCache)
	r.mux.HandleFunc("GET /api/system/errors", r.dashboardHandler.GetErrorHistory)
	r.mux.HandleFunc("GET /api/system/breakers", r.dashboardHandler.GetBreakers)

	// Patient endpoints
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.ListPatients)
	r.mux.HandleFunc("GET /api/patients/search", r.patientHandler.SearchPatients)
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.GetPatient)
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.CreatePatient)
	r.mux.HandleFunc("PUT /api/patients/{id}", r.patientHandler.UpdatePatient)
	r.mux.HandleFunc("DELETE /api/patients/{id}", r.patientHandler.DeletePatient)

	// Staff endpoints
	r.mux.HandleFunc("GET /api/staff", r.staffHandler.ListStaff)
	r.mux.HandleFunc("GET /api/staff/search", r.staffHandler.SearchStaff)
	r.mux.HandleFunc("GET /api/staff/{id}", r.staffHandler.GetStaff)
	r.mux.HandleFunc("POST /api/staff", r.staffHandler.CreateStaff)
	r.mux.HandleFunc("PUT /api/staff/{id}", r.staffHandler.UpdateStaff)
	r.mux.HandleFunc("DELETE /api/staff/{id}", r.staffHandler.DeleteStaff)

	// Bed endpoints
	r.mux.HandleFunc("GET /api/beds", r.bedHandler.ListBeds)
	r.mux.HandleFunc("GET /api/beds/occupancy", r.bedHandler.GetOccupancy)
	r.mux.HandleFunc("GET /api/beds/{id}", r.bedHandler.GetBed)
	r.mux.HandleFunc("POST /api/beds", r.bedHandler.CreateBed)
	r.mux.HandleFunc("POST /api/beds/{id}/assign", r.bedHandler.AssignBed)
	r.mux.HandleFunc("POST /api/beds/{id}/release", r.bedHandler.ReleaseBed)

	// Oxygen endpoints
	r.mux.HandleFunc("GET /api/oxygen/stations", r.oxygenHandler.ListStations)
	r.mux.HandleFunc("GET /api/oxygen/summary", r.oxygenHandler.GetSummary)
	r.mux.HandleFunc("GET /api/oxygen/stations/{id}", r.oxygenHandler.GetStation)
	r.mux.HandleFunc("POST /api/oxygen/stations", r.oxygenHandler.CreateStation)
	r.mux.HandleFunc("PUT /api/oxygen/stations/{id}", r.oxygenHandler.UpdateStation)
	r.mux.HandleFunc("DELETE /api/oxygen/stations/{id}", r.oxygenHandler.DeleteStation)
	r.mux.HandleFunc("POST /api/oxygen/stations/{id}/readings", r.oxygenHandler.RecordReading)
	r.mux.HandleFunc("GET /api/oxygen/stations/{id}/readings", r.oxygenHandler.ListReadings)

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("GET /api/appointments/search", r.appointmentHandler.SearchAppointments)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.GetAppointment)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("PUT /api/appointments/{id}", r.appointmentHandler.UpdateAppointment)
	r.mux.HandleFunc("POST /api/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment)

	// Alert endpoints
	r.mux.HandleFunc("GET /api/alerts", r.alertHandler.ListAlerts)
	r.mux.HandleFunc("GET /api/alerts/search", r.alertHandler.SearchAlerts)
	r.mux.HandleFunc("POST /api/alerts", r.alertHandler.RaiseAlert)
	r.mux.HandleFunc("POST /api/alerts/{id}/acknowledge", r.alertHandler.AcknowledgeAlert)
	r.mux.HandleFunc("POST /api/alerts/{id}/resolve", r.alertHandler.ResolveAlert)

	// SSE streaming endpoints
	r.mux.HandleFunc("GET /api/stream/alerts", r.sseHandler.StreamAlerts)
	r.mux.HandleFunc("GET /api/stream/network", r.sseHandler.StreamNetworkStatus)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.CacheControl(handler)
	handler = middleware.Compression(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
