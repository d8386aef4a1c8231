package handlers

import (
	"net/http"
	"time"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
)

// DashboardHandler serves the dashboard overview and the resiliency
// status endpoints.
type DashboardHandler struct {
	data    *services.DashboardDataService
	monitor *offline.Monitor
	invoker *resilience.Invoker
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(data *services.DashboardDataService, monitor *offline.Monitor, invoker *resilience.Invoker) *DashboardHandler {
	return &DashboardHandler{
		data:    data,
		monitor: monitor,
		invoker: invoker,
	}
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result := h.data.Get(r.Context(), services.ResourceDashboardSummary)
	respondWithResult(w, result)
}

// Refresh handles POST /api/dashboard/refresh
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.data.RefreshAll(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"refreshed_at": time.Now(),
		"offline":      h.monitor.IsOfflineMode(),
	})
}

// GetNetworkStatus handles GET /api/network/status
func (h *DashboardHandler) GetNetworkStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":       h.monitor.Status(),
		"offline_mode": h.monitor.IsOfflineMode(),
	})
}

// CheckNetwork handles POST /api/network/check
func (h *DashboardHandler) CheckNetwork(w http.ResponseWriter, r *http.Request) {
	online := h.monitor.CheckNow(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"online": online,
		"status": h.monitor.Status(),
	})
}

// GetHealth handles GET /api/system/health
func (h *DashboardHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := h.data.HealthCheck(r.Context())

	healthy := true
	for _, ok := range report {
		if !ok {
			healthy = false
			break
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	respondWithJSON(w, status, map[string]interface{}{
		"healthy":    healthy,
		"resources":  report,
		"checked_at": time.Now(),
	})
}

// GetCacheStats handles GET /api/system/cache
func (h *DashboardHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.data.CacheStats())
}

// CleanupCache handles POST /api/system/cache/cleanup
func (h *DashboardHandler) CleanupCache(w http.ResponseWriter, r *http.Request) {
	removed := h.data.CleanupCache()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
	})
}

// GetErrorHistory handles GET /api/system/errors
func (h *DashboardHandler) GetErrorHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	records := h.invoker.History().Recent(limit)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"errors": records,
		"count":  len(records),
	})
}

// GetBreakers handles GET /api/system/breakers
func (h *DashboardHandler) GetBreakers(w http.ResponseWriter, r *http.Request) {
	keys := []string{
		services.ResourceDashboardSummary,
		services.ResourcePatients,
		services.ResourceStaff,
		services.ResourceBeds,
		services.ResourceOxygenStations,
		services.ResourceAppointments,
		services.ResourceAlerts,
	}

	breakers := make(map[string]interface{}, len(keys))
	registry := h.invoker.Breakers()
	for _, key := range keys {
		breakers[key] = map[string]interface{}{
			"state":    registry.State(key),
			"failures": registry.FailureCount(key),
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"breakers": breakers,
	})
}
