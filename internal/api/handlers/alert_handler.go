package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// AlertHandler handles alert requests
type AlertHandler struct {
	service *services.AlertService
	data    *services.DashboardDataService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service *services.AlertService, data *services.DashboardDataService) *AlertHandler {
	return &AlertHandler{
		service: service,
		data:    data,
	}
}

// ListAlerts handles GET /api/alerts
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	result := h.data.Get(r.Context(), services.ResourceAlerts)
	respondWithResult(w, result)
}

// SearchAlerts handles GET /api/alerts/search
func (h *AlertHandler) SearchAlerts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entities.AlertFilter{
		Severity: entities.AlertSeverity(query.Get("severity")),
		Status:   entities.AlertStatus(query.Get("status")),
		Source:   query.Get("source"),
		Limit:    queryInt(r, "limit", 50),
		Offset:   queryInt(r, "offset", 0),
	}

	alerts, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// RaiseAlert handles POST /api/alerts
func (h *AlertHandler) RaiseAlert(w http.ResponseWriter, r *http.Request) {
	var alert entities.Alert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Raise(r.Context(), &alert); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, alert)
}

// AcknowledgeAlert handles POST /api/alerts/{id}/acknowledge
func (h *AlertHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "alert ID is required")
		return
	}

	if err := h.service.Acknowledge(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": string(entities.AlertStatusAcknowledged),
	})
}

// ResolveAlert handles POST /api/alerts/{id}/resolve
func (h *AlertHandler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "alert ID is required")
		return
	}

	if err := h.service.Resolve(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": string(entities.AlertStatusResolved),
	})
}
