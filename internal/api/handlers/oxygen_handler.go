package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// OxygenHandler handles oxygen station requests
type OxygenHandler struct {
	service *services.OxygenService
	data    *services.DashboardDataService
}

// NewOxygenHandler creates a new oxygen handler
func NewOxygenHandler(service *services.OxygenService, data *services.DashboardDataService) *OxygenHandler {
	return &OxygenHandler{
		service: service,
		data:    data,
	}
}

// ListStations handles GET /api/oxygen/stations
func (h *OxygenHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	result := h.data.Get(r.Context(), services.ResourceOxygenStations)
	respondWithResult(w, result)
}

// GetStation handles GET /api/oxygen/stations/{id}
func (h *OxygenHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	station, err := h.service.GetStation(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, station)
}

// CreateStation handles POST /api/oxygen/stations
func (h *OxygenHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var station entities.OxygenStation
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreateStation(r.Context(), &station); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, station)
}

// UpdateStation handles PUT /api/oxygen/stations/{id}
func (h *OxygenHandler) UpdateStation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	var station entities.OxygenStation
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	station.ID = id

	if err := h.service.UpdateStation(r.Context(), &station); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, station)
}

// DeleteStation handles DELETE /api/oxygen/stations/{id}
func (h *OxygenHandler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	if err := h.service.DeleteStation(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordReading handles POST /api/oxygen/stations/{id}/readings
func (h *OxygenHandler) RecordReading(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	var reading entities.OxygenReading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	reading.StationID = id

	if err := h.service.RecordReading(r.Context(), &reading); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, reading)
}

// ListReadings handles GET /api/oxygen/stations/{id}/readings
func (h *OxygenHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	limit := queryInt(r, "limit", 50)
	readings, err := h.service.ListReadings(r.Context(), id, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"readings": readings,
		"count":    len(readings),
	})
}

// GetSummary handles GET /api/oxygen/summary
func (h *OxygenHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.StatusSummary(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
