package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// BedHandler handles bed management requests
type BedHandler struct {
	service *services.BedService
	data    *services.DashboardDataService
}

// NewBedHandler creates a new bed handler
func NewBedHandler(service *services.BedService, data *services.DashboardDataService) *BedHandler {
	return &BedHandler{
		service: service,
		data:    data,
	}
}

// ListBeds handles GET /api/beds
func (h *BedHandler) ListBeds(w http.ResponseWriter, r *http.Request) {
	result := h.data.Get(r.Context(), services.ResourceBeds)
	respondWithResult(w, result)
}

// GetBed handles GET /api/beds/{id}
func (h *BedHandler) GetBed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "bed ID is required")
		return
	}

	bed, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bed)
}

// CreateBed handles POST /api/beds
func (h *BedHandler) CreateBed(w http.ResponseWriter, r *http.Request) {
	var bed entities.Bed
	if err := json.NewDecoder(r.Body).Decode(&bed); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &bed); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, bed)
}

// AssignBed handles POST /api/beds/{id}/assign
func (h *BedHandler) AssignBed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "bed ID is required")
		return
	}

	var payload struct {
		PatientID string `json:"patient_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PatientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	if err := h.service.Assign(r.Context(), id, payload.PatientID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"bed_id":     id,
		"patient_id": payload.PatientID,
		"status":     string(entities.BedStatusOccupied),
	})
}

// ReleaseBed handles POST /api/beds/{id}/release
func (h *BedHandler) ReleaseBed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "bed ID is required")
		return
	}

	if err := h.service.Release(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"bed_id": id,
		"status": string(entities.BedStatusCleaning),
	})
}

// GetOccupancy handles GET /api/beds/occupancy
func (h *BedHandler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Occupancy(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"occupancy": counts,
	})
}
