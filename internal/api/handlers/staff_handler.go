package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
)

// StaffHandler handles staff requests
type StaffHandler struct {
	service *services.StaffService
	data    *services.DashboardDataService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(service *services.StaffService, data *services.DashboardDataService) *StaffHandler {
	return &StaffHandler{
		service: service,
		data:    data,
	}
}

// ListStaff handles GET /api/staff
func (h *StaffHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	result := h.data.Get(r.Context(), services.ResourceStaff)
	respondWithResult(w, result)
}

// SearchStaff handles GET /api/staff/search
func (h *StaffHandler) SearchStaff(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entities.StaffFilter{
		Search:     query.Get("q"),
		Role:       entities.StaffRole(query.Get("role")),
		Department: query.Get("department"),
		Status:     entities.StaffStatus(query.Get("status")),
		Limit:      queryInt(r, "limit", 50),
		Offset:     queryInt(r, "offset", 0),
	}

	members, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"staff": members,
		"count": len(members),
	})
}

// GetStaff handles GET /api/staff/{id}
func (h *StaffHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "staff ID is required")
		return
	}

	member, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

// CreateStaff handles POST /api/staff
func (h *StaffHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var member entities.Staff
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &member); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, member)
}

// UpdateStaff handles PUT /api/staff/{id}
func (h *StaffHandler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "staff ID is required")
		return
	}

	var member entities.Staff
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	member.ID = id

	if err := h.service.Update(r.Context(), &member); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

// DeleteStaff handles DELETE /api/staff/{id}
func (h *StaffHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "staff ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
