package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/application/services"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch appErr.Code {
	case apperrors.ErrorCodeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorCodeAuth:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorCodeRateLimit:
		respondWithError(w, http.StatusTooManyRequests, appErr.Message)
	case apperrors.ErrorCodeNetwork:
		respondWithError(w, http.StatusBadGateway, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	}
}

// respondWithResult writes a facade result, exposing provenance in
// headers so clients can flag stale or synthetic data.
func respondWithResult(w http.ResponseWriter, result *services.DataResult) {
	w.Header().Set("X-Data-Source", string(result.Source))
	w.Header().Set("X-Retry-Count", strconv.Itoa(result.RetryCount))

	if !result.Success {
		respondWithAppError(w, result.Err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":   result.Data,
		"source": result.Source,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
