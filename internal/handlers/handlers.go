package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"accountsvc/internal/logger"
	"accountsvc/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinels to status codes. Unexpected
// failures are logged and answered with a fixed message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrMovementNotFound),
		errors.Is(err, services.ErrClientNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAccountExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrClientNotEligible),
		errors.Is(err, services.ErrAccountNotActive):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("request failed", err, logger.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
