package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"accountsvc/internal/models"
	"accountsvc/internal/services"

	"github.com/go-chi/chi/v5"
)

type createMovementRequest struct {
	AccountNumber string      `json:"account_number"`
	Kind          string      `json:"kind"`
	Value         json.Number `json:"value"`
}

func (h *Handler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	value, err := parseAmount(req.Value)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid value")
		return
	}
	movement, err := h.movements.CreateMovement(r.Context(), services.CreateMovementRequest{
		AccountNumber: req.AccountNumber,
		Kind:          models.MovementKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		Value:         value,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toMovementResponse(movement))
}

func (h *Handler) GetMovement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid movement id")
		return
	}
	movement, err := h.movements.GetMovement(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toMovementResponse(movement))
}

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.movements.ListMovements(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toMovementResponses(movements))
}

func (h *Handler) ListMovementsByAccount(w http.ResponseWriter, r *http.Request) {
	movements, err := h.movements.ListMovementsByAccount(r.Context(), chi.URLParam(r, "accountNumber"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toMovementResponses(movements))
}

func (h *Handler) ListMovementsByDateRange(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	movements, err := h.movements.ListMovementsByDateRange(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toMovementResponses(movements))
}
