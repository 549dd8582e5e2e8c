package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AccountStatement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.reports.AccountStatement(r.Context(), chi.URLParam(r, "accountNumber"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toStatementResponse(statement))
}

// MovementsReport serves /reports?date=start,end.
func (h *Handler) MovementsReport(w http.ResponseWriter, r *http.Request) {
	bounds := strings.Split(r.URL.Query().Get("date"), ",")
	if len(bounds) != 2 {
		respondError(w, http.StatusBadRequest, "date must be start,end")
		return
	}
	start, end, err := parseRange(bounds[0], bounds[1])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	statements, err := h.reports.MovementsByDateRange(r.Context(), start, end)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toStatementResponses(statements))
}

func (h *Handler) ClientFullReport(w http.ResponseWriter, r *http.Request) {
	statements, err := h.reports.ClientFullReport(r.Context(), chi.URLParam(r, "clientId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toStatementResponses(statements))
}
