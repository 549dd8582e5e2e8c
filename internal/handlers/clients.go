package handlers

import (
	"net/http"
	"strings"

	"accountsvc/internal/models"

	"github.com/go-chi/chi/v5"
)

// ListClientAccounts returns the client's accounts; ?status=ACTIVE narrows
// the list to active ones.
func (h *Handler) ListClientAccounts(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	var (
		accounts []models.Account
		err      error
	)
	switch status := strings.ToUpper(r.URL.Query().Get("status")); status {
	case "":
		accounts, err = h.accounts.ListAccountsByClient(r.Context(), clientID)
	case string(models.AccountStatusActive):
		accounts, err = h.accounts.ListActiveAccountsByClient(r.Context(), clientID)
	default:
		respondError(w, http.StatusBadRequest, "unsupported status filter")
		return
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponses(accounts))
}

func (h *Handler) ClientHasActiveAccount(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")
	has, err := h.accounts.ClientHasActiveAccount(r.Context(), clientID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"client_id":          clientID,
		"has_active_account": has,
	})
}
