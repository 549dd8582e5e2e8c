package handlers

import (
	"net/http"

	"accountsvc/internal/websocket"

	"github.com/go-chi/chi/v5"
)

// WSBalance streams balance updates for one existing account.
func (h *Handler) WSBalance(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccount(r.Context(), chi.URLParam(r, "accountNumber"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	websocket.ServeWS(w, r, h.hub, account.AccountNumber)
}
