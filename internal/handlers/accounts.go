package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"accountsvc/internal/models"
	"accountsvc/internal/services"

	"github.com/go-chi/chi/v5"
)

type createAccountRequest struct {
	AccountNumber string      `json:"account_number"`
	AccountType   string      `json:"account_type"`
	Balance       json.Number `json:"balance"`
	Status        string      `json:"status"`
	OwnerClientID string      `json:"owner_client_id"`
}

type updateAccountRequest struct {
	AccountType *string      `json:"account_type"`
	Balance     *json.Number `json:"balance"`
	Status      *string      `json:"status"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	balance, err := parseAmount(req.Balance)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid balance")
		return
	}
	account, err := h.accounts.CreateAccount(r.Context(), services.CreateAccountRequest{
		AccountNumber: req.AccountNumber,
		AccountType:   models.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))),
		Balance:       balance,
		Status:        models.AccountStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		OwnerClientID: req.OwnerClientID,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []models.Account
		err      error
	)
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		accounts, err = h.accounts.ListAccountsByClient(r.Context(), clientID)
	} else {
		accounts, err = h.accounts.ListAccounts(r.Context())
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponses(accounts))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccount(r.Context(), chi.URLParam(r, "accountNumber"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	var patch services.AccountPatch
	if req.AccountType != nil {
		accountType := models.AccountType(strings.ToUpper(strings.TrimSpace(*req.AccountType)))
		patch.AccountType = &accountType
	}
	if req.Status != nil {
		status := models.AccountStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		patch.Status = &status
	}
	if req.Balance != nil {
		balance, err := parseAmount(*req.Balance)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid balance")
			return
		}
		patch.Balance = &balance
	}
	account, err := h.accounts.UpdateAccount(r.Context(), chi.URLParam(r, "accountNumber"), patch)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context(), chi.URLParam(r, "accountNumber")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.Reconcile(r.Context(), chi.URLParam(r, "accountNumber"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toReconciliationResponse(result))
}
