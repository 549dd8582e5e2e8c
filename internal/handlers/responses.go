package handlers

import (
	"strconv"
	"time"

	"accountsvc/internal/models"
	"accountsvc/internal/money"
	"accountsvc/internal/services"
)

type accountResponse struct {
	AccountNumber string               `json:"account_number"`
	AccountType   models.AccountType   `json:"account_type"`
	Balance       string               `json:"balance"`
	Status        models.AccountStatus `json:"status"`
	OwnerClientID string               `json:"owner_client_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// Movement ids can exceed 2^53, so they travel as strings.
type movementResponse struct {
	ID               int64               `json:"id,string"`
	AccountNumber    string              `json:"account_number"`
	Kind             models.MovementKind `json:"kind"`
	RequestedValue   string              `json:"requested_value"`
	SignedValue      string              `json:"signed_value"`
	ResultingBalance string              `json:"resulting_balance"`
	Timestamp        time.Time           `json:"timestamp"`
}

type statementResponse struct {
	Account   accountResponse       `json:"account"`
	Movements []movementResponse    `json:"movements"`
	Client    *models.ClientProfile `json:"client"`
}

type reconciliationResponse struct {
	AccountNumber   string   `json:"account_number"`
	StoredBalance   string   `json:"stored_balance"`
	OpeningBalance  string   `json:"opening_balance"`
	ReplayedBalance string   `json:"replayed_balance"`
	Difference      string   `json:"difference"`
	MovementCount   int      `json:"movement_count"`
	Mismatches      []string `json:"mismatched_movement_ids"`
	Balanced        bool     `json:"balanced"`
}

func toAccountResponse(a models.Account) accountResponse {
	return accountResponse{
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       money.Format(a.Balance),
		Status:        a.Status,
		OwnerClientID: a.OwnerClientID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toAccountResponses(accounts []models.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

func toMovementResponse(m models.Movement) movementResponse {
	return movementResponse{
		ID:               m.ID,
		AccountNumber:    m.AccountNumber,
		Kind:             m.Kind,
		RequestedValue:   money.Format(m.RequestedValue),
		SignedValue:      money.Format(m.SignedValue),
		ResultingBalance: money.Format(m.ResultingBalance),
		Timestamp:        m.Timestamp,
	}
}

func toMovementResponses(movements []models.Movement) []movementResponse {
	out := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toStatementResponse(s services.Statement) statementResponse {
	return statementResponse{
		Account:   toAccountResponse(s.Account),
		Movements: toMovementResponses(s.Movements),
		Client:    s.Client,
	}
}

func toStatementResponses(statements []services.Statement) []statementResponse {
	out := make([]statementResponse, 0, len(statements))
	for _, s := range statements {
		out = append(out, toStatementResponse(s))
	}
	return out
}

func toReconciliationResponse(r services.Reconciliation) reconciliationResponse {
	return reconciliationResponse{
		AccountNumber:   r.AccountNumber,
		StoredBalance:   money.Format(r.StoredBalance),
		OpeningBalance:  money.Format(r.OpeningBalance),
		ReplayedBalance: money.Format(r.ReplayedBalance),
		Difference:      money.Format(r.Difference),
		MovementCount:   r.MovementCount,
		Mismatches:      formatIDs(r.Mismatches),
		Balanced:        r.Balanced,
	}
}

func formatIDs(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatInt(id, 10))
	}
	return out
}
