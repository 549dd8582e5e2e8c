package handlers

import (
	"context"
	"time"

	"accountsvc/internal/models"
	"accountsvc/internal/services"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req services.CreateAccountRequest) (models.Account, error)
	UpdateAccount(ctx context.Context, accountNumber string, patch services.AccountPatch) (models.Account, error)
	DeleteAccount(ctx context.Context, accountNumber string) error
	GetAccount(ctx context.Context, accountNumber string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountsByClient(ctx context.Context, clientID string) ([]models.Account, error)
	ListActiveAccountsByClient(ctx context.Context, clientID string) ([]models.Account, error)
	ClientHasActiveAccount(ctx context.Context, clientID string) (bool, error)
}

type MovementService interface {
	CreateMovement(ctx context.Context, req services.CreateMovementRequest) (models.Movement, error)
	GetMovement(ctx context.Context, id int64) (models.Movement, error)
	ListMovements(ctx context.Context) ([]models.Movement, error)
	ListMovementsByAccount(ctx context.Context, accountNumber string) ([]models.Movement, error)
	ListMovementsByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error)
}

type ReportService interface {
	AccountStatement(ctx context.Context, accountNumber string) (services.Statement, error)
	MovementsByDateRange(ctx context.Context, start, end time.Time) ([]services.Statement, error)
	ClientFullReport(ctx context.Context, clientID string) ([]services.Statement, error)
	Reconcile(ctx context.Context, accountNumber string) (services.Reconciliation, error)
}
