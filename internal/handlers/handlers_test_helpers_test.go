package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"accountsvc/internal/config"
	"accountsvc/internal/models"
	"accountsvc/internal/services"
	"accountsvc/internal/websocket"
)

type stubAccountService struct {
	createFn       func(ctx context.Context, req services.CreateAccountRequest) (models.Account, error)
	updateFn       func(ctx context.Context, accountNumber string, patch services.AccountPatch) (models.Account, error)
	deleteFn       func(ctx context.Context, accountNumber string) error
	getFn          func(ctx context.Context, accountNumber string) (models.Account, error)
	listFn         func(ctx context.Context) ([]models.Account, error)
	listByClientFn func(ctx context.Context, clientID string) ([]models.Account, error)
	listActiveFn   func(ctx context.Context, clientID string) ([]models.Account, error)
	hasActiveFn    func(ctx context.Context, clientID string) (bool, error)
}

func (s stubAccountService) CreateAccount(ctx context.Context, req services.CreateAccountRequest) (models.Account, error) {
	return s.createFn(ctx, req)
}

func (s stubAccountService) UpdateAccount(ctx context.Context, accountNumber string, patch services.AccountPatch) (models.Account, error) {
	return s.updateFn(ctx, accountNumber, patch)
}

func (s stubAccountService) DeleteAccount(ctx context.Context, accountNumber string) error {
	return s.deleteFn(ctx, accountNumber)
}

func (s stubAccountService) GetAccount(ctx context.Context, accountNumber string) (models.Account, error) {
	return s.getFn(ctx, accountNumber)
}

func (s stubAccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.listFn(ctx)
}

func (s stubAccountService) ListAccountsByClient(ctx context.Context, clientID string) ([]models.Account, error) {
	return s.listByClientFn(ctx, clientID)
}

func (s stubAccountService) ListActiveAccountsByClient(ctx context.Context, clientID string) ([]models.Account, error) {
	return s.listActiveFn(ctx, clientID)
}

func (s stubAccountService) ClientHasActiveAccount(ctx context.Context, clientID string) (bool, error) {
	return s.hasActiveFn(ctx, clientID)
}

type stubMovementService struct {
	createFn      func(ctx context.Context, req services.CreateMovementRequest) (models.Movement, error)
	getFn         func(ctx context.Context, id int64) (models.Movement, error)
	listFn        func(ctx context.Context) ([]models.Movement, error)
	listByAcctFn  func(ctx context.Context, accountNumber string) ([]models.Movement, error)
	listByRangeFn func(ctx context.Context, start, end time.Time) ([]models.Movement, error)
}

func (s stubMovementService) CreateMovement(ctx context.Context, req services.CreateMovementRequest) (models.Movement, error) {
	return s.createFn(ctx, req)
}

func (s stubMovementService) GetMovement(ctx context.Context, id int64) (models.Movement, error) {
	return s.getFn(ctx, id)
}

func (s stubMovementService) ListMovements(ctx context.Context) ([]models.Movement, error) {
	return s.listFn(ctx)
}

func (s stubMovementService) ListMovementsByAccount(ctx context.Context, accountNumber string) ([]models.Movement, error) {
	return s.listByAcctFn(ctx, accountNumber)
}

func (s stubMovementService) ListMovementsByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error) {
	return s.listByRangeFn(ctx, start, end)
}

type stubReportService struct {
	statementFn func(ctx context.Context, accountNumber string) (services.Statement, error)
	rangeFn     func(ctx context.Context, start, end time.Time) ([]services.Statement, error)
	clientFn    func(ctx context.Context, clientID string) ([]services.Statement, error)
	reconcileFn func(ctx context.Context, accountNumber string) (services.Reconciliation, error)
}

func (s stubReportService) AccountStatement(ctx context.Context, accountNumber string) (services.Statement, error) {
	return s.statementFn(ctx, accountNumber)
}

func (s stubReportService) MovementsByDateRange(ctx context.Context, start, end time.Time) ([]services.Statement, error) {
	return s.rangeFn(ctx, start, end)
}

func (s stubReportService) ClientFullReport(ctx context.Context, clientID string) ([]services.Statement, error) {
	return s.clientFn(ctx, clientID)
}

func (s stubReportService) Reconcile(ctx context.Context, accountNumber string) (services.Reconciliation, error) {
	return s.reconcileFn(ctx, accountNumber)
}

func newTestHandler(accounts stubAccountService, movements stubMovementService, reports stubReportService) http.Handler {
	cfg := config.Config{AllowedOrigins: "*", RequestTimeout: 5 * time.Second}
	return New(cfg, accounts, movements, reports, websocket.NewHub()).Routes()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}
