package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"accountsvc/internal/models"
	"accountsvc/internal/services"
)

func TestAccountStatementWithoutClient(t *testing.T) {
	handler := newTestHandler(stubAccountService{}, stubMovementService{}, stubReportService{
		statementFn: func(_ context.Context, accountNumber string) (services.Statement, error) {
			return services.Statement{Account: sampleAccount(), Movements: []models.Movement{}}, nil
		},
	})
	rr := doRequest(t, handler, http.MethodGet, "/reports/statement/1234567890", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["client"] != nil {
		t.Fatalf("expected null client, got %#v", payload["client"])
	}
	movements, ok := payload["movements"].([]any)
	if !ok || len(movements) != 0 {
		t.Fatalf("expected empty movements, got %#v", payload["movements"])
	}
}

func TestMovementsReportDateParam(t *testing.T) {
	handler := newTestHandler(stubAccountService{}, stubMovementService{}, stubReportService{
		rangeFn: func(_ context.Context, start, end time.Time) ([]services.Statement, error) {
			if !start.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected start %s", start)
			}
			if !end.Equal(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected end %s", end)
			}
			return []services.Statement{{Account: sampleAccount()}}, nil
		},
	})
	rr := doRequest(t, handler, http.MethodGet, "/reports?date=2024-02-01T08:00:00Z,2024-02-10T00:00:00", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("unexpected payload: %#v", payload)
	}

	rr = doRequest(t, handler, http.MethodGet, "/reports?date=2024-02-01", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestClientFullReportNotFound(t *testing.T) {
	handler := newTestHandler(stubAccountService{}, stubMovementService{}, stubReportService{
		clientFn: func(context.Context, string) ([]services.Statement, error) {
			return nil, services.ErrClientNotFound
		},
	})
	rr := doRequest(t, handler, http.MethodGet, "/reports/clients/CLI404/accounts", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestClientAccountsStatusFilter(t *testing.T) {
	handler := newTestHandler(stubAccountService{
		listActiveFn: func(_ context.Context, clientID string) ([]models.Account, error) {
			return []models.Account{sampleAccount()}, nil
		},
		hasActiveFn: func(context.Context, string) (bool, error) { return true, nil },
	}, stubMovementService{}, stubReportService{})

	rr := doRequest(t, handler, http.MethodGet, "/clients/CLI001/accounts?status=active", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rr = doRequest(t, handler, http.MethodGet, "/clients/CLI001/accounts?status=closed", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	rr = doRequest(t, handler, http.MethodGet, "/clients/CLI001/has-active-account", "")
	var payload map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&payload)
	if payload["has_active_account"] != true || payload["client_id"] != "CLI001" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestWSBalanceUnknownAccount(t *testing.T) {
	handler := newTestHandler(stubAccountService{
		getFn: func(context.Context, string) (models.Account, error) {
			return models.Account{}, services.ErrAccountNotFound
		},
	}, stubMovementService{}, stubReportService{})
	rr := doRequest(t, handler, http.MethodGet, "/ws/accounts/missing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
