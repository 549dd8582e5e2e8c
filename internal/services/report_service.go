package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accountsvc/internal/logger"
	"accountsvc/internal/models"
	"accountsvc/internal/registry"
	"accountsvc/internal/store"

	"github.com/shopspring/decimal"
)

type ReportService struct {
	accounts  AccountStore
	movements MovementStore
	clients   ClientLookup
}

func NewReportService(accounts AccountStore, movements MovementStore, clients ClientLookup) *ReportService {
	return &ReportService{accounts: accounts, movements: movements, clients: clients}
}

// Statement is one account with its movements. Client is nil when the
// registry could not be reached.
type Statement struct {
	Account   models.Account        `json:"account"`
	Movements []models.Movement     `json:"movements"`
	Client    *models.ClientProfile `json:"client"`
}

type Reconciliation struct {
	AccountNumber   string          `json:"account_number"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	ReplayedBalance decimal.Decimal `json:"replayed_balance"`
	Difference      decimal.Decimal `json:"difference"`
	MovementCount   int             `json:"movement_count"`
	Mismatches      []int64         `json:"mismatched_movement_ids"`
	Balanced        bool            `json:"balanced"`
}

func (s *ReportService) AccountStatement(ctx context.Context, accountNumber string) (Statement, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return Statement{}, invalid("account number is required")
	}
	account, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return Statement{}, err
	}
	movements, err := s.movements.ListByAccount(ctx, accountNumber)
	if err != nil {
		return Statement{}, systemError("list movements by account", err)
	}
	return Statement{
		Account:   account,
		Movements: nonNil(movements),
		Client:    s.bestEffortClient(ctx, account.OwnerClientID, nil),
	}, nil
}

// MovementsByDateRange builds one statement per account touched in the range,
// in the order each account first appears.
func (s *ReportService) MovementsByDateRange(ctx context.Context, start, end time.Time) ([]Statement, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	movements, err := s.movements.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, systemError("list movements by date range", err)
	}

	var order []string
	groups := make(map[string][]models.Movement)
	for _, m := range movements {
		if _, seen := groups[m.AccountNumber]; !seen {
			order = append(order, m.AccountNumber)
		}
		groups[m.AccountNumber] = append(groups[m.AccountNumber], m)
	}

	clients := make(map[string]*models.ClientProfile)
	statements := make([]Statement, 0, len(order))
	for _, accountNumber := range order {
		account, err := s.accounts.Get(ctx, accountNumber)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				logger.Warn("account vanished during report", logger.Fields{"account_number": accountNumber})
				continue
			}
			return nil, systemError("load account", err)
		}
		statements = append(statements, Statement{
			Account:   account,
			Movements: groups[accountNumber],
			Client:    s.bestEffortClient(ctx, account.OwnerClientID, clients),
		})
	}
	return statements, nil
}

func (s *ReportService) ClientFullReport(ctx context.Context, clientID string) ([]Statement, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, invalid("client id is required")
	}
	profile, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, registry.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
		}
		return nil, systemError("lookup client", err)
	}
	accounts, err := s.accounts.ListByClient(ctx, clientID)
	if err != nil {
		return nil, systemError("list accounts by client", err)
	}
	statements := make([]Statement, 0, len(accounts))
	for _, account := range accounts {
		movements, err := s.movements.ListByAccount(ctx, account.AccountNumber)
		if err != nil {
			return nil, systemError("list movements by account", err)
		}
		client := profile
		statements = append(statements, Statement{
			Account:   account,
			Movements: nonNil(movements),
			Client:    &client,
		})
	}
	return statements, nil
}

// Reconcile replays the account's movements from the first snapshot and
// compares the result with the stored balance. A movement is a mismatch when
// its resulting balance disagrees with the running replay.
func (s *ReportService) Reconcile(ctx context.Context, accountNumber string) (Reconciliation, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return Reconciliation{}, invalid("account number is required")
	}
	account, err := s.loadAccount(ctx, accountNumber)
	if err != nil {
		return Reconciliation{}, err
	}
	movements, err := s.movements.ListByAccount(ctx, accountNumber)
	if err != nil {
		return Reconciliation{}, systemError("list movements by account", err)
	}

	result := Reconciliation{
		AccountNumber: accountNumber,
		StoredBalance: account.Balance,
		MovementCount: len(movements),
		Mismatches:    []int64{},
	}
	if len(movements) == 0 {
		result.OpeningBalance = account.Balance
		result.ReplayedBalance = account.Balance
		result.Balanced = true
		return result, nil
	}

	result.OpeningBalance = movements[0].ResultingBalance.Sub(movements[0].SignedValue)
	running := result.OpeningBalance
	for _, m := range movements {
		running = running.Add(m.SignedValue)
		if !running.Equal(m.ResultingBalance) {
			result.Mismatches = append(result.Mismatches, m.ID)
		}
	}
	result.ReplayedBalance = running
	result.Difference = account.Balance.Sub(running)
	result.Balanced = result.Difference.IsZero() && len(result.Mismatches) == 0
	return result, nil
}

func (s *ReportService) loadAccount(ctx context.Context, accountNumber string) (models.Account, error) {
	account, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountNumber)
		}
		return models.Account{}, systemError("load account", err)
	}
	return account, nil
}

// bestEffortClient never fails. A nil cache disables memoization; failed
// lookups are cached too so one report asks the registry once per client.
func (s *ReportService) bestEffortClient(ctx context.Context, clientID string, cache map[string]*models.ClientProfile) *models.ClientProfile {
	if cache != nil {
		if profile, ok := cache[clientID]; ok {
			return profile
		}
	}
	var result *models.ClientProfile
	profile, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		logger.Warn("client enrichment skipped", logger.Fields{"client_id": clientID, "error": err.Error()})
	} else {
		result = &profile
	}
	if cache != nil {
		cache[clientID] = result
	}
	return result
}
