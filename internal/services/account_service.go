package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accountsvc/internal/logger"
	"accountsvc/internal/models"
	"accountsvc/internal/money"
	"accountsvc/internal/store"
	"accountsvc/internal/validator"

	"github.com/shopspring/decimal"
)

// maxVersionRetries bounds the read-modify-write loop when another writer
// bumped the account version first.
const maxVersionRetries = 5

type AccountService struct {
	accounts AccountStore
	gate     EligibilityChecker
	locks    *KeyedLocker
	now      func() time.Time
}

func NewAccountService(accounts AccountStore, gate EligibilityChecker, locks *KeyedLocker) *AccountService {
	return &AccountService{
		accounts: accounts,
		gate:     gate,
		locks:    locks,
		now:      time.Now,
	}
}

type CreateAccountRequest struct {
	AccountNumber string
	AccountType   models.AccountType
	Balance       decimal.Decimal
	Status        models.AccountStatus
	OwnerClientID string
}

// AccountPatch lists the only fields an update may touch. Nil keeps the
// stored value.
type AccountPatch struct {
	AccountType *models.AccountType
	Balance     *decimal.Decimal
	Status      *models.AccountStatus
}

func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (models.Account, error) {
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	req.OwnerClientID = strings.TrimSpace(req.OwnerClientID)
	if err := validateCreate(req); err != nil {
		return models.Account{}, err
	}

	if _, err := s.accounts.Get(ctx, req.AccountNumber); err == nil {
		return models.Account{}, fmt.Errorf("%w: %s", ErrAccountExists, req.AccountNumber)
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.Account{}, systemError("load account", err)
	}

	eligibility := s.gate.CheckEligible(ctx, req.OwnerClientID)
	if !eligibility.Eligible {
		logger.Warn("account creation blocked", logger.Fields{
			"account_number": req.AccountNumber,
			"client_id":      req.OwnerClientID,
			"reason":         eligibility.Reason,
		})
		return models.Account{}, fmt.Errorf("%w: %s", ErrClientNotEligible, eligibility.Reason)
	}

	now := s.now().UTC()
	account := models.Account{
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		Balance:       req.Balance,
		Status:        req.Status,
		OwnerClientID: req.OwnerClientID,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return models.Account{}, fmt.Errorf("%w: %s", ErrAccountExists, req.AccountNumber)
		}
		return models.Account{}, systemError("create account", err)
	}
	logger.Info("account created", logger.Fields{
		"account_number": created.AccountNumber,
		"client_id":      created.OwnerClientID,
		"balance":        money.Format(created.Balance),
	})
	return created, nil
}

func validateCreate(req CreateAccountRequest) error {
	if err := validator.ValidateAccountNumber(req.AccountNumber); err != nil {
		return invalid("%v", err)
	}
	if err := validator.ValidateAccountType(req.AccountType); err != nil {
		return invalid("%v", err)
	}
	if err := validator.ValidateAccountStatus(req.Status); err != nil {
		return invalid("%v", err)
	}
	if err := validator.ValidateClientID(req.OwnerClientID); err != nil {
		return invalid("%v", err)
	}
	if !req.Balance.IsPositive() {
		return invalid("initial balance must be greater than zero")
	}
	if err := money.CheckScale(req.Balance); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// UpdateAccount runs inside the account's critical section so it cannot
// interleave with a movement against the same account.
func (s *AccountService) UpdateAccount(ctx context.Context, accountNumber string, patch AccountPatch) (models.Account, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return models.Account{}, invalid("account number is required")
	}
	if err := validatePatch(patch); err != nil {
		return models.Account{}, err
	}

	unlock, err := s.locks.Lock(ctx, accountNumber)
	if err != nil {
		return models.Account{}, systemError("acquire account lock", err)
	}
	defer unlock()

	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		account, err := s.load(ctx, accountNumber)
		if err != nil {
			return models.Account{}, err
		}
		if patch.AccountType != nil {
			account.AccountType = *patch.AccountType
		}
		if patch.Balance != nil {
			account.Balance = *patch.Balance
		}
		if patch.Status != nil {
			account.Status = *patch.Status
		}
		account.UpdatedAt = s.now().UTC()

		updated, err := s.accounts.Update(context.WithoutCancel(ctx), account)
		switch {
		case err == nil:
			logger.Info("account updated", logger.Fields{
				"account_number": updated.AccountNumber,
				"status":         updated.Status,
				"balance":        money.Format(updated.Balance),
			})
			return updated, nil
		case errors.Is(err, store.ErrVersionConflict):
			continue
		case errors.Is(err, store.ErrNotFound):
			return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountNumber)
		default:
			return models.Account{}, systemError("update account", err)
		}
	}
	return models.Account{}, systemError("update account", store.ErrVersionConflict)
}

func validatePatch(patch AccountPatch) error {
	if patch.AccountType != nil {
		if err := validator.ValidateAccountType(*patch.AccountType); err != nil {
			return invalid("%v", err)
		}
	}
	if patch.Status != nil {
		if err := validator.ValidateAccountStatus(*patch.Status); err != nil {
			return invalid("%v", err)
		}
	}
	if patch.Balance != nil {
		if patch.Balance.IsNegative() {
			return invalid("balance must not be negative")
		}
		if err := money.CheckScale(*patch.Balance); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountNumber string) error {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return invalid("account number is required")
	}
	unlock, err := s.locks.Lock(ctx, accountNumber)
	if err != nil {
		return systemError("acquire account lock", err)
	}
	defer unlock()

	if err := s.accounts.Delete(context.WithoutCancel(ctx), accountNumber); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, accountNumber)
		}
		return systemError("delete account", err)
	}
	logger.Info("account deleted", logger.Fields{"account_number": accountNumber})
	return nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (models.Account, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return models.Account{}, invalid("account number is required")
	}
	return s.load(ctx, accountNumber)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, systemError("list accounts", err)
	}
	return nonNil(accounts), nil
}

func (s *AccountService) ListAccountsByClient(ctx context.Context, clientID string) ([]models.Account, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, invalid("client id is required")
	}
	accounts, err := s.accounts.ListByClient(ctx, clientID)
	if err != nil {
		return nil, systemError("list accounts by client", err)
	}
	return nonNil(accounts), nil
}

func (s *AccountService) ListActiveAccountsByClient(ctx context.Context, clientID string) ([]models.Account, error) {
	accounts, err := s.ListAccountsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	active := make([]models.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.IsActive() {
			active = append(active, account)
		}
	}
	return active, nil
}

func (s *AccountService) ClientHasActiveAccount(ctx context.Context, clientID string) (bool, error) {
	active, err := s.ListActiveAccountsByClient(ctx, clientID)
	if err != nil {
		return false, err
	}
	return len(active) > 0, nil
}

func (s *AccountService) load(ctx context.Context, accountNumber string) (models.Account, error) {
	account, err := s.accounts.Get(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountNumber)
		}
		return models.Account{}, systemError("load account", err)
	}
	return account, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
