package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accountsvc/internal/events"
	"accountsvc/internal/logger"
	"accountsvc/internal/models"
	"accountsvc/internal/money"
	"accountsvc/internal/store"
	"accountsvc/internal/validator"
	"accountsvc/internal/websocket"

	"github.com/shopspring/decimal"
)

const publishTimeout = 3 * time.Second

type MovementService struct {
	accounts  AccountStore
	movements MovementStore
	ledger    Ledger
	locks     *KeyedLocker
	hub       BalanceHub
	publisher EventPublisher
	now       func() time.Time
}

func NewMovementService(accounts AccountStore, movements MovementStore, ledger Ledger, locks *KeyedLocker, hub BalanceHub, publisher EventPublisher) *MovementService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &MovementService{
		accounts:  accounts,
		movements: movements,
		ledger:    ledger,
		locks:     locks,
		hub:       hub,
		publisher: publisher,
		now:       time.Now,
	}
}

type CreateMovementRequest struct {
	AccountNumber string
	Kind          models.MovementKind
	Value         decimal.Decimal
}

// CreateMovement applies one debit or credit. The balance read, the funds
// check and the combined account/movement write happen under the account's
// lock; a rejected movement leaves both stores untouched. Subscribers and the
// event stream are notified after the lock is released.
func (s *MovementService) CreateMovement(ctx context.Context, req CreateMovementRequest) (models.Movement, error) {
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	if req.AccountNumber == "" {
		return models.Movement{}, invalid("account number is required")
	}
	if err := validator.ValidateMovementKind(req.Kind); err != nil {
		return models.Movement{}, invalid("%v", err)
	}
	if req.Value.IsZero() {
		return models.Movement{}, invalid("movement value must not be zero")
	}
	if err := money.CheckScale(req.Value); err != nil {
		return models.Movement{}, invalid("%v", err)
	}

	saved, err := s.applyMovement(ctx, req)
	if err != nil {
		return models.Movement{}, err
	}
	s.notify(ctx, saved)
	return saved, nil
}

func (s *MovementService) applyMovement(ctx context.Context, req CreateMovementRequest) (models.Movement, error) {
	unlock, err := s.locks.Lock(ctx, req.AccountNumber)
	if err != nil {
		return models.Movement{}, systemError("acquire account lock", err)
	}
	defer unlock()

	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		account, err := s.accounts.Get(ctx, req.AccountNumber)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.Movement{}, fmt.Errorf("%w: %s", ErrAccountNotFound, req.AccountNumber)
			}
			return models.Movement{}, systemError("load account", err)
		}
		if !account.IsActive() {
			return models.Movement{}, fmt.Errorf("%w: %s", ErrAccountNotActive, req.AccountNumber)
		}

		signed := money.Signed(req.Kind, req.Value)
		newBalance := account.Balance.Add(signed)
		if req.Kind == models.MovementDebit && newBalance.IsNegative() {
			logger.Warn("movement rejected", logger.Fields{
				"account_number": req.AccountNumber,
				"balance":        money.Format(account.Balance),
				"requested":      money.Format(req.Value),
			})
			return models.Movement{}, fmt.Errorf("%w: balance %s cannot cover %s",
				ErrInsufficientFunds, money.Format(account.Balance), money.Format(signed.Abs()))
		}

		now := s.now().UTC()
		account.Balance = newBalance
		account.UpdatedAt = now
		movement := models.Movement{
			AccountNumber:    account.AccountNumber,
			Kind:             req.Kind,
			RequestedValue:   req.Value,
			SignedValue:      signed,
			ResultingBalance: newBalance,
			Timestamp:        now,
		}

		saved, err := s.ledger.AppendMovement(context.WithoutCancel(ctx), account, movement)
		switch {
		case err == nil:
			logger.Info("movement created", logger.Fields{
				"movement_id":       saved.ID,
				"account_number":    saved.AccountNumber,
				"kind":              saved.Kind,
				"resulting_balance": money.Format(saved.ResultingBalance),
			})
			return saved, nil
		case errors.Is(err, store.ErrVersionConflict):
			continue
		case errors.Is(err, store.ErrNotFound):
			return models.Movement{}, fmt.Errorf("%w: %s", ErrAccountNotFound, req.AccountNumber)
		default:
			return models.Movement{}, systemError("append movement", err)
		}
	}
	return models.Movement{}, systemError("append movement", store.ErrVersionConflict)
}

// notify fans the committed movement out to subscribers. Failures are logged
// and never reach the caller.
func (s *MovementService) notify(ctx context.Context, movement models.Movement) {
	if s.hub != nil {
		s.hub.BroadcastBalance(movement.AccountNumber, websocket.BalanceUpdate{
			AccountNumber: movement.AccountNumber,
			Balance:       money.Format(movement.ResultingBalance),
			MovementID:    movement.ID,
			Kind:          string(movement.Kind),
			Timestamp:     movement.Timestamp,
		})
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishMovement(pubCtx, events.NewMovementRecorded(movement)); err != nil {
		logger.Error("publish movement event failed", err, logger.Fields{
			"movement_id":    movement.ID,
			"account_number": movement.AccountNumber,
		})
	}
}

func (s *MovementService) GetMovement(ctx context.Context, id int64) (models.Movement, error) {
	movement, err := s.movements.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Movement{}, fmt.Errorf("%w: %d", ErrMovementNotFound, id)
		}
		return models.Movement{}, systemError("load movement", err)
	}
	return movement, nil
}

func (s *MovementService) ListMovements(ctx context.Context) ([]models.Movement, error) {
	movements, err := s.movements.List(ctx)
	if err != nil {
		return nil, systemError("list movements", err)
	}
	return nonNil(movements), nil
}

func (s *MovementService) ListMovementsByAccount(ctx context.Context, accountNumber string) ([]models.Movement, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, invalid("account number is required")
	}
	movements, err := s.movements.ListByAccount(ctx, accountNumber)
	if err != nil {
		return nil, systemError("list movements by account", err)
	}
	return nonNil(movements), nil
}

func (s *MovementService) ListMovementsByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	movements, err := s.movements.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, systemError("list movements by date range", err)
	}
	return nonNil(movements), nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return invalid("start and end dates are required")
	}
	if start.After(end) {
		return invalid("start date must not be after end date")
	}
	return nil
}
