package services

import (
	"context"
	"time"

	"accountsvc/internal/events"
	"accountsvc/internal/models"
	"accountsvc/internal/registry"
	"accountsvc/internal/websocket"
)

type AccountStore interface {
	Get(ctx context.Context, accountNumber string) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Account, error)
	Create(ctx context.Context, account models.Account) (models.Account, error)
	Update(ctx context.Context, account models.Account) (models.Account, error)
	Delete(ctx context.Context, accountNumber string) error
}

type MovementStore interface {
	Get(ctx context.Context, id int64) (models.Movement, error)
	List(ctx context.Context) ([]models.Movement, error)
	ListByAccount(ctx context.Context, accountNumber string) ([]models.Movement, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Movement, error)
}

// Ledger writes the account's new balance and the movement as one unit.
type Ledger interface {
	AppendMovement(ctx context.Context, account models.Account, movement models.Movement) (models.Movement, error)
}

type ClientLookup interface {
	FindByID(ctx context.Context, clientID string) (models.ClientProfile, error)
}

type EligibilityChecker interface {
	CheckEligible(ctx context.Context, clientID string) registry.Eligibility
}

type BalanceHub interface {
	BroadcastBalance(accountNumber string, update websocket.BalanceUpdate)
}

type EventPublisher interface {
	PublishMovement(ctx context.Context, event events.MovementRecorded) error
}
