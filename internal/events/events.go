package events

import (
	"context"
	"time"

	"accountsvc/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TopicMovementRecorded = "movement.recorded"

type MovementRecorded struct {
	EventID          string          `json:"event_id"`
	MovementID       int64           `json:"movement_id"`
	AccountNumber    string          `json:"account_number"`
	Kind             string          `json:"kind"`
	SignedValue      decimal.Decimal `json:"signed_value"`
	ResultingBalance decimal.Decimal `json:"resulting_balance"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

func NewMovementRecorded(m models.Movement) MovementRecorded {
	return MovementRecorded{
		EventID:          uuid.NewString(),
		MovementID:       m.ID,
		AccountNumber:    m.AccountNumber,
		Kind:             string(m.Kind),
		SignedValue:      m.SignedValue,
		ResultingBalance: m.ResultingBalance,
		OccurredAt:       m.Timestamp,
	}
}

type Publisher interface {
	PublishMovement(ctx context.Context, event MovementRecorded) error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishMovement(context.Context, MovementRecorded) error { return nil }
