package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

type MovementKind string

const (
	MovementDebit  MovementKind = "DEBIT"
	MovementCredit MovementKind = "CREDIT"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
)

// Account is keyed by AccountNumber. Balance is the running balance: every
// movement folds its signed value into it.
type Account struct {
	AccountNumber string          `db:"account_number" json:"account_number"`
	AccountType   AccountType     `db:"account_type" json:"account_type"`
	Balance       decimal.Decimal `db:"balance" json:"balance"`
	Status        AccountStatus   `db:"status" json:"status"`
	OwnerClientID string          `db:"owner_client_id" json:"owner_client_id"`
	Version       int64           `db:"version" json:"-"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// Movement is append-only. SignedValue is what was folded into the balance;
// RequestedValue keeps the caller's original input.
type Movement struct {
	ID               int64           `db:"id" json:"id"`
	AccountNumber    string          `db:"account_number" json:"account_number"`
	Kind             MovementKind    `db:"kind" json:"kind"`
	RequestedValue   decimal.Decimal `db:"requested_value" json:"requested_value"`
	SignedValue      decimal.Decimal `db:"signed_value" json:"signed_value"`
	ResultingBalance decimal.Decimal `db:"resulting_balance" json:"resulting_balance"`
	Timestamp        time.Time       `db:"created_at" json:"timestamp"`
}

type ClientProfile struct {
	ID             string       `json:"id"`
	Identification string       `json:"identification"`
	Name           string       `json:"name"`
	Status         ClientStatus `json:"status"`
	Gender         string       `json:"gender,omitempty"`
	Age            int          `json:"age,omitempty"`
	Address        string       `json:"address,omitempty"`
	Phone          string       `json:"phone,omitempty"`
}

func (c ClientProfile) IsActive() bool {
	return c.Status == ClientStatusActive
}
